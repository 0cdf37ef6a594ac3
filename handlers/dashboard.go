package handlers

import (
	"net/http"
	"time"

	"github.com/ysato/recallnote/flash"
	"github.com/ysato/recallnote/middleware"
	"github.com/ysato/recallnote/models"
	"github.com/ysato/recallnote/repository"
)

type dashboardPage struct {
	Flash   flash.Messages
	Buckets *repository.Buckets
}

type recordPage struct {
	Flash        flash.Messages
	Selected     bool
	SelectedDate string
	Reviews      []models.Review
}

// Dashboard shows the three recall buckets: entries studied 1, 7, and 30 days
// ago. The buckets are recomputed on every request.
func (h *DBHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/products/login", http.StatusSeeOther)
		return
	}

	buckets, err := h.Reviews.Buckets(user.ID)
	if err != nil {
		h.RenderError(w, r, err)
		return
	}
	h.render(w, r, "products.html", dashboardPage{Flash: flash.Pop(w, r), Buckets: buckets})
}

// RecordPage shows the calendar view shell with no day selected yet.
func (h *DBHandler) RecordPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "record.html", recordPage{Flash: flash.Pop(w, r)})
}

// SelectedDay lists the entries studied on one absolute date.
func (h *DBHandler) SelectedDay(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/products/login", http.StatusSeeOther)
		return
	}

	raw := r.PostFormValue("date")
	if raw == "" {
		http.Redirect(w, r, "/products/record", http.StatusSeeOther)
		return
	}
	date, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		http.Redirect(w, r, "/products/record", http.StatusSeeOther)
		return
	}

	reviews, err := h.Reviews.FindForCalendarDay(user.ID, date)
	if err != nil {
		h.RenderError(w, r, err)
		return
	}
	h.render(w, r, "record.html", recordPage{
		Flash:        flash.Pop(w, r),
		Selected:     true,
		SelectedDate: raw,
		Reviews:      reviews,
	})
}
