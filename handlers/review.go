package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ysato/recallnote/apperr"
	"github.com/ysato/recallnote/auth"
	"github.com/ysato/recallnote/flash"
	"github.com/ysato/recallnote/middleware"
	"github.com/ysato/recallnote/models"
	"github.com/ysato/recallnote/repository"
)

type newReviewPage struct {
	Flash flash.Messages
}

type todayPage struct {
	Flash   flash.Messages
	Reviews []models.Review
}

type editPage struct {
	Flash  flash.Messages
	Review *models.Review
}

// CreateReview persists an "add study item" submission for the session user.
func (h *DBHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/products/login", http.StatusSeeOther)
		return
	}

	fields := repository.NewReview{
		Category: r.PostFormValue("category"),
		Question: r.PostFormValue("question"),
		Answer:   r.PostFormValue("answer"),
	}
	if _, err := h.Reviews.Create(fields, user.ID); err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			flash.Error(w, appErr.Message)
			http.Redirect(w, r, "/products/new", http.StatusSeeOther)
			return
		}
		h.RenderError(w, r, err)
		return
	}

	flash.Success(w, "学習内容を登録しました")
	http.Redirect(w, r, "/products/show", http.StatusSeeOther)
}

func (h *DBHandler) NewReviewPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "new.html", newReviewPage{Flash: flash.Pop(w, r)})
}

// TodayReviews lists the entries registered today.
func (h *DBHandler) TodayReviews(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/products/login", http.StatusSeeOther)
		return
	}

	reviews, err := h.Reviews.FindForCalendarDay(user.ID, time.Now())
	if err != nil {
		h.RenderError(w, r, err)
		return
	}
	h.render(w, r, "show.html", todayPage{Flash: flash.Pop(w, r), Reviews: reviews})
}

// Remembered deletes a review: recall succeeded, the item is done. Deleting a
// review that is already gone is a no-op.
func (h *DBHandler) Remembered(w http.ResponseWriter, r *http.Request) {
	review, ok := h.ownedReview(w, r, "/products")
	if !ok {
		return
	}
	if review != nil {
		if err := h.Reviews.Delete(review.ID); err != nil {
			h.RenderError(w, r, err)
			return
		}
	}
	flash.Success(w, "覚えられました！！")
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

// NotRemembered resets the review's timestamp to now, restarting the interval.
func (h *DBHandler) NotRemembered(w http.ResponseWriter, r *http.Request) {
	review, ok := h.ownedReview(w, r, "/products")
	if !ok {
		return
	}
	if review != nil {
		if err := h.Reviews.UpdateTime(review.ID); err != nil {
			h.RenderError(w, r, err)
			return
		}
	}
	flash.Error(w, "もう一回頑張りましょう")
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

func (h *DBHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r)

	id, err := reviewID(r)
	if err != nil {
		h.RenderError(w, r, err)
		return
	}
	review, err := h.Reviews.FindByID(id)
	if err != nil || !auth.CanModify(user, review) {
		flash.Error(w, "アクセス権限がないかデータがありません")
		http.Redirect(w, r, "/products/show", http.StatusSeeOther)
		return
	}

	h.render(w, r, "edit.html", editPage{Flash: flash.Pop(w, r), Review: review})
}

func (h *DBHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	review, ok := h.ownedReview(w, r, "/products/show")
	if !ok {
		return
	}
	if review == nil {
		h.RenderError(w, r, apperr.NotFound("データが見つかりませんでした"))
		return
	}

	category := r.PostFormValue("category")
	question := r.PostFormValue("question")
	answer := r.PostFormValue("answer")
	fields := repository.ReviewFields{Category: &category, Question: &question, Answer: &answer}

	if _, err := h.Reviews.UpdateFields(review.ID, fields); err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) && appErr.Status == http.StatusBadRequest {
			flash.Error(w, appErr.Message)
			http.Redirect(w, r, "/products/"+r.PathValue("id")+"/edit", http.StatusSeeOther)
			return
		}
		h.RenderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/products/show", http.StatusSeeOther)
}

// DeleteReview removes an entry from the edit list.
func (h *DBHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	review, ok := h.ownedReview(w, r, "/products/show")
	if !ok {
		return
	}
	if review != nil {
		if err := h.Reviews.Delete(review.ID); err != nil {
			h.RenderError(w, r, err)
			return
		}
	}
	http.Redirect(w, r, "/products/show", http.StatusSeeOther)
}

// ownedReview resolves the {id} path value and applies the ownership policy
// before any mutating operation. A missing review is returned as nil with
// ok=true so delete-style callers can stay idempotent; a review owned by
// someone else refuses the request with a flash redirect.
func (h *DBHandler) ownedReview(w http.ResponseWriter, r *http.Request, backTo string) (*models.Review, bool) {
	user, _ := middleware.CurrentUser(r)

	id, err := reviewID(r)
	if err != nil {
		h.RenderError(w, r, err)
		return nil, false
	}

	review, err := h.Reviews.FindByID(id)
	if err != nil {
		if apperr.StatusOf(err) == http.StatusNotFound {
			return nil, true
		}
		h.RenderError(w, r, err)
		return nil, false
	}

	if !auth.CanModify(user, review) {
		flash.Error(w, "アクセス権限がありません")
		http.Redirect(w, r, backTo, http.StatusSeeOther)
		return nil, false
	}
	return review, true
}
