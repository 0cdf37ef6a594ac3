package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/ysato/recallnote/apperr"
)

// fallbackMessage is shown when an error carries no message of its own.
const fallbackMessage = "問題が起きました"

type errorPage struct {
	Status  int
	Message string
}

// RenderError is the single error responder: it logs, derives the HTTP status
// (500 when the error carries none), and renders the error page.
func (h *DBHandler) RenderError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("Error message: %v", err)

	status := apperr.StatusOf(err)
	message := err.Error()
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	if message == "" {
		message = fallbackMessage
	}

	w.WriteHeader(status)
	if renderErr := h.Views.Render(w, "error.html", errorPage{Status: status, Message: message}); renderErr != nil {
		log.Printf("Error rendering error page: %v", renderErr)
	}
}

// NotFound handles every path the router does not match.
func (h *DBHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.RenderError(w, r, apperr.NotFound("ページが見つかりませんでした。"))
}
