package handlers

import (
	"net/http"
	"strconv"

	"github.com/ysato/recallnote/apperr"
	"github.com/ysato/recallnote/auth"
	"github.com/ysato/recallnote/repository"
	"github.com/ysato/recallnote/views"
	"gorm.io/gorm"
)

type DBHandler struct {
	*gorm.DB
	Reviews *repository.ReviewRepository
	Auth    *auth.Service
	Views   *views.Renderer
}

func NewDBHandler(db *gorm.DB, svc *auth.Service, renderer *views.Renderer) *DBHandler {
	return &DBHandler{
		DB:      db,
		Reviews: repository.NewReviewRepository(db),
		Auth:    svc,
		Views:   renderer,
	}
}

// render executes a page template; a render failure falls through to the
// centralized error responder.
func (h *DBHandler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if err := h.Views.Render(w, name, data); err != nil {
		h.RenderError(w, r, err)
	}
}

func reviewID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		return 0, apperr.NotFound("データが見つかりませんでした")
	}
	return uint(id), nil
}
