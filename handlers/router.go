package handlers

import (
	"net/http"

	"github.com/ysato/recallnote/auth"
	"github.com/ysato/recallnote/middleware"
)

// NewRouter builds the full route table and wraps it in the middleware chain:
// method override (HTML forms) runs first, then the session loader.
func NewRouter(h *DBHandler, svc *auth.Service) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.LoginPage)

	mux.HandleFunc("GET /products/register", h.RegisterPage)
	mux.HandleFunc("POST /products/register", h.Register)
	mux.HandleFunc("GET /products/login", h.LoginPage)
	mux.HandleFunc("POST /products/login", h.Login)
	mux.HandleFunc("GET /products/logout", h.Logout)

	mux.HandleFunc("GET /products", middleware.RequireLogin(h.Dashboard))
	mux.HandleFunc("DELETE /products/remembered/{id}", middleware.RequireLogin(h.Remembered))
	mux.HandleFunc("PUT /products/notRemembered/{id}", middleware.RequireLogin(h.NotRemembered))

	mux.HandleFunc("GET /products/record", middleware.RequireLogin(h.RecordPage))
	mux.HandleFunc("POST /products/selectedDay", middleware.RequireLogin(h.SelectedDay))

	mux.HandleFunc("POST /products", middleware.RequireLogin(h.CreateReview))
	mux.HandleFunc("GET /products/new", middleware.RequireLogin(h.NewReviewPage))
	mux.HandleFunc("GET /products/show", middleware.RequireLogin(h.TodayReviews))

	mux.HandleFunc("GET /products/{id}/edit", middleware.RequireLogin(h.EditPage))
	mux.HandleFunc("PUT /products/{id}", middleware.RequireLogin(h.UpdateReview))
	mux.HandleFunc("DELETE /products/{id}", middleware.RequireLogin(h.DeleteReview))

	mux.HandleFunc("/", h.NotFound)

	return middleware.MethodOverride(middleware.LoadUser(svc)(mux))
}
