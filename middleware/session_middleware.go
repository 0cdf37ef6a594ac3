package middleware

import (
	"context"
	"net/http"

	"github.com/ysato/recallnote/auth"
	"github.com/ysato/recallnote/flash"
	"github.com/ysato/recallnote/models"
)

type contextKey string

const userKey contextKey = "user"

// LoadUser resolves the session cookie and attaches the authenticated user to
// the request context. Requests without a valid session pass through untouched.
func LoadUser(svc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user, err := svc.UserFromRequest(r); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), userKey, user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireLogin gates a route: unauthenticated requests are redirected to the
// login page with a flash message instead of reaching the handler.
func RequireLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			flash.Error(w, "ログインしてください")
			http.Redirect(w, r, "/products/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// CurrentUser returns the user attached by LoadUser, if any.
func CurrentUser(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(userKey).(*models.User)
	return user, ok
}
