package middleware

import "net/http"

// MethodOverride lets HTML forms express PUT and DELETE: a POST carrying a
// _method field is rewritten to that method before routing.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if m := r.PostFormValue("_method"); m == http.MethodPut || m == http.MethodDelete {
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}
