// Package flash implements one-shot messages carried across a redirect in a
// short-lived cookie, read and cleared on the next page render.
package flash

import (
	"net/http"
	"net/url"
)

const (
	successCookie = "flash_success"
	errorCookie   = "flash_error"
)

// Messages holds the pending flash payload for one render.
type Messages struct {
	Success string
	Error   string
}

func Success(w http.ResponseWriter, message string) { set(w, successCookie, message) }

func Error(w http.ResponseWriter, message string) { set(w, errorCookie, message) }

func set(w http.ResponseWriter, name, message string) {
	http.SetCookie(w, &http.Cookie{
		Name: name,
		// Messages contain non-ASCII text, which is not valid in a cookie value
		Value:    url.QueryEscape(message),
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60,
	})
}

// Pop reads and clears any pending flash messages.
func Pop(w http.ResponseWriter, r *http.Request) Messages {
	return Messages{
		Success: pop(w, r, successCookie),
		Error:   pop(w, r, errorCookie),
	}
}

func pop(w http.ResponseWriter, r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{Name: name, Path: "/", MaxAge: -1})
	value, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return value
}
