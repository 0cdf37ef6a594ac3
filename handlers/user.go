package handlers

import (
	"net/http"

	"github.com/ysato/recallnote/flash"
)

type authPage struct {
	Flash flash.Messages
}

func (h *DBHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login.html", authPage{Flash: flash.Pop(w, r)})
}

func (h *DBHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "register.html", authPage{Flash: flash.Pop(w, r)})
}

// Register creates the account and signs the new user straight in.
func (h *DBHandler) Register(w http.ResponseWriter, r *http.Request) {
	user, err := h.Auth.Register(r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		flash.Error(w, err.Error())
		http.Redirect(w, r, "/products/register", http.StatusSeeOther)
		return
	}

	if err := h.Auth.StartSession(w, user); err != nil {
		h.RenderError(w, r, err)
		return
	}
	flash.Success(w, "登録が完了しました")
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

func (h *DBHandler) Login(w http.ResponseWriter, r *http.Request) {
	user, err := h.Auth.Authenticate(r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		flash.Error(w, err.Error())
		http.Redirect(w, r, "/products/login", http.StatusSeeOther)
		return
	}

	if err := h.Auth.StartSession(w, user); err != nil {
		h.RenderError(w, r, err)
		return
	}
	flash.Success(w, "ログインしました。")
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

func (h *DBHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Auth.EndSession(w, r)
	flash.Success(w, "ログアウトしました。")
	http.Redirect(w, r, "/products/login", http.StatusSeeOther)
}
