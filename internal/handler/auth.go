package handler

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kekirawacc/kccweb/internal/auth"
	"github.com/kekirawacc/kccweb/internal/store"
)

const defaultLoginRedirect = "/admin"

// The login form is deliberately bare; it is the one page this server owns
// outright.
var loginTmpl = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head><title>Login</title></head>
<body>
<h1>Sign in</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/login">
  <input type="hidden" name="redirectTo" value="{{.RedirectTo}}">
  <label>Email <input type="email" name="email" value="{{.Email}}" required></label>
  <label>Password <input type="password" name="password" required></label>
  <button type="submit">Sign in</button>
</form>
</body>
</html>`))

type AuthHandler struct {
	users    *store.UserStore
	sessions *store.SessionStore
	gate     *auth.Gate
	logger   *slog.Logger
}

func NewAuthHandler(us *store.UserStore, ss *store.SessionStore, gate *auth.Gate, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{users: us, sessions: ss, gate: gate, logger: logger}
}

type loginData struct {
	Email      string
	RedirectTo string
	Error      string
}

// LoginPage renders the login form. Users who already hold a live session
// are sent straight on to their destination.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	redirectTo := r.URL.Query().Get("redirectTo")
	if redirectTo == "" {
		redirectTo = defaultLoginRedirect
	}

	user, err := h.gate.CurrentUser(r)
	if err != nil {
		h.logger.Error("resolve session", "error", err)
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
		return
	}
	if user != nil {
		http.Redirect(w, r, redirectTo, http.StatusSeeOther)
		return
	}

	h.renderLogin(w, http.StatusOK, loginData{RedirectTo: redirectTo})
}

// Login verifies credentials, opens a session, and redirects. Unknown email
// and wrong password are indistinguishable to the client; the form comes
// back with the email preserved, never the password.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	redirectTo := r.FormValue("redirectTo")
	if redirectTo == "" {
		redirectTo = defaultLoginRedirect
	}

	userID, err := h.users.VerifyCredentials(email, password)
	if errors.Is(err, store.ErrInvalidCredentials) {
		h.renderLogin(w, http.StatusBadRequest, loginData{
			Email:      email,
			RedirectTo: redirectTo,
			Error:      "Invalid email or password",
		})
		return
	}
	if err != nil {
		h.logger.Error("verify credentials", "error", err)
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
		return
	}

	sess, err := h.sessions.Create(userID)
	if err != nil {
		h.logger.Error("create session", "error", err)
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
		return
	}

	auth.SetSessionCookie(w, r, sess.Token)
	http.Redirect(w, r, redirectTo, http.StatusSeeOther)
}

// Logout deletes the presented session, clears the cookie, and lands on the
// home page. It succeeds even when no session existed.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.DeleteByToken(cookie.Value); err != nil {
			h.logger.Error("delete session", "error", err)
		}
	}
	auth.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, status int, data loginData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := loginTmpl.Execute(w, data); err != nil {
		h.logger.Error("render login", "error", err)
	}
}
