// Package auth resolves session cookies to users and decides whether a
// request may proceed. The gate returns decisions as values; turning a
// denial into an HTTP redirect is the middleware's job, which keeps the
// decision logic testable without a response writer in the loop.
package auth

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/kekirawacc/kccweb/internal/model"
	"github.com/kekirawacc/kccweb/internal/store"
)

// CookieName is the session cookie. Its value is the opaque session token.
const CookieName = "kcc_session"

// CookieMaxAge mirrors the server-side session validity.
const CookieMaxAge = 7 * 24 * 60 * 60

// Denial is the outcome of a failed authorization check. Unauthenticated
// requests are pointed at the login page with the original path attached;
// authenticated-but-forbidden requests are bounced to the site root with no
// explanation, so restricted areas stay undisclosed.
type Denial struct {
	RedirectTo string
}

type Gate struct {
	sessions *store.SessionStore
}

func NewGate(sessions *store.SessionStore) *Gate {
	return &Gate{sessions: sessions}
}

// CurrentUser resolves the request's session cookie to a user. A missing
// cookie returns nil without touching storage; an unknown or expired token
// also returns nil. Only storage failures surface as errors.
func (g *Gate) CurrentUser(r *http.Request) (*model.AuthUser, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}
	return g.sessions.GetUserByToken(cookie.Value)
}

// RequireUser returns the authenticated user, or a Denial pointing at the
// login page with the originally requested path carried along. A non-nil
// error means storage failed; callers surface a generic failure, not a
// redirect.
func (g *Gate) RequireUser(r *http.Request) (*model.AuthUser, *Denial, error) {
	user, err := g.CurrentUser(r)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, &Denial{RedirectTo: LoginPath(r.URL.Path)}, nil
	}
	return user, nil, nil
}

// RequireRole is RequireUser plus a role check. A user whose role is not in
// the allowed set is denied with a redirect to the home page, never to login.
func (g *Gate) RequireRole(r *http.Request, roles ...model.Role) (*model.AuthUser, *Denial, error) {
	user, denial, err := g.RequireUser(r)
	if denial != nil || err != nil {
		return nil, denial, err
	}
	if !user.Role.In(roles...) {
		return nil, &Denial{RedirectTo: "/"}, nil
	}
	return user, nil, nil
}

// LoginPath builds the login URL carrying the path to return to afterwards.
func LoginPath(returnTo string) string {
	return fmt.Sprintf("/login?redirectTo=%s", url.QueryEscape(returnTo))
}

// SetSessionCookie attaches the session token to the response. Secure is
// set from the request so cookies stay usable on plain-HTTP local runs.
func SetSessionCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   CookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
