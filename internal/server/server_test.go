package server

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/kekirawacc/kccweb/internal/auth"
	"github.com/kekirawacc/kccweb/internal/database"
	"github.com/kekirawacc/kccweb/internal/model"
	"github.com/kekirawacc/kccweb/internal/store"
)

type testEnv struct {
	srv     *Server
	router  http.Handler
	users   *store.UserStore
	session *store.SessionStore
}

func setupServer(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.DiscardHandler)
	srv := New(db, t.TempDir(), logger)
	return &testEnv{
		srv:     srv,
		router:  srv.Router(),
		users:   store.NewUserStore(db),
		session: store.NewSessionStore(db),
	}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func loginForm(email, password, redirectTo string) *http.Request {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)
	if redirectTo != "" {
		form.Set("redirectTo", redirectTo)
	}
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}

func TestLoginSuccessSetsCookieAndRedirects(t *testing.T) {
	env := setupServer(t)
	env.users.Create("Admin One", "admin@kcc.lk", "hunter2", model.RoleAdmin, nil)

	rec := env.do(loginForm("admin@kcc.lk", "hunter2", ""))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin" {
		t.Errorf("Location = %q, want %q", loc, "/admin")
	}

	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatal("expected session cookie")
	}
	if !cookie.HttpOnly {
		t.Error("cookie must be HttpOnly")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Error("cookie must be SameSite=Lax")
	}
	if cookie.MaxAge != 7*24*60*60 {
		t.Errorf("cookie max-age = %d, want 7 days", cookie.MaxAge)
	}

	// The cookie works: /admin returns the admin's profile
	req := httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(cookie)
	rec = env.do(req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /admin status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "admin@kcc.lk") {
		t.Errorf("profile body missing email: %s", rec.Body.String())
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := setupServer(t)
	env.users.Create("Admin One", "admin@kcc.lk", "hunter2", model.RoleAdmin, nil)

	rec := env.do(loginForm("admin@kcc.lk", "wrong", ""))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if sessionCookie(rec) != nil {
		t.Error("no cookie must be set on failure")
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Invalid email or password") {
		t.Error("expected generic invalid-credentials message")
	}
	// Email comes back for the form, the password never does
	if !strings.Contains(body, "admin@kcc.lk") {
		t.Error("submitted email should be preserved")
	}
	if strings.Contains(body, "wrong") {
		t.Error("password must never be echoed")
	}
}

// Unknown email renders exactly like wrong password.
func TestLoginUnknownEmailIndistinguishable(t *testing.T) {
	env := setupServer(t)
	env.users.Create("Admin One", "admin@kcc.lk", "hunter2", model.RoleAdmin, nil)

	wrongPw := env.do(loginForm("admin@kcc.lk", "wrong", ""))
	unknown := env.do(loginForm("ghost@kcc.lk", "hunter2", ""))

	if wrongPw.Code != unknown.Code {
		t.Errorf("status codes differ: %d vs %d", wrongPw.Code, unknown.Code)
	}
	if !strings.Contains(unknown.Body.String(), "Invalid email or password") {
		t.Error("expected generic invalid-credentials message")
	}
}

func TestProtectedRouteRedirectsToLoginWithReturnPath(t *testing.T) {
	env := setupServer(t)

	rec := env.do(httptest.NewRequest("GET", "/admin/news", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?redirectTo=%2Fadmin%2Fnews" {
		t.Errorf("Location = %q, want %q", loc, "/login?redirectTo=%2Fadmin%2Fnews")
	}
}

func TestClubRepForbiddenFromAdminOnlyRoutes(t *testing.T) {
	env := setupServer(t)
	rep, _ := env.users.Create("Rep", "rep@kcc.lk", "pw", model.RoleClubRep, nil)
	sess, _ := env.session.Create(rep.ID)

	req := httptest.NewRequest("GET", "/admin/staff", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: sess.Token})
	rec := env.do(req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	// Authenticated but unauthorized: home, not login
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want %q", loc, "/")
	}
}

func TestLogoutDeletesSessionAndClearsCookie(t *testing.T) {
	env := setupServer(t)
	admin, _ := env.users.Create("Admin One", "admin@kcc.lk", "hunter2", model.RoleAdmin, nil)
	sess, _ := env.session.Create(admin.ID)

	req := httptest.NewRequest("POST", "/logout", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: sess.Token})
	rec := env.do(req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want %q", loc, "/")
	}
	cleared := sessionCookie(rec)
	if cleared == nil || cleared.MaxAge >= 0 || cleared.Value != "" {
		t.Error("cookie must be cleared with immediate expiry")
	}

	// The server-side record is gone: the stale cookie behaves like no cookie
	req = httptest.NewRequest("GET", "/admin/news", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: sess.Token})
	rec = env.do(req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?redirectTo=%2Fadmin%2Fnews" {
		t.Errorf("Location = %q, want %q", loc, "/login?redirectTo=%2Fadmin%2Fnews")
	}
}

func TestLogoutWithoutSessionStillSucceeds(t *testing.T) {
	env := setupServer(t)

	rec := env.do(httptest.NewRequest("POST", "/logout", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want %q", loc, "/")
	}
}

func TestLoginRedirectToIsHonored(t *testing.T) {
	env := setupServer(t)
	env.users.Create("Author", "author@kcc.lk", "pw", model.RoleAuthor, nil)

	rec := env.do(loginForm("author@kcc.lk", "pw", "/admin/news"))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/news" {
		t.Errorf("Location = %q, want %q", loc, "/admin/news")
	}
}

func TestLoginPageRedirectsAuthenticatedUsers(t *testing.T) {
	env := setupServer(t)
	admin, _ := env.users.Create("Admin One", "admin@kcc.lk", "pw", model.RoleAdmin, nil)
	sess, _ := env.session.Create(admin.ID)

	req := httptest.NewRequest("GET", "/login?redirectTo=%2Fadmin%2Fevents", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: sess.Token})
	rec := env.do(req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/events" {
		t.Errorf("Location = %q, want %q", loc, "/admin/events")
	}
}

func TestNewsCRUDThroughRouter(t *testing.T) {
	env := setupServer(t)
	admin, _ := env.users.Create("Admin One", "admin@kcc.lk", "pw", model.RoleAdmin, nil)
	sess, _ := env.session.Create(admin.ID)

	form := url.Values{}
	form.Set("title", "Prize Giving 2026")
	form.Set("status", "PUBLISHED")
	req := httptest.NewRequest("POST", "/admin/news", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: sess.Token})
	rec := env.do(req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("create status = %d, want %d (%s)", rec.Code, http.StatusSeeOther, rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/admin/news", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: sess.Token})
	rec = env.do(req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "prize-giving-2026") {
		t.Errorf("list missing created post: %s", rec.Body.String())
	}
}

// Authors must not be able to touch each other's posts.
func TestNewsOwnershipEnforced(t *testing.T) {
	env := setupServer(t)
	alice, _ := env.users.Create("Alice", "alice@kcc.lk", "pw", model.RoleAuthor, nil)
	bob, _ := env.users.Create("Bob", "bob@kcc.lk", "pw", model.RoleAuthor, nil)
	aliceSess, _ := env.session.Create(alice.ID)
	bobSess, _ := env.session.Create(bob.ID)

	form := url.Values{}
	form.Set("title", "Alice Post")
	req := httptest.NewRequest("POST", "/admin/news", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: aliceSess.Token})
	if rec := env.do(req); rec.Code != http.StatusSeeOther {
		t.Fatalf("create status = %d", rec.Code)
	}

	// Bob cannot read or delete Alice's post; he gets bounced to the list
	req = httptest.NewRequest("GET", "/admin/news/1", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: bobSess.Token})
	rec := env.do(req)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("foreign get status = %d, want %d", rec.Code, http.StatusSeeOther)
	}

	req = httptest.NewRequest("POST", "/admin/news/1/delete", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: bobSess.Token})
	rec = env.do(req)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("foreign delete status = %d, want %d", rec.Code, http.StatusSeeOther)
	}

	// The post is still there for Alice
	req = httptest.NewRequest("GET", "/admin/news/1", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: aliceSess.Token})
	rec = env.do(req)
	if rec.Code != http.StatusOK {
		t.Errorf("owner get status = %d, want 200", rec.Code)
	}
}

func TestLoginRateLimited(t *testing.T) {
	env := setupServer(t)

	var last *httptest.ResponseRecorder
	for i := 0; i < 11; i++ {
		last = env.do(loginForm("ghost@kcc.lk", "nope", ""))
	}
	if last.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", last.Code, http.StatusTooManyRequests)
	}
}
