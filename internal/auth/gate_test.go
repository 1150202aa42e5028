package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kekirawacc/kccweb/internal/database"
	"github.com/kekirawacc/kccweb/internal/model"
	"github.com/kekirawacc/kccweb/internal/store"
)

func setupGate(t *testing.T) (*Gate, *store.SessionStore, *store.UserStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	ss := store.NewSessionStore(db)
	return NewGate(ss), ss, store.NewUserStore(db)
}

func TestCurrentUserNoCookie(t *testing.T) {
	gate, _, _ := setupGate(t)

	r := httptest.NewRequest("GET", "/admin", nil)
	user, err := gate.CurrentUser(r)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if user != nil {
		t.Error("expected nil without a cookie")
	}
}

func TestCurrentUserUnknownToken(t *testing.T) {
	gate, _, _ := setupGate(t)

	r := httptest.NewRequest("GET", "/admin", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-real-token"})

	user, err := gate.CurrentUser(r)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if user != nil {
		t.Error("expected nil for an unknown token")
	}
}

func TestRequireUserAnonymous(t *testing.T) {
	gate, _, _ := setupGate(t)

	r := httptest.NewRequest("GET", "/admin/news", nil)
	user, denial, err := gate.RequireUser(r)
	if err != nil {
		t.Fatalf("require user: %v", err)
	}
	if user != nil {
		t.Error("expected no user")
	}
	if denial == nil {
		t.Fatal("expected denial")
	}
	if denial.RedirectTo != "/login?redirectTo=%2Fadmin%2Fnews" {
		t.Errorf("redirect = %q, want %q", denial.RedirectTo, "/login?redirectTo=%2Fadmin%2Fnews")
	}
}

func TestRequireUserAuthenticated(t *testing.T) {
	gate, ss, us := setupGate(t)

	u, _ := us.Create("Alice Perera", "alice@example.com", "pw", model.RoleAdmin, nil)
	sess, _ := ss.Create(u.ID)

	r := httptest.NewRequest("GET", "/admin", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: sess.Token})

	user, denial, err := gate.RequireUser(r)
	if err != nil {
		t.Fatalf("require user: %v", err)
	}
	if denial != nil {
		t.Fatalf("unexpected denial: %+v", denial)
	}
	if user.ID != u.ID {
		t.Errorf("user id = %d, want %d", user.ID, u.ID)
	}
}

func TestRequireRoleForbidden(t *testing.T) {
	gate, ss, us := setupGate(t)

	u, _ := us.Create("Rep", "rep@example.com", "pw", model.RoleClubRep, nil)
	sess, _ := ss.Create(u.ID)

	r := httptest.NewRequest("GET", "/admin/staff", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: sess.Token})

	user, denial, err := gate.RequireRole(r, model.RoleAdmin)
	if err != nil {
		t.Fatalf("require role: %v", err)
	}
	if user != nil {
		t.Error("expected no user on denial")
	}
	if denial == nil {
		t.Fatal("expected denial")
	}
	// Forbidden goes home, not to login
	if denial.RedirectTo != "/" {
		t.Errorf("redirect = %q, want %q", denial.RedirectTo, "/")
	}
}

func TestRequireRoleAllowed(t *testing.T) {
	gate, ss, us := setupGate(t)

	u, _ := us.Create("Author", "author@example.com", "pw", model.RoleAuthor, nil)
	sess, _ := ss.Create(u.ID)

	r := httptest.NewRequest("GET", "/admin/news", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: sess.Token})

	user, denial, err := gate.RequireRole(r, model.RoleAdmin, model.RoleAuthor)
	if err != nil {
		t.Fatalf("require role: %v", err)
	}
	if denial != nil {
		t.Fatalf("unexpected denial: %+v", denial)
	}
	if user.Role != model.RoleAuthor {
		t.Errorf("role = %q, want AUTHOR", user.Role)
	}
}

func TestRequireUserStaleCookie(t *testing.T) {
	gate, ss, us := setupGate(t)

	u, _ := us.Create("Alice Perera", "alice@example.com", "pw", model.RoleAdmin, nil)
	sess, _ := ss.Create(u.ID)
	if err := ss.DeleteByToken(sess.Token); err != nil {
		t.Fatalf("delete session: %v", err)
	}

	r := httptest.NewRequest("GET", "/admin", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: sess.Token})

	user, denial, err := gate.RequireUser(r)
	if err != nil {
		t.Fatalf("require user: %v", err)
	}
	if user != nil || denial == nil {
		t.Fatal("stale cookie must be denied")
	}
}
