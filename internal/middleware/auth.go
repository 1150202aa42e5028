package middleware

import (
	"net/http"

	"github.com/kekirawacc/kccweb/internal/auth"
	"github.com/kekirawacc/kccweb/internal/model"
)

// RequireUser resolves the session cookie and stashes the user on the
// request context. Anonymous requests are redirected to the login page with
// the original path carried in redirectTo.
func RequireUser(gate *auth.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, denial, err := gate.RequireUser(r)
			if err != nil {
				http.Error(w, "Something went wrong", http.StatusInternalServerError)
				return
			}
			if denial != nil {
				http.Redirect(w, r, denial.RedirectTo, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}

// RequireRole is RequireUser restricted to the given roles. Authenticated
// users outside the set are bounced to the home page, never to login.
func RequireRole(gate *auth.Gate, roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, denial, err := gate.RequireRole(r, roles...)
			if err != nil {
				http.Error(w, "Something went wrong", http.StatusInternalServerError)
				return
			}
			if denial != nil {
				http.Redirect(w, r, denial.RedirectTo, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}
