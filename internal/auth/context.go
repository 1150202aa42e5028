package auth

import (
	"context"

	"github.com/kekirawacc/kccweb/internal/model"
)

type contextKey struct{}

// WithUser stores the resolved user on the request context.
func WithUser(ctx context.Context, u *model.AuthUser) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// UserFrom returns the resolved user, or nil for anonymous requests.
func UserFrom(ctx context.Context) *model.AuthUser {
	u, _ := ctx.Value(contextKey{}).(*model.AuthUser)
	return u
}

// IsAdmin reports whether the context carries an ADMIN user.
func IsAdmin(ctx context.Context) bool {
	u := UserFrom(ctx)
	return u != nil && u.Role == model.RoleAdmin
}
