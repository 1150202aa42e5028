package model

import "time"

// Role is the authorization level attached to a user account. Role checks
// live here and in auth.Gate only; handlers never compare role strings.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleAuthor  Role = "AUTHOR"
	RoleClubRep Role = "CLUB_REP"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleAuthor || r == RoleClubRep
}

// In reports whether r is a member of the given set.
func (r Role) In(roles ...Role) bool {
	for _, allowed := range roles {
		if r == allowed {
			return true
		}
	}
	return false
}

type User struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	ClubID       *int64    `json:"club_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthUser is the profile a resolved session carries: everything a handler
// needs for authorization decisions, nothing secret.
type AuthUser struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	ClubID   *int64 `json:"club_id"`
}
