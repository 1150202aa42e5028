package model

import "time"

// Session is a server-side login record. A session is live iff the current
// time is before ExpiresAt; expired rows are treated as absent on read even
// when they still exist physically.
type Session struct {
	ID        int64     `json:"id"`
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
