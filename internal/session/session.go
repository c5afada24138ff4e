// Package session tracks logged-in clients. A client holds only a signed
// reference to a server-side record; the record decides who the client is and
// until when.
package session

import (
	"context"
	"errors"
	"time"
)

const DefaultLifetime = 24 * time.Hour

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ValidAt reports whether the session is still live at t. Expiry is absolute:
// the session stops being valid at ExpiresAt exactly.
func (s Session) ValidAt(t time.Time) bool {
	return t.Before(s.ExpiresAt)
}

// Scope is the session context of one client for the duration of a request.
// It is passed explicitly to every call that needs the caller's identity.
type Scope struct {
	// ID is the server-side session id the client presented, if any.
	ID string
	// Token is the cookie value the client should hold after the request.
	Token     string
	ExpiresAt time.Time

	changed bool
}

// Changed reports whether Login or Logout replaced the client's session.
func (s *Scope) Changed() bool {
	return s != nil && s.changed
}

type Store interface {
	Get(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, s Session) error
	Delete(ctx context.Context, id string) error
}
