// Package session keeps per-client login state. Clients hold only a signed
// cookie naming their session; the session itself lives in a Store and is
// what makes the cookie valid.
package session

import (
	"context"
	"time"

	"tradedesk/internal/auth"
	"tradedesk/internal/models"
)

// Session is the server-side record of one login.
type Session struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Expired reports whether the session is no longer usable at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Principal returns the identity the session was issued for.
func (s *Session) Principal() *auth.Principal {
	return &auth.Principal{Username: s.Username, Role: s.Role}
}

// Store persists sessions by id.
type Store interface {
	Get(ctx context.Context, id string) (sess *Session, found bool, err error)
	Put(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, id string) error
}
