package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tradedesk/internal/auth"
	apperrors "tradedesk/internal/errors"
)

// CookieName is the cookie carrying the session token.
const CookieName = "SESSION"

const issuer = "tradedesk"

// tokenClaims is the payload of the session cookie.
type tokenClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Manager issues, resolves and revokes sessions.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a Manager signing cookies with secret.
func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the lifetime of issued sessions.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue starts a session for principal and returns it with its cookie token.
func (m *Manager) Issue(ctx context.Context, principal *auth.Principal) (*Session, string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := m.now()
	sess := &Session{
		ID:        id.String(),
		Username:  principal.Username,
		Role:      principal.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	claims := &tokenClaims{
		SessionID: sess.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   sess.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := m.store.Put(ctx, sess); err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return sess, token, nil
}

// Resolve returns the live session named by token. A token that is
// malformed, forged, expired, or whose session was revoked yields
// ErrUnauthenticated.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	claims, err := m.parse(token, jwt.WithIssuer(issuer), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnauthenticated, err)
	}

	sess, found, err := m.store.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !found || sess.Expired(m.now()) {
		return nil, apperrors.ErrUnauthenticated
	}
	return sess, nil
}

// Revoke deletes the session named by token. Unparsable tokens name no
// session and are ignored; expired ones are still revoked.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	claims, err := m.parse(token, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil
	}
	if err := m.store.Delete(ctx, claims.SessionID); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (m *Manager) parse(token string, opts ...jwt.ParserOption) (*tokenClaims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.SessionID == "" {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}
