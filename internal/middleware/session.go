package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tradedesk/internal/auth"
	apperrors "tradedesk/internal/errors"
	"tradedesk/internal/session"
)

const principalKey = "principal"

// SessionResolver is the part of the session manager the middleware needs.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*session.Session, error)
}

// Session returns a Gin middleware that resolves the session cookie into the
// request principal. Requests without a live session continue anonymously;
// a stale cookie is cleared.
func Session(sessions SessionResolver, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		sess, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, apperrors.ErrUnauthenticated) {
				ClearSessionCookie(c, secureCookie)
				c.Next()
				return
			}
			_ = c.Error(err)
			c.Abort()
			return
		}

		SetPrincipal(c, sess.Principal())
		c.Next()
	}
}

// CurrentPrincipal returns the authenticated principal, or nil for anonymous
// requests.
func CurrentPrincipal(c *gin.Context) *auth.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*auth.Principal)
	return p
}

// SetPrincipal attaches principal to the request.
func SetPrincipal(c *gin.Context, principal *auth.Principal) {
	c.Set(principalKey, principal)
}

// SetSessionCookie writes the session cookie for token.
func SetSessionCookie(c *gin.Context, token string, maxAgeSeconds int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, token, maxAgeSeconds, "/", "", secure, true)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", secure, true)
}
