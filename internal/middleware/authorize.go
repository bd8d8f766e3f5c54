package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradedesk/internal/auth"
	apperrors "tradedesk/internal/errors"
	"tradedesk/internal/logger"
	"tradedesk/internal/metrics"
)

// Authorize returns a Gin middleware enforcing policy. It must run after
// Session. Anonymous callers on protected routes are redirected to the login
// page; authenticated callers lacking the required role get 403 with the
// access-denied message.
func Authorize(policy *auth.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := CurrentPrincipal(c)
		decision := policy.Decide(c.Request.Method, c.Request.URL.Path, principal)
		metrics.AccessDecision(decision.String())

		switch decision {
		case auth.Allow:
			c.Next()
		case auth.DenyUnauthenticated:
			c.Redirect(http.StatusFound, auth.LoginRoute)
			c.Abort()
		default:
			logger.Get().Warnw("access denied",
				"user", auth.ActorName(principal),
				"role", principal.Role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)
			c.AbortWithStatusJSON(http.StatusForbidden, AccessDeniedBody(c))
		}
	}
}

// AccessDeniedBody is the 403 payload shared by the policy gate and the
// access-denied page.
func AccessDeniedBody(c *gin.Context) gin.H {
	remoteUser := ""
	if p := CurrentPrincipal(c); p != nil {
		remoteUser = p.Username
	}
	return gin.H{
		"remoteUser": remoteUser,
		"error": gin.H{
			"code":    apperrors.ErrForbidden.Code,
			"message": auth.AccessDeniedMessage,
		},
	}
}
