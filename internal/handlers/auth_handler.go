package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tradedesk/internal/auth"
	apperrors "tradedesk/internal/errors"
	"tradedesk/internal/logger"
	"tradedesk/internal/metrics"
	"tradedesk/internal/middleware"
	"tradedesk/internal/services"
	"tradedesk/internal/session"
)

// SessionIssuer is the part of the session manager the login flow needs.
type SessionIssuer interface {
	Issue(ctx context.Context, principal *auth.Principal) (*session.Session, string, error)
	Revoke(ctx context.Context, token string) error
	TTL() time.Duration
}

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService  services.AuthenticationServicer
	hasher       auth.PasswordHasher
	sessions     SessionIssuer
	secureCookie bool
	// dummyDigest is verified against when the username is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyDigest string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthenticationServicer, hasher auth.PasswordHasher, sessions SessionIssuer, secureCookie bool) *AuthHandler {
	dummy, _ := hasher.Hash("tradedesk-dummy-password")
	return &AuthHandler{
		authService:  authService,
		hasher:       hasher,
		sessions:     sessions,
		secureCookie: secureCookie,
		dummyDigest:  dummy,
	}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// LoginPage describes the login screen
// @Summary     Login page
// @Description Returns the login screen state; ?error and ?logout select the banner
// @Tags        auth
// @Produce     json
// @Success     200 {object} map[string]interface{} "Login page"
// @Router      /login [get]
func (h *AuthHandler) LoginPage(c *gin.Context) {
	resp := gin.H{"action": auth.LoginRoute}
	if _, ok := c.GetQuery("error"); ok {
		resp["error"] = "Invalid username and password."
	}
	if _, ok := c.GetQuery("logout"); ok {
		resp["message"] = "You have been logged out."
	}
	c.JSON(http.StatusOK, resp)
}

// Login handles user login
// @Summary     Log in
// @Description Verifies the credentials, starts a session and redirects to the bid list
// @Tags        auth
// @Accept      x-www-form-urlencoded
// @Param       username formData string true "Username"
// @Param       password formData string true "Password"
// @Success     302 "Redirect to /bidList/list, or /login?error on failure"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.rejectLogin(c, "", "missing credentials")
		return
	}

	principal, err := h.authService.Authenticate(c.Request.Context(), req.Username)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUnknownPrincipal) {
			respondWithError(c, err)
			return
		}
		h.hasher.Verify(req.Password, h.dummyDigest)
		h.rejectLogin(c, req.Username, "unknown user")
		return
	}

	if !h.hasher.Verify(req.Password, principal.PasswordHash) {
		h.rejectLogin(c, req.Username, "bad password")
		return
	}

	sess, token, err := h.sessions.Issue(c.Request.Context(), principal)
	if err != nil {
		respondWithError(c, err)
		return
	}

	metrics.Login(true)
	logger.Get().Infow("login succeeded", "username", sess.Username, "role", sess.Role)

	middleware.SetSessionCookie(c, token, int(h.sessions.TTL().Seconds()), h.secureCookie)
	c.Redirect(http.StatusFound, auth.LandingRoute)
}

// rejectLogin reports INVALID_CREDENTIALS without revealing which check failed.
func (h *AuthHandler) rejectLogin(c *gin.Context, username, reason string) {
	metrics.Login(false)
	logger.Get().Warnw("login failed",
		"username", username,
		"reason", reason,
		"code", apperrors.ErrInvalidCredentials.Code,
		"client_ip", c.ClientIP(),
	)
	c.Redirect(http.StatusFound, auth.LoginRoute+"?error")
}

// Logout ends the caller's session
// @Summary     Log out
// @Tags        auth
// @Success     302 "Redirect to /login?logout"
// @Router      /app-logout [get]
// @Router      /app-logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(session.CookieName); err == nil && token != "" {
		if err := h.sessions.Revoke(c.Request.Context(), token); err != nil {
			respondWithError(c, err)
			return
		}
	}

	logger.Get().Infow("logout", "username", remoteUser(c))
	middleware.ClearSessionCookie(c, h.secureCookie)
	c.Redirect(http.StatusFound, auth.LoginRoute+"?logout")
}

// AccessDenied renders the fixed access-denied message
// @Summary     Access denied page
// @Tags        auth
// @Produce     json
// @Success     403 {object} ErrorResponse "Access denied"
// @Router      /app/error [get]
func (h *AuthHandler) AccessDenied(c *gin.Context) {
	c.JSON(http.StatusForbidden, middleware.AccessDeniedBody(c))
}

// PageNotFoundMessage is rendered for requests that match no route.
const PageNotFoundMessage = "Page not found"

// PageNotFound answers requests that match no route with NOT_FOUND.
func (h *AuthHandler) PageNotFound(c *gin.Context) {
	respondWithError(c, apperrors.WithMessage(apperrors.ErrNotFound, PageNotFoundMessage))
}
