// Package server assembles the HTTP router shared by the API binary and the
// end-to-end tests.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tradedesk/internal/auth"
	_ "tradedesk/internal/docs" // Import swagger docs
	"tradedesk/internal/handlers"
	"tradedesk/internal/metrics"
	"tradedesk/internal/middleware"
	"tradedesk/internal/models"
	"tradedesk/internal/session"
	"tradedesk/internal/validator"
)

// Options tunes router behavior per deployment.
type Options struct {
	SecureCookies bool
	MetricsAPIKey string
}

// NewRouter builds the console's router. Every request passes through
// logging, metrics, error rendering, session resolution and the access
// policy, in that order.
func NewRouter(svcs *Services, sessions *session.Manager, policy *auth.Policy, hasher auth.PasswordHasher, opts Options) *gin.Engine {
	validator.Register()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(metrics.Middleware())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Session(sessions, opts.SecureCookies))
	router.Use(middleware.Authorize(policy))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", middleware.APIKey(opts.MetricsAPIKey), gin.WrapH(metrics.Handler()))

	authHandler := handlers.NewAuthHandler(svcs.Authentication, hasher, sessions, opts.SecureCookies)
	router.GET(auth.LoginRoute, authHandler.LoginPage)
	router.POST(auth.LoginRoute, authHandler.Login)
	router.GET(auth.LogoutRoute, authHandler.Logout)
	router.POST(auth.LogoutRoute, authHandler.Logout)
	router.GET(auth.AccessDeniedRoute, authHandler.AccessDenied)
	router.GET("/error", authHandler.AccessDenied)
	router.NoRoute(authHandler.PageNotFound)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, auth.LandingRoute)
	})

	registerRecordRoutes(router, handlers.NewRecordHandler[models.BidList](svcs.BidLists))
	registerRecordRoutes(router, handlers.NewRecordHandler[models.CurvePoint](svcs.CurvePoints))
	registerRecordRoutes(router, handlers.NewRecordHandler[models.Rating](svcs.Ratings))
	registerRecordRoutes(router, handlers.NewRecordHandler[models.RuleName](svcs.RuleNames))
	registerRecordRoutes(router, handlers.NewRecordHandler[models.Trade](svcs.Trades))

	userHandler := handlers.NewUserHandler(svcs.Users)
	users := router.Group("/user")
	users.GET("", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/user/list")
	})
	users.GET("/list", userHandler.List)
	users.GET("/add", userHandler.AddForm)
	users.POST("/validate", userHandler.Validate)
	users.GET("/update/:id", userHandler.UpdateForm)
	users.POST("/update/:id", userHandler.Update)
	users.GET("/delete/:id", userHandler.Delete)

	return router
}

func registerRecordRoutes[T any, P models.Record[T]](router *gin.Engine, h *handlers.RecordHandler[T, P]) {
	g := router.Group("/" + h.Kind())
	g.GET("/list", h.List)
	g.GET("/add", h.AddForm)
	g.POST("/validate", h.Validate)
	g.GET("/update/:id", h.UpdateForm)
	g.POST("/update/:id", h.Update)
	g.GET("/delete/:id", h.Delete)
}
