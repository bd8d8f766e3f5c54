package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradedesk/internal/auth"
	"tradedesk/internal/config"
	"tradedesk/internal/database"
	"tradedesk/internal/logger"
	"tradedesk/internal/server"
	"tradedesk/internal/session"

	"github.com/redis/go-redis/v9"
)

// @title           Tradedesk API
// @version         1.0
// @description     Trading reference-data console: bid lists, curve points, ratings, rules, trades and users behind session login and role-based access.

// @host      localhost:8080
// @BasePath  /

func main() {
	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.InitWithFile(appConfig.Env, logger.FileOptions{
		Path:       appConfig.LogFile,
		MaxSizeMB:  appConfig.LogMaxSizeMB,
		MaxAgeDays: appConfig.LogMaxAgeDays,
		MaxBackups: appConfig.LogMaxBackups,
	})
	defer logger.Sync()
	log := logger.Get()

	hasher := auth.NewBcryptHasher(appConfig.BcryptCost)

	// Initialize record services
	var svcs *server.Services
	switch appConfig.StoreBackend {
	case config.StoreMemory:
		log.Warn("Using in-memory record stores; data is lost on restart")
		svcs = server.NewMemoryServices(hasher)
	case config.StoreSQL:
		dbManager, err := database.NewManager(&appConfig.Database)
		if err != nil {
			return fmt.Errorf("failed to create database manager: %w", err)
		}
		defer func() {
			if err := dbManager.Close(); err != nil {
				log.Warnf("database close error: %v", err)
			}
		}()
		if err := dbManager.RunMigrations(); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
		svcs = server.NewSQLServices(dbManager.DB(), hasher)
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", appConfig.StoreBackend)
	}

	// Initialize session store
	sessionStore, closeSessions, err := newSessionStore(appConfig)
	if err != nil {
		return err
	}
	defer closeSessions()
	sessions := session.NewManager(sessionStore, appConfig.SessionSecret, appConfig.SessionTTL)

	// Seed the bootstrap administrator
	if appConfig.BootstrapAdminUsername != "" {
		created, err := svcs.Users.EnsureAdmin(context.Background(),
			appConfig.BootstrapAdminUsername, appConfig.BootstrapAdminPassword)
		if err != nil {
			return fmt.Errorf("failed to seed bootstrap admin: %w", err)
		}
		if !created {
			log.Infow("bootstrap admin already present", "username", appConfig.BootstrapAdminUsername)
		}
	}

	router := server.NewRouter(svcs, sessions, auth.DefaultPolicy(), hasher, server.Options{
		SecureCookies: appConfig.SecureCookies,
		MetricsAPIKey: appConfig.MetricsAPIKey,
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Tradedesk server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newSessionStore builds the configured session store and returns a function
// releasing its resources.
func newSessionStore(cfg *config.Config) (session.Store, func(), error) {
	log := logger.Get()

	switch cfg.SessionBackend {
	case config.SessionRedis:
		store := session.NewRedisStore(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		log.Infow("Using Redis session store", "addr", cfg.RedisAddr)
		return store, func() { _ = store.Close() }, nil

	case config.SessionMemory:
		store := session.NewMemoryStore()
		sweeper, err := session.NewSweeper(store, cfg.SessionSweepSpec)
		if err != nil {
			return nil, nil, err
		}
		sweeper.Start()
		return store, sweeper.Stop, nil
	}
	return nil, nil, fmt.Errorf("unknown SESSION_BACKEND %q", cfg.SessionBackend)
}
