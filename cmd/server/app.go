package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/tasker-api/internal/api"
	"github.com/phrazzld/tasker-api/internal/api/middleware"
	"github.com/phrazzld/tasker-api/internal/config"
	"github.com/phrazzld/tasker-api/internal/platform/postgres"
	"github.com/phrazzld/tasker-api/internal/service"
	"github.com/phrazzld/tasker-api/internal/service/auth"
	"github.com/phrazzld/tasker-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

// appStores groups the persistence dependencies so tests can substitute
// in-memory implementations.
type appStores struct {
	users  store.UserStore
	tokens store.RefreshTokenStore
	tasks  store.TaskStore
}

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	db    api.DBPinger
	redis *redis.Client

	jwtService  auth.JWTService
	authService *auth.Service
	taskService service.TaskService

	registry *prometheus.Registry
	metrics  *middleware.Metrics
}

// newApplication wires the PostgreSQL stores and builds the application.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	redisClient *redis.Client,
) (*application, error) {
	stores := appStores{
		users:  postgres.NewPostgresUserStore(db, logger),
		tokens: postgres.NewPostgresRefreshTokenStore(db, logger),
		tasks:  postgres.NewPostgresTaskStore(db, logger),
	}
	return assembleApplication(cfg, logger, stores, db, redisClient)
}

// assembleApplication creates services, metrics and handlers on top of the
// given stores.
func assembleApplication(
	cfg *config.Config,
	logger *slog.Logger,
	stores appStores,
	db api.DBPinger,
	redisClient *redis.Client,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"access_token_lifetime_minutes", cfg.Auth.AccessTokenLifetimeMinutes,
		"refresh_token_lifetime_minutes", cfg.Auth.RefreshTokenLifetimeMinutes)

	hasher := auth.NewBcryptHasher(cfg.Auth.BCryptCost)
	app.authService, err = auth.NewService(
		stores.users,
		stores.tokens,
		app.jwtService,
		hasher,
		auth.NewBcryptVerifier(),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	app.taskService, err = service.NewTaskService(stores.tasks, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics, err = middleware.NewMetrics(app.registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled and the
// server has drained.
func (app *application) Run(ctx context.Context) error {
	router, err := app.setupRouter()
	if err != nil {
		return fmt.Errorf("failed to set up router: %w", err)
	}

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (app *application) cookieSettings() api.CookieSettings {
	return api.CookieSettings{
		Secure:          app.config.Auth.CookieSecure,
		AccessTokenTTL:  time.Duration(app.config.Auth.AccessTokenLifetimeMinutes) * time.Minute,
		RefreshTokenTTL: time.Duration(app.config.Auth.RefreshTokenLifetimeMinutes) * time.Minute,
	}
}
