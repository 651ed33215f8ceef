package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tasker-api/internal/api"
	"github.com/phrazzld/tasker-api/internal/api/middleware"
	"github.com/phrazzld/tasker-api/internal/api/shared"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() (http.Handler, error) {
	errOpts := []shared.ResponseOption{shared.WithErrorDetail(!app.config.Server.IsProduction())}

	authLimiter, err := middleware.NewIPRateLimiter(app.config.RateLimit.Auth, app.redis)
	if err != nil {
		return nil, err
	}

	authHandler := api.NewAuthHandler(app.authService, app.cookieSettings(), app.metrics, errOpts...)
	taskHandler := api.NewTaskHandler(app.taskService, errOpts...)
	healthHandler := api.NewHealthHandler(app.db, app.redis)
	authMiddleware := middleware.NewAuthMiddleware(app.jwtService)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	// RealIP rewrites RemoteAddr, which the auth rate limiter keys on.
	if app.config.Server.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.TraceMiddleware(app.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewSecure(middleware.SecureOptions(
		!app.config.Server.IsProduction(),
		app.config.Auth.CookieSecure,
	)))
	r.Use(middleware.CORS(app.config.Server.CORSAllowedOrigins))
	r.Use(app.metrics.Handler)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Health)
	r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authLimiter)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})
		r.Post("/refresh", authHandler.Refresh)
		r.Post("/logout", authHandler.Logout)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Post("/", taskHandler.CreateTask)
		r.Get("/", taskHandler.ListTasks)
		r.Get("/{id}", taskHandler.GetTask)
		r.Put("/{id}", taskHandler.UpdateTask)
		r.Delete("/{id}", taskHandler.DeleteTask)
	})

	return r, nil
}
