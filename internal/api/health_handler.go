package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/tasker-api/internal/api/shared"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
	"github.com/phrazzld/tasker-api/internal/redact"
	"github.com/redis/go-redis/v9"
)

// healthCheckTimeout bounds each dependency check.
const healthCheckTimeout = 3 * time.Second

// DBPinger is satisfied by *sql.DB.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness endpoints.
type HealthHandler struct {
	db    DBPinger
	redis *redis.Client
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// NewHealthHandler creates a HealthHandler. The redis client is optional.
func NewHealthHandler(db DBPinger, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// Root handles GET /.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithMessage(w, r, http.StatusOK, "Server is running")
}

// Health handles GET /health. It answers 503 when any dependency is down.
// Failure reasons are logged, not returned.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	log := logger.FromContextOrDefault(r.Context(), slog.Default())
	checks := make(map[string]string)
	healthy := true

	check := func(name string, err error) {
		if err != nil {
			log.Warn("health check failed", slog.String("check", name), slog.String("error", redact.Error(err)))
			checks[name] = "down"
			healthy = false
			return
		}
		checks[name] = "ok"
	}

	check("database", h.db.PingContext(ctx))
	if h.redis != nil {
		check("redis", h.redis.Ping(ctx).Err())
	}

	if !healthy {
		shared.RespondWithJSON(w, r, http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", Checks: checks})
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok", Checks: checks})
}
