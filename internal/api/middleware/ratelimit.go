package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/phrazzld/tasker-api/internal/api/shared"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
	"github.com/phrazzld/tasker-api/internal/redact"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// rateLimitKeyPrefix namespaces limiter keys in a shared store.
const rateLimitKeyPrefix = "tasker:ratelimit:auth"

// NewIPRateLimiter returns middleware that limits requests per client IP.
// rateFormatted uses the limiter format: "20-M", "1000-H", "5-S". An empty
// rate disables limiting. When client is non-nil counters live in redis and
// are shared between instances; otherwise they are kept in memory.
// Clients are keyed on r.RemoteAddr; forwarding headers are ignored here and
// only count if a trusted-proxy middleware rewrote RemoteAddr upstream.
func NewIPRateLimiter(rateFormatted string, client *redis.Client) (func(next http.Handler) http.Handler, error) {
	if rateFormatted == "" {
		return noopMiddleware, nil
	}

	rate, err := limiter.NewRateFromFormatted(rateFormatted)
	if err != nil {
		return nil, err
	}

	var store limiter.Store
	if client != nil {
		store, err = sredis.NewStoreWithOptions(client, limiter.StoreOptions{
			Prefix: rateLimitKeyPrefix,
		})
		if err != nil {
			return nil, err
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          rateLimitKeyPrefix,
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		})
	}

	return ipLimitMiddleware(limiter.New(store, rate)), nil
}

// ipLimitMiddleware enforces instance per client IP. A store failure lets the
// request through rather than locking every client out.
func ipLimitMiddleware(instance *limiter.Limiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := instance.Get(r.Context(), instance.GetIPKey(r))
			if err != nil {
				logger.FromContextOrDefault(r.Context(), slog.Default()).
					Error("rate limiter store failed", slog.String("error", redact.Error(err)))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(ctx.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(ctx.Remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(ctx.Reset, 10))

			if ctx.Reached {
				shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests, "Too many requests", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func noopMiddleware(next http.Handler) http.Handler {
	return next
}
