package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasker-api/internal/api/shared"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
	"github.com/phrazzld/tasker-api/internal/service/auth"
)

// AccessTokenCookie is the cookie carrying the access token.
const AccessTokenCookie = "accessToken"

// AuthMiddleware provides cookie-based JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates the access token cookie and adds the user's ID and
// email to the request context. It never touches a store. An expired token
// is reported distinctly so the client knows to refresh; every other failure
// looks the same as a missing token.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(AccessTokenCookie)
		if err != nil || cookie.Value == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, err := m.jwtService.ValidateAccessToken(r.Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Access token expired")
				return
			}
			logger.FromContextOrDefault(r.Context(), slog.Default()).
				Debug("access token rejected", slog.String("reason", err.Error()))
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := shared.WithUser(r.Context(), claims.UserID, claims.Email)
		log := logger.FromContextOrDefault(ctx, slog.Default()).
			With(slog.String("user_id", claims.UserID.String()))
		ctx = logger.WithLogger(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
