package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/tasker-api/internal/api/shared"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
	"github.com/phrazzld/tasker-api/internal/redact"
	"github.com/phrazzld/tasker-api/internal/service/auth"
	"github.com/phrazzld/tasker-api/internal/store"
)

// AuthService is the subset of auth.Service used by AuthHandler.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*auth.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.AccessToken, error)
	Logout(ctx context.Context, refreshToken string) error
}

// AuthAttemptRecorder receives the outcome of authentication attempts.
type AuthAttemptRecorder interface {
	RecordAuthAttempt(event string, success bool)
}

type noopRecorder struct{}

func (noopRecorder) RecordAuthAttempt(string, bool) {}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authService AuthService
	cookies     CookieSettings
	recorder    AuthAttemptRecorder
	errOpts     []shared.ResponseOption
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
// A nil recorder disables attempt metrics.
func NewAuthHandler(
	authService AuthService,
	cookies CookieSettings,
	recorder AuthAttemptRecorder,
	errOpts ...shared.ResponseOption,
) *AuthHandler {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &AuthHandler{
		authService: authService,
		cookies:     cookies,
		recorder:    recorder,
		errOpts:     errOpts,
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err, h.errOpts...)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "All fields required", err, h.errOpts...)
		return
	}

	user, err := h.authService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.recorder.RecordAuthAttempt("register", false)
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithErrorAndLog(w, r, http.StatusConflict, "User already exists", err, h.errOpts...)
			return
		}
		HandleAPIError(w, r, err, "", h.errOpts...)
		return
	}

	h.recorder.RecordAuthAttempt("register", true)
	shared.RespondWithJSON(w, r, http.StatusCreated, RegisterResponse{
		Message: "User registered successfully",
		User:    UserResponse{ID: user.ID, Email: user.Email},
	})
}

// Login handles POST /auth/login. On success both session cookies are set.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err, h.errOpts...)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
			"Email and password are required", err, h.errOpts...)
		return
	}

	session, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.recorder.RecordAuthAttempt("login", false)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid credentials", err,
				append([]shared.ResponseOption{shared.WithElevatedLogLevel()}, h.errOpts...)...)
			return
		}
		HandleAPIError(w, r, err, "", h.errOpts...)
		return
	}

	h.recorder.RecordAuthAttempt("login", true)
	h.cookies.setAccessToken(w, session.AccessToken)
	h.cookies.setRefreshToken(w, session.RefreshToken)
	shared.RespondWithMessage(w, r, http.StatusOK, "Login successful")
}

// Refresh handles POST /auth/refresh using the refreshToken cookie. Only the
// access token cookie is replaced.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken := cookieValue(r, RefreshTokenCookie)
	if refreshToken == "" {
		h.recorder.RecordAuthAttempt("refresh", false)
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	token, err := h.authService.Refresh(r.Context(), refreshToken)
	if err != nil {
		h.recorder.RecordAuthAttempt("refresh", false)
		if errors.Is(err, auth.ErrInvalidRefreshToken) {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid refresh token", err, h.errOpts...)
			return
		}
		HandleAPIError(w, r, err, "", h.errOpts...)
		return
	}

	h.recorder.RecordAuthAttempt("refresh", true)
	h.cookies.setAccessToken(w, token.Token)
	shared.RespondWithMessage(w, r, http.StatusOK, "Access token refreshed")
}

// Logout handles POST /auth/logout. It always succeeds and clears both
// cookies; failing to revoke the stored refresh token is only logged.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context(), cookieValue(r, RefreshTokenCookie)); err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Error("failed to revoke refresh token on logout", slog.String("error", redact.Error(err)))
	}

	h.cookies.clear(w)
	shared.RespondWithMessage(w, r, http.StatusOK, "Logged out successfully")
}
