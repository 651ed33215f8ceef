package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
	"github.com/phrazzld/tasker-api/internal/store"
)

// Session is the result of a successful login.
type Session struct {
	User                  *domain.User
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

// AccessToken is a freshly issued access token.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// Service implements registration, login, token refresh and logout.
type Service struct {
	users     store.UserStore
	tokens    store.RefreshTokenStore
	jwt       JWTService
	hasher    PasswordHasher
	verifier  PasswordVerifier
	logger    *slog.Logger
	dummyHash string
	now       func() time.Time
}

// NewService wires the auth service. It hashes a throwaway password once so
// that logins for unknown emails spend the same bcrypt work as real ones.
func NewService(
	users store.UserStore,
	tokens store.RefreshTokenStore,
	jwtService JWTService,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	logger *slog.Logger,
) (*Service, error) {
	if users == nil || tokens == nil || jwtService == nil || hasher == nil || verifier == nil {
		return nil, errors.New("auth service dependencies cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	dummyHash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy password hash: %w", err)
	}

	return &Service{
		users:     users,
		tokens:    tokens,
		jwt:       jwtService,
		hasher:    hasher,
		verifier:  verifier,
		logger:    logger.With(slog.String("component", "auth_service")),
		dummyHash: dummyHash,
		now:       time.Now,
	}, nil
}

// Register creates a new account. The email is normalized before it is
// stored; a taken email yields store.ErrEmailExists and leaves the existing
// account untouched.
func (s *Service) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(name, email, password)
	if err != nil {
		log.Debug("registration rejected by validation", slog.String("error", err.Error()))
		return nil, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("register: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("registration rejected: email already exists")
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

// Login verifies credentials and issues an access/refresh token pair. The
// refresh token is persisted so that it can later be revoked.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if store.IsNotFoundError(err) {
			_ = s.verifier.Compare(s.dummyHash, password)
			log.Debug("login failed: unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login failed: password mismatch", slog.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	accessToken, accessExpires, err := s.jwt.GenerateAccessToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	refreshToken, refreshExpires, err := s.jwt.GenerateRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	record, err := domain.NewRefreshToken(refreshToken, user.ID, refreshExpires)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := s.tokens.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))
	return &Session{
		User:                  user,
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExpires,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExpires,
	}, nil
}

// Refresh issues a new access token for a valid, unrevoked refresh token.
// Every rejection is reported as ErrInvalidRefreshToken; the refresh token
// itself is not rotated.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AccessToken, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if refreshToken == "" {
		return nil, ErrInvalidRefreshToken
	}

	claims, err := s.jwt.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		log.Debug("refresh rejected: token verification failed", slog.String("reason", err.Error()))
		return nil, ErrInvalidRefreshToken
	}

	record, err := s.tokens.Get(ctx, refreshToken)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("refresh rejected: token revoked", slog.String("user_id", claims.UserID.String()))
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}
	if record.UserID != claims.UserID || record.IsExpired(s.now()) {
		log.Debug("refresh rejected: stored token does not match", slog.String("user_id", claims.UserID.String()))
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("refresh rejected: user no longer exists", slog.String("user_id", claims.UserID.String()))
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}

	log.Debug("access token refreshed", slog.String("user_id", user.ID.String()))
	return &AccessToken{Token: token, ExpiresAt: expiresAt}, nil
}

// Logout revokes the given refresh token. An empty or unknown token is not an
// error; only store failures are returned.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if refreshToken == "" {
		return nil
	}

	n, err := s.tokens.Delete(ctx, refreshToken)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	log.Debug("refresh token revoked", slog.Int64("rows", n))
	return nil
}

// PurgeExpiredRefreshTokens deletes refresh token rows that expired at or
// before now and reports how many were removed.
func (s *Service) PurgeExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.tokens.DeleteExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("purge expired refresh tokens: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("purged expired refresh tokens", slog.Int64("count", n))
	return n, nil
}
