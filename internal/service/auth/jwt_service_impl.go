package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/config"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
)

const minSecretLength = 32

// tokenKind bundles what differs between access and refresh tokens.
type tokenKind struct {
	tokenType  string
	signingKey []byte
	lifetime   time.Duration
	errExpired error
	errInvalid error
}

// hmacJWTService is an implementation of JWTService using HMAC-SHA signing.
type hmacJWTService struct {
	access    tokenKind
	refresh   tokenKind
	timeFunc  func() time.Time // Injectable for testing
	clockSkew time.Duration    // Leeway applied to time-based claims
}

// jwtCustomClaims defines the structure of JWT claims we use
type jwtCustomClaims struct {
	UserID    uuid.UUID `json:"uid"`
	Email     string    `json:"email,omitempty"`
	TokenType string    `json:"type"`
	jwt.RegisteredClaims
}

var _ JWTService = (*hmacJWTService)(nil)

// NewJWTService creates a new JWT service using HMAC-SHA256 signing with
// separate secrets for access and refresh tokens.
func NewJWTService(cfg config.AuthConfig) (JWTService, error) {
	return newHMACJWTService(cfg, time.Now)
}

func newHMACJWTService(cfg config.AuthConfig, timeFunc func() time.Time) (*hmacJWTService, error) {
	if len(cfg.AccessTokenSecret) < minSecretLength {
		return nil, fmt.Errorf("access token secret must be at least %d characters", minSecretLength)
	}
	if len(cfg.RefreshTokenSecret) < minSecretLength {
		return nil, fmt.Errorf("refresh token secret must be at least %d characters", minSecretLength)
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, fmt.Errorf("access and refresh token secrets must differ")
	}
	if cfg.AccessTokenLifetimeMinutes <= 0 || cfg.RefreshTokenLifetimeMinutes <= 0 {
		return nil, fmt.Errorf("token lifetimes must be positive")
	}

	return &hmacJWTService{
		access: tokenKind{
			tokenType:  TokenTypeAccess,
			signingKey: []byte(cfg.AccessTokenSecret),
			lifetime:   time.Duration(cfg.AccessTokenLifetimeMinutes) * time.Minute,
			errExpired: ErrExpiredToken,
			errInvalid: ErrInvalidToken,
		},
		refresh: tokenKind{
			tokenType:  TokenTypeRefresh,
			signingKey: []byte(cfg.RefreshTokenSecret),
			lifetime:   time.Duration(cfg.RefreshTokenLifetimeMinutes) * time.Minute,
			errExpired: ErrExpiredRefreshToken,
			errInvalid: ErrInvalidRefreshToken,
		},
		timeFunc:  timeFunc,
		clockSkew: 5 * time.Second,
	}, nil
}

// GenerateAccessToken implements JWTService.
func (s *hmacJWTService) GenerateAccessToken(
	ctx context.Context,
	userID uuid.UUID,
	email string,
) (string, time.Time, error) {
	return s.sign(ctx, s.access, userID, email, s.timeFunc().Add(s.access.lifetime))
}

// GenerateRefreshToken implements JWTService.
func (s *hmacJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, time.Time, error) {
	return s.sign(ctx, s.refresh, userID, "", s.timeFunc().Add(s.refresh.lifetime))
}

// ValidateAccessToken implements JWTService.
func (s *hmacJWTService) ValidateAccessToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.parse(ctx, s.access, tokenString)
}

// ValidateRefreshToken implements JWTService.
func (s *hmacJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.parse(ctx, s.refresh, tokenString)
}

func (s *hmacJWTService) sign(
	ctx context.Context,
	kind tokenKind,
	userID uuid.UUID,
	email string,
	expiresAt time.Time,
) (string, time.Time, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	// Every token gets a unique jti, so two tokens issued in the same second
	// for the same user still differ.
	claims := jwtCustomClaims{
		UserID:    userID,
		Email:     email,
		TokenType: kind.tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(kind.signingKey)
	if err != nil {
		log.Error("failed to sign JWT",
			"error", err,
			"user_id", userID,
			"token_type", kind.tokenType,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", time.Time{}, fmt.Errorf("failed to sign %s token with HMAC-SHA256: %w", kind.tokenType, err)
	}

	// NumericDate truncates to seconds; report the expiry the token carries.
	return signedToken, claims.ExpiresAt.Time, nil
}

func (s *hmacJWTService) parse(ctx context.Context, kind tokenKind, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return nil, fmt.Errorf("%w: %w", kind.errInvalid, ErrMissingToken)
	}

	now := s.timeFunc()
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return kind.signingKey, nil
		},
		parserOpts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired", "token_type", kind.tokenType)
			return nil, kind.errExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			log.Debug("token validation failed: malformed token", "token_type", kind.tokenType)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Debug("token validation failed: invalid signature", "token_type", kind.tokenType)
		default:
			log.Debug("token validation failed",
				"error", err,
				"token_type", kind.tokenType,
				"error_type", fmt.Sprintf("%T", err))
		}
		return nil, kind.errInvalid
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed: invalid claims", "token_type", kind.tokenType)
		return nil, kind.errInvalid
	}

	if claims.TokenType != kind.tokenType {
		log.Debug("token validation failed: wrong token type",
			"expected", kind.tokenType,
			"actual", claims.TokenType)
		return nil, ErrWrongTokenType
	}

	if claims.UserID == uuid.Nil || claims.Subject != claims.UserID.String() {
		log.Debug("token validation failed: subject mismatch", "token_type", kind.tokenType)
		return nil, kind.errInvalid
	}

	result := &Claims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		TokenType: claims.TokenType,
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        claims.ID,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}

	return result, nil
}
