package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// JWTService defines operations for managing JWT authentication tokens.
// Access and refresh tokens are signed with different secrets and can only be
// validated by their own method.
type JWTService interface {
	// GenerateAccessToken creates a signed access token for the user and
	// returns it together with its expiry.
	GenerateAccessToken(ctx context.Context, userID uuid.UUID, email string) (string, time.Time, error)

	// ValidateAccessToken checks signature, algorithm, expiry and type.
	// Returns ErrExpiredToken, ErrInvalidToken or ErrWrongTokenType on failure.
	ValidateAccessToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken creates a signed refresh token for the user and
	// returns it together with its expiry.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, time.Time, error)

	// ValidateRefreshToken checks signature, algorithm, expiry and type.
	// Returns ErrExpiredRefreshToken, ErrInvalidRefreshToken or
	// ErrWrongTokenType on failure. It does not consult the token store.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the verified content of a token.
type Claims struct {
	UserID    uuid.UUID
	Email     string // empty for refresh tokens
	TokenType string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
