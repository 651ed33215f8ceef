package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing
type MockJWTService struct {
	GenerateAccessTokenFn  func(ctx context.Context, userID uuid.UUID, email string) (string, time.Time, error)
	ValidateAccessTokenFn  func(ctx context.Context, tokenString string) (*auth.Claims, error)
	GenerateRefreshTokenFn func(ctx context.Context, userID uuid.UUID) (string, time.Time, error)
	ValidateRefreshTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Default values used when functions aren't explicitly defined
	Token        string
	RefreshToken string
	ExpiresAt    time.Time
	Err          error
	ValidateErr  error
	Claims       *auth.Claims
}

var _ auth.JWTService = (*MockJWTService)(nil)

// GenerateAccessToken implements the auth.JWTService interface
func (m *MockJWTService) GenerateAccessToken(
	ctx context.Context,
	userID uuid.UUID,
	email string,
) (string, time.Time, error) {
	if m.GenerateAccessTokenFn != nil {
		return m.GenerateAccessTokenFn(ctx, userID, email)
	}
	return m.Token, m.ExpiresAt, m.Err
}

// ValidateAccessToken implements the auth.JWTService interface
func (m *MockJWTService) ValidateAccessToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateAccessTokenFn != nil {
		return m.ValidateAccessTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}

// GenerateRefreshToken implements the auth.JWTService interface
func (m *MockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, time.Time, error) {
	if m.GenerateRefreshTokenFn != nil {
		return m.GenerateRefreshTokenFn(ctx, userID)
	}
	return m.RefreshToken, m.ExpiresAt, m.Err
}

// ValidateRefreshToken implements the auth.JWTService interface
func (m *MockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateRefreshTokenFn != nil {
		return m.ValidateRefreshTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}
