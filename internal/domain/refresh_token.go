package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Validation errors for RefreshToken
var (
	ErrEmptyRefreshToken     = errors.New("refresh token cannot be empty")
	ErrEmptyRefreshTokenUser = errors.New("refresh token user ID cannot be empty")
	ErrInvalidTokenExpiry    = errors.New("refresh token expiry must be set")
)

// RefreshToken is a persisted refresh credential. Deleting the row revokes
// the token even though its signature stays valid until ExpiresAt.
type RefreshToken struct {
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// NewRefreshToken creates a RefreshToken record for a freshly signed token.
func NewRefreshToken(token string, userID uuid.UUID, expiresAt time.Time) (*RefreshToken, error) {
	rt := &RefreshToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: time.Now().UTC(),
	}

	if err := rt.Validate(); err != nil {
		return nil, err
	}

	return rt, nil
}

// Validate checks if the RefreshToken has valid data.
func (t *RefreshToken) Validate() error {
	if t.Token == "" {
		return ErrEmptyRefreshToken
	}
	if t.UserID == uuid.Nil {
		return ErrEmptyRefreshTokenUser
	}
	if t.ExpiresAt.IsZero() {
		return ErrInvalidTokenExpiry
	}
	return nil
}

// IsExpired reports whether the token has expired at now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
