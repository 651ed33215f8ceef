package store

import (
	"context"
	"time"

	"github.com/phrazzld/tasker-api/internal/domain"
)

// RefreshTokenStore persists issued refresh tokens. A token is only usable
// while its row exists.
type RefreshTokenStore interface {
	// Create records a newly issued refresh token.
	Create(ctx context.Context, token *domain.RefreshToken) error

	// Get retrieves the row for the given token string.
	// Returns ErrRefreshTokenNotFound if no row exists.
	Get(ctx context.Context, token string) (*domain.RefreshToken, error)

	// Delete removes the row for the given token string and reports how many
	// rows were removed. Removing zero rows is not an error.
	Delete(ctx context.Context, token string) (int64, error)

	// DeleteExpired removes every row that expired at or before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
