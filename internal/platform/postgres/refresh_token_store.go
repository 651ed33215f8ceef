package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
	"github.com/phrazzld/tasker-api/internal/store"
)

// PostgresRefreshTokenStore implements store.RefreshTokenStore.
// Token strings are never logged.
type PostgresRefreshTokenStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRefreshTokenStore creates a refresh token store on db.
// If logger is nil, a default logger will be used.
func NewPostgresRefreshTokenStore(db store.DBTX, logger *slog.Logger) *PostgresRefreshTokenStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRefreshTokenStore{
		db:     db,
		logger: logger.With(slog.String("component", "refresh_token_store")),
	}
}

var _ store.RefreshTokenStore = (*PostgresRefreshTokenStore)(nil)

// Create implements store.RefreshTokenStore.Create.
func (s *PostgresRefreshTokenStore) Create(ctx context.Context, token *domain.RefreshToken) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := token.Validate(); err != nil {
		return store.NewStoreError("refresh_token", "create", "invalid refresh token", errors.Join(store.ErrInvalidEntity, err))
	}

	query := `
		INSERT INTO refresh_tokens (token, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(ctx, query, token.Token, token.UserID, token.ExpiresAt, token.CreatedAt)
	if err != nil {
		log.Error("failed to store refresh token",
			slog.String("error", err.Error()),
			slog.String("user_id", token.UserID.String()))
		return store.NewStoreError("refresh_token", "create", "failed to insert refresh token", MapError(err))
	}

	log.Debug("refresh token stored",
		slog.String("user_id", token.UserID.String()),
		slog.Time("expires_at", token.ExpiresAt))
	return nil
}

// Get implements store.RefreshTokenStore.Get.
func (s *PostgresRefreshTokenStore) Get(ctx context.Context, token string) (*domain.RefreshToken, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT token, user_id, expires_at, created_at
		FROM refresh_tokens
		WHERE token = $1
	`

	var rt domain.RefreshToken
	err := s.db.QueryRowContext(ctx, query, token).Scan(&rt.Token, &rt.UserID, &rt.ExpiresAt, &rt.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("refresh token not found")
			return nil, store.ErrRefreshTokenNotFound
		}
		log.Error("failed to get refresh token", slog.String("error", err.Error()))
		return nil, store.NewStoreError("refresh_token", "get", "failed to query refresh token", MapError(err))
	}

	return &rt, nil
}

// Delete implements store.RefreshTokenStore.Delete.
func (s *PostgresRefreshTokenStore) Delete(ctx context.Context, token string) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE token = $1`, token)
	if err != nil {
		log.Error("failed to delete refresh token", slog.String("error", err.Error()))
		return 0, store.NewStoreError("refresh_token", "delete", "failed to delete refresh token", MapError(err))
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, store.NewStoreError("refresh_token", "delete", "failed to get rows affected", err)
	}

	log.Debug("refresh token deleted", slog.Int64("rows", n))
	return n, nil
}

// DeleteExpired implements store.RefreshTokenStore.DeleteExpired.
func (s *PostgresRefreshTokenStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE expires_at <= $1`, now.UTC())
	if err != nil {
		log.Error("failed to delete expired refresh tokens", slog.String("error", err.Error()))
		return 0, store.NewStoreError("refresh_token", "purge", "failed to delete expired refresh tokens", MapError(err))
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, store.NewStoreError("refresh_token", "purge", "failed to get rows affected", err)
	}

	log.Info("expired refresh tokens deleted", slog.Int64("rows", n))
	return n, nil
}
