package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/domain"
)

// TaskStore defines persistence for tasks. Every single-task operation is
// scoped by both task id and owner id; a task owned by someone else behaves
// exactly like a missing one (ErrTaskNotFound).
type TaskStore interface {
	// Create saves a new task.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// ListByUser returns all tasks owned by userID, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// GetByIDForUser retrieves the task matching both id and owner.
	GetByIDForUser(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// UpdateForUser applies the non-nil fields of update to the task
	// matching both id and owner.
	UpdateForUser(ctx context.Context, userID, taskID uuid.UUID, update domain.TaskUpdate) error

	// DeleteForUser removes the task matching both id and owner.
	DeleteForUser(ctx context.Context, userID, taskID uuid.UUID) error
}
