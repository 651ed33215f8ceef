package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
	"github.com/phrazzld/tasker-api/internal/store"
)

// TaskService provides task operations scoped to the requesting user.
type TaskService interface {
	// CreateTask creates a PENDING task owned by userID.
	CreateTask(ctx context.Context, userID uuid.UUID, title string, description *string) (*domain.Task, error)

	// ListTasks returns the user's tasks, newest first.
	ListTasks(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// GetTask returns one of the user's tasks.
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// UpdateTask applies a partial update to one of the user's tasks.
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, update domain.TaskUpdate) error

	// DeleteTask removes one of the user's tasks.
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
}

type taskServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a TaskService.
// It returns an error if the store is nil.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "task store cannot be nil",
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:  tasks,
		logger: logger.With("component", "task_service"),
	}, nil
}

func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	userID uuid.UUID,
	title string,
	description *string,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(userID, title, description)
	if err != nil {
		log.Debug("task rejected by validation", "error", err, "user_id", userID)
		return nil, NewTaskServiceError("create_task", "invalid task", err)
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		log.Error("failed to save task", "error", err, "user_id", userID, "task_id", task.ID)
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	return task, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.GetByIDForUser(ctx, userID, taskID)
	if err != nil {
		return nil, NewTaskServiceError("get_task", "failed to get task", err)
	}
	return task, nil
}

// UpdateTask validates the update before touching the store, so an invalid
// status or blank title leaves the stored task unchanged.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	userID, taskID uuid.UUID,
	update domain.TaskUpdate,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := update.Normalize(); err != nil {
		log.Debug("task update rejected by validation", "error", err, "task_id", taskID)
		return NewTaskServiceError("update_task", "invalid update", err)
	}

	// Nothing to write; the task still has to exist for this user.
	if update.IsEmpty() {
		if _, err := s.tasks.GetByIDForUser(ctx, userID, taskID); err != nil {
			return NewTaskServiceError("update_task", "failed to find task", err)
		}
		return nil
	}

	if err := s.tasks.UpdateForUser(ctx, userID, taskID, update); err != nil {
		return NewTaskServiceError("update_task", "failed to update task", err)
	}

	log.Debug("task updated", "task_id", taskID, "user_id", userID)
	return nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if err := s.tasks.DeleteForUser(ctx, userID, taskID); err != nil {
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("task deleted", "task_id", taskID, "user_id", userID)
	return nil
}
