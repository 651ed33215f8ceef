package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing with an in-memory map.
// Single-task operations match on both id and owner, like the SQL store.
type MockTaskStore struct {
	CreateFn         func(ctx context.Context, task *domain.Task) error
	ListByUserFn     func(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	GetByIDForUserFn func(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)
	UpdateForUserFn  func(ctx context.Context, userID, taskID uuid.UUID, update domain.TaskUpdate) error
	DeleteForUserFn  func(ctx context.Context, userID, taskID uuid.UUID) error

	mu    sync.Mutex
	Tasks map[uuid.UUID]*domain.Task
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates an empty in-memory task store.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{Tasks: make(map[uuid.UUID]*domain.Task)}
}

// Create implements store.TaskStore
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	if err := task.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Tasks[task.ID] = cloneTask(task)
	return nil
}

// ListByUser implements store.TaskStore
func (m *MockTaskStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := make([]*domain.Task, 0)
	for _, task := range m.Tasks {
		if task.UserID == userID {
			tasks = append(tasks, cloneTask(task))
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// GetByIDForUser implements store.TaskStore
func (m *MockTaskStore) GetByIDForUser(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	if m.GetByIDForUserFn != nil {
		return m.GetByIDForUserFn(ctx, userID, taskID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.Tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, store.ErrTaskNotFound
	}
	return cloneTask(task), nil
}

// UpdateForUser implements store.TaskStore
func (m *MockTaskStore) UpdateForUser(
	ctx context.Context,
	userID, taskID uuid.UUID,
	update domain.TaskUpdate,
) error {
	if m.UpdateForUserFn != nil {
		return m.UpdateForUserFn(ctx, userID, taskID, update)
	}
	if err := update.Normalize(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.Tasks[taskID]
	if !ok || task.UserID != userID {
		return store.ErrTaskNotFound
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		desc := *update.Description
		task.Description = &desc
	}
	if update.ClearDescription {
		task.Description = nil
	}
	if update.Status != nil {
		task.Status = *update.Status
	}
	task.UpdatedAt = time.Now().UTC()
	return nil
}

// DeleteForUser implements store.TaskStore
func (m *MockTaskStore) DeleteForUser(ctx context.Context, userID, taskID uuid.UUID) error {
	if m.DeleteForUserFn != nil {
		return m.DeleteForUserFn(ctx, userID, taskID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.Tasks[taskID]
	if !ok || task.UserID != userID {
		return store.ErrTaskNotFound
	}
	delete(m.Tasks, taskID)
	return nil
}

func cloneTask(task *domain.Task) *domain.Task {
	c := *task
	if task.Description != nil {
		desc := *task.Description
		c.Description = &desc
	}
	return &c
}
