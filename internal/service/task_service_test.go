package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/mocks"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
	"github.com/phrazzld/tasker-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaskService(t *testing.T) (service.TaskService, *mocks.MockTaskStore) {
	t.Helper()
	tasks := mocks.NewMockTaskStore()
	log, _ := logger.NewTestLogger(t)
	svc, err := service.NewTaskService(tasks, log)
	require.NoError(t, err)
	return svc, tasks
}

func strPtr(s string) *string { return &s }

func statusPtr(s domain.TaskStatus) *domain.TaskStatus { return &s }

func TestNewTaskService_NilStore(t *testing.T) {
	svc, err := service.NewTaskService(nil, nil)
	assert.Nil(t, svc)
	assert.Error(t, err)
}

func TestTaskService_CreateTask(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("trims title and defaults to pending", func(t *testing.T) {
		svc, tasks := newTaskService(t)

		task, err := svc.CreateTask(ctx, userID, "  Buy milk  ", strPtr("2 liters"))
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", task.Title)
		assert.Equal(t, domain.TaskStatusPending, task.Status)
		assert.Equal(t, userID, task.UserID)
		require.NotNil(t, task.Description)
		assert.Equal(t, "2 liters", *task.Description)
		assert.Contains(t, tasks.Tasks, task.ID)
	})

	t.Run("description is optional", func(t *testing.T) {
		svc, _ := newTaskService(t)

		task, err := svc.CreateTask(ctx, userID, "Walk dog", nil)
		require.NoError(t, err)
		assert.Nil(t, task.Description)
	})

	for _, title := range []string{"", "   ", "\t\n"} {
		t.Run("rejects blank title "+quote(title), func(t *testing.T) {
			svc, tasks := newTaskService(t)

			task, err := svc.CreateTask(ctx, userID, title, nil)
			assert.Nil(t, task)
			assert.ErrorIs(t, err, service.ErrInvalidTitle)
			assert.Empty(t, tasks.Tasks)
		})
	}

	t.Run("store failure is wrapped", func(t *testing.T) {
		svc, tasks := newTaskService(t)
		dbErr := errors.New("db down")
		tasks.CreateFn = func(context.Context, *domain.Task) error { return dbErr }

		_, err := svc.CreateTask(ctx, userID, "Title", nil)
		assert.ErrorIs(t, err, dbErr)
		var serviceErr *service.TaskServiceError
		assert.ErrorAs(t, err, &serviceErr)
	})
}

func quote(s string) string {
	return "\"" + s + "\""
}

func TestTaskService_ListTasks(t *testing.T) {
	ctx := context.Background()
	svc, tasks := newTaskService(t)
	owner := uuid.New()
	other := uuid.New()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"first", "second", "third"} {
		task, err := domain.NewTask(owner, title, nil)
		require.NoError(t, err)
		task.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, tasks.Create(ctx, task))
	}
	foreign, err := domain.NewTask(other, "not mine", nil)
	require.NoError(t, err)
	require.NoError(t, tasks.Create(ctx, foreign))

	list, err := svc.ListTasks(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Title)
	assert.Equal(t, "second", list[1].Title)
	assert.Equal(t, "first", list[2].Title)

	t.Run("user without tasks gets empty list", func(t *testing.T) {
		list, err := svc.ListTasks(ctx, uuid.New())
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})
}

func TestTaskService_OwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTaskService(t)
	owner := uuid.New()
	intruder := uuid.New()

	task, err := svc.CreateTask(ctx, owner, "Private", nil)
	require.NoError(t, err)

	_, err = svc.GetTask(ctx, intruder, task.ID)
	assert.ErrorIs(t, err, service.ErrTaskNotFound)

	err = svc.UpdateTask(ctx, intruder, task.ID, domain.TaskUpdate{Title: strPtr("Hijacked")})
	assert.ErrorIs(t, err, service.ErrTaskNotFound)

	err = svc.DeleteTask(ctx, intruder, task.ID)
	assert.ErrorIs(t, err, service.ErrTaskNotFound)

	got, err := svc.GetTask(ctx, owner, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Private", got.Title)
}

func TestTaskService_UpdateTask(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("partial update preserves other fields", func(t *testing.T) {
		svc, _ := newTaskService(t)
		task, err := svc.CreateTask(ctx, owner, "Write report", strPtr("quarterly"))
		require.NoError(t, err)

		err = svc.UpdateTask(ctx, owner, task.ID, domain.TaskUpdate{
			Status: statusPtr(domain.TaskStatusInProgress),
		})
		require.NoError(t, err)

		got, err := svc.GetTask(ctx, owner, task.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusInProgress, got.Status)
		assert.Equal(t, "Write report", got.Title)
		require.NotNil(t, got.Description)
		assert.Equal(t, "quarterly", *got.Description)
		assert.False(t, got.UpdatedAt.Before(task.UpdatedAt))
	})

	t.Run("clearing description keeps the rest", func(t *testing.T) {
		svc, _ := newTaskService(t)
		task, err := svc.CreateTask(ctx, owner, "Keep me", strPtr("drop me"))
		require.NoError(t, err)

		require.NoError(t, svc.UpdateTask(ctx, owner, task.ID, domain.TaskUpdate{ClearDescription: true}))

		got, err := svc.GetTask(ctx, owner, task.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Description)
		assert.Equal(t, "Keep me", got.Title)
		assert.Equal(t, domain.TaskStatusPending, got.Status)
	})

	t.Run("title is trimmed", func(t *testing.T) {
		svc, _ := newTaskService(t)
		task, err := svc.CreateTask(ctx, owner, "Old", nil)
		require.NoError(t, err)

		require.NoError(t, svc.UpdateTask(ctx, owner, task.ID, domain.TaskUpdate{Title: strPtr("  New  ")}))

		got, err := svc.GetTask(ctx, owner, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "New", got.Title)
	})

	tests := []struct {
		name    string
		update  domain.TaskUpdate
		wantErr error
	}{
		{"invalid status", domain.TaskUpdate{Status: statusPtr("DONE")}, service.ErrInvalidStatus},
		{"lowercase status", domain.TaskUpdate{Status: statusPtr("pending")}, service.ErrInvalidStatus},
		{"blank title", domain.TaskUpdate{Title: strPtr("   ")}, service.ErrInvalidTitle},
		{
			"valid title with invalid status",
			domain.TaskUpdate{Title: strPtr("Changed"), Status: statusPtr("DONE")},
			service.ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+" leaves task unchanged", func(t *testing.T) {
			svc, _ := newTaskService(t)
			task, err := svc.CreateTask(ctx, owner, "Stable", nil)
			require.NoError(t, err)

			err = svc.UpdateTask(ctx, owner, task.ID, tt.update)
			assert.ErrorIs(t, err, tt.wantErr)

			got, err := svc.GetTask(ctx, owner, task.ID)
			require.NoError(t, err)
			assert.Equal(t, "Stable", got.Title)
			assert.Equal(t, domain.TaskStatusPending, got.Status)
		})
	}

	t.Run("missing task", func(t *testing.T) {
		svc, _ := newTaskService(t)
		err := svc.UpdateTask(ctx, owner, uuid.New(), domain.TaskUpdate{Title: strPtr("x")})
		assert.ErrorIs(t, err, service.ErrTaskNotFound)
	})

	t.Run("empty update checks ownership without writing", func(t *testing.T) {
		svc, tasks := newTaskService(t)
		task, err := svc.CreateTask(ctx, owner, "Untouched", nil)
		require.NoError(t, err)

		tasks.UpdateForUserFn = func(context.Context, uuid.UUID, uuid.UUID, domain.TaskUpdate) error {
			t.Fatal("store update must not be called for an empty update")
			return nil
		}

		assert.NoError(t, svc.UpdateTask(ctx, owner, task.ID, domain.TaskUpdate{}))
		err = svc.UpdateTask(ctx, uuid.New(), task.ID, domain.TaskUpdate{})
		assert.ErrorIs(t, err, service.ErrTaskNotFound)
	})
}

func TestTaskService_DeleteTask(t *testing.T) {
	ctx := context.Background()
	svc, tasks := newTaskService(t)
	owner := uuid.New()

	task, err := svc.CreateTask(ctx, owner, "Disposable", nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(ctx, owner, task.ID))
	assert.NotContains(t, tasks.Tasks, task.ID)

	err = svc.DeleteTask(ctx, owner, task.ID)
	assert.ErrorIs(t, err, service.ErrTaskNotFound)

	_, err = svc.GetTask(ctx, owner, task.ID)
	assert.ErrorIs(t, err, service.ErrTaskNotFound)
}
