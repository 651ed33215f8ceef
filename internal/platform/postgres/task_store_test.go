package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertTaskSQL = `^INSERT INTO tasks \(id, title, description, status, user_id, created_at, updated_at\) VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7\)$`
	listTasksSQL  = `^SELECT id, title, description, status, user_id, created_at, updated_at FROM tasks WHERE user_id = \$1 ORDER BY created_at DESC, id$`
	getTaskSQL    = `^SELECT id, title, description, status, user_id, created_at, updated_at FROM tasks WHERE id = \$1 AND user_id = \$2$`
	updateTaskSQL = `^UPDATE tasks SET title = COALESCE\(\$3, title\), description = CASE WHEN \$7 THEN NULL ELSE COALESCE\(\$4, description\) END, status = COALESCE\(\$5, status\), updated_at = \$6 WHERE id = \$1 AND user_id = \$2$`
	deleteTaskSQL = `^DELETE FROM tasks WHERE id = \$1 AND user_id = \$2$`
)

var taskColumnNames = []string{"id", "title", "description", "status", "user_id", "created_at", "updated_at"}

func strPtr(s string) *string { return &s }

func TestPostgresTaskStore_Create(t *testing.T) {
	userID := uuid.New()

	t.Run("success with null description", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)
		task, err := domain.NewTask(userID, "Write report", nil)
		require.NoError(t, err)

		mock.ExpectExec(insertTaskSQL).
			WithArgs(task.ID, "Write report", nil, "PENDING", userID, task.CreatedAt, task.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Create(context.Background(), task))
	})

	t.Run("unknown owner", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)
		task, err := domain.NewTask(userID, "Write report", strPtr("Q3"))
		require.NoError(t, err)

		mock.ExpectExec(insertTaskSQL).
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "tasks_user_id_fkey"})

		err = s.Create(context.Background(), task)

		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("invalid task never reaches the database", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)

		err := s.Create(context.Background(), &domain.Task{ID: uuid.New(), UserID: userID, Status: domain.TaskStatusPending})

		assert.ErrorIs(t, err, domain.ErrEmptyTaskTitle)
	})
}

func TestPostgresTaskStore_ListByUser(t *testing.T) {
	userID := uuid.New()
	newer, older := uuid.New(), uuid.New()
	now := time.Now().UTC()

	t.Run("rows in query order", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)

		mock.ExpectQuery(listTasksSQL).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(taskColumnNames).
				AddRow(newer.String(), "B", "details", "IN_PROGRESS", userID.String(), now, now).
				AddRow(older.String(), "A", nil, "PENDING", userID.String(), now.Add(-time.Hour), now))

		tasks, err := s.ListByUser(context.Background(), userID)

		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, newer, tasks[0].ID)
		assert.Equal(t, domain.TaskStatusInProgress, tasks[0].Status)
		require.NotNil(t, tasks[0].Description)
		assert.Equal(t, "details", *tasks[0].Description)
		assert.Equal(t, older, tasks[1].ID)
		assert.Nil(t, tasks[1].Description)
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)

		mock.ExpectQuery(listTasksSQL).WithArgs(userID).WillReturnRows(sqlmock.NewRows(taskColumnNames))

		tasks, err := s.ListByUser(context.Background(), userID)

		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("query failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)

		mock.ExpectQuery(listTasksSQL).WithArgs(userID).WillReturnError(errors.New("db down"))

		_, err := s.ListByUser(context.Background(), userID)

		require.Error(t, err)
	})
}

func TestPostgresTaskStore_GetByIDForUser(t *testing.T) {
	userID, taskID := uuid.New(), uuid.New()
	now := time.Now().UTC()

	t.Run("owned task", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)

		mock.ExpectQuery(getTaskSQL).
			WithArgs(taskID, userID).
			WillReturnRows(sqlmock.NewRows(taskColumnNames).
				AddRow(taskID.String(), "A", nil, "COMPLETED", userID.String(), now, now))

		task, err := s.GetByIDForUser(context.Background(), userID, taskID)

		require.NoError(t, err)
		assert.Equal(t, taskID, task.ID)
		assert.Equal(t, userID, task.UserID)
		assert.Equal(t, domain.TaskStatusCompleted, task.Status)
	})

	t.Run("missing or foreign task", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)

		mock.ExpectQuery(getTaskSQL).WithArgs(taskID, userID).WillReturnRows(sqlmock.NewRows(taskColumnNames))

		task, err := s.GetByIDForUser(context.Background(), userID, taskID)

		assert.Nil(t, task)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestPostgresTaskStore_UpdateForUser(t *testing.T) {
	userID, taskID := uuid.New(), uuid.New()
	fixed := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	newStore := func(t *testing.T) (*PostgresTaskStore, sqlmock.Sqlmock) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)
		s.now = func() time.Time { return fixed }
		return s, mock
	}

	t.Run("partial update passes nulls for untouched fields", func(t *testing.T) {
		s, mock := newStore(t)
		status := domain.TaskStatusCompleted

		mock.ExpectExec(updateTaskSQL).
			WithArgs(taskID, userID, nil, nil, "COMPLETED", fixed, false).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := s.UpdateForUser(context.Background(), userID, taskID, domain.TaskUpdate{Status: &status})

		require.NoError(t, err)
	})

	t.Run("title is trimmed", func(t *testing.T) {
		s, mock := newStore(t)

		mock.ExpectExec(updateTaskSQL).
			WithArgs(taskID, userID, "New title", "notes", nil, fixed, false).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := s.UpdateForUser(context.Background(), userID, taskID, domain.TaskUpdate{
			Title:       strPtr("  New title "),
			Description: strPtr("notes"),
		})

		require.NoError(t, err)
	})

	t.Run("cleared description is written as null", func(t *testing.T) {
		s, mock := newStore(t)

		mock.ExpectExec(updateTaskSQL).
			WithArgs(taskID, userID, nil, nil, nil, fixed, true).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := s.UpdateForUser(context.Background(), userID, taskID, domain.TaskUpdate{ClearDescription: true})

		require.NoError(t, err)
	})

	t.Run("no matching row", func(t *testing.T) {
		s, mock := newStore(t)

		mock.ExpectExec(updateTaskSQL).WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.UpdateForUser(context.Background(), userID, taskID, domain.TaskUpdate{Title: strPtr("x")})

		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("invalid status never reaches the database", func(t *testing.T) {
		s, _ := newStore(t)
		status := domain.TaskStatus("DONE")

		err := s.UpdateForUser(context.Background(), userID, taskID, domain.TaskUpdate{Status: &status})

		assert.ErrorIs(t, err, domain.ErrInvalidTaskStatus)
	})
}

func TestPostgresTaskStore_DeleteForUser(t *testing.T) {
	userID, taskID := uuid.New(), uuid.New()

	t.Run("deleted", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)

		mock.ExpectExec(deleteTaskSQL).WithArgs(taskID, userID).WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.DeleteForUser(context.Background(), userID, taskID))
	})

	t.Run("already gone", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)

		mock.ExpectExec(deleteTaskSQL).WithArgs(taskID, userID).WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.DeleteForUser(context.Background(), userID, taskID)

		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}
