package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents where a task is in its lifecycle.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// Common validation errors for Task
var (
	ErrEmptyTaskID       = errors.New("task ID cannot be empty")
	ErrEmptyTaskUserID   = errors.New("task user ID cannot be empty")
	ErrEmptyTaskTitle    = errors.New("title is required")
	ErrInvalidTaskStatus = errors.New("invalid status value")

	ErrConflictingDescription = errors.New("description cannot be both set and cleared")
)

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `json:"status"`
	UserID      uuid.UUID  `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TaskUpdate carries the fields of a partial update. Nil fields are left
// untouched. ClearDescription sets the description to null and cannot be
// combined with Description.
type TaskUpdate struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Status           *TaskStatus
}

// NewTask creates a pending task for userID. The title is trimmed and must
// not be empty.
func NewTask(userID uuid.UUID, title string, description *string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(title),
		Description: description,
		Status:      TaskStatusPending,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTaskUserID
	}

	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "is required", ErrEmptyTaskTitle)
	}

	if !t.Status.IsValid() {
		return NewValidationError("status", "is invalid", ErrInvalidTaskStatus)
	}

	return nil
}

// IsValid reports whether s is one of the known statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// Normalize validates the update and trims a supplied title. It returns a
// validation error for an empty title or an unknown status.
func (u *TaskUpdate) Normalize() error {
	if u.Title != nil {
		trimmed := strings.TrimSpace(*u.Title)
		if trimmed == "" {
			return NewValidationError("title", "is required", ErrEmptyTaskTitle)
		}
		u.Title = &trimmed
	}

	if u.ClearDescription && u.Description != nil {
		return NewValidationError("description", "cannot be both set and cleared", ErrConflictingDescription)
	}

	if u.Status != nil && !u.Status.IsValid() {
		return NewValidationError("status", "is invalid", ErrInvalidTaskStatus)
	}

	return nil
}

// IsEmpty reports whether the update changes nothing.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && !u.ClearDescription && u.Status == nil
}
