package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check them with errors.Is; the API layer maps them to HTTP status
// codes.
var (
	// ErrTaskNotFound indicates that no task matches both the requested id and
	// the requesting user. A task owned by someone else is reported the same way.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidTitle indicates a missing title or one that is blank after trimming.
	ErrInvalidTitle = fmt.Errorf("%w: title is required", domain.ErrValidation)

	// ErrInvalidStatus indicates a status outside PENDING, IN_PROGRESS, COMPLETED.
	ErrInvalidStatus = fmt.Errorf("%w: invalid status value", domain.ErrValidation)
)

// TaskServiceError wraps unexpected errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError translates known domain and store errors into service
// sentinels and wraps everything else.
func NewTaskServiceError(operation, message string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrTaskNotFound), errors.Is(err, store.ErrTaskNotFound):
		return ErrTaskNotFound
	case errors.Is(err, ErrInvalidTitle), errors.Is(err, domain.ErrEmptyTaskTitle):
		return ErrInvalidTitle
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, domain.ErrInvalidTaskStatus):
		return ErrInvalidStatus
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
