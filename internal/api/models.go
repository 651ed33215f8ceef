package api

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/domain"
)

// RegisterRequest defines the payload for the user registration endpoint.
// Length and format checks live in the domain so that the messages match the
// service's errors.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// RegisterResponse defines the successful response for registration.
type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// Optional is a JSON field that tells an absent key apart from an explicit
// null. Set is true whenever the key is present; Null is true when its value
// was null.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// UnmarshalJSON is only called for keys present in the object, including
// those whose value is null.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// UpdateTaskRequest defines the payload for a partial task update. Absent
// fields are left unchanged; a null description clears it.
type UpdateTaskRequest struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
	Status      Optional[string] `json:"status"`
}

// toDomain converts the request into a domain.TaskUpdate. A null title or
// status is passed on as an empty value so that it fails the same
// validation as a blank title or an unknown status.
func (r UpdateTaskRequest) toDomain() domain.TaskUpdate {
	var update domain.TaskUpdate

	if r.Title.Set {
		title := r.Title.Value
		update.Title = &title
	}

	switch {
	case r.Description.Null:
		update.ClearDescription = true
	case r.Description.Set:
		description := r.Description.Value
		update.Description = &description
	}

	if r.Status.Set {
		status := domain.TaskStatus(r.Status.Value)
		update.Status = &status
	}

	return update
}

// TaskResponse is the JSON representation of a task.
type TaskResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	UserID      uuid.UUID `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateTaskResponse defines the successful response for task creation.
type CreateTaskResponse struct {
	Message string       `json:"message"`
	Task    TaskResponse `json:"task"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		UserID:      task.UserID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	resp := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		resp = append(resp, taskToResponse(task))
	}
	return resp
}
