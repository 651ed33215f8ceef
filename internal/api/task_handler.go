package api

import (
	"net/http"

	"github.com/phrazzld/tasker-api/internal/api/shared"
	"github.com/phrazzld/tasker-api/internal/service"
)

// TaskHandler handles task-related HTTP requests. Every route expects the
// authenticated user in the request context.
type TaskHandler struct {
	taskService service.TaskService
	errOpts     []shared.ResponseOption
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService, errOpts ...shared.ResponseOption) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		errOpts:     errOpts,
	}
}

// CreateTask handles POST /tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := handleUserID(w, r, h.errOpts...)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err, h.errOpts...)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), userID, req.Title, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "", h.errOpts...)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, CreateTaskResponse{
		Message: "Task created successfully",
		Task:    taskToResponse(task),
	})
}

// ListTasks handles GET /tasks. The response is always a JSON array.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := handleUserID(w, r, h.errOpts...)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "", h.errOpts...)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// GetTask handles GET /tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", h.errOpts...)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "", h.errOpts...)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PUT /tasks/{id}. Fields absent from the body keep their
// stored values.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", h.errOpts...)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err, h.errOpts...)
		return
	}

	if err := h.taskService.UpdateTask(r.Context(), userID, taskID, req.toDomain()); err != nil {
		HandleAPIError(w, r, err, "", h.errOpts...)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Task updated successfully")
}

// DeleteTask handles DELETE /tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", h.errOpts...)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), userID, taskID); err != nil {
		HandleAPIError(w, r, err, "", h.errOpts...)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Task deleted successfully")
}
