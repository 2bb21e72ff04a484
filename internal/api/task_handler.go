package api

import (
	"log/slog"
	"net/http"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/api/shared"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/platform/logger"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/redact"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/service"
)

// TaskHandler handles task definition HTTP requests
type TaskHandler struct {
	householdService service.HouseholdService
	logger           *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(
	householdService service.HouseholdService,
	logger *slog.Logger,
) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		householdService: householdService,
		logger:           logger.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("validation error", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	task, err := domain.NewTaskDefinition(
		req.Name,
		domain.Category(req.Category),
		req.DurationMinutes,
		req.Difficulty,
		domain.Frequency(req.Frequency),
	)
	if err != nil {
		log.Warn("invalid task definition", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid entity data", err)
		return
	}
	task.Tags = req.Tags
	task.PairGroup = req.PairGroup

	if err := h.householdService.CreateTask(r.Context(), task); err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	log.Debug("task created", slog.String("task_id", task.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// GetTask handles GET /tasks/{id} requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	taskID, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	task, err := h.householdService.GetTask(r.Context(), taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// ListTasks handles GET /tasks requests
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.householdService.ListTasks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, taskToResponse(&tasks[i]))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// UpdateTask handles PUT /tasks/{id} requests
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	taskID, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("validation error", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	task := &domain.TaskDefinition{
		ID:              taskID,
		Name:            req.Name,
		Category:        domain.Category(req.Category),
		DurationMinutes: req.DurationMinutes,
		Difficulty:      req.Difficulty,
		Frequency:       domain.Frequency(req.Frequency),
		Tags:            req.Tags,
		PairGroup:       req.PairGroup,
	}

	if err := h.householdService.UpdateTask(r.Context(), task); err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	// Re-read so the response carries the store-set timestamps.
	updated, err := h.householdService.GetTask(r.Context(), taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve task")
		return
	}

	log.Debug("task updated", slog.String("task_id", taskID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(updated))
}

// DeleteTask handles DELETE /tasks/{id} requests
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	taskID, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.householdService.DeleteTask(r.Context(), taskID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	log.Debug("task deleted", slog.String("task_id", taskID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// taskToResponse converts a domain.TaskDefinition to a TaskResponse
func taskToResponse(task *domain.TaskDefinition) TaskResponse {
	return TaskResponse{
		ID:              task.ID.String(),
		Name:            task.Name,
		Category:        string(task.Category),
		DurationMinutes: task.DurationMinutes,
		Difficulty:      task.Difficulty,
		Frequency:       string(task.Frequency),
		Tags:            task.Tags,
		PairGroup:       task.PairGroup,
		CreatedAt:       task.CreatedAt,
		UpdatedAt:       task.UpdatedAt,
	}
}
