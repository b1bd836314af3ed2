package api

import (
	"net/http"

	"merchant-admin-layer/internal/application"
	"merchant-admin-layer/internal/domain"

	"github.com/rs/zerolog"
)

// Task form actions
const (
	ActionCreate          = "create"
	ActionUpdate          = "update"
	ActionDelete          = "delete"
	ActionDeleteCompleted = "deleteCompleted"
)

// DeleteCompletedResponse reports how many completed tasks were removed
type DeleteCompletedResponse struct {
	Success bool  `json:"success"`
	Deleted int64 `json:"deleted"`
}

// TaskHandler serves /api/tasks for the authenticated shop
type TaskHandler struct {
	service *application.TaskService
	logger  zerolog.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(service *application.TaskService, logger zerolog.Logger) *TaskHandler {
	return &TaskHandler{
		service: service,
		logger:  logger,
	}
}

// HandleList returns the shop's tasks, newest first
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Security SessionToken
// @Success 200 {array} domain.Task
// @Failure 401 {object} ErrorResponse
// @Router /api/tasks [get]
func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tasks, err := h.service.ListTasks(ctx, domain.GetShopFromContext(ctx))
	if err != nil {
		h.fail(w, err, "list")
		return
	}
	respondJSON(w, h.logger, http.StatusOK, tasks)
}

// HandleAction dispatches on the action form field
// @Summary Create, update or delete tasks
// @Tags tasks
// @Accept x-www-form-urlencoded
// @Produce json
// @Security SessionToken
// @Param action formData string true "create, update, delete or deleteCompleted"
// @Param id formData string false "Task ID"
// @Param title formData string false "Task title"
// @Param description formData string false "Task description"
// @Param completed formData string false "true marks the task completed"
// @Success 200 {object} domain.Task
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/tasks [post]
func (h *TaskHandler) HandleAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shop := domain.GetShopFromContext(ctx)
	action := r.FormValue("action")

	switch action {
	case ActionCreate:
		task, err := h.service.CreateTask(ctx, shop, application.CreateTaskInput{
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
		})
		if err != nil {
			h.fail(w, err, action)
			return
		}
		respondJSON(w, h.logger, http.StatusOK, task)

	case ActionUpdate:
		task, err := h.service.UpdateTask(ctx, shop, application.UpdateTaskInput{
			ID:          r.FormValue("id"),
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
			Completed:   r.FormValue("completed") == "true",
		})
		if err != nil {
			h.fail(w, err, action)
			return
		}
		respondJSON(w, h.logger, http.StatusOK, task)

	case ActionDelete:
		if err := h.service.DeleteTask(ctx, shop, r.FormValue("id")); err != nil {
			h.fail(w, err, action)
			return
		}
		respondJSON(w, h.logger, http.StatusOK, SuccessResponse{Success: true})

	case ActionDeleteCompleted:
		deleted, err := h.service.DeleteCompletedTasks(ctx, shop)
		if err != nil {
			h.fail(w, err, action)
			return
		}
		respondJSON(w, h.logger, http.StatusOK, DeleteCompletedResponse{Success: true, Deleted: deleted})

	default:
		respondError(w, h.logger, http.StatusBadRequest, ErrMsgInvalidAction)
	}
}

func (h *TaskHandler) fail(w http.ResponseWriter, err error, action string) {
	status, message := errorStatus(err, ErrMsgTaskNotFound)
	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("action", action).Msg("Task request failed")
	}
	respondError(w, h.logger, status, message)
}
