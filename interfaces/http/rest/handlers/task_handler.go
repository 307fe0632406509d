package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apptaskboard "snapboard-backend/application/taskboard"
	"snapboard-backend/domain/taskboard"
	"snapboard-backend/pkg/auth"
	"snapboard-backend/pkg/common"
	pkgerrors "snapboard-backend/pkg/errors"
	"snapboard-backend/pkg/utils"
)

// TaskHandler handles task lifecycle requests
type TaskHandler struct {
	identity     *apptaskboard.IdentityResolver
	tasks        *apptaskboard.TaskService
	errorHandler *pkgerrors.ErrorHandler
	logger       *zap.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(
	identity *apptaskboard.IdentityResolver,
	tasks *apptaskboard.TaskService,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *TaskHandler {
	return &TaskHandler{
		identity:     identity,
		tasks:        tasks,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// CreateTaskRequest is the request body for creating a task
type CreateTaskRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	DueDate    string `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	AssigneeID string `json:"assigneeId,omitempty"`
}

// UpdateTaskRequest is the request body for a full-field task update.
// Omitted optional fields clear their values; completedAt is derived and
// not accepted here.
type UpdateTaskRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	DueDate    string `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	AssigneeID string `json:"assigneeId,omitempty"`
	Completed  bool   `json:"completed"`
}

// CreateTask handles POST /boards/{boardID}/tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")

	var req CreateTaskRequest
	if err := common.ParseJSONBody(r, &req, maxRequestBody); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	caller, err := h.resolveCaller(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), caller.ID(), boardID, req.Title, dueDate, req.AssigneeID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, toTaskView(task))
}

// GetTask handles GET /tasks/{taskID}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")

	caller, err := h.resolveCaller(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	task, err := h.tasks.GetTask(r.Context(), caller.ID(), taskID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toTaskView(task))
}

// UpdateTask handles PUT /tasks/{taskID}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")

	var req UpdateTaskRequest
	if err := common.ParseJSONBody(r, &req, maxRequestBody); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	caller, err := h.resolveCaller(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), caller.ID(), taskID, apptaskboard.UpdateTaskParams{
		Title:      req.Title,
		DueDate:    dueDate,
		AssigneeID: req.AssigneeID,
		Completed:  req.Completed,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toTaskView(task))
}

// DeleteTask handles DELETE /tasks/{taskID}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")

	caller, err := h.resolveCaller(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), caller.ID(), taskID); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": true,
		"taskId":  taskID,
	})
}

func (h *TaskHandler) resolveCaller(r *http.Request) (*taskboard.User, error) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		return nil, err
	}
	return h.identity.Resolve(r.Context(), userCtx.Email)
}

func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := utils.ParseDate(raw)
	if err != nil {
		return nil, pkgerrors.NewValidationError("dueDate must be a YYYY-MM-DD date")
	}
	return &parsed, nil
}
