// internal/controllers/tasks_controller.go

package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/crewdesk/workforce-service/internal/dtos"
	"github.com/crewdesk/workforce-service/internal/services"
	"github.com/crewdesk/workforce-service/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type TasksController struct {
	taskService *services.TaskService
	validate    *validator.Validate
}

func NewTasksController(ts *services.TaskService) *TasksController {
	return &TasksController{
		taskService: ts,
		validate:    validator.New(),
	}
}

// ----------------------------------------------------------------
// POST /api/v1/tasks
// ----------------------------------------------------------------
func (c *TasksController) CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.TaskWriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	resp, err := c.taskService.CreateTask(r.Context(), &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// ----------------------------------------------------------------
// PUT /api/v1/tasks/{id}
// ----------------------------------------------------------------
func (c *TasksController) UpdateTaskHandler(w http.ResponseWriter, r *http.Request) {
	taskID, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}

	var req dtos.TaskWriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	resp, err := c.taskService.UpdateTask(r.Context(), taskID, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/tasks/{id}
// ----------------------------------------------------------------
func (c *TasksController) GetTaskHandler(w http.ResponseWriter, r *http.Request) {
	taskID, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}

	resp, err := c.taskService.GetTask(r.Context(), taskID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/tasks?project_id=...&date=YYYY-MM-DD
// ----------------------------------------------------------------
func (c *TasksController) ListTasksHandler(w http.ResponseWriter, r *http.Request) {
	var projectID *uuid.UUID
	if raw := r.URL.Query().Get("project_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid project_id", nil, err)
			return
		}
		projectID = &id
	}

	var date *time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		d, err := time.ParseInLocation(time.DateOnly, raw, time.UTC)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid date, expected YYYY-MM-DD", nil, err)
			return
		}
		date = &d
	}

	resp, err := c.taskService.ListTasks(r.Context(), projectID, date)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// POST /api/v1/tasks/{id}/cancel
// ----------------------------------------------------------------
func (c *TasksController) CancelTaskHandler(w http.ResponseWriter, r *http.Request) {
	taskID, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}

	resp, err := c.taskService.CancelTask(r.Context(), taskID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// parsePathID pulls a UUID path variable, responding 400 itself when
// the value is malformed.
func parsePathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid "+name+" in path", nil, err)
		return uuid.Nil, false
	}
	return id, true
}
