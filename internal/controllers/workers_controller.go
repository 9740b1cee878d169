// internal/controllers/workers_controller.go

package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/crewdesk/workforce-service/internal/dtos"
	"github.com/crewdesk/workforce-service/internal/services"
	"github.com/crewdesk/workforce-service/internal/utils"
	"github.com/go-playground/validator/v10"
)

type WorkersController struct {
	workerService *services.WorkerService
	validate      *validator.Validate
}

func NewWorkersController(ws *services.WorkerService) *WorkersController {
	return &WorkersController{
		workerService: ws,
		validate:      validator.New(),
	}
}

// ----------------------------------------------------------------
// POST /api/v1/workers
// ----------------------------------------------------------------
func (c *WorkersController) CreateWorkerHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	resp, err := c.workerService.CreateWorker(r.Context(), &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// ----------------------------------------------------------------
// PATCH /api/v1/workers/{id}
// ----------------------------------------------------------------
func (c *WorkersController) UpdateWorkerHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}

	var req dtos.UpdateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	resp, err := c.workerService.UpdateWorker(r.Context(), workerID, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/workers/{id}
// ----------------------------------------------------------------
func (c *WorkersController) GetWorkerHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}

	resp, err := c.workerService.GetWorker(r.Context(), workerID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/workers
// ----------------------------------------------------------------
func (c *WorkersController) ListWorkersHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := c.workerService.ListWorkers(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
