// internal/controllers/attendance_controller.go

package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/crewdesk/workforce-service/internal/dtos"
	"github.com/crewdesk/workforce-service/internal/services"
	"github.com/crewdesk/workforce-service/internal/utils"
	"github.com/go-playground/validator/v10"
)

type AttendanceController struct {
	attendanceService *services.AttendanceService
	validate          *validator.Validate
}

func NewAttendanceController(as *services.AttendanceService) *AttendanceController {
	return &AttendanceController{
		attendanceService: as,
		validate:          validator.New(),
	}
}

// ----------------------------------------------------------------
// POST /api/v1/attendance
// ----------------------------------------------------------------
func (c *AttendanceController) MarkAttendanceHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	resp, err := c.attendanceService.MarkAttendance(r.Context(), &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/attendance?date=YYYY-MM-DD
// ----------------------------------------------------------------
func (c *AttendanceController) ListAttendanceByDateHandler(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "date query parameter is required", nil, nil)
		return
	}

	resp, err := c.attendanceService.ListAttendanceByDate(r.Context(), dateStr)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/workers/{id}/attendance?from=YYYY-MM-DD&to=YYYY-MM-DD
// ----------------------------------------------------------------
func (c *AttendanceController) ListWorkerAttendanceHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}

	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	if from == "" || to == "" {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "from and to query parameters are required", nil, nil)
		return
	}

	resp, err := c.attendanceService.ListWorkerAttendance(r.Context(), workerID, from, to)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// DELETE /api/v1/workers/{id}/attendance?date=YYYY-MM-DD
// ----------------------------------------------------------------
func (c *AttendanceController) DeleteAttendanceHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "date query parameter is required", nil, nil)
		return
	}

	if err := c.attendanceService.DeleteAttendance(r.Context(), workerID, dateStr); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
