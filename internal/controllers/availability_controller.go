// internal/controllers/availability_controller.go

package controllers

import (
	"net/http"

	"github.com/crewdesk/workforce-service/internal/services"
	"github.com/crewdesk/workforce-service/internal/utils"
)

type AvailabilityController struct {
	availabilityService *services.AvailabilityService
}

func NewAvailabilityController(as *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{availabilityService: as}
}

// ----------------------------------------------------------------
// GET /api/v1/workers/available?date=YYYY-MM-DD&start_time=HH:MM&end_time=HH:MM
// ----------------------------------------------------------------
func (c *AvailabilityController) ListAvailableWorkersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	dateStr := q.Get("date")
	if dateStr == "" {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "date query parameter is required", nil, nil)
		return
	}

	var startTime, endTime *string
	if v := q.Get("start_time"); v != "" {
		startTime = &v
	}
	if v := q.Get("end_time"); v != "" {
		endTime = &v
	}

	resp, err := c.availabilityService.ListAvailableWorkers(r.Context(), dateStr, startTime, endTime)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
