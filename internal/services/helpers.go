// internal/services/helpers.go

package services

import (
	"fmt"
	"net/http"
	"time"

	"github.com/crewdesk/workforce-service/internal/scheduling"
	"github.com/crewdesk/workforce-service/internal/utils"
)

// parseDate parses a YYYY-MM-DD request field into a UTC calendar date.
func parseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return time.Time{}, utils.NewAppError(
			http.StatusBadRequest,
			utils.ErrCodeInvalidPayload,
			fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", s),
		)
	}
	return d, nil
}

// parseOptionalWindow enforces the both-or-neither rule for start/end
// times and parses them into a validated window. (nil, nil) means no
// window was requested.
func parseOptionalWindow(startTime, endTime *string) (*scheduling.Window, error) {
	if startTime == nil && endTime == nil {
		return nil, nil
	}
	if startTime == nil || endTime == nil {
		return nil, utils.NewAppError(
			http.StatusBadRequest,
			utils.ErrCodeInvalidTimeWindow,
			"start_time and end_time must be provided together",
		)
	}
	w, ok := scheduling.ParseWindow(*startTime, *endTime)
	if !ok {
		return nil, utils.NewAppError(
			http.StatusBadRequest,
			utils.ErrCodeInvalidTimeWindow,
			fmt.Sprintf("Invalid time window %s-%s: times must be 24-hour HH:MM with end after start", *startTime, *endTime),
		)
	}
	return &w, nil
}

// minutesToHours converts capacity arithmetic minutes into the hours
// figures the API reports.
func minutesToHours(min int) float64 {
	return float64(min) / 60.0
}
