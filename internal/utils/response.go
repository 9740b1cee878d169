// internal/utils/response.go
package utils

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

const (
	ErrCodeInvalidPayload = "invalid_payload"
	ErrCodeValidation     = "validation_error"
	ErrCodeInternal       = "internal_server_error"
	ErrCodeNotFound       = "not_found"
	ErrCodeConflict       = "conflict"

	// Scheduling business-rule codes. These are stable identifiers the
	// front end keys on; the human-readable message sits next to them.
	ErrCodeWorkerInactive        = "worker_inactive"
	ErrCodeAttendanceMissing     = "attendance_missing"
	ErrCodeAttendanceUnavailable = "attendance_unavailable"
	ErrCodeTimeOverlap           = "time_overlap"
	ErrCodeHalfDayExhausted      = "half_day_exhausted"
	ErrCodeInsufficientHours     = "insufficient_hours"
	ErrCodeBeyondProjectEnd      = "task_beyond_project_end"
	ErrCodeInvalidTimeWindow     = "invalid_time_window"
	ErrCodeRowVersionConflict    = "row_version_conflict"
)

// ErrorResponse carries a stable code, a human-readable message, and an
// optional Details payload (e.g. the offending worker names).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// RespondErrorWithCode builds a JSON error response with a standard
// code and message. The optional `details` is included if non-nil.
func RespondErrorWithCode(
	w http.ResponseWriter,
	status int,
	errorCode string,
	publicMessage string,
	details any,
	devErrs ...error,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errBody := ErrorResponse{
		Code:    errorCode,
		Message: publicMessage,
	}
	if details != nil {
		errBody.Details = details
	}
	_ = json.NewEncoder(w).Encode(errBody)

	// 4xx responses are correct rejections of bad input, not server
	// faults; they only show up at debug level.
	logLevel := logrus.ErrorLevel
	if status < http.StatusInternalServerError {
		logLevel = logrus.DebugLevel
	}

	// devErr is optional; only handle if provided
	fields := logrus.Fields{"status": status}
	if len(devErrs) > 0 && devErrs[0] != nil {
		fields["error"] = devErrs[0].Error()
	}
	Logger.WithFields(fields).Log(logLevel, publicMessage)
}

// RespondWithJSON for successful cases
func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
