package dtos

import (
	"github.com/google/uuid"
)

/*
AvailableWorkerDTO is one row of the assignment picker: a worker who is
attendance-present and active on the requested date, annotated with
capacity figures and an assignability verdict. Blocked workers are
reported as data, never as an error.
*/
type AvailableWorkerDTO struct {
	WorkerID         uuid.UUID `json:"worker_id"`
	Name             string    `json:"name"`
	AttendanceStatus string    `json:"attendance_status"`

	CapacityHours  float64 `json:"capacity_hours"`
	AssignedHours  float64 `json:"assigned_hours"`
	RemainingHours float64 `json:"remaining_hours"`

	CanAssign     bool   `json:"can_assign"`
	BlockedReason string `json:"blocked_reason,omitempty"`
}

type AvailableWorkersResponse struct {
	Date      string  `json:"date"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`

	Count   int                  `json:"count"`
	Message string               `json:"message,omitempty"`
	Workers []AvailableWorkerDTO `json:"workers"`
}
