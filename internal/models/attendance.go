// internal/models/attendance.go

package models

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceStatusType string

const (
	AttendancePresent AttendanceStatusType = "PRESENT"
	AttendanceAbsent  AttendanceStatusType = "ABSENT"
	AttendanceHalfDay AttendanceStatusType = "HALF_DAY"
	AttendanceOnLeave AttendanceStatusType = "ON_LEAVE"
)

// GrantsCapacity reports whether an attendance status grants any task
// capacity at all. Only PRESENT and HALF_DAY do; ABSENT, ON_LEAVE and a
// missing record grant zero.
func (s AttendanceStatusType) GrantsCapacity() bool {
	return s == AttendancePresent || s == AttendanceHalfDay
}

// AttendanceRecord holds one worker's attendance for one calendar date.
// The (worker_id, date) pair is unique at the database level.
type AttendanceRecord struct {
	ID       uuid.UUID            `json:"id"`
	WorkerID uuid.UUID            `json:"worker_id"`
	Date     time.Time            `json:"date"`
	Status   AttendanceStatusType `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
