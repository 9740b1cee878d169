package dtos

import (
	"time"

	"github.com/crewdesk/workforce-service/internal/models"
	"github.com/google/uuid"
)

type MarkAttendanceRequest struct {
	WorkerID uuid.UUID `json:"worker_id" validate:"required"`
	Date     string    `json:"date" validate:"required,datetime=2006-01-02"`
	Status   string    `json:"status" validate:"required,oneof=PRESENT ABSENT HALF_DAY ON_LEAVE"`
}

type AttendanceDTO struct {
	ID       uuid.UUID `json:"id"`
	WorkerID uuid.UUID `json:"worker_id"`
	Date     string    `json:"date"`
	Status   string    `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListAttendanceResponse struct {
	Results []AttendanceDTO `json:"results"`
	Total   int             `json:"total"`
}

func NewAttendanceDTO(rec *models.AttendanceRecord) AttendanceDTO {
	return AttendanceDTO{
		ID:        rec.ID,
		WorkerID:  rec.WorkerID,
		Date:      rec.Date.Format(time.DateOnly),
		Status:    string(rec.Status),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
