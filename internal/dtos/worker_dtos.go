package dtos

import (
	"time"

	"github.com/crewdesk/workforce-service/internal/models"
	"github.com/google/uuid"
)

type CreateWorkerRequest struct {
	FirstName   string  `json:"first_name" validate:"required,max=100"`
	LastName    string  `json:"last_name" validate:"required,max=100"`
	Email       string  `json:"email" validate:"required,email"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,e164"`

	Role   string `json:"role" validate:"omitempty,oneof=WORKER SUPERVISOR"`
	Status string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED ON_LEAVE"`

	InactiveFrom       *string `json:"inactive_from,omitempty" validate:"omitempty,datetime=2006-01-02"`
	WorkingHoursPerDay int     `json:"working_hours_per_day" validate:"omitempty,min=1,max=24"`
}

type UpdateWorkerRequest struct {
	FirstName   *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName    *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,e164"`

	Role   *string `json:"role,omitempty" validate:"omitempty,oneof=WORKER SUPERVISOR"`
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED ON_LEAVE"`

	InactiveFrom       *string `json:"inactive_from,omitempty" validate:"omitempty,datetime=2006-01-02"`
	WorkingHoursPerDay *int    `json:"working_hours_per_day,omitempty" validate:"omitempty,min=1,max=24"`
}

type WorkerDTO struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber *string   `json:"phone_number,omitempty"`

	Role   string `json:"role"`
	Status string `json:"status"`

	InactiveFrom       *string `json:"inactive_from,omitempty"`
	WorkingHoursPerDay int     `json:"working_hours_per_day"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListWorkersResponse struct {
	Results []WorkerDTO `json:"results"`
	Total   int         `json:"total"`
}

func NewWorkerDTO(w *models.Worker) WorkerDTO {
	dto := WorkerDTO{
		ID:                 w.ID,
		FirstName:          w.FirstName,
		LastName:           w.LastName,
		Email:              w.Email,
		PhoneNumber:        w.PhoneNumber,
		Role:               string(w.Role),
		Status:             string(w.Status),
		WorkingHoursPerDay: w.WorkingHoursPerDay,
		CreatedAt:          w.CreatedAt,
		UpdatedAt:          w.UpdatedAt,
	}
	if w.InactiveFrom != nil {
		s := w.InactiveFrom.Format(time.DateOnly)
		dto.InactiveFrom = &s
	}
	return dto
}
