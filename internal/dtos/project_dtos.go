package dtos

import (
	"time"

	"github.com/crewdesk/workforce-service/internal/models"
	"github.com/google/uuid"
)

type CreateProjectRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type UpdateProjectRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE COMPLETED ARCHIVED"`
	StartDate *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type ProjectDTO struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Status string    `json:"status"`

	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	AssignedWorkerIDs []uuid.UUID `json:"assigned_worker_ids"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListProjectsResponse struct {
	Results []ProjectDTO `json:"results"`
	Total   int          `json:"total"`
}

func NewProjectDTO(p *models.Project) ProjectDTO {
	return ProjectDTO{
		ID:                p.ID,
		Name:              p.Name,
		Status:            string(p.Status),
		StartDate:         p.StartDate.Format(time.DateOnly),
		EndDate:           p.EndDate.Format(time.DateOnly),
		AssignedWorkerIDs: p.AssignedWorkerIDs,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
