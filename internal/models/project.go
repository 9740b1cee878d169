// internal/models/project.go

package models

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatusType string

const (
	ProjectStatusActive    ProjectStatusType = "ACTIVE"
	ProjectStatusCompleted ProjectStatusType = "COMPLETED"
	ProjectStatusArchived  ProjectStatusType = "ARCHIVED"
)

type Project struct {
	Versioned

	ID     uuid.UUID         `json:"id"`
	Name   string            `json:"name"`
	Status ProjectStatusType `json:"status"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	// AssignedWorkerIDs is the project roster. It accumulates: workers are
	// unioned in when first assigned to a task and never auto-removed.
	AssignedWorkerIDs []uuid.UUID `json:"assigned_worker_ids"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Project) GetID() string {
	return p.ID.String()
}

// HasWorker reports whether the worker is already on the roster.
func (p *Project) HasWorker(workerID uuid.UUID) bool {
	for _, id := range p.AssignedWorkerIDs {
		if id == workerID {
			return true
		}
	}
	return false
}
