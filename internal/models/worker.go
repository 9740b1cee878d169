// internal/models/worker.go

package models

import (
	"time"

	"github.com/google/uuid"
)

type WorkerRoleType string

const (
	RoleWorker     WorkerRoleType = "WORKER"
	RoleSupervisor WorkerRoleType = "SUPERVISOR"
)

type WorkerStatusType string

const (
	WorkerStatusActive    WorkerStatusType = "ACTIVE"
	WorkerStatusInactive  WorkerStatusType = "INACTIVE"
	WorkerStatusSuspended WorkerStatusType = "SUSPENDED"
	WorkerStatusOnLeave   WorkerStatusType = "ON_LEAVE"
)

const DefaultWorkingHoursPerDay = 8

type Worker struct {
	Versioned

	ID          uuid.UUID        `json:"id"`
	FirstName   string           `json:"first_name"`
	LastName    string           `json:"last_name"`
	Email       string           `json:"email"`
	PhoneNumber *string          `json:"phone_number,omitempty"`
	Role        WorkerRoleType   `json:"role"`
	Status      WorkerStatusType `json:"status"`

	// InactiveFrom is the first date the worker is NOT active. It must be
	// set whenever Status is INACTIVE.
	InactiveFrom *time.Time `json:"inactive_from,omitempty"`

	WorkingHoursPerDay int `json:"working_hours_per_day"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w *Worker) GetID() string {
	return w.ID.String()
}

func (w *Worker) FullName() string {
	return w.FirstName + " " + w.LastName
}
