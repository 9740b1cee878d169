// internal/models/task.go

package models

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatusType string

const (
	TaskStatusPending    TaskStatusType = "PENDING"
	TaskStatusInProgress TaskStatusType = "IN_PROGRESS"
	TaskStatusOnHold     TaskStatusType = "ON_HOLD"
	TaskStatusCompleted  TaskStatusType = "COMPLETED"
	TaskStatusCancelled  TaskStatusType = "CANCELLED"
)

// Task is a unit of scheduled work on a project. StartTime/EndTime are
// optional wall-clock "HH:MM" strings; both are present or both absent.
type Task struct {
	Versioned

	ID          uuid.UUID      `json:"id"`
	ProjectID   uuid.UUID      `json:"project_id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Status      TaskStatusType `json:"status"`

	AssignedWorkerIDs []uuid.UUID `json:"assigned_worker_ids"`

	DueDate   time.Time `json:"due_date"`
	StartTime *string   `json:"start_time,omitempty"`
	EndTime   *string   `json:"end_time,omitempty"`

	FlaggedForReview bool `json:"flagged_for_review"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Task) GetID() string {
	return t.ID.String()
}

// HasWindow reports whether the task carries an explicit time window.
func (t *Task) HasWindow() bool {
	return t.StartTime != nil && t.EndTime != nil
}

// IsTerminal reports whether the task is in a final state.
func (t *Task) IsTerminal() bool {
	return t.Status == TaskStatusCompleted || t.Status == TaskStatusCancelled
}

// HasWorker reports whether the worker is assigned to this task.
func (t *Task) HasWorker(workerID uuid.UUID) bool {
	for _, id := range t.AssignedWorkerIDs {
		if id == workerID {
			return true
		}
	}
	return false
}
