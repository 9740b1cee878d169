package dtos

import (
	"time"

	"github.com/crewdesk/workforce-service/internal/models"
	"github.com/google/uuid"
)

/*
TaskWriteRequest is the body for POST /api/v1/tasks and PUT
/api/v1/tasks/{id}. The legacy single `assigned_to` field is still
accepted alongside the `assigned_workers` set; WorkerIDs() merges them.
*/
type TaskWriteRequest struct {
	ProjectID   uuid.UUID `json:"project_id" validate:"required"`
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description,omitempty" validate:"max=2000"`

	DueDate   string  `json:"due_date" validate:"required,datetime=2006-01-02"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`

	AssignedTo      *uuid.UUID  `json:"assigned_to,omitempty"`
	AssignedWorkers []uuid.UUID `json:"assigned_workers,omitempty"`
}

// WorkerIDs merges the legacy single assignee with the set form,
// deduplicated, preserving request order.
func (r *TaskWriteRequest) WorkerIDs() []uuid.UUID {
	seen := map[uuid.UUID]bool{}
	var out []uuid.UUID
	add := func(id uuid.UUID) {
		if id != uuid.Nil && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	if r.AssignedTo != nil {
		add(*r.AssignedTo)
	}
	for _, id := range r.AssignedWorkers {
		add(id)
	}
	return out
}

type TaskDTO struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"project_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`

	AssignedWorkerIDs []uuid.UUID `json:"assigned_worker_ids"`

	DueDate   string  `json:"due_date"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`

	FlaggedForReview bool `json:"flagged_for_review"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskWriteResponse echoes the persisted task plus side-effect metadata.
type TaskWriteResponse struct {
	Task TaskDTO `json:"task"`

	// WorkersAddedToProject counts assignees newly unioned into the
	// project roster by this write.
	WorkersAddedToProject int `json:"workers_added_to_project"`
}

type ListTasksResponse struct {
	Results []TaskDTO `json:"results"`
	Total   int       `json:"total"`
}

func NewTaskDTO(t *models.Task) TaskDTO {
	return TaskDTO{
		ID:                t.ID,
		ProjectID:         t.ProjectID,
		Title:             t.Title,
		Description:       t.Description,
		Status:            string(t.Status),
		AssignedWorkerIDs: t.AssignedWorkerIDs,
		DueDate:           t.DueDate.Format(time.DateOnly),
		StartTime:         t.StartTime,
		EndTime:           t.EndTime,
		FlaggedForReview:  t.FlaggedForReview,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}
