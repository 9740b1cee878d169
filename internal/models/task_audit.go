// internal/models/task_audit.go

package models

import (
	"time"

	"github.com/google/uuid"
)

type AuditActionType string

const (
	AuditActionCreated   AuditActionType = "CREATED"
	AuditActionUpdated   AuditActionType = "UPDATED"
	AuditActionCancelled AuditActionType = "CANCELLED"
)

// TaskAuditEvent is the message published to the audit queue whenever a
// task write commits. The consumer persists it as a TaskAudit row.
type TaskAuditEvent struct {
	TaskID     uuid.UUID       `json:"task_id"`
	ProjectID  uuid.UUID       `json:"project_id"`
	Action     AuditActionType `json:"action"`
	WorkerIDs  []uuid.UUID     `json:"worker_ids,omitempty"`
	DueDate    string          `json:"due_date"`
	StartTime  *string         `json:"start_time,omitempty"`
	EndTime    *string         `json:"end_time,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type TaskAudit struct {
	ID         int64           `json:"id"`
	TaskID     uuid.UUID       `json:"task_id"`
	ProjectID  uuid.UUID       `json:"project_id"`
	Action     AuditActionType `json:"action"`
	Payload    []byte          `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
	CreatedAt  time.Time       `json:"created_at"`
}
