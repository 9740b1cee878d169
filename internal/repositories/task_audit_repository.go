// internal/repositories/task_audit_repository.go

package repositories

import (
	"context"

	"github.com/crewdesk/workforce-service/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
)

type TaskAuditRepository interface {
	Create(ctx context.Context, a *models.TaskAudit) error
	ListByTaskID(ctx context.Context, taskID uuid.UUID, limit int) ([]*models.TaskAudit, error)
}

type taskAuditRepo struct {
	db DB
}

func NewTaskAuditRepository(db DB) TaskAuditRepository {
	return &taskAuditRepo{db: db}
}

func (r *taskAuditRepo) Create(ctx context.Context, a *models.TaskAudit) error {
	row := r.db.QueryRow(ctx, `
        INSERT INTO task_audits (
            task_id, project_id, action, payload, occurred_at, created_at
        ) VALUES ($1,$2,$3,$4,$5, NOW())
        RETURNING id
    `,
		a.TaskID,
		a.ProjectID,
		a.Action,
		a.Payload,
		a.OccurredAt,
	)
	return row.Scan(&a.ID)
}

func (r *taskAuditRepo) ListByTaskID(ctx context.Context, taskID uuid.UUID, limit int) ([]*models.TaskAudit, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, `
        SELECT id, task_id, project_id, action, payload, occurred_at, created_at
        FROM task_audits
        WHERE task_id=$1
        ORDER BY id DESC
        LIMIT $2
    `, taskID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.TaskAudit
	for rows.Next() {
		a, err := scanTaskAudit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanTaskAudit(row pgx.Row) (*models.TaskAudit, error) {
	var a models.TaskAudit
	err := row.Scan(
		&a.ID,
		&a.TaskID,
		&a.ProjectID,
		&a.Action,
		&a.Payload,
		&a.OccurredAt,
		&a.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
