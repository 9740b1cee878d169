// internal/repositories/task_repository.go

package repositories

import (
	"context"
	"time"

	"github.com/crewdesk/workforce-service/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

type TaskRepository interface {
	Create(ctx context.Context, t *models.Task) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	ListByProjectID(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error)
	ListByDate(ctx context.Context, date time.Time) ([]*models.Task, error)

	// ListActiveByWorkerAndDate returns the worker's non-cancelled tasks
	// on a date: the set the scheduling engine reasons about.
	ListActiveByWorkerAndDate(ctx context.Context, workerID uuid.UUID, date time.Time) ([]*models.Task, error)

	// ListOverdueUnfinished returns non-terminal, unflagged tasks whose
	// due date is strictly before the given date.
	ListOverdueUnfinished(ctx context.Context, before time.Time) ([]*models.Task, error)

	Update(ctx context.Context, t *models.Task) error
	UpdateIfVersion(ctx context.Context, t *models.Task, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Task) error) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type taskRepo struct {
	*BaseVersionedRepo[*models.Task]
	db DB
}

func NewTaskRepository(db DB) TaskRepository {
	r := &taskRepo{db: db}
	selectStmt := baseSelectTask() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanTask)
	return r
}

func (r *taskRepo) Create(ctx context.Context, t *models.Task) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO tasks (
            id, project_id, title, description, status,
            assigned_worker_ids, due_date, start_time, end_time,
            flagged_for_review, created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10, NOW(), NOW(), 1)
    `,
		t.ID,
		t.ProjectID,
		t.Title,
		t.Description,
		t.Status,
		t.AssignedWorkerIDs,
		t.DueDate,
		t.StartTime,
		t.EndTime,
		t.FlaggedForReview,
	)
	return err
}

func (r *taskRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *taskRepo) ListByProjectID(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error) {
	rows, err := r.db.Query(ctx, baseSelectTask()+" WHERE project_id=$1 ORDER BY due_date, created_at", projectID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *taskRepo) ListByDate(ctx context.Context, date time.Time) ([]*models.Task, error) {
	rows, err := r.db.Query(ctx, baseSelectTask()+" WHERE due_date=$1 ORDER BY created_at", date)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *taskRepo) ListActiveByWorkerAndDate(ctx context.Context, workerID uuid.UUID, date time.Time) ([]*models.Task, error) {
	rows, err := r.db.Query(ctx,
		baseSelectTask()+` WHERE due_date=$1 AND status <> $2 AND $3 = ANY(assigned_worker_ids) ORDER BY created_at`,
		date, models.TaskStatusCancelled, workerID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *taskRepo) ListOverdueUnfinished(ctx context.Context, before time.Time) ([]*models.Task, error) {
	rows, err := r.db.Query(ctx,
		baseSelectTask()+` WHERE due_date < $1 AND status <> ALL($2) AND NOT flagged_for_review ORDER BY due_date`,
		before, []models.TaskStatusType{models.TaskStatusCompleted, models.TaskStatusCancelled})
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *taskRepo) Update(ctx context.Context, t *models.Task) error {
	_, err := r.update(ctx, t, false, 0)
	return err
}

func (r *taskRepo) UpdateIfVersion(ctx context.Context, t *models.Task, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, t, true, expected)
}

func (r *taskRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Task) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *taskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id=$1`, id)
	return err
}

func (r *taskRepo) update(ctx context.Context, t *models.Task, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
        UPDATE tasks SET
            project_id=$1, title=$2, description=$3, status=$4,
            assigned_worker_ids=$5, due_date=$6, start_time=$7, end_time=$8,
            flagged_for_review=$9, updated_at=NOW()
    `
	args := []any{
		t.ProjectID, t.Title, t.Description, t.Status,
		t.AssignedWorkerIDs, t.DueDate, t.StartTime, t.EndTime,
		t.FlaggedForReview,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$10 AND row_version=$11`
		args = append(args, t.ID, expected)
	} else {
		sql += ` WHERE id=$10`
		args = append(args, t.ID)
	}

	return r.db.Exec(ctx, sql, args...)
}

func collectTasks(rows pgx.Rows) ([]*models.Task, error) {
	defer rows.Close()

	var out []*models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func baseSelectTask() string {
	return `
        SELECT
            id, project_id, title, description, status,
            assigned_worker_ids, due_date, start_time, end_time,
            flagged_for_review, created_at, updated_at, row_version
        FROM tasks
    `
}

func scanTask(row pgx.Row) (*models.Task, error) {
	var t models.Task
	err := row.Scan(
		&t.ID,
		&t.ProjectID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.AssignedWorkerIDs,
		&t.DueDate,
		&t.StartTime,
		&t.EndTime,
		&t.FlaggedForReview,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
