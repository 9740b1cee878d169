// internal/repositories/worker_repository.go

package repositories

import (
	"context"

	"github.com/crewdesk/workforce-service/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

type WorkerRepository interface {
	Create(ctx context.Context, w *models.Worker) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Worker, error)
	GetByEmail(ctx context.Context, email string) (*models.Worker, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Worker, error)
	ListAll(ctx context.Context) ([]*models.Worker, error)

	Update(ctx context.Context, w *models.Worker) error
	UpdateIfVersion(ctx context.Context, w *models.Worker, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Worker) error) error
}

type workerRepo struct {
	*BaseVersionedRepo[*models.Worker]
	db DB
}

func NewWorkerRepository(db DB) WorkerRepository {
	r := &workerRepo{db: db}
	selectStmt := baseSelectWorker() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanWorker)
	return r
}

func (r *workerRepo) Create(ctx context.Context, w *models.Worker) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO workers (
            id, first_name, last_name, email, phone_number,
            role, status, inactive_from, working_hours_per_day,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9, NOW(), NOW(), 1)
    `,
		w.ID,
		w.FirstName,
		w.LastName,
		w.Email,
		w.PhoneNumber,
		w.Role,
		w.Status,
		w.InactiveFrom,
		w.WorkingHoursPerDay,
	)
	return err
}

func (r *workerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Worker, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *workerRepo) GetByEmail(ctx context.Context, email string) (*models.Worker, error) {
	row := r.db.QueryRow(ctx, baseSelectWorker()+" WHERE email=$1", email)
	return scanWorker(row)
}

func (r *workerRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Worker, error) {
	rows, err := r.db.Query(ctx, baseSelectWorker()+" WHERE id = ANY($1) ORDER BY first_name, last_name", ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *workerRepo) ListAll(ctx context.Context) ([]*models.Worker, error) {
	rows, err := r.db.Query(ctx, baseSelectWorker()+" ORDER BY first_name, last_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *workerRepo) Update(ctx context.Context, w *models.Worker) error {
	_, err := r.update(ctx, w, false, 0)
	return err
}

func (r *workerRepo) UpdateIfVersion(ctx context.Context, w *models.Worker, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, w, true, expected)
}

func (r *workerRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Worker) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *workerRepo) update(ctx context.Context, w *models.Worker, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
        UPDATE workers SET
            first_name=$1, last_name=$2, email=$3, phone_number=$4,
            role=$5, status=$6, inactive_from=$7, working_hours_per_day=$8,
            updated_at=NOW()
    `
	args := []any{
		w.FirstName, w.LastName, w.Email, w.PhoneNumber,
		w.Role, w.Status, w.InactiveFrom, w.WorkingHoursPerDay,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$9 AND row_version=$10`
		args = append(args, w.ID, expected)
	} else {
		sql += ` WHERE id=$9`
		args = append(args, w.ID)
	}

	return r.db.Exec(ctx, sql, args...)
}

func baseSelectWorker() string {
	return `
        SELECT
            id, first_name, last_name, email, phone_number,
            role, status, inactive_from, working_hours_per_day,
            created_at, updated_at, row_version
        FROM workers
    `
}

func scanWorker(row pgx.Row) (*models.Worker, error) {
	var w models.Worker
	err := row.Scan(
		&w.ID,
		&w.FirstName,
		&w.LastName,
		&w.Email,
		&w.PhoneNumber,
		&w.Role,
		&w.Status,
		&w.InactiveFrom,
		&w.WorkingHoursPerDay,
		&w.CreatedAt,
		&w.UpdatedAt,
		&w.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}
