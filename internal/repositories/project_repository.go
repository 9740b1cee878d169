// internal/repositories/project_repository.go

package repositories

import (
	"context"

	"github.com/crewdesk/workforce-service/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

type ProjectRepository interface {
	Create(ctx context.Context, p *models.Project) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ListAll(ctx context.Context) ([]*models.Project, error)

	Update(ctx context.Context, p *models.Project) error
	UpdateIfVersion(ctx context.Context, p *models.Project, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Project) error) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type projectRepo struct {
	*BaseVersionedRepo[*models.Project]
	db DB
}

func NewProjectRepository(db DB) ProjectRepository {
	r := &projectRepo{db: db}
	selectStmt := baseSelectProject() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanProject)
	return r
}

func (r *projectRepo) Create(ctx context.Context, p *models.Project) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO projects (
            id, name, status, start_date, end_date, assigned_worker_ids,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6, NOW(), NOW(), 1)
    `,
		p.ID,
		p.Name,
		p.Status,
		p.StartDate,
		p.EndDate,
		p.AssignedWorkerIDs,
	)
	return err
}

func (r *projectRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *projectRepo) ListAll(ctx context.Context) ([]*models.Project, error) {
	rows, err := r.db.Query(ctx, baseSelectProject()+" ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *projectRepo) Update(ctx context.Context, p *models.Project) error {
	_, err := r.update(ctx, p, false, 0)
	return err
}

func (r *projectRepo) UpdateIfVersion(ctx context.Context, p *models.Project, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, p, true, expected)
}

func (r *projectRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Project) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *projectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id=$1`, id)
	return err
}

func (r *projectRepo) update(ctx context.Context, p *models.Project, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
        UPDATE projects SET
            name=$1, status=$2, start_date=$3, end_date=$4,
            assigned_worker_ids=$5, updated_at=NOW()
    `
	args := []any{
		p.Name, p.Status, p.StartDate, p.EndDate, p.AssignedWorkerIDs,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$6 AND row_version=$7`
		args = append(args, p.ID, expected)
	} else {
		sql += ` WHERE id=$6`
		args = append(args, p.ID)
	}

	return r.db.Exec(ctx, sql, args...)
}

func baseSelectProject() string {
	return `
        SELECT
            id, name, status, start_date, end_date, assigned_worker_ids,
            created_at, updated_at, row_version
        FROM projects
    `
}

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Status,
		&p.StartDate,
		&p.EndDate,
		&p.AssignedWorkerIDs,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
