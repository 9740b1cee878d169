// internal/repositories/attendance_repository.go

package repositories

import (
	"context"
	"time"

	"github.com/crewdesk/workforce-service/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
)

type AttendanceRepository interface {
	// Upsert writes the single record for (worker, date); a second write
	// for the same pair replaces the status rather than duplicating.
	Upsert(ctx context.Context, rec *models.AttendanceRecord) error

	GetByWorkerAndDate(ctx context.Context, workerID uuid.UUID, date time.Time) (*models.AttendanceRecord, error)
	ListByDate(ctx context.Context, date time.Time) ([]*models.AttendanceRecord, error)
	ListByWorkerAndDateRange(ctx context.Context, workerID uuid.UUID, from, to time.Time) ([]*models.AttendanceRecord, error)

	Delete(ctx context.Context, workerID uuid.UUID, date time.Time) error
}

type attendanceRepo struct {
	db DB
}

func NewAttendanceRepository(db DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Upsert(ctx context.Context, rec *models.AttendanceRecord) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO attendance_records (
            id, worker_id, date, status, created_at, updated_at
        ) VALUES ($1,$2,$3,$4, NOW(), NOW())
        ON CONFLICT (worker_id, date)
        DO UPDATE SET status=EXCLUDED.status, updated_at=NOW()
    `,
		rec.ID,
		rec.WorkerID,
		rec.Date,
		rec.Status,
	)
	return err
}

func (r *attendanceRepo) GetByWorkerAndDate(ctx context.Context, workerID uuid.UUID, date time.Time) (*models.AttendanceRecord, error) {
	row := r.db.QueryRow(ctx, baseSelectAttendance()+" WHERE worker_id=$1 AND date=$2", workerID, date)
	return scanAttendance(row)
}

func (r *attendanceRepo) ListByDate(ctx context.Context, date time.Time) ([]*models.AttendanceRecord, error) {
	rows, err := r.db.Query(ctx, baseSelectAttendance()+" WHERE date=$1 ORDER BY worker_id", date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *attendanceRepo) ListByWorkerAndDateRange(ctx context.Context, workerID uuid.UUID, from, to time.Time) ([]*models.AttendanceRecord, error) {
	rows, err := r.db.Query(ctx,
		baseSelectAttendance()+" WHERE worker_id=$1 AND date BETWEEN $2 AND $3 ORDER BY date",
		workerID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *attendanceRepo) Delete(ctx context.Context, workerID uuid.UUID, date time.Time) error {
	_, err := r.db.Exec(ctx, `DELETE FROM attendance_records WHERE worker_id=$1 AND date=$2`, workerID, date)
	return err
}

func baseSelectAttendance() string {
	return `
        SELECT
            id, worker_id, date, status, created_at, updated_at
        FROM attendance_records
    `
}

func scanAttendance(row pgx.Row) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	err := row.Scan(
		&rec.ID,
		&rec.WorkerID,
		&rec.Date,
		&rec.Status,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}
