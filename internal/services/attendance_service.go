// internal/services/attendance_service.go

package services

import (
	"context"
	"net/http"
	"time"

	"github.com/crewdesk/workforce-service/internal/dtos"
	"github.com/crewdesk/workforce-service/internal/models"
	"github.com/crewdesk/workforce-service/internal/repositories"
	"github.com/crewdesk/workforce-service/internal/utils"
	"github.com/google/uuid"
)

type AttendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	workerRepo     repositories.WorkerRepository
}

func NewAttendanceService(attendanceRepo repositories.AttendanceRepository, workerRepo repositories.WorkerRepository) *AttendanceService {
	return &AttendanceService{attendanceRepo: attendanceRepo, workerRepo: workerRepo}
}

// MarkAttendance records a worker's status for a date. One record per
// (worker, date); marking again replaces the previous status.
func (s *AttendanceService) MarkAttendance(ctx context.Context, req *dtos.MarkAttendanceRequest) (*dtos.AttendanceDTO, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	worker, err := s.workerRepo.GetByID(ctx, req.WorkerID)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Worker not found")
	}

	rec := &models.AttendanceRecord{
		ID:       uuid.New(),
		WorkerID: req.WorkerID,
		Date:     date,
		Status:   models.AttendanceStatusType(req.Status),
	}
	if err := s.attendanceRepo.Upsert(ctx, rec); err != nil {
		return nil, err
	}

	// Re-read so the DTO carries the stored row (upsert keeps the
	// original id and created_at when the record already existed).
	stored, err := s.attendanceRepo.GetByWorkerAndDate(ctx, req.WorkerID, date)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		stored = rec
	}
	dto := dtos.NewAttendanceDTO(stored)
	return &dto, nil
}

// ListAttendanceByDate returns every record marked for the date.
func (s *AttendanceService) ListAttendanceByDate(ctx context.Context, dateStr string) (*dtos.ListAttendanceResponse, error) {
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}
	records, err := s.attendanceRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return buildAttendanceList(records), nil
}

// ListWorkerAttendance returns a worker's records over a date range.
func (s *AttendanceService) ListWorkerAttendance(ctx context.Context, workerID uuid.UUID, fromStr, toStr string) (*dtos.ListAttendanceResponse, error) {
	from, err := parseDate(fromStr)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(toStr)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, utils.NewAppError(
			http.StatusBadRequest,
			utils.ErrCodeInvalidPayload,
			"to must not be before from",
		)
	}

	worker, err := s.workerRepo.GetByID(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Worker not found")
	}

	records, err := s.attendanceRepo.ListByWorkerAndDateRange(ctx, workerID, from, to)
	if err != nil {
		return nil, err
	}
	return buildAttendanceList(records), nil
}

func (s *AttendanceService) DeleteAttendance(ctx context.Context, workerID uuid.UUID, dateStr string) error {
	date, err := parseDate(dateStr)
	if err != nil {
		return err
	}
	rec, err := s.attendanceRepo.GetByWorkerAndDate(ctx, workerID, date)
	if err != nil {
		return err
	}
	if rec == nil {
		return utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"No attendance record for worker on "+date.Format(time.DateOnly))
	}
	return s.attendanceRepo.Delete(ctx, workerID, date)
}

func buildAttendanceList(records []*models.AttendanceRecord) *dtos.ListAttendanceResponse {
	resp := &dtos.ListAttendanceResponse{Results: []dtos.AttendanceDTO{}}
	for _, rec := range records {
		resp.Results = append(resp.Results, dtos.NewAttendanceDTO(rec))
	}
	resp.Total = len(resp.Results)
	return resp
}
