// internal/services/availability_service.go

package services

import (
	"context"
	"time"

	"github.com/crewdesk/workforce-service/internal/dtos"
	"github.com/crewdesk/workforce-service/internal/models"
	"github.com/crewdesk/workforce-service/internal/repositories"
	"github.com/crewdesk/workforce-service/internal/scheduling"
	"github.com/google/uuid"
)

// AvailabilityService is the read-only side of the engine: it feeds the
// assignment picker with per-worker capacity figures and verdicts. Its
// results are advisory snapshots; the assignment validator re-derives
// the same facts at commit time.
type AvailabilityService struct {
	workerRepo     repositories.WorkerRepository
	attendanceRepo repositories.AttendanceRepository
	taskRepo       repositories.TaskRepository
}

func NewAvailabilityService(
	workerRepo repositories.WorkerRepository,
	attendanceRepo repositories.AttendanceRepository,
	taskRepo repositories.TaskRepository,
) *AvailabilityService {
	return &AvailabilityService{
		workerRepo:     workerRepo,
		attendanceRepo: attendanceRepo,
		taskRepo:       taskRepo,
	}
}

// ListAvailableWorkers returns every worker with capacity-granting
// attendance on the date who is active-for-date, annotated with an
// assignability verdict for the optional requested window.
func (s *AvailabilityService) ListAvailableWorkers(
	ctx context.Context,
	dateStr string,
	startTime, endTime *string,
) (*dtos.AvailableWorkersResponse, error) {
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}
	window, err := parseOptionalWindow(startTime, endTime)
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	byWorker := make(map[uuid.UUID]*models.AttendanceRecord, len(records))
	var workerIDs []uuid.UUID
	for _, rec := range records {
		if !rec.Status.GrantsCapacity() {
			continue
		}
		byWorker[rec.WorkerID] = rec
		workerIDs = append(workerIDs, rec.WorkerID)
	}

	resp := &dtos.AvailableWorkersResponse{
		Date:      date.Format(time.DateOnly),
		StartTime: startTime,
		EndTime:   endTime,
		Workers:   []dtos.AvailableWorkerDTO{},
	}

	if len(workerIDs) > 0 {
		workers, err := s.workerRepo.ListByIDs(ctx, workerIDs)
		if err != nil {
			return nil, err
		}
		for _, w := range workers {
			if w.Role != models.RoleWorker || !scheduling.IsActiveForDate(w, date) {
				continue
			}
			rec := byWorker[w.ID]

			dayTasks, err := s.taskRepo.ListActiveByWorkerAndDate(ctx, w.ID, date)
			if err != nil {
				return nil, err
			}
			usage := scheduling.ComputeDayUsage(w, rec.Status, dayTasks, uuid.Nil)
			verdict := scheduling.Evaluate(rec.Status, usage, window)

			remaining := usage.RemainingMin()
			if remaining < 0 {
				remaining = 0
			}
			dto := dtos.AvailableWorkerDTO{
				WorkerID:         w.ID,
				Name:             w.FullName(),
				AttendanceStatus: string(rec.Status),
				CapacityHours:    minutesToHours(usage.CapacityMin),
				AssignedHours:    minutesToHours(usage.AssignedMin),
				RemainingHours:   minutesToHours(remaining),
				CanAssign:        verdict.CanAssign,
			}
			if !verdict.CanAssign {
				dto.BlockedReason = verdict.Reason.Message()
			}
			resp.Workers = append(resp.Workers, dto)
		}
	}

	resp.Count = len(resp.Workers)
	if resp.Count == 0 {
		resp.Message = "No workers are available on " + resp.Date + "; check attendance records for that date"
	}
	return resp, nil
}
