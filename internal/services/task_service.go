// internal/services/task_service.go

package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/crewdesk/workforce-service/internal/dtos"
	"github.com/crewdesk/workforce-service/internal/models"
	"github.com/crewdesk/workforce-service/internal/repositories"
	"github.com/crewdesk/workforce-service/internal/scheduling"
	"github.com/crewdesk/workforce-service/internal/utils"
	"github.com/google/uuid"
)

// AuditPublisher decouples the write path from the AMQP client; audit
// delivery is best-effort and never fails a task write.
type AuditPublisher interface {
	Publish(ctx context.Context, event *models.TaskAuditEvent) error
}

// TaskService owns the task write path: boundary check, per-(worker,
// date) serialization, assignment validation, persistence, and the
// roster-sync side effect, in that order.
type TaskService struct {
	taskRepo       repositories.TaskRepository
	workerRepo     repositories.WorkerRepository
	projectRepo    repositories.ProjectRepository
	attendanceRepo repositories.AttendanceRepository
	locks          *scheduling.DayLocks
	auditPublisher AuditPublisher // optional
}

func NewTaskService(
	taskRepo repositories.TaskRepository,
	workerRepo repositories.WorkerRepository,
	projectRepo repositories.ProjectRepository,
	attendanceRepo repositories.AttendanceRepository,
	locks *scheduling.DayLocks,
	auditPublisher AuditPublisher,
) *TaskService {
	return &TaskService{
		taskRepo:       taskRepo,
		workerRepo:     workerRepo,
		projectRepo:    projectRepo,
		attendanceRepo: attendanceRepo,
		locks:          locks,
		auditPublisher: auditPublisher,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, req *dtos.TaskWriteRequest) (*dtos.TaskWriteResponse, error) {
	return s.writeTask(ctx, uuid.Nil, req)
}

func (s *TaskService) UpdateTask(ctx context.Context, taskID uuid.UUID, req *dtos.TaskWriteRequest) (*dtos.TaskWriteResponse, error) {
	existing, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Task not found")
	}
	return s.writeTask(ctx, taskID, req)
}

// writeTask is the shared create/update flow. taskID is uuid.Nil on
// create; on update it also excludes the task from its own overlap and
// capacity checks so resubmitting unchanged values stays valid.
func (s *TaskService) writeTask(ctx context.Context, taskID uuid.UUID, req *dtos.TaskWriteRequest) (*dtos.TaskWriteResponse, error) {
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	window, err := parseOptionalWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	workerIDs := req.WorkerIDs()
	if len(workerIDs) == 0 {
		return nil, utils.NewAppError(
			http.StatusBadRequest,
			utils.ErrCodeInvalidPayload,
			"At least one assigned worker is required",
		)
	}

	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Project not found")
	}

	if err := scheduling.CheckProjectBoundary(dueDate, project); err != nil {
		return nil, err
	}

	// Everything from validation to persist runs under the (worker, date)
	// locks; a concurrent request for any of the same workers on the same
	// date waits here instead of double-booking.
	release := s.locks.Acquire(dueDate, workerIDs)
	defer release()

	workers, err := s.resolveWorkers(ctx, workerIDs)
	if err != nil {
		return nil, err
	}

	attendance := make(map[uuid.UUID]*models.AttendanceRecord, len(workers))
	dayTasks := make(map[uuid.UUID][]*models.Task, len(workers))
	for _, w := range workers {
		rec, err := s.attendanceRepo.GetByWorkerAndDate(ctx, w.ID, dueDate)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			attendance[w.ID] = rec
		}
		tasks, err := s.taskRepo.ListActiveByWorkerAndDate(ctx, w.ID, dueDate)
		if err != nil {
			return nil, err
		}
		dayTasks[w.ID] = tasks
	}

	if err := scheduling.ValidateAssignment(scheduling.ValidationInput{
		Date:          dueDate,
		Window:        window,
		Workers:       workers,
		Attendance:    attendance,
		DayTasks:      dayTasks,
		ExcludeTaskID: taskID,
	}); err != nil {
		return nil, err
	}

	task, action, err := s.persistTask(ctx, taskID, req, dueDate, workerIDs)
	if err != nil {
		return nil, err
	}

	added, err := s.syncProjectRoster(ctx, project.ID, workerIDs)
	if err != nil {
		return nil, err
	}

	s.publishAudit(ctx, task, action)

	return &dtos.TaskWriteResponse{
		Task:                  dtos.NewTaskDTO(task),
		WorkersAddedToProject: added,
	}, nil
}

// resolveWorkers loads every referenced worker and rejects the request
// if any is missing.
func (s *TaskService) resolveWorkers(ctx context.Context, workerIDs []uuid.UUID) ([]*models.Worker, error) {
	workers, err := s.workerRepo.ListByIDs(ctx, workerIDs)
	if err != nil {
		return nil, err
	}
	if len(workers) != len(workerIDs) {
		found := make(map[uuid.UUID]bool, len(workers))
		for _, w := range workers {
			found[w.ID] = true
		}
		var missing []string
		for _, id := range workerIDs {
			if !found[id] {
				missing = append(missing, id.String())
			}
		}
		return nil, utils.NewAppError(
			http.StatusNotFound,
			utils.ErrCodeNotFound,
			fmt.Sprintf("Assigned workers not found: %s", strings.Join(missing, ", ")),
		).WithDetails(missing)
	}
	return workers, nil
}

func (s *TaskService) persistTask(
	ctx context.Context,
	taskID uuid.UUID,
	req *dtos.TaskWriteRequest,
	dueDate time.Time,
	workerIDs []uuid.UUID,
) (*models.Task, models.AuditActionType, error) {
	if taskID == uuid.Nil {
		task := &models.Task{
			ID:                uuid.New(),
			ProjectID:         req.ProjectID,
			Title:             req.Title,
			Description:       req.Description,
			Status:            models.TaskStatusPending,
			AssignedWorkerIDs: workerIDs,
			DueDate:           dueDate,
			StartTime:         req.StartTime,
			EndTime:           req.EndTime,
			CreatedAt:         time.Now().UTC(),
			UpdatedAt:         time.Now().UTC(),
		}
		if err := s.taskRepo.Create(ctx, task); err != nil {
			return nil, "", err
		}
		return task, models.AuditActionCreated, nil
	}

	var updated *models.Task
	err := s.taskRepo.UpdateWithRetry(ctx, taskID, func(t *models.Task) error {
		t.ProjectID = req.ProjectID
		t.Title = req.Title
		t.Description = req.Description
		t.AssignedWorkerIDs = workerIDs
		t.DueDate = dueDate
		t.StartTime = req.StartTime
		t.EndTime = req.EndTime
		updated = t
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return updated, models.AuditActionUpdated, nil
}

// syncProjectRoster unions the assignees into the project roster and
// reports how many were new. The roster is monotonic: it only grows.
func (s *TaskService) syncProjectRoster(ctx context.Context, projectID uuid.UUID, workerIDs []uuid.UUID) (int, error) {
	added := 0
	err := s.projectRepo.UpdateWithRetry(ctx, projectID, func(p *models.Project) error {
		added = 0 // recomputed on every optimistic retry
		for _, id := range workerIDs {
			if !p.HasWorker(id) {
				p.AssignedWorkerIDs = append(p.AssignedWorkerIDs, id)
				added++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

func (s *TaskService) publishAudit(ctx context.Context, task *models.Task, action models.AuditActionType) {
	if s.auditPublisher == nil {
		return
	}
	event := &models.TaskAuditEvent{
		TaskID:     task.ID,
		ProjectID:  task.ProjectID,
		Action:     action,
		WorkerIDs:  task.AssignedWorkerIDs,
		DueDate:    task.DueDate.Format(time.DateOnly),
		StartTime:  task.StartTime,
		EndTime:    task.EndTime,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.auditPublisher.Publish(ctx, event); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to publish %s audit event for task %s", action, task.ID)
	}
}

func (s *TaskService) GetTask(ctx context.Context, taskID uuid.UUID) (*dtos.TaskDTO, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Task not found")
	}
	dto := dtos.NewTaskDTO(task)
	return &dto, nil
}

// ListTasks returns tasks filtered by project, by date, or both.
func (s *TaskService) ListTasks(ctx context.Context, projectID *uuid.UUID, date *time.Time) (*dtos.ListTasksResponse, error) {
	var tasks []*models.Task
	var err error
	switch {
	case projectID != nil:
		tasks, err = s.taskRepo.ListByProjectID(ctx, *projectID)
	case date != nil:
		tasks, err = s.taskRepo.ListByDate(ctx, *date)
	default:
		return nil, utils.NewAppError(
			http.StatusBadRequest,
			utils.ErrCodeInvalidPayload,
			"Either project_id or date is required",
		)
	}
	if err != nil {
		return nil, err
	}

	resp := &dtos.ListTasksResponse{Results: []dtos.TaskDTO{}}
	for _, t := range tasks {
		if date != nil && !scheduling.SameDate(t.DueDate, *date) {
			continue
		}
		resp.Results = append(resp.Results, dtos.NewTaskDTO(t))
	}
	resp.Total = len(resp.Results)
	return resp, nil
}

// CancelTask moves a task to CANCELLED, freeing its workers' capacity.
// The roster keeps any workers the task introduced.
func (s *TaskService) CancelTask(ctx context.Context, taskID uuid.UUID) (*dtos.TaskDTO, error) {
	existing, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Task not found")
	}
	if existing.Status == models.TaskStatusCancelled {
		dto := dtos.NewTaskDTO(existing)
		return &dto, nil
	}

	var cancelled *models.Task
	err = s.taskRepo.UpdateWithRetry(ctx, taskID, func(t *models.Task) error {
		t.Status = models.TaskStatusCancelled
		cancelled = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishAudit(ctx, cancelled, models.AuditActionCancelled)

	dto := dtos.NewTaskDTO(cancelled)
	return &dto, nil
}
