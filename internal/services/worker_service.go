// internal/services/worker_service.go

package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/crewdesk/workforce-service/internal/dtos"
	"github.com/crewdesk/workforce-service/internal/models"
	"github.com/crewdesk/workforce-service/internal/repositories"
	"github.com/crewdesk/workforce-service/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
)

type WorkerService struct {
	workerRepo repositories.WorkerRepository
}

func NewWorkerService(workerRepo repositories.WorkerRepository) *WorkerService {
	return &WorkerService{workerRepo: workerRepo}
}

func (s *WorkerService) CreateWorker(ctx context.Context, req *dtos.CreateWorkerRequest) (*dtos.WorkerDTO, error) {
	existing, err := s.workerRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.NewAppError(http.StatusConflict, utils.ErrCodeConflict, "A worker with this email already exists")
	}

	w := &models.Worker{
		ID:                 uuid.New(),
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              req.Email,
		PhoneNumber:        req.PhoneNumber,
		Role:               models.RoleWorker,
		Status:             models.WorkerStatusActive,
		WorkingHoursPerDay: models.DefaultWorkingHoursPerDay,
		CreatedAt:          time.Now().UTC(),
		UpdatedAt:          time.Now().UTC(),
	}
	if req.Role != "" {
		w.Role = models.WorkerRoleType(req.Role)
	}
	if req.Status != "" {
		w.Status = models.WorkerStatusType(req.Status)
	}
	if req.WorkingHoursPerDay > 0 {
		w.WorkingHoursPerDay = req.WorkingHoursPerDay
	}
	if req.InactiveFrom != nil {
		d, err := parseDate(*req.InactiveFrom)
		if err != nil {
			return nil, err
		}
		w.InactiveFrom = &d
	}

	if err := checkInactiveInvariant(w); err != nil {
		return nil, err
	}

	if err := s.workerRepo.Create(ctx, w); err != nil {
		return nil, err
	}
	dto := dtos.NewWorkerDTO(w)
	return &dto, nil
}

func (s *WorkerService) UpdateWorker(ctx context.Context, workerID uuid.UUID, req *dtos.UpdateWorkerRequest) (*dtos.WorkerDTO, error) {
	var inactiveFrom *time.Time
	if req.InactiveFrom != nil {
		d, err := parseDate(*req.InactiveFrom)
		if err != nil {
			return nil, err
		}
		inactiveFrom = &d
	}

	var updated *models.Worker
	err := s.workerRepo.UpdateWithRetry(ctx, workerID, func(w *models.Worker) error {
		if req.FirstName != nil {
			w.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			w.LastName = *req.LastName
		}
		if req.Email != nil {
			w.Email = *req.Email
		}
		if req.PhoneNumber != nil {
			w.PhoneNumber = req.PhoneNumber
		}
		if req.Role != nil {
			w.Role = models.WorkerRoleType(*req.Role)
		}
		if req.Status != nil {
			w.Status = models.WorkerStatusType(*req.Status)
		}
		if inactiveFrom != nil {
			w.InactiveFrom = inactiveFrom
		}
		if req.WorkingHoursPerDay != nil {
			w.WorkingHoursPerDay = *req.WorkingHoursPerDay
		}
		if err := checkInactiveInvariant(w); err != nil {
			return err
		}
		updated = w
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Worker not found")
		}
		return nil, err
	}
	dto := dtos.NewWorkerDTO(updated)
	return &dto, nil
}

func (s *WorkerService) GetWorker(ctx context.Context, workerID uuid.UUID) (*dtos.WorkerDTO, error) {
	w, err := s.workerRepo.GetByID(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Worker not found")
	}
	dto := dtos.NewWorkerDTO(w)
	return &dto, nil
}

func (s *WorkerService) ListWorkers(ctx context.Context) (*dtos.ListWorkersResponse, error) {
	workers, err := s.workerRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dtos.ListWorkersResponse{Results: []dtos.WorkerDTO{}}
	for _, w := range workers {
		resp.Results = append(resp.Results, dtos.NewWorkerDTO(w))
	}
	resp.Total = len(resp.Results)
	return resp, nil
}

// checkInactiveInvariant rejects an INACTIVE worker without a cutoff
// date; active-for-date would otherwise be undecidable.
func checkInactiveInvariant(w *models.Worker) error {
	if w.Status == models.WorkerStatusInactive && w.InactiveFrom == nil {
		return utils.NewAppError(
			http.StatusBadRequest,
			utils.ErrCodeValidation,
			"inactive_from is required when status is INACTIVE",
		)
	}
	return nil
}
