// internal/services/project_service.go

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

type ProjectService struct {
	projectRepo repositories.ProjectRepository
	taskRepo    repositories.TaskRepository
}

func NewProjectService(projectRepo repositories.ProjectRepository, taskRepo repositories.TaskRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, taskRepo: taskRepo}
}

func (s *ProjectService) CreateProject(ctx context.Context, req *dtos.CreateProjectRequest) (*dtos.ProjectDTO, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if endDate.Before(startDate) {
		return nil, utils.NewAppError(
			http.StatusBadRequest,
			utils.ErrCodeValidation,
			"end_date must not be before start_date",
		)
	}

	p := &models.Project{
		ID:                uuid.New(),
		Name:              req.Name,
		Status:            models.ProjectStatusActive,
		StartDate:         startDate,
		EndDate:           endDate,
		AssignedWorkerIDs: []uuid.UUID{},
		CreatedAt:         time.Now().UTC(),
		UpdatedAt:         time.Now().UTC(),
	}
	if err := s.projectRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	dto := dtos.NewProjectDTO(p)
	return &dto, nil
}

// UpdateProject edits project fields. Shrinking the end date past an
// existing task's due date is rejected so the date boundary stays true
// for every task already scheduled.
func (s *ProjectService) UpdateProject(ctx context.Context, projectID uuid.UUID, req *dtos.UpdateProjectRequest) (*dtos.ProjectDTO, error) {
	var startDate, endDate *time.Time
	if req.StartDate != nil {
		d, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, err
		}
		startDate = &d
	}
	if req.EndDate != nil {
		d, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, err
		}
		endDate = &d
	}

	if endDate != nil {
		tasks, err := s.taskRepo.ListByProjectID(ctx, projectID)
		if err != nil {
			return nil, err
		}
		for _, t := range tasks {
			if t.IsTerminal() {
				continue
			}
			if t.DueDate.After(*endDate) {
				return nil, utils.NewAppError(
					http.StatusUnprocessableEntity,
					utils.ErrCodeBeyondProjectEnd,
					"Cannot move end_date before "+t.DueDate.Format(time.DateOnly)+"; task \""+t.Title+"\" is due then",
				)
			}
		}
	}

	var updated *models.Project
	err := s.projectRepo.UpdateWithRetry(ctx, projectID, func(p *models.Project) error {
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Status != nil {
			p.Status = models.ProjectStatusType(*req.Status)
		}
		if startDate != nil {
			p.StartDate = *startDate
		}
		if endDate != nil {
			p.EndDate = *endDate
		}
		if p.EndDate.Before(p.StartDate) {
			return utils.NewAppError(
				http.StatusBadRequest,
				utils.ErrCodeValidation,
				"end_date must not be before start_date",
			)
		}
		updated = p
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Project not found")
		}
		return nil, err
	}
	dto := dtos.NewProjectDTO(updated)
	return &dto, nil
}

func (s *ProjectService) GetProject(ctx context.Context, projectID uuid.UUID) (*dtos.ProjectDTO, error) {
	p, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Project not found")
	}
	dto := dtos.NewProjectDTO(p)
	return &dto, nil
}

func (s *ProjectService) ListProjects(ctx context.Context) (*dtos.ListProjectsResponse, error) {
	projects, err := s.projectRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dtos.ListProjectsResponse{Results: []dtos.ProjectDTO{}}
	for _, p := range projects {
		resp.Results = append(resp.Results, dtos.NewProjectDTO(p))
	}
	resp.Total = len(resp.Results)
	return resp, nil
}
