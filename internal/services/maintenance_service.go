// internal/services/maintenance_service.go

package services

import (
	"context"
	"time"

	"github.com/crewdesk/workforce-service/internal/models"
	"github.com/crewdesk/workforce-service/internal/repositories"
	"github.com/crewdesk/workforce-service/internal/scheduling"
	"github.com/crewdesk/workforce-service/internal/utils"
)

// MaintenanceService runs the nightly sweep: overdue tasks that never
// reached a terminal status get flagged so supervisors can triage them
// the next morning.
type MaintenanceService struct {
	taskRepo repositories.TaskRepository
}

func NewMaintenanceService(taskRepo repositories.TaskRepository) *MaintenanceService {
	return &MaintenanceService{taskRepo: taskRepo}
}

// FlagOverdueTasks flags every unfinished task due strictly before
// today and returns how many it flagged. Safe to re-run: already
// flagged tasks are excluded by the query.
func (s *MaintenanceService) FlagOverdueTasks(ctx context.Context) (int, error) {
	today := scheduling.DateOnly(time.Now().UTC())

	overdue, err := s.taskRepo.ListOverdueUnfinished(ctx, today)
	if err != nil {
		return 0, err
	}

	flagged := 0
	for _, task := range overdue {
		err := s.taskRepo.UpdateWithRetry(ctx, task.ID, func(t *models.Task) error {
			t.FlaggedForReview = true
			return nil
		})
		if err != nil {
			utils.Logger.WithError(err).Errorf("Failed to flag overdue task %s", task.ID)
			continue
		}
		flagged++
	}

	if flagged > 0 {
		utils.Logger.Infof("Nightly maintenance flagged %d overdue task(s) for review", flagged)
	}
	return flagged, nil
}

// RunNightly is the cron entry point; it logs instead of propagating
// so a failed sweep never kills the scheduler.
func (s *MaintenanceService) RunNightly() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if _, err := s.FlagOverdueTasks(ctx); err != nil {
		utils.Logger.WithError(err).Error("Nightly task maintenance failed")
	}
}
