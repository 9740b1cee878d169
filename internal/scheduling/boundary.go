// internal/scheduling/boundary.go

package scheduling

import (
	"fmt"
	"net/http"
	"time"

	"github.com/crewdesk/workforce-service/internal/models"
	"github.com/crewdesk/workforce-service/internal/utils"
)

// CheckProjectBoundary enforces that a task's date never exceeds its
// project's end date. Only calendar dates are compared; it applies on
// every create and update regardless of which field changed.
func CheckProjectBoundary(dueDate time.Time, project *models.Project) error {
	if !DateOnly(dueDate).After(DateOnly(project.EndDate)) {
		return nil
	}
	return utils.NewAppError(
		http.StatusUnprocessableEntity,
		utils.ErrCodeBeyondProjectEnd,
		fmt.Sprintf("Task due date %s is after project %q end date %s; extend the project end date first",
			DateOnly(dueDate).Format(time.DateOnly),
			project.Name,
			DateOnly(project.EndDate).Format(time.DateOnly)),
	)
}
