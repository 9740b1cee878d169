// internal/scheduling/validator.go
//
// Write-path guard for task assignment. It re-derives the same facts as
// the availability query but treats any violation as a hard failure that
// aborts the write. Failures are user-facing business-rule rejections
// surfaced verbatim to the caller.

package scheduling

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/crewdesk/workforce-service/internal/models"
	"github.com/crewdesk/workforce-service/internal/utils"
	"github.com/google/uuid"
)

// ValidationInput is the full snapshot the validator decides on. The
// service layer resolves workers, attendance, and same-day tasks before
// calling in, so the validator itself stays pure and testable.
type ValidationInput struct {
	Date   time.Time
	Window *Window // nil when the task carries no time window

	// Workers are the resolved assignees, in request order.
	Workers []*models.Worker

	// Attendance maps worker ID to that worker's record for Date; absent
	// keys mean no attendance was marked.
	Attendance map[uuid.UUID]*models.AttendanceRecord

	// DayTasks maps worker ID to that worker's non-cancelled tasks on
	// Date, including the task being edited (excluded by ID below).
	DayTasks map[uuid.UUID][]*models.Task

	// ExcludeTaskID identifies the task being updated so re-validating a
	// task against its own unchanged window never fails. Zero on create.
	ExcludeTaskID uuid.UUID
}

// ValidateAssignment runs both validation passes and returns nil or the
// first violated rule as an *utils.AppError. It never partially accepts:
// either every worker passes or nothing is written.
func ValidateAssignment(in ValidationInput) error {
	if err := validateEligibilityForDate(in); err != nil {
		return err
	}
	// Pass B only applies when an explicit time window was supplied. A
	// windowless task is accepted without an overlap/capacity guarantee,
	// a known relaxation.
	if in.Window == nil {
		return nil
	}
	return validateCapacityAndOverlap(in)
}

// validateEligibilityForDate is Pass A: role, lifecycle, and attendance.
// Violations are aggregated per category and reported together, naming
// every offending worker.
func validateEligibilityForDate(in ValidationInput) error {
	dateLabel := DateOnly(in.Date).Format(time.DateOnly)

	var wrongRole, inactive, noAttendance, unavailable []string
	for _, w := range in.Workers {
		if w.Role != models.RoleWorker {
			wrongRole = append(wrongRole, w.FullName())
			continue
		}
		if !IsActiveForDate(w, in.Date) {
			inactive = append(inactive, w.FullName())
			continue
		}
		rec := in.Attendance[w.ID]
		switch {
		case rec == nil:
			noAttendance = append(noAttendance, w.FullName())
		case !rec.Status.GrantsCapacity():
			unavailable = append(unavailable, w.FullName())
		}
	}

	if len(wrongRole) > 0 {
		return utils.NewAppError(
			http.StatusUnprocessableEntity,
			utils.ErrCodeWorkerInactive,
			fmt.Sprintf("Only workers can be assigned to tasks; not assignable: %s", strings.Join(wrongRole, ", ")),
		).WithDetails(wrongRole)
	}
	if len(inactive) > 0 {
		return utils.NewAppError(
			http.StatusUnprocessableEntity,
			utils.ErrCodeWorkerInactive,
			fmt.Sprintf("Workers not active on %s: %s", dateLabel, strings.Join(inactive, ", ")),
		).WithDetails(inactive)
	}
	if len(noAttendance) > 0 || len(unavailable) > 0 {
		var parts []string
		code := utils.ErrCodeAttendanceUnavailable
		if len(noAttendance) > 0 {
			code = utils.ErrCodeAttendanceMissing
			parts = append(parts, fmt.Sprintf("no attendance marked for: %s", strings.Join(noAttendance, ", ")))
		}
		if len(unavailable) > 0 {
			parts = append(parts, fmt.Sprintf("attendance marked but not available for: %s", strings.Join(unavailable, ", ")))
		}
		return utils.NewAppError(
			http.StatusUnprocessableEntity,
			code,
			fmt.Sprintf("Cannot assign workers on %s: %s", dateLabel, strings.Join(parts, "; ")),
		).WithDetails(append(noAttendance, unavailable...))
	}
	return nil
}

// validateCapacityAndOverlap is Pass B: per-worker overlap and capacity
// against every other non-cancelled same-day task. Precedence, most
// specific first: overlap, half-day exhaustion, insufficient remaining.
func validateCapacityAndOverlap(in ValidationInput) error {
	requested := *in.Window

	var overlapping []string
	var halfDayExhausted []string
	var halfDayShort []string // carry their remaining-hours figure
	var fullDayShort []string

	for _, w := range in.Workers {
		rec := in.Attendance[w.ID]
		// Pass A guarantees rec is non-nil with a capacity-granting status.
		usage := ComputeDayUsage(w, rec.Status, in.DayTasks[w.ID], in.ExcludeTaskID)

		if OverlapsAny(requested, usage.Occupied) {
			overlapping = append(overlapping, w.FullName())
			continue
		}

		remaining := usage.RemainingMin()
		isHalfDay := rec.Status == models.AttendanceHalfDay

		if isHalfDay && remaining == 0 {
			halfDayExhausted = append(halfDayExhausted, w.FullName())
			continue
		}
		if requested.Duration() > remaining {
			if isHalfDay {
				halfDayShort = append(halfDayShort,
					fmt.Sprintf("%s has only %s remaining", w.FullName(), hoursLabel(remaining)))
			} else {
				fullDayShort = append(fullDayShort, w.FullName())
			}
		}
	}

	if len(overlapping) > 0 {
		return utils.NewAppError(
			http.StatusConflict,
			utils.ErrCodeTimeOverlap,
			fmt.Sprintf("Time window %s overlaps with existing task(s) for: %s",
				requested, strings.Join(overlapping, ", ")),
		).WithDetails(overlapping)
	}
	if len(halfDayExhausted) > 0 {
		return utils.NewAppError(
			http.StatusUnprocessableEntity,
			utils.ErrCodeHalfDayExhausted,
			fmt.Sprintf("%s has already completed their half-day work", strings.Join(halfDayExhausted, ", ")),
		).WithDetails(halfDayExhausted)
	}
	if len(halfDayShort) > 0 || len(fullDayShort) > 0 {
		var parts []string
		parts = append(parts, halfDayShort...)
		if len(fullDayShort) > 0 {
			parts = append(parts, fmt.Sprintf("insufficient available hours for: %s", strings.Join(fullDayShort, ", ")))
		}
		return utils.NewAppError(
			http.StatusUnprocessableEntity,
			utils.ErrCodeInsufficientHours,
			strings.Join(parts, "; "),
		).WithDetails(append(halfDayShort, fullDayShort...))
	}
	return nil
}

// hoursLabel renders minutes as a compact hours figure: 90 -> "1.5h".
func hoursLabel(min int) string {
	if min < 0 {
		min = 0
	}
	return strconv.FormatFloat(float64(min)/60.0, 'f', -1, 64) + "h"
}
