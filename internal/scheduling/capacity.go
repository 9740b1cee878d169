// internal/scheduling/capacity.go
//
// Pure capacity arithmetic shared by the availability query path and the
// assignment validator. Nothing in this file performs I/O; malformed input
// degrades to "no capacity" / "no valid window" rather than an error.

package scheduling

import (
	"fmt"
	"time"

	"github.com/crewdesk/workforce-service/internal/models"
	"github.com/google/uuid"
)

const MinutesPerDay = 24 * 60

// Window is a half-open [StartMin, EndMin) wall-clock interval in minutes
// since midnight. Half-open means back-to-back tasks never falsely overlap.
type Window struct {
	StartMin int
	EndMin   int
}

// FullDay models a task without an explicit time window: it conservatively
// occupies the whole day.
var FullDay = Window{StartMin: 0, EndMin: MinutesPerDay}

func (w Window) Duration() int {
	return w.EndMin - w.StartMin
}

func (w Window) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d",
		w.StartMin/60, w.StartMin%60, w.EndMin/60, w.EndMin%60)
}

// Overlaps reports half-open interval intersection.
func Overlaps(a, b Window) bool {
	return a.StartMin < b.EndMin && b.StartMin < a.EndMin
}

// ParseClock parses a 24-hour "HH:MM" string into minutes since midnight.
// All five positions must match the shape exactly; "12:3x" is rejected,
// not truncated to 12:03.
func ParseClock(s string) (int, bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, false
	}
	for _, i := range [4]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// ParseWindow parses a (start, end) "HH:MM" pair. The end must be strictly
// after the start; anything else yields no window.
func ParseWindow(start, end string) (Window, bool) {
	s, okS := ParseClock(start)
	e, okE := ParseClock(end)
	if !okS || !okE || e <= s {
		return Window{}, false
	}
	return Window{StartMin: s, EndMin: e}, true
}

// DateOnly strips the time-of-day component, keeping the calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether two timestamps fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// IsActiveForDate evaluates the worker's employment lifecycle against a
// calendar date. An INACTIVE worker remains active for dates strictly
// before the inactivation cutoff; SUSPENDED and ON_LEAVE workers are never
// active for scheduling.
func IsActiveForDate(w *models.Worker, date time.Time) bool {
	switch w.Status {
	case models.WorkerStatusActive:
		return true
	case models.WorkerStatusInactive:
		if w.InactiveFrom == nil {
			return false
		}
		return DateOnly(date).Before(DateOnly(*w.InactiveFrom))
	default:
		return false
	}
}

// CapacityMinutes derives a worker's schedulable minutes for a date from
// their attendance status. PRESENT grants the full working day, HALF_DAY
// half of it (integer floor), everything else zero.
func CapacityMinutes(w *models.Worker, status models.AttendanceStatusType) int {
	hours := w.WorkingHoursPerDay
	if hours <= 0 {
		hours = models.DefaultWorkingHoursPerDay
	}
	switch status {
	case models.AttendancePresent:
		return hours * 60
	case models.AttendanceHalfDay:
		return hours * 60 / 2
	default:
		return 0
	}
}

// TaskWindow returns the wall-clock window a task occupies. Tasks without
// a valid window occupy the whole day.
func TaskWindow(t *models.Task) Window {
	if t.StartTime == nil || t.EndTime == nil {
		return FullDay
	}
	w, ok := ParseWindow(*t.StartTime, *t.EndTime)
	if !ok {
		return FullDay
	}
	return w
}

// DayUsage is the per-(worker, date) load derived from attendance and the
// worker's other tasks on that date.
type DayUsage struct {
	CapacityMin int
	AssignedMin int
	// Occupied holds the windows of the worker's other tasks; windowless
	// tasks appear as FullDay.
	Occupied []Window
}

// RemainingMin may go negative when windowless tasks over-consume the day.
func (u DayUsage) RemainingMin() int {
	return u.CapacityMin - u.AssignedMin
}

// ComputeDayUsage folds a worker's same-day tasks into a DayUsage.
// Cancelled tasks and the task identified by excludeTaskID (the one being
// edited) are skipped. A task with a real window consumes its duration; a
// windowless task consumes the worker's entire capacity for the date since
// its duration is unknown.
func ComputeDayUsage(
	w *models.Worker,
	attendance models.AttendanceStatusType,
	dayTasks []*models.Task,
	excludeTaskID uuid.UUID,
) DayUsage {
	usage := DayUsage{CapacityMin: CapacityMinutes(w, attendance)}
	for _, t := range dayTasks {
		if t.ID == excludeTaskID || t.Status == models.TaskStatusCancelled {
			continue
		}
		if t.HasWindow() {
			win := TaskWindow(t)
			usage.AssignedMin += win.Duration()
			usage.Occupied = append(usage.Occupied, win)
		} else {
			usage.AssignedMin += usage.CapacityMin
			usage.Occupied = append(usage.Occupied, FullDay)
		}
	}
	return usage
}

// OverlapsAny reports whether the requested window intersects any of the
// occupied windows.
func OverlapsAny(requested Window, occupied []Window) bool {
	for _, o := range occupied {
		if Overlaps(requested, o) {
			return true
		}
	}
	return false
}
