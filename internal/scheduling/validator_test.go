package scheduling

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/crewdesk/workforce-service/internal/models"
	"github.com/crewdesk/workforce-service/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)

func namedWorker(first, last string) *models.Worker {
	return &models.Worker{
		ID:                 uuid.New(),
		FirstName:          first,
		LastName:           last,
		Role:               models.RoleWorker,
		Status:             models.WorkerStatusActive,
		WorkingHoursPerDay: 8,
	}
}

func presentRecord(workerID uuid.UUID, status models.AttendanceStatusType) *models.AttendanceRecord {
	return &models.AttendanceRecord{
		ID:       uuid.New(),
		WorkerID: workerID,
		Date:     testDate,
		Status:   status,
	}
}

func mustWindow(t *testing.T, start, end string) *Window {
	t.Helper()
	w, ok := ParseWindow(start, end)
	require.True(t, ok)
	return &w
}

func appErr(t *testing.T, err error) *utils.AppError {
	t.Helper()
	require.Error(t, err)
	var ae *utils.AppError
	require.True(t, errors.As(err, &ae), "expected *utils.AppError, got %T", err)
	return ae
}

func TestValidateAssignmentHappyPath(t *testing.T) {
	w := namedWorker("Maya", "Lindgren")
	in := ValidationInput{
		Date:       testDate,
		Window:     mustWindow(t, "09:00", "12:00"),
		Workers:    []*models.Worker{w},
		Attendance: map[uuid.UUID]*models.AttendanceRecord{w.ID: presentRecord(w.ID, models.AttendancePresent)},
		DayTasks:   map[uuid.UUID][]*models.Task{},
	}
	require.NoError(t, ValidateAssignment(in))
}

func TestValidateAssignmentRejectsSupervisors(t *testing.T) {
	sup := namedWorker("Igor", "Planck")
	sup.Role = models.RoleSupervisor

	in := ValidationInput{
		Date:    testDate,
		Workers: []*models.Worker{sup},
	}
	ae := appErr(t, ValidateAssignment(in))
	require.Equal(t, http.StatusUnprocessableEntity, ae.StatusCode)
	require.Equal(t, utils.ErrCodeWorkerInactive, ae.Code)
	require.Contains(t, ae.Message, "Igor Planck")
}

func TestValidateAssignmentRejectsInactiveWorkers(t *testing.T) {
	cutoff := testDate.AddDate(0, 0, -1)
	gone := namedWorker("Rita", "Okafor")
	gone.Status = models.WorkerStatusInactive
	gone.InactiveFrom = &cutoff

	in := ValidationInput{
		Date:    testDate,
		Workers: []*models.Worker{gone},
	}
	ae := appErr(t, ValidateAssignment(in))
	require.Equal(t, utils.ErrCodeWorkerInactive, ae.Code)
	require.Contains(t, ae.Message, "Workers not active on 2026-04-15")
	require.Contains(t, ae.Message, "Rita Okafor")
}

func TestValidateAssignmentAggregatesAttendanceProblems(t *testing.T) {
	missing := namedWorker("Jon", "Beck")
	absent := namedWorker("Lea", "Sorg")

	in := ValidationInput{
		Date:    testDate,
		Workers: []*models.Worker{missing, absent},
		Attendance: map[uuid.UUID]*models.AttendanceRecord{
			absent.ID: presentRecord(absent.ID, models.AttendanceAbsent),
		},
	}
	ae := appErr(t, ValidateAssignment(in))
	require.Equal(t, http.StatusUnprocessableEntity, ae.StatusCode)
	require.Equal(t, utils.ErrCodeAttendanceMissing, ae.Code)
	require.Contains(t, ae.Message, "no attendance marked for: Jon Beck")
	require.Contains(t, ae.Message, "attendance marked but not available for: Lea Sorg")
}

func TestValidateAssignmentAttendanceUnavailableCode(t *testing.T) {
	onLeave := namedWorker("Tom", "Vik")
	in := ValidationInput{
		Date:    testDate,
		Workers: []*models.Worker{onLeave},
		Attendance: map[uuid.UUID]*models.AttendanceRecord{
			onLeave.ID: presentRecord(onLeave.ID, models.AttendanceOnLeave),
		},
	}
	ae := appErr(t, ValidateAssignment(in))
	require.Equal(t, utils.ErrCodeAttendanceUnavailable, ae.Code)
}

func TestValidateAssignmentOverlapConflict(t *testing.T) {
	w := namedWorker("Maya", "Lindgren")
	existing := windowedTask("10:00", "12:00")

	in := ValidationInput{
		Date:       testDate,
		Window:     mustWindow(t, "11:00", "13:00"),
		Workers:    []*models.Worker{w},
		Attendance: map[uuid.UUID]*models.AttendanceRecord{w.ID: presentRecord(w.ID, models.AttendancePresent)},
		DayTasks:   map[uuid.UUID][]*models.Task{w.ID: {existing}},
	}
	ae := appErr(t, ValidateAssignment(in))
	require.Equal(t, http.StatusConflict, ae.StatusCode)
	require.Equal(t, utils.ErrCodeTimeOverlap, ae.Code)
	require.Contains(t, ae.Message, "11:00-13:00")
	require.Contains(t, ae.Message, "Maya Lindgren")
}

func TestValidateAssignmentBackToBackWindowsPass(t *testing.T) {
	w := namedWorker("Maya", "Lindgren")
	existing := windowedTask("09:00", "11:00")

	in := ValidationInput{
		Date:       testDate,
		Window:     mustWindow(t, "11:00", "13:00"),
		Workers:    []*models.Worker{w},
		Attendance: map[uuid.UUID]*models.AttendanceRecord{w.ID: presentRecord(w.ID, models.AttendancePresent)},
		DayTasks:   map[uuid.UUID][]*models.Task{w.ID: {existing}},
	}
	require.NoError(t, ValidateAssignment(in))
}

func TestValidateAssignmentHalfDayExhausted(t *testing.T) {
	w := namedWorker("Omar", "Reyes")
	// A 4h window exactly fills the half day (8h/2).
	existing := windowedTask("08:00", "12:00")

	in := ValidationInput{
		Date:       testDate,
		Window:     mustWindow(t, "13:00", "14:00"),
		Workers:    []*models.Worker{w},
		Attendance: map[uuid.UUID]*models.AttendanceRecord{w.ID: presentRecord(w.ID, models.AttendanceHalfDay)},
		DayTasks:   map[uuid.UUID][]*models.Task{w.ID: {existing}},
	}
	ae := appErr(t, ValidateAssignment(in))
	require.Equal(t, http.StatusUnprocessableEntity, ae.StatusCode)
	require.Equal(t, utils.ErrCodeHalfDayExhausted, ae.Code)
	require.Contains(t, ae.Message, "Omar Reyes has already completed their half-day work")
}

func TestValidateAssignmentHalfDayPartialRemaining(t *testing.T) {
	w := namedWorker("Omar", "Reyes")
	existing := windowedTask("08:00", "10:30") // 2.5h of a 4h half day

	in := ValidationInput{
		Date:       testDate,
		Window:     mustWindow(t, "12:00", "14:00"), // wants 2h, 1.5h left
		Workers:    []*models.Worker{w},
		Attendance: map[uuid.UUID]*models.AttendanceRecord{w.ID: presentRecord(w.ID, models.AttendanceHalfDay)},
		DayTasks:   map[uuid.UUID][]*models.Task{w.ID: {existing}},
	}
	ae := appErr(t, ValidateAssignment(in))
	require.Equal(t, utils.ErrCodeInsufficientHours, ae.Code)
	require.Contains(t, ae.Message, "Omar Reyes has only 1.5h remaining")
}

func TestValidateAssignmentInsufficientFullDay(t *testing.T) {
	w := namedWorker("Maya", "Lindgren")
	existing := windowedTask("08:00", "15:00") // 7h of an 8h day

	in := ValidationInput{
		Date:       testDate,
		Window:     mustWindow(t, "16:00", "18:00"), // wants 2h, 1h left
		Workers:    []*models.Worker{w},
		Attendance: map[uuid.UUID]*models.AttendanceRecord{w.ID: presentRecord(w.ID, models.AttendancePresent)},
		DayTasks:   map[uuid.UUID][]*models.Task{w.ID: {existing}},
	}
	ae := appErr(t, ValidateAssignment(in))
	require.Equal(t, utils.ErrCodeInsufficientHours, ae.Code)
	require.Contains(t, ae.Message, "insufficient available hours for: Maya Lindgren")
}

func TestValidateAssignmentOverlapPrecedesCapacity(t *testing.T) {
	// One worker overlaps, another is short on hours; the overlap
	// conflict must be the one reported.
	overlapper := namedWorker("Maya", "Lindgren")
	short := namedWorker("Omar", "Reyes")

	in := ValidationInput{
		Date:    testDate,
		Window:  mustWindow(t, "10:00", "14:00"),
		Workers: []*models.Worker{short, overlapper},
		Attendance: map[uuid.UUID]*models.AttendanceRecord{
			overlapper.ID: presentRecord(overlapper.ID, models.AttendancePresent),
			short.ID:      presentRecord(short.ID, models.AttendanceHalfDay),
		},
		DayTasks: map[uuid.UUID][]*models.Task{
			overlapper.ID: {windowedTask("13:00", "15:00")},
			short.ID:      {windowedTask("08:00", "09:30")},
		},
	}
	ae := appErr(t, ValidateAssignment(in))
	require.Equal(t, http.StatusConflict, ae.StatusCode)
	require.Equal(t, utils.ErrCodeTimeOverlap, ae.Code)
}

func TestValidateAssignmentExcludesEditedTask(t *testing.T) {
	// Resubmitting a task with its own unchanged window must stay valid.
	w := namedWorker("Maya", "Lindgren")
	mine := windowedTask("09:00", "12:00")

	in := ValidationInput{
		Date:          testDate,
		Window:        mustWindow(t, "09:00", "12:00"),
		Workers:       []*models.Worker{w},
		Attendance:    map[uuid.UUID]*models.AttendanceRecord{w.ID: presentRecord(w.ID, models.AttendancePresent)},
		DayTasks:      map[uuid.UUID][]*models.Task{w.ID: {mine}},
		ExcludeTaskID: mine.ID,
	}
	require.NoError(t, ValidateAssignment(in))
}

func TestValidateAssignmentWindowlessSkipsPassB(t *testing.T) {
	// A windowless request passes even against a fully booked day, but a
	// later windowed request sees the windowless task as a full-day block.
	w := namedWorker("Maya", "Lindgren")
	booked := windowedTask("00:00", "23:59")

	in := ValidationInput{
		Date:       testDate,
		Window:     nil,
		Workers:    []*models.Worker{w},
		Attendance: map[uuid.UUID]*models.AttendanceRecord{w.ID: presentRecord(w.ID, models.AttendancePresent)},
		DayTasks:   map[uuid.UUID][]*models.Task{w.ID: {booked}},
	}
	require.NoError(t, ValidateAssignment(in))

	windowless := &models.Task{ID: uuid.New(), Status: models.TaskStatusPending}
	in2 := ValidationInput{
		Date:       testDate,
		Window:     mustWindow(t, "09:00", "10:00"),
		Workers:    []*models.Worker{w},
		Attendance: map[uuid.UUID]*models.AttendanceRecord{w.ID: presentRecord(w.ID, models.AttendancePresent)},
		DayTasks:   map[uuid.UUID][]*models.Task{w.ID: {windowless}},
	}
	ae := appErr(t, ValidateAssignment(in2))
	require.Equal(t, utils.ErrCodeTimeOverlap, ae.Code)
}

func TestValidateAssignmentNamesAllOverlappingWorkers(t *testing.T) {
	a := namedWorker("Maya", "Lindgren")
	b := namedWorker("Omar", "Reyes")

	in := ValidationInput{
		Date:    testDate,
		Window:  mustWindow(t, "10:00", "12:00"),
		Workers: []*models.Worker{a, b},
		Attendance: map[uuid.UUID]*models.AttendanceRecord{
			a.ID: presentRecord(a.ID, models.AttendancePresent),
			b.ID: presentRecord(b.ID, models.AttendancePresent),
		},
		DayTasks: map[uuid.UUID][]*models.Task{
			a.ID: {windowedTask("11:00", "13:00")},
			b.ID: {windowedTask("09:00", "11:00")},
		},
	}
	ae := appErr(t, ValidateAssignment(in))
	require.Equal(t, utils.ErrCodeTimeOverlap, ae.Code)
	require.Contains(t, ae.Message, "Maya Lindgren")
	require.Contains(t, ae.Message, "Omar Reyes")
}

func TestHoursLabel(t *testing.T) {
	require.Equal(t, "1.5h", hoursLabel(90))
	require.Equal(t, "2h", hoursLabel(120))
	require.Equal(t, "0h", hoursLabel(-30))
}
