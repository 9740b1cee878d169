package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/crewdesk/workforce-service/internal/dtos"
	"github.com/crewdesk/workforce-service/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newAttendanceFixture(t *testing.T) (*models.Worker, *AttendanceService) {
	t.Helper()
	workers := newFakeWorkerRepo()
	attendance := newFakeAttendanceRepo()
	svc := NewAttendanceService(attendance, workers)

	w := &models.Worker{
		ID:        uuid.New(),
		FirstName: "Maya",
		LastName:  "Lindgren",
		Email:     "maya@example.com",
		Role:      models.RoleWorker,
		Status:    models.WorkerStatusActive,
	}
	require.NoError(t, workers.Create(context.Background(), w))
	return w, svc
}

func TestMarkAttendanceUpserts(t *testing.T) {
	w, svc := newAttendanceFixture(t)

	first, err := svc.MarkAttendance(context.Background(), &dtos.MarkAttendanceRequest{
		WorkerID: w.ID, Date: "2026-05-20", Status: string(models.AttendancePresent),
	})
	require.NoError(t, err)
	require.Equal(t, string(models.AttendancePresent), first.Status)

	// Re-marking the same (worker, date) replaces the status.
	second, err := svc.MarkAttendance(context.Background(), &dtos.MarkAttendanceRequest{
		WorkerID: w.ID, Date: "2026-05-20", Status: string(models.AttendanceHalfDay),
	})
	require.NoError(t, err)
	require.Equal(t, string(models.AttendanceHalfDay), second.Status)

	list, err := svc.ListAttendanceByDate(context.Background(), "2026-05-20")
	require.NoError(t, err)
	require.Equal(t, 1, list.Total, "one record per (worker, date)")
}

func TestMarkAttendanceUnknownWorker(t *testing.T) {
	_, svc := newAttendanceFixture(t)

	_, err := svc.MarkAttendance(context.Background(), &dtos.MarkAttendanceRequest{
		WorkerID: uuid.New(), Date: "2026-05-20", Status: string(models.AttendancePresent),
	})
	ae := requireAppErr(t, err)
	require.Equal(t, http.StatusNotFound, ae.StatusCode)
}

func TestListWorkerAttendanceRange(t *testing.T) {
	w, svc := newAttendanceFixture(t)

	for _, day := range []string{"2026-05-18", "2026-05-19", "2026-05-22"} {
		_, err := svc.MarkAttendance(context.Background(), &dtos.MarkAttendanceRequest{
			WorkerID: w.ID, Date: day, Status: string(models.AttendancePresent),
		})
		require.NoError(t, err)
	}

	list, err := svc.ListWorkerAttendance(context.Background(), w.ID, "2026-05-18", "2026-05-20")
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)

	_, err = svc.ListWorkerAttendance(context.Background(), w.ID, "2026-05-20", "2026-05-18")
	ae := requireAppErr(t, err)
	require.Equal(t, http.StatusBadRequest, ae.StatusCode)
}

func TestDeleteAttendance(t *testing.T) {
	w, svc := newAttendanceFixture(t)

	_, err := svc.MarkAttendance(context.Background(), &dtos.MarkAttendanceRequest{
		WorkerID: w.ID, Date: "2026-05-20", Status: string(models.AttendancePresent),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAttendance(context.Background(), w.ID, "2026-05-20"))

	err = svc.DeleteAttendance(context.Background(), w.ID, "2026-05-20")
	ae := requireAppErr(t, err)
	require.Equal(t, http.StatusNotFound, ae.StatusCode)
}
