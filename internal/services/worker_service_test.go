package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/crewdesk/workforce-service/internal/dtos"
	"github.com/crewdesk/workforce-service/internal/models"
	"github.com/crewdesk/workforce-service/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCreateWorkerDefaults(t *testing.T) {
	repo := newFakeWorkerRepo()
	svc := NewWorkerService(repo)

	dto, err := svc.CreateWorker(context.Background(), &dtos.CreateWorkerRequest{
		FirstName: "Maya",
		LastName:  "Lindgren",
		Email:     "maya@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, string(models.RoleWorker), dto.Role)
	require.Equal(t, string(models.WorkerStatusActive), dto.Status)
	require.Equal(t, models.DefaultWorkingHoursPerDay, dto.WorkingHoursPerDay)
}

func TestCreateWorkerDuplicateEmail(t *testing.T) {
	repo := newFakeWorkerRepo()
	svc := NewWorkerService(repo)

	_, err := svc.CreateWorker(context.Background(), &dtos.CreateWorkerRequest{
		FirstName: "Maya", LastName: "Lindgren", Email: "maya@example.com",
	})
	require.NoError(t, err)

	_, err = svc.CreateWorker(context.Background(), &dtos.CreateWorkerRequest{
		FirstName: "Other", LastName: "Person", Email: "maya@example.com",
	})
	ae := requireAppErr(t, err)
	require.Equal(t, http.StatusConflict, ae.StatusCode)
}

func TestInactiveRequiresCutoffDate(t *testing.T) {
	repo := newFakeWorkerRepo()
	svc := NewWorkerService(repo)

	_, err := svc.CreateWorker(context.Background(), &dtos.CreateWorkerRequest{
		FirstName: "Rita", LastName: "Okafor", Email: "rita@example.com",
		Status: string(models.WorkerStatusInactive),
	})
	ae := requireAppErr(t, err)
	require.Equal(t, http.StatusBadRequest, ae.StatusCode)
	require.Contains(t, ae.Message, "inactive_from")

	cutoff := "2026-07-01"
	dto, err := svc.CreateWorker(context.Background(), &dtos.CreateWorkerRequest{
		FirstName: "Rita", LastName: "Okafor", Email: "rita2@example.com",
		Status: string(models.WorkerStatusInactive), InactiveFrom: &cutoff,
	})
	require.NoError(t, err)
	require.Equal(t, &cutoff, dto.InactiveFrom)
}

func TestUpdateWorkerToInactiveNeedsCutoff(t *testing.T) {
	repo := newFakeWorkerRepo()
	svc := NewWorkerService(repo)

	created, err := svc.CreateWorker(context.Background(), &dtos.CreateWorkerRequest{
		FirstName: "Maya", LastName: "Lindgren", Email: "maya@example.com",
	})
	require.NoError(t, err)

	inactive := string(models.WorkerStatusInactive)
	_, err = svc.UpdateWorker(context.Background(), created.ID, &dtos.UpdateWorkerRequest{
		Status: &inactive,
	})
	ae := requireAppErr(t, err)
	require.Equal(t, http.StatusBadRequest, ae.StatusCode)

	cutoff := "2026-07-01"
	dto, err := svc.UpdateWorker(context.Background(), created.ID, &dtos.UpdateWorkerRequest{
		Status: &inactive, InactiveFrom: &cutoff,
	})
	require.NoError(t, err)
	require.Equal(t, inactive, dto.Status)
}

func TestUpdateWorkerNotFound(t *testing.T) {
	repo := newFakeWorkerRepo()
	svc := NewWorkerService(repo)

	name := "Nobody"
	_, err := svc.UpdateWorker(context.Background(), uuid.New(), &dtos.UpdateWorkerRequest{FirstName: &name})
	ae := requireAppErr(t, err)
	require.Equal(t, http.StatusNotFound, ae.StatusCode)
	require.Equal(t, utils.ErrCodeNotFound, ae.Code)
}
