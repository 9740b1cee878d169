package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/crewdesk/workforce-service/internal/models"
	"github.com/crewdesk/workforce-service/internal/scheduling"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// In-memory repository fakes. They copy on read/write so tests cannot
// accidentally share mutable state with the service under test.

type fakeWorkerRepo struct {
	mu      sync.Mutex
	workers map[uuid.UUID]*models.Worker
}

func newFakeWorkerRepo() *fakeWorkerRepo {
	return &fakeWorkerRepo{workers: map[uuid.UUID]*models.Worker{}}
}

func copyWorker(w *models.Worker) *models.Worker {
	c := *w
	return &c
}

func (f *fakeWorkerRepo) Create(_ context.Context, w *models.Worker) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.workers[w.ID] = copyWorker(w)
	return nil
}

func (f *fakeWorkerRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Worker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w, ok := f.workers[id]; ok {
		return copyWorker(w), nil
	}
	return nil, nil
}

func (f *fakeWorkerRepo) GetByEmail(_ context.Context, email string) (*models.Worker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.workers {
		if strings.EqualFold(w.Email, email) {
			return copyWorker(w), nil
		}
	}
	return nil, nil
}

func (f *fakeWorkerRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*models.Worker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Worker
	for _, id := range ids {
		if w, ok := f.workers[id]; ok {
			out = append(out, copyWorker(w))
		}
	}
	return out, nil
}

func (f *fakeWorkerRepo) ListAll(_ context.Context) ([]*models.Worker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Worker
	for _, w := range f.workers {
		out = append(out, copyWorker(w))
	}
	return out, nil
}

func (f *fakeWorkerRepo) Update(_ context.Context, w *models.Worker) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.workers[w.ID] = copyWorker(w)
	return nil
}

func (f *fakeWorkerRepo) UpdateIfVersion(ctx context.Context, w *models.Worker, _ int64) (pgconn.CommandTag, error) {
	return pgconn.CommandTag("UPDATE 1"), f.Update(ctx, w)
}

func (f *fakeWorkerRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Worker) error) error {
	w, _ := f.GetByID(ctx, id)
	if w == nil {
		return pgx.ErrNoRows
	}
	if err := mutate(w); err != nil {
		return err
	}
	return f.Update(ctx, w)
}

type fakeProjectRepo struct {
	mu       sync.Mutex
	projects map[uuid.UUID]*models.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[uuid.UUID]*models.Project{}}
}

func copyProject(p *models.Project) *models.Project {
	c := *p
	c.AssignedWorkerIDs = append([]uuid.UUID(nil), p.AssignedWorkerIDs...)
	return &c
}

func (f *fakeProjectRepo) Create(_ context.Context, p *models.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects[p.ID] = copyProject(p)
	return nil
}

func (f *fakeProjectRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.projects[id]; ok {
		return copyProject(p), nil
	}
	return nil, nil
}

func (f *fakeProjectRepo) ListAll(_ context.Context) ([]*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Project
	for _, p := range f.projects {
		out = append(out, copyProject(p))
	}
	return out, nil
}

func (f *fakeProjectRepo) Update(_ context.Context, p *models.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects[p.ID] = copyProject(p)
	return nil
}

func (f *fakeProjectRepo) UpdateIfVersion(ctx context.Context, p *models.Project, _ int64) (pgconn.CommandTag, error) {
	return pgconn.CommandTag("UPDATE 1"), f.Update(ctx, p)
}

func (f *fakeProjectRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Project) error) error {
	p, _ := f.GetByID(ctx, id)
	if p == nil {
		return pgx.ErrNoRows
	}
	if err := mutate(p); err != nil {
		return err
	}
	return f.Update(ctx, p)
}

func (f *fakeProjectRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.projects, id)
	return nil
}

type attendanceKey struct {
	workerID uuid.UUID
	date     string
}

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records map[attendanceKey]*models.AttendanceRecord
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: map[attendanceKey]*models.AttendanceRecord{}}
}

func attKey(workerID uuid.UUID, date time.Time) attendanceKey {
	return attendanceKey{workerID: workerID, date: scheduling.DateOnly(date).Format(time.DateOnly)}
}

func (f *fakeAttendanceRepo) Upsert(_ context.Context, rec *models.AttendanceRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := attKey(rec.WorkerID, rec.Date)
	if existing, ok := f.records[k]; ok {
		existing.Status = rec.Status
		return nil
	}
	c := *rec
	f.records[k] = &c
	return nil
}

func (f *fakeAttendanceRepo) GetByWorkerAndDate(_ context.Context, workerID uuid.UUID, date time.Time) (*models.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec, ok := f.records[attKey(workerID, date)]; ok {
		c := *rec
		return &c, nil
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByDate(_ context.Context, date time.Time) ([]*models.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	day := scheduling.DateOnly(date).Format(time.DateOnly)
	var out []*models.AttendanceRecord
	for k, rec := range f.records {
		if k.date == day {
			c := *rec
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByWorkerAndDateRange(_ context.Context, workerID uuid.UUID, from, to time.Time) ([]*models.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.AttendanceRecord
	for k, rec := range f.records {
		if k.workerID != workerID {
			continue
		}
		if !rec.Date.Before(from) && !rec.Date.After(to) {
			c := *rec
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Delete(_ context.Context, workerID uuid.UUID, date time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, attKey(workerID, date))
	return nil
}

type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*models.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[uuid.UUID]*models.Task{}}
}

func copyTask(t *models.Task) *models.Task {
	c := *t
	c.AssignedWorkerIDs = append([]uuid.UUID(nil), t.AssignedWorkerIDs...)
	return &c
}

func (f *fakeTaskRepo) Create(_ context.Context, t *models.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[t.ID] = copyTask(t)
	return nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.tasks[id]; ok {
		return copyTask(t), nil
	}
	return nil, nil
}

func (f *fakeTaskRepo) ListByProjectID(_ context.Context, projectID uuid.UUID) ([]*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Task
	for _, t := range f.tasks {
		if t.ProjectID == projectID {
			out = append(out, copyTask(t))
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) ListByDate(_ context.Context, date time.Time) ([]*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Task
	for _, t := range f.tasks {
		if scheduling.SameDate(t.DueDate, date) {
			out = append(out, copyTask(t))
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) ListActiveByWorkerAndDate(_ context.Context, workerID uuid.UUID, date time.Time) ([]*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Task
	for _, t := range f.tasks {
		if t.Status == models.TaskStatusCancelled {
			continue
		}
		if scheduling.SameDate(t.DueDate, date) && t.HasWorker(workerID) {
			out = append(out, copyTask(t))
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) ListOverdueUnfinished(_ context.Context, before time.Time) ([]*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Task
	for _, t := range f.tasks {
		if t.IsTerminal() || t.FlaggedForReview {
			continue
		}
		if scheduling.DateOnly(t.DueDate).Before(scheduling.DateOnly(before)) {
			out = append(out, copyTask(t))
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, t *models.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[t.ID] = copyTask(t)
	return nil
}

func (f *fakeTaskRepo) UpdateIfVersion(ctx context.Context, t *models.Task, _ int64) (pgconn.CommandTag, error) {
	return pgconn.CommandTag("UPDATE 1"), f.Update(ctx, t)
}

func (f *fakeTaskRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Task) error) error {
	t, _ := f.GetByID(ctx, id)
	if t == nil {
		return pgx.ErrNoRows
	}
	if err := mutate(t); err != nil {
		return err
	}
	return f.Update(ctx, t)
}

func (f *fakeTaskRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tasks, id)
	return nil
}

type fakeAuditPublisher struct {
	mu     sync.Mutex
	events []*models.TaskAuditEvent
}

func (f *fakeAuditPublisher) Publish(_ context.Context, event *models.TaskAuditEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeAuditPublisher) actions() []models.AuditActionType {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.AuditActionType, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Action)
	}
	return out
}
