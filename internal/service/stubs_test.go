package service

import (
	"context"
	"encoding/json"
	"path"
	"time"

	"github.com/noah-isme/hiring-pipeline-api/internal/models"
	appErrors "github.com/noah-isme/hiring-pipeline-api/pkg/errors"
	"github.com/noah-isme/hiring-pipeline-api/pkg/jobs"
)

type stubCacheRepo struct {
	store map[string][]byte
}

func newStubCache() *stubCacheRepo {
	return &stubCacheRepo{store: make(map[string][]byte)}
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	payload, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = payload
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(_ context.Context, pattern string) (int, error) {
	removed := 0
	for key := range s.store {
		if ok, _ := path.Match(pattern, key); ok {
			delete(s.store, key)
			removed++
		}
	}
	return removed, nil
}

type fakeApplicationRepo struct {
	apps      map[string]models.Application
	history   []models.StageChange
	updateErr error
	updates   int
}

func newFakeApplicationRepo(apps ...models.Application) *fakeApplicationRepo {
	repo := &fakeApplicationRepo{apps: make(map[string]models.Application)}
	for _, app := range apps {
		repo.apps[app.ID] = app
	}
	return repo
}

func (f *fakeApplicationRepo) FindByID(_ context.Context, id string) (*models.Application, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "application not found")
	}
	return &app, nil
}

func (f *fakeApplicationRepo) UpdateStage(_ context.Context, app models.Application, expected time.Time, change *models.StageChange) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	stored, ok := f.apps[app.ID]
	if !ok {
		return appErrors.ErrNotFound
	}
	if !stored.UpdatedAt.Equal(expected) {
		return appErrors.ErrConcurrentModification
	}
	f.updates++
	change.ID = "change-" + app.ID
	f.apps[app.ID] = app
	f.history = append(f.history, *change)
	return nil
}

func (f *fakeApplicationRepo) ListHistory(_ context.Context, id string) ([]models.StageChange, error) {
	var out []models.StageChange
	for _, c := range f.history {
		if c.ApplicationID == id {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeSnapshotRepo struct {
	snap  models.Snapshot
	err   error
	calls int
}

func (f *fakeSnapshotRepo) Load(_ context.Context, _, _ time.Time) (*models.Snapshot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	snap := f.snap
	return &snap, nil
}

type recordingPublisher struct {
	jobs []jobs.Job
	err  error
}

func (r *recordingPublisher) Enqueue(_ context.Context, job jobs.Job) error {
	if r.err != nil {
		return r.err
	}
	r.jobs = append(r.jobs, job)
	return nil
}

var may = models.DateRange{
	Start: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
}

func hiringSnapshot() models.Snapshot {
	applied := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	return models.Snapshot{
		Candidates: []models.Candidate{
			{ID: "c1", Source: "LinkedIn"},
			{ID: "c2", Source: "Referral"},
		},
		Jobs: []models.Job{{ID: "job-1", Title: "Backend Engineer", Department: "Engineering"}},
		Applications: []models.Application{
			{ID: "a1", CandidateID: "c1", JobID: "job-1", CurrentStage: models.StageHired, Status: models.ApplicationStatusHired, ApplicationDate: applied, UpdatedAt: applied.AddDate(0, 0, 10)},
			{ID: "a2", CandidateID: "c2", JobID: "job-1", CurrentStage: models.StageScreening, ApplicationDate: applied, UpdatedAt: applied},
		},
	}
}
