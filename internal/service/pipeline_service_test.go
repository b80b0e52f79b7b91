package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hiring-pipeline-api/internal/dto"
	"github.com/noah-isme/hiring-pipeline-api/internal/models"
	"github.com/noah-isme/hiring-pipeline-api/internal/pipeline"
	appErrors "github.com/noah-isme/hiring-pipeline-api/pkg/errors"
)

var (
	appliedAt = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	clockAt   = time.Date(2024, 5, 20, 15, 30, 0, 0, time.UTC)
)

func newPipelineService(repo *fakeApplicationRepo, pub *recordingPublisher) (*PipelineService, *MetricsService) {
	metrics := NewMetricsService()
	engine := pipeline.NewEngine(func() time.Time { return clockAt })
	return NewPipelineService(repo, engine, nil, pub, metrics, nil), metrics
}

func offerApplication() models.Application {
	return models.Application{
		ID: "app-1", CandidateID: "c1", JobID: "job-1",
		CurrentStage: models.StageOffer, Status: models.ApplicationStatusOfferExtended,
		ApplicationDate: appliedAt, UpdatedAt: appliedAt.Add(48 * time.Hour),
	}
}

func TestPipelineServiceChangeStage(t *testing.T) {
	repo := newFakeApplicationRepo(offerApplication())
	pub := &recordingPublisher{}
	svc, metrics := newPipelineService(repo, pub)

	resp, err := svc.ChangeStage(context.Background(), "app-1", dto.StageTransitionRequest{Stage: "Hired"})
	require.NoError(t, err)

	assert.Equal(t, models.StageHired, resp.Application.CurrentStage)
	assert.Equal(t, models.ApplicationStatusHired, resp.Application.Status)
	assert.Equal(t, clockAt, resp.Application.UpdatedAt)
	assert.Equal(t, models.StageOffer, resp.Change.FromStage)
	assert.Equal(t, "change-app-1", resp.Change.ID)

	require.Len(t, pub.jobs, 1)
	assert.Equal(t, EventStageChanged, pub.jobs[0].Type)
	event := pub.jobs[0].Payload.(StageChangedEvent)
	assert.Equal(t, "job-1", event.JobID)
	assert.Equal(t, models.StageHired, event.To)

	assert.Equal(t, uint64(1), metrics.Snapshot().StageTransitions)
}

func TestPipelineServiceRejectsStaleExpectation(t *testing.T) {
	repo := newFakeApplicationRepo(offerApplication())
	svc, _ := newPipelineService(repo, &recordingPublisher{})

	stale := appliedAt
	_, err := svc.ChangeStage(context.Background(), "app-1", dto.StageTransitionRequest{Stage: "hired", ExpectedUpdatedAt: &stale})
	assert.ErrorIs(t, err, appErrors.ErrConcurrentModification)
	assert.Zero(t, repo.updates)
}

func TestPipelineServiceInvalidStage(t *testing.T) {
	repo := newFakeApplicationRepo(offerApplication())
	svc, _ := newPipelineService(repo, &recordingPublisher{})

	_, err := svc.ChangeStage(context.Background(), "app-1", dto.StageTransitionRequest{Stage: "onboarding"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidStage)

	_, err = svc.ChangeStage(context.Background(), "app-1", dto.StageTransitionRequest{})
	assert.ErrorIs(t, err, appErrors.ErrInvalidStage)
	assert.Zero(t, repo.updates)
}

func TestPipelineServiceMissingApplication(t *testing.T) {
	svc, _ := newPipelineService(newFakeApplicationRepo(), &recordingPublisher{})
	_, err := svc.ChangeStage(context.Background(), "nope", dto.StageTransitionRequest{Stage: "screening"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestPipelineServicePersistFailureSkipsEvent(t *testing.T) {
	repo := newFakeApplicationRepo(offerApplication())
	repo.updateErr = appErrors.ErrConcurrentModification
	pub := &recordingPublisher{}
	svc, metrics := newPipelineService(repo, pub)

	_, err := svc.ChangeStage(context.Background(), "app-1", dto.StageTransitionRequest{Stage: "rejected"})
	assert.ErrorIs(t, err, appErrors.ErrConcurrentModification)
	assert.Empty(t, pub.jobs)
	assert.Zero(t, metrics.Snapshot().StageTransitions)
}

func TestPipelineServicePublishFailureIsNotFatal(t *testing.T) {
	repo := newFakeApplicationRepo(offerApplication())
	svc, _ := newPipelineService(repo, &recordingPublisher{err: errors.New("queue full")})

	_, err := svc.ChangeStage(context.Background(), "app-1", dto.StageTransitionRequest{Stage: "rejected"})
	require.NoError(t, err)
	assert.Equal(t, models.StageRejected, repo.apps["app-1"].CurrentStage)
}

func TestPipelineServiceHistory(t *testing.T) {
	repo := newFakeApplicationRepo(offerApplication())
	svc, _ := newPipelineService(repo, &recordingPublisher{})

	history, err := svc.History(context.Background(), "app-1")
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)

	_, err = svc.ChangeStage(context.Background(), "app-1", dto.StageTransitionRequest{Stage: "hired"})
	require.NoError(t, err)

	history, err = svc.History(context.Background(), "app-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.StageHired, history[0].ToStage)

	_, err = svc.History(context.Background(), "missing")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
