package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/hiring-pipeline-api/internal/dto"
	"github.com/noah-isme/hiring-pipeline-api/internal/models"
	"github.com/noah-isme/hiring-pipeline-api/internal/pipeline"
	appErrors "github.com/noah-isme/hiring-pipeline-api/pkg/errors"
	"github.com/noah-isme/hiring-pipeline-api/pkg/jobs"
)

// ApplicationRepository abstracts application persistence.
type ApplicationRepository interface {
	FindByID(ctx context.Context, id string) (*models.Application, error)
	UpdateStage(ctx context.Context, app models.Application, expected time.Time, change *models.StageChange) error
	ListHistory(ctx context.Context, applicationID string) ([]models.StageChange, error)
}

// EventPublisher hands events to background workers.
type EventPublisher interface {
	Enqueue(ctx context.Context, job jobs.Job) error
}

// PipelineService moves applications through the hiring stages.
type PipelineService struct {
	repo      ApplicationRepository
	engine    *pipeline.Engine
	validator *validator.Validate
	events    EventPublisher
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewPipelineService wires the service. events and metrics may be nil.
func NewPipelineService(repo ApplicationRepository, engine *pipeline.Engine, validate *validator.Validate, events EventPublisher, metrics *MetricsService, logger *zap.Logger) *PipelineService {
	if engine == nil {
		engine = pipeline.NewEngine(nil)
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PipelineService{repo: repo, engine: engine, validator: validate, events: events, metrics: metrics, logger: logger}
}

// Get returns one application.
func (s *PipelineService) Get(ctx context.Context, id string) (*models.Application, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "application id is required")
	}
	return s.repo.FindByID(ctx, id)
}

// History returns the stage changes of an existing application.
func (s *PipelineService) History(ctx context.Context, id string) ([]models.StageChange, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	changes, err := s.repo.ListHistory(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load stage history")
	}
	if changes == nil {
		changes = []models.StageChange{}
	}
	return changes, nil
}

// ChangeStage applies a transition and persists it with a history entry.
func (s *PipelineService) ChangeStage(ctx context.Context, id string, req dto.StageTransitionRequest) (*dto.StageTransitionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidStage.Code, appErrors.ErrInvalidStage.Status, "stage is required")
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.ExpectedUpdatedAt != nil && !req.ExpectedUpdatedAt.Equal(current.UpdatedAt) {
		return nil, appErrors.ErrConcurrentModification
	}

	updated, err := s.engine.Apply(*current, req.Stage)
	if err != nil {
		return nil, err
	}
	change := pipeline.Change(*current, updated)

	if err := s.repo.UpdateStage(ctx, updated, current.UpdatedAt, &change); err != nil {
		return nil, err
	}

	s.metrics.RecordStageTransition(updated.CurrentStage)
	s.logger.Info("application stage changed",
		zap.String("application_id", updated.ID),
		zap.String("from", string(change.FromStage)),
		zap.String("to", string(change.ToStage)),
	)
	s.publish(ctx, updated, change)

	return &dto.StageTransitionResponse{Application: updated, Change: change}, nil
}

func (s *PipelineService) publish(ctx context.Context, app models.Application, change models.StageChange) {
	if s.events == nil {
		return
	}
	event := StageChangedEvent{
		ApplicationID: app.ID,
		JobID:         app.JobID,
		From:          change.FromStage,
		To:            change.ToStage,
		ChangedAt:     change.ChangedAt,
	}
	job := jobs.Job{ID: change.ID, Type: EventStageChanged, Payload: event}
	if err := s.events.Enqueue(ctx, job); err != nil {
		s.logger.Warn("stage event not published", zap.String("application_id", app.ID), zap.Error(err))
	}
}
