package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/hiring-pipeline-api/internal/models"
	"github.com/noah-isme/hiring-pipeline-api/pkg/jobs"
)

// EventStageChanged is published after a stage transition is committed.
const EventStageChanged = "application.stage_changed"

// StageChangedEvent is the payload of EventStageChanged.
type StageChangedEvent struct {
	ApplicationID string       `json:"application_id"`
	JobID         string       `json:"job_id"`
	From          models.Stage `json:"from"`
	To            models.Stage `json:"to"`
	ChangedAt     time.Time    `json:"changed_at"`
}

// ReportInvalidator drops cached reports.
type ReportInvalidator interface {
	Invalidate(ctx context.Context) (int, error)
}

// StageEventHandler reacts to committed stage changes. Any change can move
// every report, so cached reports are dropped wholesale.
type StageEventHandler struct {
	reports ReportInvalidator
	metrics *MetricsService
	logger  *zap.Logger
}

// NewStageEventHandler constructs the handler.
func NewStageEventHandler(reports ReportInvalidator, metrics *MetricsService, logger *zap.Logger) *StageEventHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StageEventHandler{reports: reports, metrics: metrics, logger: logger}
}

// Register binds the handler on q.
func (h *StageEventHandler) Register(q *jobs.Queue) {
	q.Handle(EventStageChanged, h.Handle)
}

// Handle processes one stage change job.
func (h *StageEventHandler) Handle(ctx context.Context, job jobs.Job) error {
	event, ok := job.Payload.(StageChangedEvent)
	if !ok {
		err := fmt.Errorf("unexpected payload %T for %s", job.Payload, job.Type)
		h.metrics.RecordEvent(job.Type, err)
		h.logger.Error("dropping malformed stage event", zap.String("job_id", job.ID), zap.Error(err))
		return nil
	}

	removed, err := h.reports.Invalidate(ctx)
	h.metrics.RecordEvent(job.Type, err)
	if err != nil {
		return fmt.Errorf("invalidate reports after %s: %w", event.ApplicationID, err)
	}
	h.logger.Debug("reports invalidated",
		zap.String("application_id", event.ApplicationID),
		zap.String("to", string(event.To)),
		zap.Int("removed", removed),
	)
	return nil
}
