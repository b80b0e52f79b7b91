package pipeline

import (
	"time"

	"github.com/noah-isme/hiring-pipeline-api/internal/models"
	appErrors "github.com/noah-isme/hiring-pipeline-api/pkg/errors"
)

// timestampPrecision matches PostgreSQL timestamptz resolution so values
// survive a database round trip unchanged.
const timestampPrecision = time.Microsecond

// Transition moves app to newStage and returns the updated copy. The input is
// not modified. Status is recomputed from the stage and UpdatedAt is set to
// now, also when the stage does not change. UpdatedAt never precedes the
// application date and always advances past its previous value.
func Transition(app models.Application, newStage models.Stage, now time.Time) (models.Application, error) {
	if app.ID == "" {
		return models.Application{}, appErrors.Clone(appErrors.ErrValidation, "application id is required")
	}
	if !IsValid(newStage) {
		return models.Application{}, invalidStage(string(newStage))
	}

	updated := app
	updated.CurrentStage = newStage
	if status, ok := StatusFor(newStage); ok {
		updated.Status = status
	}

	ts := now.UTC().Truncate(timestampPrecision)
	if ts.Before(app.ApplicationDate) {
		ts = app.ApplicationDate.UTC()
	}
	if !app.UpdatedAt.IsZero() && !ts.After(app.UpdatedAt) {
		ts = app.UpdatedAt.UTC().Add(timestampPrecision)
	}
	updated.UpdatedAt = ts
	return updated, nil
}

// Engine applies transitions using an injectable clock.
type Engine struct {
	now func() time.Time
}

// NewEngine constructs an engine. A nil clock defaults to time.Now.
func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Apply parses rawStage and transitions app to it.
func (e *Engine) Apply(app models.Application, rawStage string) (models.Application, error) {
	stage, err := ParseStage(rawStage)
	if err != nil {
		return models.Application{}, err
	}
	return Transition(app, stage, e.now())
}

// Change describes the history entry produced by moving from before to after.
func Change(before, after models.Application) models.StageChange {
	return models.StageChange{
		ApplicationID: after.ID,
		FromStage:     before.CurrentStage,
		ToStage:       after.CurrentStage,
		ChangedAt:     after.UpdatedAt,
	}
}
