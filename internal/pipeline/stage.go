// Package pipeline implements the hiring stage engine.
//
// Stage graph:
//
//	applied ──► screening ──► interview ──► offer ──► hired
//	   │            │             │           │
//	   └────────────┴─────────────┴───────────┴──► rejected
//
// hired and rejected are terminal for analytics, but an explicit transition
// out of them is still applied as requested.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/noah-isme/hiring-pipeline-api/internal/models"
	appErrors "github.com/noah-isme/hiring-pipeline-api/pkg/errors"
)

var knownStages = map[models.Stage]struct{}{
	models.StageApplied:   {},
	models.StageScreening: {},
	models.StageInterview: {},
	models.StageOffer:     {},
	models.StageHired:     {},
	models.StageRejected:  {},
}

// derivedStatus maps stages that force a display status. Other stages keep
// whatever status the record already carries.
var derivedStatus = map[models.Stage]models.ApplicationStatus{
	models.StageHired:    models.ApplicationStatusHired,
	models.StageOffer:    models.ApplicationStatusOfferExtended,
	models.StageRejected: models.ApplicationStatusRejected,
}

// Stages returns all six stages in pipeline order, rejected last.
func Stages() []models.Stage {
	return []models.Stage{
		models.StageApplied,
		models.StageScreening,
		models.StageInterview,
		models.StageOffer,
		models.StageHired,
		models.StageRejected,
	}
}

// IsValid reports whether s is one of the known stages.
func IsValid(s models.Stage) bool {
	_, ok := knownStages[s]
	return ok
}

// ParseStage converts raw input to a Stage. Matching ignores case and
// surrounding whitespace.
func ParseStage(raw string) (models.Stage, error) {
	s := models.Stage(strings.ToLower(strings.TrimSpace(raw)))
	if !IsValid(s) {
		return "", invalidStage(raw)
	}
	return s, nil
}

// StatusFor returns the status forced by stage s, if any.
func StatusFor(s models.Stage) (models.ApplicationStatus, bool) {
	status, ok := derivedStatus[s]
	return status, ok
}

// IsTerminal reports whether s ends the pipeline.
func IsTerminal(s models.Stage) bool {
	return s == models.StageHired || s == models.StageRejected
}

func invalidStage(raw string) error {
	return appErrors.Clone(appErrors.ErrInvalidStage, fmt.Sprintf("unknown stage %q", raw))
}
