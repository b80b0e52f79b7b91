package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hiring-pipeline-api/internal/models"
	"github.com/noah-isme/hiring-pipeline-api/internal/pipeline"
	appErrors "github.com/noah-isme/hiring-pipeline-api/pkg/errors"
)

func TestParseStageValidValues(t *testing.T) {
	for _, s := range pipeline.Stages() {
		got, err := pipeline.ParseStage(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestParseStageNormalisesInput(t *testing.T) {
	got, err := pipeline.ParseStage("  Offer ")
	require.NoError(t, err)
	assert.Equal(t, models.StageOffer, got)
}

func TestParseStageRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "archived", "TO_APPLY"} {
		_, err := pipeline.ParseStage(raw)
		assert.ErrorIs(t, err, appErrors.ErrInvalidStage, raw)
	}
}

func TestStatusFor(t *testing.T) {
	cases := map[models.Stage]models.ApplicationStatus{
		models.StageHired:    models.ApplicationStatusHired,
		models.StageOffer:    models.ApplicationStatusOfferExtended,
		models.StageRejected: models.ApplicationStatusRejected,
	}
	for stage, want := range cases {
		got, ok := pipeline.StatusFor(stage)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	for _, stage := range []models.Stage{models.StageApplied, models.StageScreening, models.StageInterview} {
		_, ok := pipeline.StatusFor(stage)
		assert.False(t, ok, stage)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, pipeline.IsTerminal(models.StageHired))
	assert.True(t, pipeline.IsTerminal(models.StageRejected))
	for _, s := range []models.Stage{models.StageApplied, models.StageScreening, models.StageInterview, models.StageOffer} {
		assert.False(t, pipeline.IsTerminal(s), s)
	}
}
