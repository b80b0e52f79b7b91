package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/hiring-pipeline-api/internal/models"
)

func TestSourceDistributionLinkedInAndUnknown(t *testing.T) {
	var apps []models.Application
	var candidates []models.Candidate
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("cand-%d", i)
		source := ""
		if i < 4 {
			source = "LinkedIn"
		}
		candidates = append(candidates, models.Candidate{ID: id, Source: source})
		apps = append(apps, application(fmt.Sprintf("app-%d", i), id, "job-1", models.StageApplied, base))
	}

	got := SourceDistribution(apps, candidates)
	assert.Equal(t, 10, got.Total)
	assert.Equal(t, "LinkedIn", got.TopSource)
	assert.ElementsMatch(t, []models.SourceShare{
		{Source: "LinkedIn", Count: 4, Percentage: 40},
		{Source: models.UnknownSource, Count: 6, Percentage: 60},
	}, got.Sources)
}

func TestSourceDistributionMissingCandidateCountsAsUnknown(t *testing.T) {
	apps := []models.Application{application("a1", "ghost", "job-1", models.StageApplied, base)}
	got := SourceDistribution(apps, nil)
	assert.Equal(t, []models.SourceShare{{Source: models.UnknownSource, Count: 1, Percentage: 100}}, got.Sources)
	assert.Empty(t, got.TopSource)
}

func TestSourceDistributionEmpty(t *testing.T) {
	got := SourceDistribution(nil, nil)
	assert.Equal(t, 0, got.Total)
	assert.NotNil(t, got.Sources)
	assert.Empty(t, got.Sources)
	assert.Empty(t, got.TopSource)
}
