package analytics

import "github.com/noah-isme/hiring-pipeline-api/internal/models"

// SourceDistribution buckets applications by their candidate's source. The
// top source is the highest ranked known source; Unknown is reported in the
// distribution but never named top source.
func SourceDistribution(apps []models.Application, candidates []models.Candidate) models.SourceDistribution {
	sourceByCandidate := make(map[string]string, len(candidates))
	for _, c := range candidates {
		sourceByCandidate[c.ID] = c.Source
	}

	buckets := BucketBy(apps, func(a models.Application) string {
		return sourceByCandidate[a.CandidateID]
	})
	ranked := RankDescending(buckets)

	total := len(apps)
	report := models.SourceDistribution{
		Total:   total,
		Sources: make([]models.SourceShare, 0, len(ranked)),
	}
	for _, b := range ranked {
		report.Sources = append(report.Sources, models.SourceShare{
			Source:     b.Key,
			Count:      b.Count,
			Percentage: Percentage(b.Count, total),
		})
		if report.TopSource == "" && b.Key != models.UnknownSource {
			report.TopSource = b.Key
		}
	}
	return report
}
