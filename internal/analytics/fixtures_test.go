package analytics

import (
	"fmt"
	"time"

	"github.com/noah-isme/hiring-pipeline-api/internal/models"
)

var base = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func application(id, candidateID, jobID string, stage models.Stage, appliedAt time.Time) models.Application {
	return models.Application{
		ID:              id,
		CandidateID:     candidateID,
		JobID:           jobID,
		CurrentStage:    stage,
		ApplicationDate: appliedAt,
		UpdatedAt:       appliedAt,
	}
}

func hiredAfter(id, jobID string, appliedAt time.Time, days int) models.Application {
	a := application(id, "cand-"+id, jobID, models.StageHired, appliedAt)
	a.Status = models.ApplicationStatusHired
	a.UpdatedAt = appliedAt.Add(time.Duration(days) * 24 * time.Hour)
	return a
}

// funnelApplications returns total applications with the given number
// currently sitting in each later stage; the rest stay in applied.
func funnelApplications(total int, counts map[models.Stage]int) []models.Application {
	apps := make([]models.Application, 0, total)
	n := 0
	for _, stage := range []models.Stage{models.StageScreening, models.StageInterview, models.StageOffer, models.StageHired, models.StageRejected} {
		for i := 0; i < counts[stage]; i++ {
			apps = append(apps, application(fmt.Sprintf("app-%d", n), fmt.Sprintf("cand-%d", n), "job-1", stage, base))
			n++
		}
	}
	for n < total {
		apps = append(apps, application(fmt.Sprintf("app-%d", n), fmt.Sprintf("cand-%d", n), "job-1", models.StageApplied, base))
		n++
	}
	return apps
}
