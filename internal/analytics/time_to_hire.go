package analytics

import (
	"time"

	"github.com/noah-isme/hiring-pipeline-api/internal/models"
)

const day = 24 * time.Hour

// TimeToHire averages, per job, the days between application and the hire
// transition of each hired application. The hire instant is HiredAt, or
// UpdatedAt when no hire instant was recorded. Jobs without hires are left
// out and the overall average, min and max are taken over the per-job
// averages.
func TimeToHire(apps []models.Application, jobs []models.Job) models.TimeToHireReport {
	idx := newJobIndex(jobs, apps)

	type acc struct {
		hires int
		days  float64
	}
	perJob := make(map[string]*acc)
	for _, a := range apps {
		if a.CurrentStage != models.StageHired {
			continue
		}
		elapsed := hireInstant(a).Sub(a.ApplicationDate)
		if elapsed < 0 {
			elapsed = 0
		}
		entry, ok := perJob[a.JobID]
		if !ok {
			entry = &acc{}
			perJob[a.JobID] = entry
		}
		entry.hires++
		entry.days += float64(elapsed) / float64(day)
	}

	report := models.TimeToHireReport{Jobs: make([]models.JobHireTime, 0, len(perJob))}
	var sum float64
	for _, id := range idx.order {
		entry, ok := perJob[id]
		if !ok {
			continue
		}
		job := idx.jobs[id]
		avg := roundDays(entry.days / float64(entry.hires))
		report.Jobs = append(report.Jobs, models.JobHireTime{
			JobID:       id,
			JobTitle:    job.Title,
			Hires:       entry.hires,
			AverageDays: avg,
		})
		report.TotalHires += entry.hires
		sum += avg
		if len(report.Jobs) == 1 || avg < report.MinDays {
			report.MinDays = avg
		}
		if avg > report.MaxDays {
			report.MaxDays = avg
		}
	}
	if n := len(report.Jobs); n > 0 {
		report.AverageDays = roundDays(sum / float64(n))
	}
	return report
}

func hireInstant(a models.Application) time.Time {
	if a.HiredAt != nil && !a.HiredAt.IsZero() {
		return *a.HiredAt
	}
	return a.UpdatedAt
}
