package analytics

import "github.com/noah-isme/hiring-pipeline-api/internal/models"

// JobPerformance counts applications, hires and scheduled interviews per job.
// Only interviews belonging to the given applications are counted. The best
// job is chosen among jobs with applications by conversion rate, then
// application count, then snapshot order.
func JobPerformance(apps []models.Application, jobs []models.Job, interviews []models.Interview) models.JobPerformance {
	idx := newJobIndex(jobs, apps)

	applications := make(map[string]int)
	hires := make(map[string]int)
	jobByApplication := make(map[string]string, len(apps))
	for _, a := range apps {
		applications[a.JobID]++
		if a.CurrentStage == models.StageHired {
			hires[a.JobID]++
		}
		jobByApplication[a.ID] = a.JobID
	}
	interviewCount := make(map[string]int)
	for _, iv := range interviews {
		if jobID, ok := jobByApplication[iv.ApplicationID]; ok {
			interviewCount[jobID]++
		}
	}

	report := models.JobPerformance{Jobs: make([]models.JobPerformanceRow, 0, len(idx.order))}
	best := -1
	for _, id := range idx.order {
		job := idx.jobs[id]
		row := models.JobPerformanceRow{
			JobID:          id,
			JobTitle:       job.Title,
			Department:     job.Department,
			Applications:   applications[id],
			Hires:          hires[id],
			Interviews:     interviewCount[id],
			ConversionRate: Percentage(hires[id], applications[id]),
		}
		report.Jobs = append(report.Jobs, row)
		report.TotalApplications += row.Applications
		report.TotalHires += row.Hires

		if row.Applications == 0 {
			continue
		}
		if best < 0 || betterJob(row, report.Jobs[best]) {
			best = len(report.Jobs) - 1
		}
	}
	report.ConversionRate = Percentage(report.TotalHires, report.TotalApplications)
	if best >= 0 {
		bestRow := report.Jobs[best]
		report.BestJob = &bestRow
	}
	return report
}

func betterJob(candidate, current models.JobPerformanceRow) bool {
	if candidate.ConversionRate != current.ConversionRate {
		return candidate.ConversionRate > current.ConversionRate
	}
	return candidate.Applications > current.Applications
}
