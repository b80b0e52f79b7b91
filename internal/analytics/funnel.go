package analytics

import "github.com/noah-isme/hiring-pipeline-api/internal/models"

// ApplicationFunnel counts applications through the funnel. Every application
// counts toward applied; later stages count applications currently sitting in
// them, so the non-applied counts never sum past the total. Rejected
// applications are reported separately.
func ApplicationFunnel(apps []models.Application) models.FunnelReport {
	total := len(apps)
	byStage := make(map[models.Stage]int, len(models.FunnelStages))
	rejected := 0
	for _, a := range apps {
		if a.CurrentStage == models.StageRejected {
			rejected++
			continue
		}
		byStage[a.CurrentStage]++
	}
	byStage[models.StageApplied] = total

	report := models.FunnelReport{
		Total:    total,
		Stages:   make([]models.FunnelStage, 0, len(models.FunnelStages)),
		DropOffs: make([]models.DropOff, 0, len(models.FunnelStages)-1),
		Rejected: rejected,
	}
	for _, stage := range models.FunnelStages {
		count := byStage[stage]
		report.Stages = append(report.Stages, models.FunnelStage{
			Stage:          stage,
			Count:          count,
			ConversionRate: Percentage(count, total),
		})
	}
	for i := 0; i+1 < len(report.Stages); i++ {
		current, next := report.Stages[i], report.Stages[i+1]
		report.DropOffs = append(report.DropOffs, models.DropOff{
			From: current.Stage,
			To:   next.Stage,
			Rate: dropOff(current.Count, next.Count),
		})
	}
	return report
}

// dropOff is 0 for an empty stage rather than a misleading 100, and never
// negative when a later stage holds more applications than the one before.
func dropOff(current, next int) int {
	if current == 0 {
		return 0
	}
	rate := 100 - Percentage(next, current)
	if rate < 0 {
		return 0
	}
	return rate
}
