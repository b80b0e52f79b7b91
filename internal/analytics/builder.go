package analytics

import (
	"fmt"
	"time"

	"github.com/noah-isme/hiring-pipeline-api/internal/models"
	appErrors "github.com/noah-isme/hiring-pipeline-api/pkg/errors"
)

// Summary keys shared by report consumers.
const (
	SummaryTotalApplications = "totalApplications"
	SummaryTopSource         = "topSource"
	SummarySourceCount       = "sourceCount"
	SummaryScreeningRate     = "screeningRate"
	SummaryInterviewRate     = "interviewRate"
	SummaryOfferRate         = "offerRate"
	SummaryHireRate          = "hireRate"
	SummaryRejected          = "rejected"
	SummaryTotalHires        = "totalHires"
	SummaryJobsWithHires     = "jobsWithHires"
	SummaryAverageDays       = "averageDays"
	SummaryMinDays           = "minDays"
	SummaryMaxDays           = "maxDays"
	SummaryConversionRate    = "conversionRate"
	SummaryBestJob           = "bestJob"
	SummaryJobCount          = "jobCount"
)

// IsKnownReportType reports whether t names a supported report.
func IsKnownReportType(t models.ReportType) bool {
	for _, known := range models.ReportTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ValidateRequest checks the report type and window without touching data.
func ValidateRequest(reportType models.ReportType, window models.DateRange) error {
	if !IsKnownReportType(reportType) {
		return appErrors.Clone(appErrors.ErrUnknownReportType, fmt.Sprintf("unknown report type %q", reportType))
	}
	if window.Start.IsZero() || window.End.IsZero() {
		return appErrors.Clone(appErrors.ErrInvalidRange, "start and end dates are required")
	}
	if window.Start.After(window.End) {
		return appErrors.Clone(appErrors.ErrInvalidRange, "start date must not be after end date")
	}
	return nil
}

// Build validates the request, filters applications by application date and
// runs the matching aggregation.
func Build(reportType models.ReportType, window models.DateRange, snap models.Snapshot) (*models.ReportResult, error) {
	if err := ValidateRequest(reportType, window); err != nil {
		return nil, err
	}

	apps := DateWindowFilter(snap.Applications, func(a models.Application) time.Time {
		return a.ApplicationDate
	}, window.Start, window.End)

	result := &models.ReportResult{
		Type:  reportType,
		Range: models.DateRange{Start: window.Start, End: EndOfDay(window.End)},
	}

	switch reportType {
	case models.ReportTypeCandidateSources:
		report := SourceDistribution(apps, snap.Candidates)
		result.Sources = &report
	case models.ReportTypeApplicationFunnel:
		report := ApplicationFunnel(apps)
		result.Funnel = &report
	case models.ReportTypeTimeToHire:
		report := TimeToHire(apps, snap.Jobs)
		result.TimeToHire = &report
	case models.ReportTypeJobPerformance:
		report := JobPerformance(apps, snap.Jobs, snap.Interviews)
		result.JobPerformance = &report
	}
	Summarize(result)
	return result, nil
}

// Summarize derives Series and Summary from the populated detail field. It
// overwrites both, so a result decoded from JSON regains its summary types:
// ints for counts and rates, float64 for day counts, strings for labels.
func Summarize(result *models.ReportResult) {
	switch {
	case result.Sources != nil:
		report := *result.Sources
		result.Series = sourceSeries(report)
		result.Summary = map[string]interface{}{
			SummaryTotalApplications: report.Total,
			SummaryTopSource:         report.TopSource,
			SummarySourceCount:       len(report.Sources),
		}
	case result.Funnel != nil:
		report := *result.Funnel
		result.Series = funnelSeries(report)
		result.Summary = map[string]interface{}{
			SummaryTotalApplications: report.Total,
			SummaryScreeningRate:     stageRate(report, models.StageScreening),
			SummaryInterviewRate:     stageRate(report, models.StageInterview),
			SummaryOfferRate:         stageRate(report, models.StageOffer),
			SummaryHireRate:          stageRate(report, models.StageHired),
			SummaryRejected:          report.Rejected,
		}
	case result.TimeToHire != nil:
		report := *result.TimeToHire
		result.Series = hireTimeSeries(report)
		result.Summary = map[string]interface{}{
			SummaryTotalHires:    report.TotalHires,
			SummaryJobsWithHires: len(report.Jobs),
			SummaryAverageDays:   report.AverageDays,
			SummaryMinDays:       report.MinDays,
			SummaryMaxDays:       report.MaxDays,
		}
	case result.JobPerformance != nil:
		report := *result.JobPerformance
		result.Series = performanceSeries(report)
		bestJob := ""
		if report.BestJob != nil {
			bestJob = jobLabel(models.Job{ID: report.BestJob.JobID, Title: report.BestJob.JobTitle})
		}
		result.Summary = map[string]interface{}{
			SummaryTotalApplications: report.TotalApplications,
			SummaryTotalHires:        report.TotalHires,
			SummaryConversionRate:    report.ConversionRate,
			SummaryBestJob:           bestJob,
			SummaryJobCount:          len(report.Jobs),
		}
	}
}

func stageRate(r models.FunnelReport, stage models.Stage) int {
	for _, s := range r.Stages {
		if s.Stage == stage {
			return s.ConversionRate
		}
	}
	return 0
}

func sourceSeries(r models.SourceDistribution) []models.SeriesPoint {
	series := make([]models.SeriesPoint, 0, len(r.Sources))
	for _, s := range r.Sources {
		series = append(series, models.SeriesPoint{Label: s.Source, Value: float64(s.Count)})
	}
	return series
}

func funnelSeries(r models.FunnelReport) []models.SeriesPoint {
	series := make([]models.SeriesPoint, 0, len(r.Stages))
	for _, s := range r.Stages {
		series = append(series, models.SeriesPoint{Label: string(s.Stage), Value: float64(s.Count)})
	}
	return series
}

func hireTimeSeries(r models.TimeToHireReport) []models.SeriesPoint {
	series := make([]models.SeriesPoint, 0, len(r.Jobs))
	for _, j := range r.Jobs {
		series = append(series, models.SeriesPoint{
			Label: jobLabel(models.Job{ID: j.JobID, Title: j.JobTitle}),
			Value: j.AverageDays,
		})
	}
	return series
}

func performanceSeries(r models.JobPerformance) []models.SeriesPoint {
	series := make([]models.SeriesPoint, 0, len(r.Jobs))
	for _, j := range r.Jobs {
		series = append(series, models.SeriesPoint{
			Label: jobLabel(models.Job{ID: j.JobID, Title: j.JobTitle}),
			Value: float64(j.ConversionRate),
		})
	}
	return series
}
