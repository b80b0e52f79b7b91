package models

import "time"

// ReportType enumerates supported recruiting reports.
type ReportType string

const (
	ReportTypeCandidateSources  ReportType = "candidate_sources"
	ReportTypeApplicationFunnel ReportType = "application_funnel"
	ReportTypeTimeToHire        ReportType = "time_to_hire"
	ReportTypeJobPerformance    ReportType = "job_performance"
)

// ReportTypes lists every known report identifier.
var ReportTypes = []ReportType{
	ReportTypeCandidateSources,
	ReportTypeApplicationFunnel,
	ReportTypeTimeToHire,
	ReportTypeJobPerformance,
}

// ReportFormat enumerates supported export formats.
type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

// DateRange bounds a report. End is inclusive through the end of its day.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Snapshot is an immutable point-in-time view of the record store.
type Snapshot struct {
	Applications []Application `json:"applications"`
	Candidates   []Candidate   `json:"candidates"`
	Jobs         []Job         `json:"jobs"`
	Interviews   []Interview   `json:"interviews"`
}

// SeriesPoint is a chart-ready label/value pair.
type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ReportResult is the normalized output of a report build. Exactly one of the
// detail fields is populated, matching Type.
type ReportResult struct {
	Type    ReportType             `json:"type"`
	Range   DateRange              `json:"range"`
	Series  []SeriesPoint          `json:"series"`
	Summary map[string]interface{} `json:"summary"`

	Sources        *SourceDistribution `json:"sources,omitempty"`
	Funnel         *FunnelReport       `json:"funnel,omitempty"`
	TimeToHire     *TimeToHireReport   `json:"time_to_hire,omitempty"`
	JobPerformance *JobPerformance     `json:"job_performance,omitempty"`
}

// SourceShare is one bucket of the source distribution.
type SourceShare struct {
	Source     string `json:"source"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// SourceDistribution breaks applications down by candidate origin.
type SourceDistribution struct {
	Total     int           `json:"total"`
	Sources   []SourceShare `json:"sources"`
	TopSource string        `json:"top_source,omitempty"`
}

// FunnelStage holds the count and conversion for one funnel step.
type FunnelStage struct {
	Stage          Stage `json:"stage"`
	Count          int   `json:"count"`
	ConversionRate int   `json:"conversion_rate"`
}

// DropOff is the share lost between two consecutive funnel stages.
type DropOff struct {
	From Stage `json:"from"`
	To   Stage `json:"to"`
	Rate int   `json:"rate"`
}

// FunnelReport summarises progression through the pipeline.
type FunnelReport struct {
	Total    int           `json:"total"`
	Stages   []FunnelStage `json:"stages"`
	DropOffs []DropOff     `json:"drop_offs"`
	Rejected int           `json:"rejected"`
}

// JobHireTime is the average hiring duration for one job.
type JobHireTime struct {
	JobID       string  `json:"job_id"`
	JobTitle    string  `json:"job_title"`
	Hires       int     `json:"hires"`
	AverageDays float64 `json:"average_days"`
}

// TimeToHireReport aggregates hiring durations across jobs with hires.
type TimeToHireReport struct {
	Jobs        []JobHireTime `json:"jobs"`
	TotalHires  int           `json:"total_hires"`
	AverageDays float64       `json:"average_days"`
	MinDays     float64       `json:"min_days"`
	MaxDays     float64       `json:"max_days"`
}

// JobPerformanceRow holds per-job application and hire counts.
type JobPerformanceRow struct {
	JobID          string `json:"job_id"`
	JobTitle       string `json:"job_title"`
	Department     string `json:"department"`
	Applications   int    `json:"applications"`
	Hires          int    `json:"hires"`
	Interviews     int    `json:"interviews"`
	ConversionRate int    `json:"conversion_rate"`
}

// JobPerformance compares jobs by conversion.
type JobPerformance struct {
	Jobs              []JobPerformanceRow `json:"jobs"`
	TotalApplications int                 `json:"total_applications"`
	TotalHires        int                 `json:"total_hires"`
	ConversionRate    int                 `json:"conversion_rate"`
	BestJob           *JobPerformanceRow  `json:"best_job,omitempty"`
}
