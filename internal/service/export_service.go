package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/noah-isme/hiring-pipeline-api/internal/models"
	appErrors "github.com/noah-isme/hiring-pipeline-api/pkg/errors"
	"github.com/noah-isme/hiring-pipeline-api/pkg/export"
)

const exportDateLayout = "2006-01-02"

// ReportBuilder produces reports for export.
type ReportBuilder interface {
	Build(ctx context.Context, reportType models.ReportType, window models.DateRange) (*models.ReportResult, bool, error)
}

// ExportFile is a rendered report ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders reports as CSV or PDF documents.
type ExportService struct {
	reports   ReportBuilder
	renderers map[models.ReportFormat]export.Renderer
}

// NewExportService constructs the service with the CSV and PDF renderers.
func NewExportService(reports ReportBuilder) *ExportService {
	return &ExportService{
		reports: reports,
		renderers: map[models.ReportFormat]export.Renderer{
			models.ReportFormatCSV: export.NewCSVExporter(),
			models.ReportFormatPDF: export.NewPDFExporter(),
		},
	}
}

// Export builds the report and renders it in format. An empty format means CSV.
func (s *ExportService) Export(ctx context.Context, reportType models.ReportType, window models.DateRange, format models.ReportFormat) (*ExportFile, error) {
	if format == "" {
		format = models.ReportFormatCSV
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedFormat, fmt.Sprintf("unsupported export format %q", format))
	}

	result, _, err := s.reports.Build(ctx, reportType, window)
	if err != nil {
		return nil, err
	}

	body, err := renderer.Render(ReportDataset(result))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}

	return &ExportFile{
		Filename: fmt.Sprintf("%s_%s_%s.%s", reportType,
			window.Start.Format(exportDateLayout), window.End.Format(exportDateLayout), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

var reportTitles = map[models.ReportType]string{
	models.ReportTypeCandidateSources:  "Candidate Sources",
	models.ReportTypeApplicationFunnel: "Application Funnel",
	models.ReportTypeTimeToHire:        "Time to Hire",
	models.ReportTypeJobPerformance:    "Job Performance",
}

// ReportDataset flattens a report into an export table.
func ReportDataset(r *models.ReportResult) export.Dataset {
	ds := export.Dataset{
		Title: reportTitles[r.Type],
		Subtitle: fmt.Sprintf("%s to %s",
			r.Range.Start.Format(exportDateLayout), r.Range.End.Format(exportDateLayout)),
	}

	switch {
	case r.Sources != nil:
		ds.Headers = []string{"Source", "Applications", "Share %"}
		for _, s := range r.Sources.Sources {
			ds.Rows = append(ds.Rows, map[string]string{
				"Source": s.Source, "Applications": itoa(s.Count), "Share %": itoa(s.Percentage),
			})
		}
		ds.Summary = []export.SummaryItem{
			{Label: "Total applications", Value: itoa(r.Sources.Total)},
			{Label: "Top source", Value: orDash(r.Sources.TopSource)},
		}
	case r.Funnel != nil:
		ds.Headers = []string{"Stage", "Applications", "Conversion %"}
		for _, s := range r.Funnel.Stages {
			ds.Rows = append(ds.Rows, map[string]string{
				"Stage": string(s.Stage), "Applications": itoa(s.Count), "Conversion %": itoa(s.ConversionRate),
			})
		}
		ds.Summary = []export.SummaryItem{
			{Label: "Total applications", Value: itoa(r.Funnel.Total)},
			{Label: "Rejected", Value: itoa(r.Funnel.Rejected)},
		}
		for _, d := range r.Funnel.DropOffs {
			ds.Summary = append(ds.Summary, export.SummaryItem{
				Label: fmt.Sprintf("Drop-off %s to %s", d.From, d.To), Value: itoa(d.Rate) + "%",
			})
		}
	case r.TimeToHire != nil:
		ds.Headers = []string{"Job", "Hires", "Average days"}
		for _, j := range r.TimeToHire.Jobs {
			ds.Rows = append(ds.Rows, map[string]string{
				"Job": jobName(j.JobTitle, j.JobID), "Hires": itoa(j.Hires), "Average days": days(j.AverageDays),
			})
		}
		ds.Summary = []export.SummaryItem{
			{Label: "Total hires", Value: itoa(r.TimeToHire.TotalHires)},
			{Label: "Average days", Value: days(r.TimeToHire.AverageDays)},
			{Label: "Fastest job", Value: days(r.TimeToHire.MinDays)},
			{Label: "Slowest job", Value: days(r.TimeToHire.MaxDays)},
		}
	case r.JobPerformance != nil:
		ds.Headers = []string{"Job", "Department", "Applications", "Interviews", "Hires", "Conversion %"}
		for _, j := range r.JobPerformance.Jobs {
			ds.Rows = append(ds.Rows, map[string]string{
				"Job": jobName(j.JobTitle, j.JobID), "Department": orDash(j.Department),
				"Applications": itoa(j.Applications), "Interviews": itoa(j.Interviews),
				"Hires": itoa(j.Hires), "Conversion %": itoa(j.ConversionRate),
			})
		}
		best := "-"
		if r.JobPerformance.BestJob != nil {
			best = jobName(r.JobPerformance.BestJob.JobTitle, r.JobPerformance.BestJob.JobID)
		}
		ds.Summary = []export.SummaryItem{
			{Label: "Total applications", Value: itoa(r.JobPerformance.TotalApplications)},
			{Label: "Total hires", Value: itoa(r.JobPerformance.TotalHires)},
			{Label: "Conversion", Value: itoa(r.JobPerformance.ConversionRate) + "%"},
			{Label: "Best job", Value: best},
		}
	default:
		ds.Headers = []string{"Label", "Value"}
		for _, p := range r.Series {
			ds.Rows = append(ds.Rows, map[string]string{"Label": p.Label, "Value": strconv.FormatFloat(p.Value, 'f', -1, 64)})
		}
	}
	return ds
}

func itoa(n int) string { return strconv.Itoa(n) }

func days(d float64) string { return strconv.FormatFloat(d, 'f', 1, 64) }

func jobName(title, id string) string {
	if title != "" {
		return title
	}
	return id
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
