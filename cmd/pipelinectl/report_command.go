package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/hiring-pipeline-api/internal/analytics"
	"github.com/noah-isme/hiring-pipeline-api/internal/models"
	"github.com/noah-isme/hiring-pipeline-api/internal/service"
)

const dateLayout = "2006-01-02"

var numericColumns = map[string]bool{
	"Applications": true, "Share %": true, "Conversion %": true,
	"Hires": true, "Average days": true, "Interviews": true,
}

// snapshotReports serves reports straight from an in-memory snapshot.
type snapshotReports struct {
	snap models.Snapshot
}

func (s snapshotReports) Build(_ context.Context, reportType models.ReportType, window models.DateRange) (*models.ReportResult, bool, error) {
	result, err := analytics.Build(reportType, window, s.snap)
	return result, false, err
}

func newReportCommand(opts *cliOptions) *cobra.Command {
	var start, end, format, output string

	cmd := &cobra.Command{
		Use:       "report <type>",
		Short:     "Build a report from the snapshot",
		Long:      "Types: candidate_sources, application_funnel, time_to_hire, job_performance.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: reportTypeNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			window, err := parseWindow(start, end, opts.now())
			if err != nil {
				return err
			}
			snap, err := loadSnapshot(opts.snapshotPath)
			if err != nil {
				return err
			}
			reports := snapshotReports{snap: snap}
			reportType := models.ReportType(args[0])

			if format != "" {
				return exportReport(cmd, reports, reportType, window, models.ReportFormat(format), output)
			}

			result, _, err := reports.Build(cmd.Context(), reportType, window)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return writeJSON(cmd, result)
			}

			ds := service.ReportDataset(result)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderDataset(ds, numericColumns))
			if summary := renderSummary(ds.Summary); summary != "" {
				fmt.Fprintln(out, summary)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD), defaults to 30 days before end")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&format, "export", "", "Write the report as csv or pdf instead of a table")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Export destination, defaults to a generated file name")
	return cmd
}

func exportReport(cmd *cobra.Command, reports snapshotReports, reportType models.ReportType, window models.DateRange, format models.ReportFormat, output string) error {
	file, err := service.NewExportService(reports).Export(cmd.Context(), reportType, window, format)
	if err != nil {
		return err
	}
	if output == "-" {
		_, err := cmd.OutOrStdout().Write(file.Body)
		return err
	}
	if output == "" {
		output = file.Filename
	}
	if err := os.WriteFile(output, file.Body, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", output, len(file.Body))
	return nil
}

// parseWindow fills missing bounds relative to now. Validation of the
// resulting window is left to the report builder.
func parseWindow(start, end string, now time.Time) (models.DateRange, error) {
	var window models.DateRange
	if end == "" {
		y, m, d := now.UTC().Date()
		window.End = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	} else {
		t, err := time.Parse(dateLayout, end)
		if err != nil {
			return window, fmt.Errorf("invalid --end %q: want YYYY-MM-DD", end)
		}
		window.End = t
	}
	if start == "" {
		window.Start = window.End.AddDate(0, 0, -30)
	} else {
		t, err := time.Parse(dateLayout, start)
		if err != nil {
			return window, fmt.Errorf("invalid --start %q: want YYYY-MM-DD", start)
		}
		window.Start = t
	}
	return window, nil
}

func reportTypeNames() []string {
	names := make([]string, len(models.ReportTypes))
	for i, t := range models.ReportTypes {
		names[i] = string(t)
	}
	return names
}
