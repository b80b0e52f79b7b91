package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hiring-pipeline-api/internal/models"
	appErrors "github.com/noah-isme/hiring-pipeline-api/pkg/errors"
)

func newExportService() *ExportService {
	reports, _ := newReportService(&fakeSnapshotRepo{snap: hiringSnapshot()}, nil)
	return NewExportService(reports)
}

func TestExportServiceCSV(t *testing.T) {
	file, err := newExportService().Export(context.Background(), models.ReportTypeApplicationFunnel, may, "")
	require.NoError(t, err)

	assert.Equal(t, "application_funnel_2024-05-01_2024-05-31.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)
	lines := strings.Split(strings.TrimSpace(string(file.Body)), "\n")
	assert.Equal(t, "Stage,Applications,Conversion %", lines[0])
	assert.Equal(t, "applied,2,100", lines[1])
	assert.Len(t, lines, 6)
}

func TestExportServicePDF(t *testing.T) {
	file, err := newExportService().Export(context.Background(), models.ReportTypeJobPerformance, may, models.ReportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Body, []byte("%PDF-")))
}

func TestExportServiceErrors(t *testing.T) {
	svc := newExportService()
	_, err := svc.Export(context.Background(), models.ReportTypeTimeToHire, may, "xlsx")
	assert.ErrorIs(t, err, appErrors.ErrUnsupportedFormat)

	_, err = svc.Export(context.Background(), "headcount", may, models.ReportFormatCSV)
	assert.ErrorIs(t, err, appErrors.ErrUnknownReportType)
}

func TestReportDatasetJobPerformance(t *testing.T) {
	reports, _ := newReportService(&fakeSnapshotRepo{snap: hiringSnapshot()}, nil)
	result, _, err := reports.Build(context.Background(), models.ReportTypeJobPerformance, may)
	require.NoError(t, err)

	ds := ReportDataset(result)
	assert.Equal(t, "Job Performance", ds.Title)
	require.Len(t, ds.Rows, 1)
	assert.Equal(t, "Backend Engineer", ds.Rows[0]["Job"])
	assert.Equal(t, "50", ds.Rows[0]["Conversion %"])
	assert.Equal(t, "Backend Engineer", ds.Summary[3].Value)
}
