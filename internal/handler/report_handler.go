package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hiring-pipeline-api/internal/analytics"
	"github.com/noah-isme/hiring-pipeline-api/internal/dto"
	"github.com/noah-isme/hiring-pipeline-api/internal/middleware"
	"github.com/noah-isme/hiring-pipeline-api/internal/models"
	"github.com/noah-isme/hiring-pipeline-api/internal/service"
	appErrors "github.com/noah-isme/hiring-pipeline-api/pkg/errors"
	"github.com/noah-isme/hiring-pipeline-api/pkg/response"
)

const dateLayout = "2006-01-02"

type reportService interface {
	Build(ctx context.Context, reportType models.ReportType, window models.DateRange) (*models.ReportResult, bool, error)
}

type exportService interface {
	Export(ctx context.Context, reportType models.ReportType, window models.DateRange, format models.ReportFormat) (*service.ExportFile, error)
}

// ReportHandler serves recruiting reports and their downloads.
type ReportHandler struct {
	reports reportService
	exports exportService
	now     func() time.Time
}

// NewReportHandler constructs the handler.
func NewReportHandler(reports reportService, exports exportService) *ReportHandler {
	return &ReportHandler{reports: reports, exports: exports, now: time.Now}
}

// Get godoc
// @Summary Build a report
// @Tags Reports
// @Produce json
// @Param type path string true "candidate_sources, application_funnel, time_to_hire or job_performance"
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD), inclusive"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reports/{type} [get]
func (h *ReportHandler) Get(c *gin.Context) {
	reportType, window, err := parseReportRequest(c, &dto.ReportQuery{})
	if err != nil {
		response.Error(c, err)
		return
	}
	result, cacheHit, err := h.reports.Build(c.Request.Context(), reportType, window)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	middleware.AddMeta(c, "generated_at", h.now().UTC())
	response.OK(c, result, middleware.ResponseMeta(c))
}

// Export godoc
// @Summary Download a report
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param type path string true "Report type"
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD), inclusive"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /reports/{type}/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	var query dto.ExportQuery
	reportType, window, err := parseReportRequest(c, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exports.Export(c.Request.Context(), reportType, window, models.ReportFormat(query.Format))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

// parseReportRequest checks the report type before the dates so an unknown
// type wins over a bad window. Missing dates stay zero and are rejected as
// an invalid range by the builder.
func parseReportRequest(c *gin.Context, query interface{}) (models.ReportType, models.DateRange, error) {
	reportType := models.ReportType(c.Param("type"))
	if !analytics.IsKnownReportType(reportType) {
		return "", models.DateRange{}, appErrors.Clone(appErrors.ErrUnknownReportType, fmt.Sprintf("unknown report type %q", reportType))
	}
	if err := c.ShouldBindQuery(query); err != nil {
		return "", models.DateRange{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters")
	}

	var q dto.ReportQuery
	switch v := query.(type) {
	case *dto.ReportQuery:
		q = *v
	case *dto.ExportQuery:
		q = v.ReportQuery
	}

	start, err := parseDate("start", q.Start)
	if err != nil {
		return "", models.DateRange{}, err
	}
	end, err := parseDate("end", q.End)
	if err != nil {
		return "", models.DateRange{}, err
	}
	return reportType, models.DateRange{Start: start, End: end}, nil
}

func parseDate(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrInvalidRange, fmt.Sprintf("%s must use the YYYY-MM-DD format", field))
	}
	return t, nil
}
