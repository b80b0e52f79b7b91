package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/hiring-pipeline-api/internal/analytics"
	"github.com/noah-isme/hiring-pipeline-api/internal/models"
	appErrors "github.com/noah-isme/hiring-pipeline-api/pkg/errors"
)

const reportCachePrefix = "report"

// SnapshotRepository loads the records a report is built from.
type SnapshotRepository interface {
	Load(ctx context.Context, from, to time.Time) (*models.Snapshot, error)
}

// ReportService builds recruiting reports, caching results per type and window.
type ReportService struct {
	snapshots SnapshotRepository
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
	ttl       time.Duration
}

// NewReportService constructs the service. cache and metrics may be nil.
func NewReportService(snapshots SnapshotRepository, cache *CacheService, metrics *MetricsService, ttl time.Duration, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{snapshots: snapshots, cache: cache, metrics: metrics, ttl: ttl, logger: logger}
}

// Build returns the report and whether it came from cache.
func (s *ReportService) Build(ctx context.Context, reportType models.ReportType, window models.DateRange) (*models.ReportResult, bool, error) {
	if err := analytics.ValidateRequest(reportType, window); err != nil {
		return nil, false, err
	}

	key := makeReportCacheKey(reportType, window)
	var cached models.ReportResult
	if s.cache.Get(ctx, key, &cached) {
		analytics.Summarize(&cached)
		if cached.Type == reportType && cached.Summary != nil {
			return &cached, true, nil
		}
	}

	result, err := s.compute(ctx, reportType, window)
	if err != nil {
		return nil, false, err
	}
	s.cache.Set(ctx, key, result, s.ttl)
	return result, false, nil
}

// Warm rebuilds every report type for window and overwrites cached entries.
// One snapshot load serves all types.
func (s *ReportService) Warm(ctx context.Context, window models.DateRange) error {
	if !s.cache.Enabled() {
		return nil
	}
	snap, err := s.load(ctx, window)
	if err != nil {
		return err
	}
	for _, reportType := range models.ReportTypes {
		result, err := s.aggregate(reportType, window, snap)
		if err != nil {
			return err
		}
		s.cache.Set(ctx, makeReportCacheKey(reportType, window), result, s.ttl)
	}
	s.logger.Info("report cache warmed",
		zap.Time("start", window.Start),
		zap.Time("end", window.End),
		zap.Int("reports", len(models.ReportTypes)),
	)
	return nil
}

// Invalidate drops every cached report.
func (s *ReportService) Invalidate(ctx context.Context) (int, error) {
	return s.cache.Invalidate(ctx, reportCachePrefix+":*")
}

func (s *ReportService) compute(ctx context.Context, reportType models.ReportType, window models.DateRange) (*models.ReportResult, error) {
	snap, err := s.load(ctx, window)
	if err != nil {
		return nil, err
	}
	return s.aggregate(reportType, window, snap)
}

func (s *ReportService) load(ctx context.Context, window models.DateRange) (models.Snapshot, error) {
	start := time.Now()
	snap, err := s.snapshots.Load(ctx, window.Start, analytics.EndOfDay(window.End))
	s.metrics.ObserveDBQuery("report_snapshot", time.Since(start))
	if err != nil {
		return models.Snapshot{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load report data")
	}
	if snap == nil {
		return models.Snapshot{}, nil
	}
	return *snap, nil
}

func (s *ReportService) aggregate(reportType models.ReportType, window models.DateRange, snap models.Snapshot) (*models.ReportResult, error) {
	start := time.Now()
	result, err := analytics.Build(reportType, window, snap)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordReportBuilt(reportType, time.Since(start))
	return result, nil
}

func makeReportCacheKey(reportType models.ReportType, window models.DateRange) string {
	return fmt.Sprintf("%s:%s:%s:%s", reportCachePrefix, reportType,
		window.Start.UTC().Format(time.RFC3339Nano),
		analytics.EndOfDay(window.End).UTC().Format(time.RFC3339Nano))
}
