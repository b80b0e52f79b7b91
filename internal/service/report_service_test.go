package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hiring-pipeline-api/internal/models"
	appErrors "github.com/noah-isme/hiring-pipeline-api/pkg/errors"
)

func newReportService(snaps *fakeSnapshotRepo, cacheRepo *stubCacheRepo) (*ReportService, *MetricsService) {
	metrics := NewMetricsService()
	cache := NewCacheService(cacheRepo, metrics, 0, nil, cacheRepo != nil)
	return NewReportService(snaps, cache, metrics, 0, nil), metrics
}

func TestReportServiceBuildCachesResult(t *testing.T) {
	snaps := &fakeSnapshotRepo{snap: hiringSnapshot()}
	svc, metrics := newReportService(snaps, newStubCache())

	first, hit, err := svc.Build(context.Background(), models.ReportTypeCandidateSources, may)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "LinkedIn", first.Sources.TopSource)

	second, hit, err := svc.Build(context.Background(), models.ReportTypeCandidateSources, may)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first.Sources, second.Sources)
	assert.Equal(t, 1, snaps.calls)

	snapshot := metrics.Snapshot()
	assert.Equal(t, uint64(1), snapshot.ReportsBuilt)
	assert.Equal(t, uint64(1), snapshot.CacheHits)
	assert.Equal(t, uint64(1), snapshot.CacheMisses)
}

func TestReportServiceCachedResultKeepsSummaryTypes(t *testing.T) {
	for _, reportType := range models.ReportTypes {
		t.Run(string(reportType), func(t *testing.T) {
			svc, _ := newReportService(&fakeSnapshotRepo{snap: hiringSnapshot()}, newStubCache())

			fresh, hit, err := svc.Build(context.Background(), reportType, may)
			require.NoError(t, err)
			require.False(t, hit)

			cached, hit, err := svc.Build(context.Background(), reportType, may)
			require.NoError(t, err)
			require.True(t, hit)

			assert.True(t, reflect.DeepEqual(fresh, cached), "cached %s differs from fresh build", reportType)
			for key, value := range fresh.Summary {
				assert.IsType(t, value, cached.Summary[key], key)
			}
		})
	}
}

func TestReportServiceCachedTotalsStayInts(t *testing.T) {
	svc, _ := newReportService(&fakeSnapshotRepo{snap: hiringSnapshot()}, newStubCache())
	_, _, err := svc.Build(context.Background(), models.ReportTypeCandidateSources, may)
	require.NoError(t, err)

	cached, hit, err := svc.Build(context.Background(), models.ReportTypeCandidateSources, may)
	require.NoError(t, err)
	require.True(t, hit)
	total, ok := cached.Summary["totalApplications"].(int)
	require.True(t, ok)
	assert.Equal(t, 2, total)
}

func TestReportServiceWithoutCache(t *testing.T) {
	snaps := &fakeSnapshotRepo{snap: hiringSnapshot()}
	svc, _ := newReportService(snaps, nil)

	for i := 0; i < 2; i++ {
		result, hit, err := svc.Build(context.Background(), models.ReportTypeTimeToHire, may)
		require.NoError(t, err)
		assert.False(t, hit)
		assert.Equal(t, 1, result.TimeToHire.TotalHires)
	}
	assert.Equal(t, 2, snaps.calls)
}

func TestReportServiceValidatesBeforeLoading(t *testing.T) {
	snaps := &fakeSnapshotRepo{}
	svc, _ := newReportService(snaps, newStubCache())

	_, _, err := svc.Build(context.Background(), "headcount", may)
	assert.ErrorIs(t, err, appErrors.ErrUnknownReportType)

	inverted := models.DateRange{Start: may.End, End: may.Start}
	_, _, err = svc.Build(context.Background(), models.ReportTypeApplicationFunnel, inverted)
	assert.ErrorIs(t, err, appErrors.ErrInvalidRange)
	assert.Zero(t, snaps.calls)
}

func TestReportServiceLoadFailure(t *testing.T) {
	svc, _ := newReportService(&fakeSnapshotRepo{err: errors.New("connection reset")}, newStubCache())
	_, _, err := svc.Build(context.Background(), models.ReportTypeJobPerformance, may)
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}

func TestReportServiceWarmAndInvalidate(t *testing.T) {
	snaps := &fakeSnapshotRepo{snap: hiringSnapshot()}
	cache := newStubCache()
	svc, _ := newReportService(snaps, cache)

	require.NoError(t, svc.Warm(context.Background(), may))
	assert.Len(t, cache.store, len(models.ReportTypes))
	assert.Equal(t, 1, snaps.calls)

	_, hit, err := svc.Build(context.Background(), models.ReportTypeApplicationFunnel, may)
	require.NoError(t, err)
	assert.True(t, hit)

	removed, err := svc.Invalidate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(models.ReportTypes), removed)
	assert.Empty(t, cache.store)
}

func TestMakeReportCacheKey(t *testing.T) {
	key := makeReportCacheKey(models.ReportTypeApplicationFunnel, may)
	assert.True(t, strings.HasPrefix(key, "report:application_funnel:2024-05-01T00:00:00Z:"))
	assert.True(t, strings.HasSuffix(key, "2024-05-31T23:59:59.999Z"))
}
