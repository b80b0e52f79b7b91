package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/hiring-pipeline-api/internal/models"
)

const metricsNamespace = "hiring"

// MetricsService owns the Prometheus registry and keeps running totals for
// the JSON snapshot endpoint.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration  *prometheus.HistogramVec
	cacheLookups     *prometheus.CounterVec
	cacheHitRatio    prometheus.Gauge
	dbQueryDuration  *prometheus.HistogramVec
	stageTransitions *prometheus.CounterVec
	reportsBuilt     *prometheus.CounterVec
	reportDuration   *prometheus.HistogramVec
	eventsProcessed  *prometheus.CounterVec

	cacheHits        atomic.Uint64
	cacheMisses      atomic.Uint64
	requests         atomic.Uint64
	requestNanos     atomic.Uint64
	dbQueries        atomic.Uint64
	dbQueryNanos     atomic.Uint64
	transitionsCount atomic.Uint64
	reportsCount     atomic.Uint64
}

// NewMetricsService registers the collectors on a private registry.
func NewMetricsService() *MetricsService {
	m := &MetricsService{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_lookups_total",
			Help:      "Report cache lookups by result",
		}, []string{"result"}),
		cacheHitRatio: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "cache_hit_ratio",
			Help:      "Ratio of cache hits to total cache lookups",
		}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "db_query_duration_seconds",
			Help:      "Duration of database queries",
			Buckets:   prometheus.DefBuckets,
		}, []string{"query"}),
		stageTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "stage_transitions_total",
			Help:      "Applied pipeline stage transitions by target stage",
		}, []string{"to"}),
		reportsBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "reports_built_total",
			Help:      "Reports computed from a snapshot, excluding cache hits",
		}, []string{"type"}),
		reportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "report_build_duration_seconds",
			Help:      "Time spent aggregating a loaded snapshot",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"type"}),
		eventsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "events_processed_total",
			Help:      "Background events handled by type and outcome",
		}, []string{"type", "outcome"}),
	}

	m.registry.MustRegister(
		m.requestDuration, m.cacheLookups, m.cacheHitRatio, m.dbQueryDuration,
		m.stageTransitions, m.reportsBuilt, m.reportDuration, m.eventsProcessed,
		collectors.NewGoCollector(),
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *MetricsService) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one served request.
func (m *MetricsService) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
	m.requests.Add(1)
	m.requestNanos.Add(uint64(duration.Nanoseconds()))
}

// RecordCacheOperation records a cache lookup and refreshes the hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
		m.cacheHits.Add(1)
	} else {
		m.cacheLookups.WithLabelValues("miss").Inc()
		m.cacheMisses.Add(1)
	}
	m.cacheHitRatio.Set(ratio(m.cacheHits.Load(), m.cacheHits.Load()+m.cacheMisses.Load()))
}

// ObserveDBQuery records database query timing.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(label).Observe(duration.Seconds())
	m.dbQueries.Add(1)
	m.dbQueryNanos.Add(uint64(duration.Nanoseconds()))
}

// RecordStageTransition counts a persisted stage change.
func (m *MetricsService) RecordStageTransition(to models.Stage) {
	if m == nil {
		return
	}
	m.stageTransitions.WithLabelValues(string(to)).Inc()
	m.transitionsCount.Add(1)
}

// RecordReportBuilt counts a report computed from fresh data.
func (m *MetricsService) RecordReportBuilt(reportType models.ReportType, duration time.Duration) {
	if m == nil {
		return
	}
	m.reportsBuilt.WithLabelValues(string(reportType)).Inc()
	m.reportDuration.WithLabelValues(string(reportType)).Observe(duration.Seconds())
	m.reportsCount.Add(1)
}

// RecordEvent counts a processed background event.
func (m *MetricsService) RecordEvent(eventType string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.eventsProcessed.WithLabelValues(eventType, outcome).Inc()
}

// Snapshot returns the running totals.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	hits, misses := m.cacheHits.Load(), m.cacheMisses.Load()
	requests, dbQueries := m.requests.Load(), m.dbQueries.Load()

	return models.SystemMetrics{
		CacheHitRatio:            ratio(hits, hits+misses),
		CacheHits:                hits,
		CacheMisses:              misses,
		RequestsTotal:            requests,
		AverageRequestDurationMs: meanMillis(m.requestNanos.Load(), requests),
		DBQueryCount:             dbQueries,
		AverageDBQueryDurationMs: meanMillis(m.dbQueryNanos.Load(), dbQueries),
		StageTransitions:         m.transitionsCount.Load(),
		ReportsBuilt:             m.reportsCount.Load(),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}

func ratio(part, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}

func meanMillis(totalNanos, count uint64) float64 {
	if count == 0 {
		return 0
	}
	return float64(totalNanos) / float64(count) / float64(time.Millisecond)
}
