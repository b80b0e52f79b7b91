// Package scheduler keeps the report cache warm on a cron schedule so the
// default dashboard window is served from cache.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/noah-isme/hiring-pipeline-api/internal/models"
)

// ReportWarmer rebuilds cached reports for a window.
type ReportWarmer interface {
	Warm(ctx context.Context, window models.DateRange) error
}

// Warmer periodically rebuilds every report for the trailing window.
type Warmer struct {
	cron    *cron.Cron
	reports ReportWarmer
	spec    string
	window  time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

// NewWarmer builds a warmer firing on spec, e.g. "@every 15m". An empty spec
// disables it.
func NewWarmer(reports ReportWarmer, spec string, window time.Duration, logger *zap.Logger) *Warmer {
	if logger == nil {
		logger = zap.NewNop()
	}
	cl := cronLogger{logger.Sugar()}
	return &Warmer{
		cron:    cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		reports: reports,
		spec:    spec,
		window:  window,
		now:     time.Now,
		logger:  logger,
	}
}

// Start registers the job, starts the scheduler and runs one warm-up in the
// background so the cache is populated before the first tick.
func (w *Warmer) Start(ctx context.Context) error {
	if w.spec == "" {
		w.logger.Info("report warmer disabled")
		return nil
	}
	if _, err := w.cron.AddFunc(w.spec, func() { w.run(ctx) }); err != nil {
		return fmt.Errorf("schedule report warmer %q: %w", w.spec, err)
	}
	w.cron.Start()
	w.logger.Info("report warmer started", zap.String("spec", w.spec), zap.Duration("window", w.window))

	go w.run(ctx)
	return nil
}

// Stop halts the scheduler and waits for scheduled runs in flight.
func (w *Warmer) Stop() {
	<-w.cron.Stop().Done()
	w.logger.Info("report warmer stopped")
}

// Window returns the trailing day-aligned window ending today in UTC.
func (w *Warmer) Window() models.DateRange {
	now := w.now().UTC()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(w.window / (24 * time.Hour))
	if days < 1 {
		days = 1
	}
	return models.DateRange{Start: end.AddDate(0, 0, -days), End: end}
}

// RunOnce warms the cache for the current window.
func (w *Warmer) RunOnce(ctx context.Context) error {
	return w.reports.Warm(ctx, w.Window())
}

func (w *Warmer) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	if err := w.RunOnce(ctx); err != nil {
		w.logger.Warn("report warm-up failed", zap.Error(err))
		return
	}
	w.logger.Debug("report warm-up complete", zap.Duration("took", time.Since(start)))
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}
