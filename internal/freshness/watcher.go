// Package freshness periodically checks how stale the warehouse is and logs
// a warning when the newest price date falls behind. It is observation only:
// loading new data is the ETL pipeline's job, not this service's.
package freshness

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/marketlens/backend/pkg/config"
	"github.com/marketlens/backend/pkg/logger"
)

// PriceDateSource reports the newest trading date in the warehouse.
type PriceDateSource interface {
	LatestPriceDate(ctx context.Context) (*time.Time, error)
}

// Watcher runs the freshness check on a cron schedule.
type Watcher struct {
	cron   *cron.Cron
	source PriceDateSource
	cfg    config.FreshnessConfig
	logger *logger.Logger

	mu        sync.RWMutex
	lastCheck *CheckResult
}

// CheckResult is the outcome of a single freshness check.
type CheckResult struct {
	CheckedAt       time.Time
	LatestPriceDate *time.Time
	Age             time.Duration
	Stale           bool
	Err             error
}

// New creates a new freshness watcher.
func New(source PriceDateSource, cfg config.FreshnessConfig, log *logger.Logger) *Watcher {
	return &Watcher{
		cron:   cron.New(cron.WithSeconds()),
		source: source,
		cfg:    cfg,
		logger: log.WithField("module", "freshness"),
	}
}

// Start schedules the check and runs it once immediately so the first
// status is available before the first cron tick.
func (w *Watcher) Start() error {
	if _, err := w.cron.AddFunc(w.cfg.Schedule, func() {
		w.runCheck(context.Background())
	}); err != nil {
		return fmt.Errorf("failed to schedule freshness check: %w", err)
	}

	w.cron.Start()
	w.logger.WithFields(map[string]interface{}{
		"schedule": w.cfg.Schedule,
		"max_age":  w.cfg.MaxAge,
	}).Info("Freshness watcher started")

	go w.runCheck(context.Background())
	return nil
}

// Stop stops the watcher and waits for any in-flight check.
func (w *Watcher) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	w.logger.Info("Freshness watcher stopped")
}

// LastCheck returns the most recent check result, or nil before the first run.
func (w *Watcher) LastCheck() *CheckResult {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastCheck
}

// runCheck queries the warehouse and records the result.
func (w *Watcher) runCheck(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	result := w.Check(ctx)

	w.mu.Lock()
	w.lastCheck = result
	w.mu.Unlock()
}

// Check performs one freshness check and logs the outcome.
func (w *Watcher) Check(ctx context.Context) *CheckResult {
	result := &CheckResult{CheckedAt: time.Now().UTC()}

	latest, err := w.source.LatestPriceDate(ctx)
	if err != nil {
		result.Err = err
		w.logger.WithError(err).Error("Freshness check failed")
		return result
	}
	result.LatestPriceDate = latest

	if latest == nil {
		result.Stale = true
		w.logger.Warn("Warehouse has no price data")
		return result
	}

	result.Age = result.CheckedAt.Sub(*latest)
	result.Stale = result.Age > w.cfg.MaxAge

	fields := map[string]interface{}{
		"latest_price_date": latest.Format("2006-01-02"),
		"age":               result.Age.Round(time.Minute).String(),
		"max_age":           w.cfg.MaxAge.String(),
	}
	if result.Stale {
		w.logger.WithFields(fields).Warn("Warehouse data is stale")
	} else {
		w.logger.WithFields(fields).Debug("Warehouse data is fresh")
	}

	return result
}
