// Package sweeper reclaims expired short links in the background.
package sweeper

import (
	"context"
	"time"

	"github.com/serroba/shortlinks/internal/metrics"
	"github.com/serroba/shortlinks/internal/shortener"
	"go.uber.org/zap"
)

const (
	// DefaultInterval is how often the janitor sweeps.
	DefaultInterval = time.Minute
	// DefaultRetention is how long an expired record keeps reporting as expired.
	DefaultRetention = time.Hour
)

// Janitor periodically removes records that expired longer than retention ago.
type Janitor struct {
	sweeper   shortener.Sweeper
	interval  time.Duration
	retention time.Duration
	metrics   *metrics.Metrics
	logger    *zap.Logger
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewJanitor creates a janitor. A non-positive interval or a negative retention
// falls back to the default.
func NewJanitor(
	sweeper shortener.Sweeper,
	interval, retention time.Duration,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Janitor {
	if interval <= 0 {
		interval = DefaultInterval
	}

	if retention < 0 {
		retention = DefaultRetention
	}

	return &Janitor{
		sweeper:   sweeper,
		interval:  interval,
		retention: retention,
		metrics:   m,
		logger:    logger,
		done:      make(chan struct{}),
	}
}

// Start runs the sweep loop until ctx is cancelled or Shutdown is called.
func (j *Janitor) Start(ctx context.Context) error {
	ctx, j.cancel = context.WithCancel(ctx)

	go j.loop(ctx)

	j.logger.Info("janitor started",
		zap.Duration("interval", j.interval),
		zap.Duration("retention", j.retention),
	)

	return nil
}

func (j *Janitor) loop(ctx context.Context) {
	defer close(j.done)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.SweepOnce(ctx)
		}
	}
}

// SweepOnce performs a single sweep and returns how many records were removed.
func (j *Janitor) SweepOnce(ctx context.Context) int64 {
	removed, err := j.sweeper.Sweep(ctx, j.retention)
	if err != nil {
		j.logger.Error("sweep failed", zap.Error(err))

		return 0
	}

	if removed > 0 {
		j.metrics.Swept.Add(float64(removed))
		j.logger.Debug("swept expired links", zap.Int64("removed", removed))
	}

	return removed
}

// Shutdown stops the loop and waits for an in-flight sweep to finish.
func (j *Janitor) Shutdown() error {
	if j.cancel == nil {
		return nil
	}

	j.cancel()
	<-j.done

	return nil
}
