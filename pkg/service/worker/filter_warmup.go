package worker

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
	"github.com/secmon-lab/inquiry/pkg/utils/logging"
)

// FilterRefresher fetches a filter field through the gateway and caches a
// successful result
type FilterRefresher interface {
	Refresh(ctx context.Context, field types.FieldID) error
}

// FilterWarmupWorker keeps dropdown values of every screen warm
//
// Architecture assumptions:
// - Single server instance; each instance warms its own cache
// - A failed refresh leaves the current cache entry untouched
type FilterWarmupWorker struct {
	filters  FilterRefresher
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewFilterWarmupWorker creates a new worker for warming filter values
func NewFilterWarmupWorker(filters FilterRefresher, interval time.Duration) *FilterWarmupWorker {
	return &FilterWarmupWorker{
		filters:  filters,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background refresh loop
// - Initial warmup and periodic refresh both run in a background goroutine
// - Does not block server startup
func (w *FilterWarmupWorker) Start(ctx context.Context) error {
	if w.interval <= 0 {
		return goerr.New("warmup interval must be positive", goerr.V("interval", w.interval))
	}

	logging.Default().Info("Filter warmup worker starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *FilterWarmupWorker) Stop() {
	logging.Default().Info("Filter warmup worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Filter warmup worker stopped")
}

// run is the main worker loop (runs in goroutine)
func (w *FilterWarmupWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if err := w.refresh(ctx); err != nil {
		logging.Default().Warn("Initial filter warmup incomplete (will retry next interval)",
			"error", err.Error())
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.refresh(ctx); err != nil {
				logging.Default().Warn("Filter warmup incomplete (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			logging.Default().Info("Filter warmup worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("Filter warmup worker context cancelled")
			return
		}
	}
}

// refresh performs a single warmup cycle over every lookup field
func (w *FilterWarmupWorker) refresh(ctx context.Context) error {
	startTime := time.Now()
	fields := WarmupFields()

	var errs []error
	for _, f := range fields {
		if ctx.Err() != nil {
			return goerr.Wrap(ctx.Err(), "warmup interrupted")
		}
		if err := w.filters.Refresh(ctx, f); err != nil {
			errs = append(errs, goerr.Wrap(err, "failed to refresh field", goerr.V("field", f)))
		}
	}

	logging.Default().Info("Filter warmup completed",
		"fields", len(fields),
		"failed", len(errs),
		"duration", time.Since(startTime).String())

	return errors.Join(errs...)
}

// WarmupFields returns every field with values across all screens, once each
func WarmupFields() []types.FieldID {
	seen := map[types.FieldID]bool{}
	var fields []types.FieldID
	for _, s := range types.AllScreens() {
		for _, f := range s.Fields() {
			if !f.HasValues() || seen[f] {
				continue
			}
			seen[f] = true
			fields = append(fields, f)
		}
	}
	return fields
}
