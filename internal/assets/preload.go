package assets

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"deckview/internal/catalog"
)

const (
	defaultBatchSize  = 3
	defaultBatchPause = 100 * time.Millisecond

	// predictiveLimit bounds how many neighbors one PredictiveLoad warms.
	predictiveLimit  = 3
	predictiveRadius = 2
)

// Preloader decides which assets to warm proactively. It only ever
// calls the tracker's public operations, so warming competes fairly
// with interactive loads and never duplicates in-flight work.
type Preloader struct {
	tracker *Tracker
	catalog *catalog.Catalog
	logger  *slog.Logger

	batchSize int
	pause     time.Duration
}

// PreloaderOption configures a Preloader.
type PreloaderOption func(*Preloader)

// WithBatchSize sets how many popular cards load concurrently per batch.
func WithBatchSize(n int) PreloaderOption {
	return func(p *Preloader) {
		if n > 0 {
			p.batchSize = n
		}
	}
}

// WithBatchPause sets the pause between popular-set batches.
func WithBatchPause(d time.Duration) PreloaderOption {
	return func(p *Preloader) {
		if d >= 0 {
			p.pause = d
		}
	}
}

// NewPreloader creates a preloader over the given tracker and catalog.
func NewPreloader(tracker *Tracker, cat *catalog.Catalog, logger *slog.Logger, opts ...PreloaderOption) *Preloader {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Preloader{
		tracker:   tracker,
		catalog:   cat,
		logger:    logger,
		batchSize: defaultBatchSize,
		pause:     defaultBatchPause,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PreloadPopular warms the fixed popular subset (aces and face cards)
// in small batches with a pause between batches, so interactive work is
// never starved. Per-card failures are logged and swallowed; preloading
// is an optimization, not a correctness requirement. Returns once every
// batch has settled or ctx is done between batches.
func (p *Preloader) PreloadPopular(ctx context.Context) {
	ids := p.catalog.PopularIDs()

	for start := 0; start < len(ids); start += p.batchSize {
		end := start + p.batchSize
		if end > len(ids) {
			end = len(ids)
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, id := range ids[start:end] {
			g.Go(func() error {
				ok, err := p.tracker.EnsureLoaded(gctx, id)
				if err != nil {
					p.logger.Warn("preload skipped unknown card", "card", id, "error", err)
				} else if !ok {
					p.logger.Debug("preload failed", "card", id)
				}
				return nil
			})
		}
		g.Wait()

		if end == len(ids) {
			break
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(p.pause):
		}
	}
}

// PredictiveLoad warms up to three of the cards adjacent to currentID
// in catalog order, nearest first, in a detached background task. The
// caller does not wait and failures are ignored.
func (p *Preloader) PredictiveLoad(currentID string) {
	ids, err := p.catalog.Neighbors(currentID, predictiveRadius)
	if err != nil {
		p.logger.Warn("predictive load skipped unknown card", "card", currentID, "error", err)
		return
	}
	if len(ids) > predictiveLimit {
		ids = ids[:predictiveLimit]
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				p.logger.Error("predictive load panicked", "card", currentID, "panic", r)
			}
		}()
		for _, id := range ids {
			// Result discarded: warming either worked or it didn't.
			_, _ = p.tracker.EnsureLoaded(context.Background(), id)
		}
	}()
}
