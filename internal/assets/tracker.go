package assets

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"deckview/internal/card"
	"deckview/internal/catalog"
)

// Status is the availability of one card's 3D asset.
type Status int

const (
	StatusNotLoaded Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "not-loaded"
	}
}

// Binary glTF containers start with these four bytes.
const glbMagic = "glTF"

const (
	// While a load is in flight the progress estimate ramps linearly
	// over this duration, capped below 1.0 since the store exposes no
	// byte-level progress.
	progressRamp = 2 * time.Second
	progressCap  = 0.9
)

type entry struct {
	status     Status
	lastAccess time.Time
	loadStart  time.Time
}

// Tracker owns the per-card availability state. For any single ID at
// most one fetch runs at a time; concurrent callers share its result.
// Absence from the tracked set means not loaded.
type Tracker struct {
	store   Store
	catalog *catalog.Catalog
	logger  *slog.Logger
	now     func() time.Time

	flight singleflight.Group

	mu      sync.Mutex
	entries map[string]*entry
}

// NewTracker creates a tracker over the given store and catalog.
func NewTracker(store Store, cat *catalog.Catalog, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		store:   store,
		catalog: cat,
		logger:  logger,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// EnsureLoaded makes the asset for id available, loading it if needed,
// and reports whether it can be displayed. A load failure is reported
// as false, never as an error; the only error returned is
// catalog.ErrNotFound for an ID outside the 52-card universe.
//
// If a load for id is already in flight the caller waits for it and
// shares its result rather than starting a second load. An in-flight
// load is never interrupted by ctx cancellation; it runs to completion.
func (t *Tracker) EnsureLoaded(ctx context.Context, id string) (bool, error) {
	cd, err := t.catalog.ByID(id)
	if err != nil {
		return false, err
	}

	t.mu.Lock()
	e := t.entries[id]
	if e != nil && e.status == StatusLoaded {
		e.lastAccess = t.now()
		t.mu.Unlock()
		return true, nil
	}
	if e == nil {
		e = &entry{}
		t.entries[id] = e
	}
	if e.status != StatusLoading {
		e.status = StatusLoading
		e.loadStart = t.now()
	}
	t.mu.Unlock()

	v, _, _ := t.flight.Do(id, func() (any, error) {
		return t.load(ctx, id, cd), nil
	})
	return v.(bool), nil
}

// load runs the single fetch for one flight. A caller that observed
// Loading can reach the flight only after the load it saw has settled;
// re-checking the entry first makes such a caller adopt that result
// instead of fetching again.
func (t *Tracker) load(ctx context.Context, id string, cd card.Card) bool {
	t.mu.Lock()
	if e := t.entries[id]; e != nil && e.status == StatusLoaded {
		e.lastAccess = t.now()
		t.mu.Unlock()
		return true
	}
	t.mu.Unlock()

	ok := t.fetch(context.WithoutCancel(ctx), cd)
	t.settle(id, ok)
	return ok
}

// fetch reads and validates the asset bytes. Failures are in-band.
func (t *Tracker) fetch(ctx context.Context, cd card.Card) bool {
	data, err := t.store.ReadAsset(ctx, cd.ModelPath)
	if err != nil {
		t.logger.Debug("model read failed", "card", cd.ID, "path", cd.ModelPath, "error", err)
		return false
	}
	if len(data) == 0 {
		t.logger.Debug("model asset is empty", "card", cd.ID, "path", cd.ModelPath)
		return false
	}
	if len(data) < len(glbMagic) || string(data[:len(glbMagic)]) != glbMagic {
		t.logger.Debug("model asset is not binary glTF", "card", cd.ID, "path", cd.ModelPath)
		return false
	}
	return true
}

// settle records the outcome of a finished load. If Clear ran while the
// load was in flight the entry was dropped; the finished load
// re-populates its own entry.
func (t *Tracker) settle(id string, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.entries[id]
	if e == nil {
		e = &entry{}
		t.entries[id] = e
	}
	if ok {
		e.status = StatusLoaded
	} else {
		e.status = StatusFailed
	}
	e.lastAccess = t.now()
}

// IsLoaded reports whether the asset for id is currently available.
// It never triggers a load.
func (t *Tracker) IsLoaded(id string) bool {
	return t.State(id) == StatusLoaded
}

// State returns the current availability status for id without
// triggering a load.
func (t *Tracker) State(id string) Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e := t.entries[id]; e != nil {
		return e.status
	}
	return StatusNotLoaded
}

// Progress returns a best-effort load progress estimate in [0, 1]:
// 1.0 when loaded, 0.0 when not loaded or failed, and while loading a
// monotonically increasing time-based ramp capped at 0.9. The ramp is
// an approximation; the store exposes no incremental read progress.
func (t *Tracker) Progress(id string) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.entries[id]
	if e == nil {
		return 0
	}
	switch e.status {
	case StatusLoaded:
		return 1
	case StatusLoading:
		frac := float64(t.now().Sub(e.loadStart)) / float64(progressRamp)
		if frac > progressCap {
			return progressCap
		}
		if frac < 0 {
			return 0
		}
		return frac
	default:
		return 0
	}
}

// Clear drops all tracked state, reverting every card to not loaded.
// In-flight loads are not cancelled; each re-populates its own entry
// when it settles.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make(map[string]*entry)
}
