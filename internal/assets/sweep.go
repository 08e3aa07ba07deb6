package assets

import "time"

// DefaultMaxAge is the staleness bound used when Sweep is called with a
// non-positive max age.
const DefaultMaxAge = time.Hour

// Sweep evicts every tracked entry whose last access is older than
// maxAge and returns the number evicted. Evicted cards revert to not
// loaded. Entries with a load in flight are never evicted.
//
// Eviction only resets tracked state; the bytes of a bundled asset
// cannot be unloaded from the process. The tracker simply stops
// treating stale entries as warm.
//
// The tracker owns no timer; callers invoke Sweep from their own
// schedule or from an explicit clear-cache action.
func (t *Tracker) Sweep(maxAge time.Duration) int {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	cutoff := t.now().Add(-maxAge)

	t.mu.Lock()
	defer t.mu.Unlock()

	evicted := 0
	for id, e := range t.entries {
		if e.status == StatusLoading {
			continue
		}
		if e.lastAccess.Before(cutoff) {
			delete(t.entries, id)
			evicted++
		}
	}
	return evicted
}
