// Package assets tracks per-card availability of the bundled 3D assets:
// a state machine with load de-duplication, age-based eviction of tracked
// state, and proactive warming of the popular and nearby cards.
package assets

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Store is a read-only byte store keyed by a slash-separated path
// ("models/ha.glb"). Reads fail if the path is absent; no further
// contract is assumed.
type Store interface {
	ReadAsset(ctx context.Context, path string) ([]byte, error)
}

// DirStore reads assets from a directory tree on disk. An optional
// per-read delay simulates the load latency the original bundled
// assets exhibited.
type DirStore struct {
	root  string
	delay time.Duration
}

// DirStoreOption configures a DirStore.
type DirStoreOption func(*DirStore)

// WithReadDelay makes every read wait d before touching the file.
func WithReadDelay(d time.Duration) DirStoreOption {
	return func(s *DirStore) { s.delay = d }
}

// NewDirStore creates a store rooted at the given directory.
func NewDirStore(root string, opts ...DirStoreOption) *DirStore {
	s := &DirStore{root: root}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReadAsset reads the file at path relative to the store root.
func (s *DirStore) ReadAsset(ctx context.Context, path string) ([]byte, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return os.ReadFile(filepath.Join(s.root, filepath.FromSlash(path)))
}
