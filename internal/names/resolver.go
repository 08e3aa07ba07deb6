// Package names resolves display name overrides for card IDs from an
// optional line-oriented "id,name" table. A missing or malformed table
// is never an error; callers fall back to default card names.
package names

import (
	"bufio"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Resolver loads name overrides once and answers lookups afterwards.
// Lookups before Load completes report no override.
type Resolver struct {
	path   string
	logger *slog.Logger

	once sync.Once

	mu        sync.RWMutex
	overrides map[string]string
}

// NewResolver creates a resolver reading from the given file path.
// The file may be absent.
func NewResolver(path string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{path: path, logger: logger}
}

// Load parses the override table. It is idempotent: concurrent and
// repeated calls share a single parse, and every caller returns after
// that parse has completed. Load never fails; an unreadable or
// malformed source yields an empty table.
func (r *Resolver) Load() {
	r.once.Do(func() {
		table := r.parse()
		r.mu.Lock()
		r.overrides = table
		r.mu.Unlock()
	})
}

// TryGet returns the override for id, or false if Load has not
// completed or no override exists. Matching is case-insensitive.
func (r *Resolver) TryGet(id string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.overrides[strings.ToLower(id)]
	return name, ok
}

func (r *Resolver) parse() map[string]string {
	table := make(map[string]string)

	f, err := os.Open(r.path)
	if err != nil {
		r.logger.Debug("name overrides unavailable, using defaults", "path", r.path, "error", err)
		return table
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		isFirst := first
		first = false

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, ",")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		// A leading "id,..." row is a header, not an override.
		if isFirst && key == "id" {
			continue
		}

		// Last occurrence of a duplicate key wins.
		table[key] = strings.TrimSpace(value)
	}

	if err := scanner.Err(); err != nil {
		r.logger.Debug("name override read failed partway, keeping parsed rows", "path", r.path, "error", err)
	}

	return table
}
