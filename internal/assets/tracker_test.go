package assets

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"deckview/internal/catalog"
)

// fakeStore serves in-memory assets and counts reads. Reads can be
// gated so a test controls when an in-flight load settles.
type fakeStore struct {
	mu    sync.Mutex
	data  map[string][]byte
	reads atomic.Int64
	gate  chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte)}
}

func (f *fakeStore) put(path string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[path] = data
}

func (f *fakeStore) ReadAsset(ctx context.Context, path string) ([]byte, error) {
	f.reads.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.data[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func validModel() []byte {
	return []byte("glTF\x02\x00\x00\x00rest-of-container")
}

type TrackerSuite struct {
	suite.Suite
	store   *fakeStore
	catalog *catalog.Catalog
	tracker *Tracker
	ctx     context.Context
}

func (s *TrackerSuite) SetupTest() {
	s.store = newFakeStore()
	s.catalog = catalog.New()
	s.tracker = NewTracker(s.store, s.catalog, nil)
	s.ctx = context.Background()
}

func TestTrackerSuite(t *testing.T) {
	suite.Run(t, new(TrackerSuite))
}

func (s *TrackerSuite) TestLoadsValidModel() {
	s.store.put("models/ha.glb", validModel())

	ok, err := s.tracker.EnsureLoaded(s.ctx, "ha")
	s.Require().NoError(err)
	s.True(ok)
	s.True(s.tracker.IsLoaded("ha"))
	s.Equal(StatusLoaded, s.tracker.State("ha"))
}

func (s *TrackerSuite) TestValidationFailures() {
	s.Run("missing asset", func() {
		ok, err := s.tracker.EnsureLoaded(s.ctx, "sk")
		s.Require().NoError(err)
		s.False(ok)
		s.Equal(StatusFailed, s.tracker.State("sk"))
	})

	s.Run("zero-length asset", func() {
		s.store.put("models/d2.glb", []byte{})
		ok, err := s.tracker.EnsureLoaded(s.ctx, "d2")
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("wrong magic marker", func() {
		s.store.put("models/d3.glb", []byte("GLTFnot-binary"))
		ok, err := s.tracker.EnsureLoaded(s.ctx, "d3")
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("shorter than the magic", func() {
		s.store.put("models/d4.glb", []byte("gl"))
		ok, err := s.tracker.EnsureLoaded(s.ctx, "d4")
		s.Require().NoError(err)
		s.False(ok)
	})
}

func (s *TrackerSuite) TestUnknownIDPropagates() {
	_, err := s.tracker.EnsureLoaded(s.ctx, "zz")
	s.Require().ErrorIs(err, catalog.ErrNotFound)
	s.Equal(StatusNotLoaded, s.tracker.State("zz"))
}

// TestAtMostOneLoad verifies the de-duplication contract: N concurrent
// callers for the same cold id trigger exactly one underlying fetch and
// all observe the same result.
func (s *TrackerSuite) TestAtMostOneLoad() {
	s.store.put("models/ha.glb", validModel())
	s.store.gate = make(chan struct{})

	const callers = 25
	results := make(chan bool, callers)

	var wg sync.WaitGroup
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.tracker.EnsureLoaded(s.ctx, "ha")
			s.NoError(err)
			results <- ok
		}()
	}

	// Give every caller time to reach the tracker, then let the single
	// fetch proceed.
	time.Sleep(50 * time.Millisecond)
	close(s.store.gate)
	wg.Wait()
	close(results)

	s.Equal(int64(1), s.store.reads.Load())
	for ok := range results {
		s.True(ok)
	}
}

// TestLateJoinerAdoptsSettledResult covers the caller that snapshots a
// Loading entry but only reaches the flight after that load settled:
// it must adopt the settled result, not start a second fetch.
func (s *TrackerSuite) TestLateJoinerAdoptsSettledResult() {
	s.store.put("models/ha.glb", validModel())
	c, err := s.catalog.ByID("ha")
	s.Require().NoError(err)

	ok, err := s.tracker.EnsureLoaded(s.ctx, "ha")
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Require().Equal(int64(1), s.store.reads.Load())

	// The flight body as a late joiner runs it: the entry already
	// settled as Loaded, so no fetch may happen.
	s.True(s.tracker.load(s.ctx, "ha", c))
	s.Equal(int64(1), s.store.reads.Load())

	// A Failed entry is not adopted; the retry transition still fetches.
	s.tracker.mu.Lock()
	s.tracker.entries["ha"].status = StatusFailed
	s.tracker.mu.Unlock()

	s.True(s.tracker.load(s.ctx, "ha", c))
	s.Equal(int64(2), s.store.reads.Load())
	s.Equal(StatusLoaded, s.tracker.State("ha"))
}

func (s *TrackerSuite) TestLoadedHitSkipsStore() {
	s.store.put("models/ha.glb", validModel())

	ok, err := s.tracker.EnsureLoaded(s.ctx, "ha")
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(int64(1), s.store.reads.Load())

	ok, err = s.tracker.EnsureLoaded(s.ctx, "ha")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(int64(1), s.store.reads.Load(), "warm hit must not re-read")
}

func (s *TrackerSuite) TestLoadedHitRefreshesLastAccess() {
	s.store.put("models/ha.glb", validModel())

	base := time.Now()
	s.tracker.now = func() time.Time { return base }
	_, err := s.tracker.EnsureLoaded(s.ctx, "ha")
	s.Require().NoError(err)

	later := base.Add(45 * time.Minute)
	s.tracker.now = func() time.Time { return later }
	_, err = s.tracker.EnsureLoaded(s.ctx, "ha")
	s.Require().NoError(err)

	s.tracker.mu.Lock()
	access := s.tracker.entries["ha"].lastAccess
	s.tracker.mu.Unlock()
	s.True(access.Equal(later))
}

func (s *TrackerSuite) TestFailedThenRetry() {
	ok, err := s.tracker.EnsureLoaded(s.ctx, "ha")
	s.Require().NoError(err)
	s.Require().False(ok)
	s.Equal(StatusFailed, s.tracker.State("ha"))

	// The asset appears (say, after a re-bundle); retry must re-fetch.
	s.store.put("models/ha.glb", validModel())
	ok, err = s.tracker.EnsureLoaded(s.ctx, "ha")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(int64(2), s.store.reads.Load())
}

func (s *TrackerSuite) TestClearDoesNotCancelInFlight() {
	s.store.put("models/ha.glb", validModel())
	s.store.gate = make(chan struct{})

	done := make(chan bool, 1)
	go func() {
		ok, _ := s.tracker.EnsureLoaded(s.ctx, "ha")
		done <- ok
	}()

	s.Require().Eventually(func() bool {
		return s.tracker.State("ha") == StatusLoading
	}, time.Second, time.Millisecond)

	s.tracker.Clear()
	s.Equal(StatusNotLoaded, s.tracker.State("ha"))

	close(s.store.gate)
	s.True(<-done)

	// The finished load re-populated its own entry.
	s.Equal(StatusLoaded, s.tracker.State("ha"))
}

func (s *TrackerSuite) TestClearResetsState() {
	s.store.put("models/ha.glb", validModel())
	_, err := s.tracker.EnsureLoaded(s.ctx, "ha")
	s.Require().NoError(err)
	s.Require().True(s.tracker.IsLoaded("ha"))

	s.tracker.Clear()
	s.False(s.tracker.IsLoaded("ha"))
	s.Equal(StatusNotLoaded, s.tracker.State("ha"))
}

func (s *TrackerSuite) TestProgress() {
	base := time.Now()
	s.tracker.now = func() time.Time { return base }

	s.Equal(0.0, s.tracker.Progress("ha"), "untracked card")

	s.tracker.mu.Lock()
	s.tracker.entries["ha"] = &entry{status: StatusLoading, loadStart: base}
	s.tracker.mu.Unlock()

	s.Equal(0.0, s.tracker.Progress("ha"))

	s.tracker.now = func() time.Time { return base.Add(progressRamp / 2) }
	s.InDelta(0.5, s.tracker.Progress("ha"), 0.001)

	// The estimate never reaches 1.0 while loading.
	s.tracker.now = func() time.Time { return base.Add(time.Minute) }
	s.Equal(progressCap, s.tracker.Progress("ha"))

	s.tracker.mu.Lock()
	s.tracker.entries["ha"].status = StatusLoaded
	s.tracker.entries["hk"] = &entry{status: StatusFailed}
	s.tracker.mu.Unlock()

	s.Equal(1.0, s.tracker.Progress("ha"))
	s.Equal(0.0, s.tracker.Progress("hk"))
}

func (s *TrackerSuite) TestProgressMonotonicWhileLoading() {
	base := time.Now()
	s.tracker.mu.Lock()
	s.tracker.entries["ha"] = &entry{status: StatusLoading, loadStart: base}
	s.tracker.mu.Unlock()

	prev := -1.0
	for _, elapsed := range []time.Duration{0, 200 * time.Millisecond, time.Second, 3 * time.Second, time.Hour} {
		s.tracker.now = func() time.Time { return base.Add(elapsed) }
		p := s.tracker.Progress("ha")
		s.GreaterOrEqual(p, prev)
		s.LessOrEqual(p, progressCap)
		prev = p
	}
}
