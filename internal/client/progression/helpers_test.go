package progression

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/farag11/daheeh/internal/client/models"
	"github.com/farag11/daheeh/internal/client/repositories/kv"
	"github.com/farag11/daheeh/internal/common"
)

var errDisk = errors.New("disk unavailable")

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// failingStore fails reads or writes on demand.
type failingStore struct {
	*kv.MemoryStore
	failReads  atomic.Bool
	failWrites atomic.Bool
}

func newFailingStore() *failingStore {
	return &failingStore{MemoryStore: kv.NewMemoryStore()}
}

func (f *failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.failReads.Load() {
		return nil, errDisk
	}
	return f.MemoryStore.Get(ctx, key)
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if f.failWrites.Load() {
		return errDisk
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func (f *failingStore) Delete(ctx context.Context, key string) error {
	if f.failWrites.Load() {
		return errDisk
	}
	return f.MemoryStore.Delete(ctx, key)
}

type levelUp struct{ from, to int }

type recordingCelebrator struct {
	mu    sync.Mutex
	calls []levelUp
}

func (r *recordingCelebrator) LevelUp(_ context.Context, from, to int) {
	r.mu.Lock()
	r.calls = append(r.calls, levelUp{from, to})
	r.mu.Unlock()
}

func (r *recordingCelebrator) Calls() []levelUp {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]levelUp(nil), r.calls...)
}

func newTestEngine(t *testing.T, store kv.Store, opts Options) *Engine {
	t.Helper()
	if opts.ToastTTL == 0 {
		opts.ToastTTL = -1
	}
	e, err := NewEngine(store, opts)
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func putState(t *testing.T, store kv.Store, s models.GamificationState) {
	t.Helper()
	raw, err := json.Marshal(s)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), common.KeyProgressionState, raw))
}

func storedState(t *testing.T, store kv.Store) (models.GamificationState, bool) {
	t.Helper()
	raw, err := store.Get(context.Background(), common.KeyProgressionState)
	require.NoError(t, err)
	if raw == nil {
		return models.GamificationState{}, false
	}
	var s models.GamificationState
	require.NoError(t, json.Unmarshal(raw, &s))
	return s, true
}

// gateClock blocks the blockOn-th call to Now until release is closed.
type gateClock struct {
	now     time.Time
	blockOn int32
	calls   atomic.Int32
	reached chan struct{}
	release chan struct{}
}

func newGateClock(now time.Time, blockOn int32) *gateClock {
	return &gateClock{
		now:     now,
		blockOn: blockOn,
		reached: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (c *gateClock) Now() time.Time {
	if c.calls.Add(1) == c.blockOn {
		close(c.reached)
		<-c.release
	}
	return c.now
}
