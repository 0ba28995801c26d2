package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/farag11/daheeh/internal/client/client"
	"github.com/farag11/daheeh/internal/client/repositories/kv"
	"github.com/farag11/daheeh/internal/cryptox"
	"github.com/farag11/daheeh/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

var errDiskFull = errors.New("disk full")

func newSQLiteStore(t *testing.T) *kv.SQLiteStore {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return kv.NewSQLiteStore(db)
}

func testHasher() cryptox.Hasher {
	return cryptox.NewArgon2idHasher(cryptox.Argon2Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32})
}

func newServices(t *testing.T, store kv.Store) (AuthService, *SessionManager) {
	t.Helper()
	sessions := NewSessionManager(store, logging.NewNop())
	return NewAuthService(store, sessions, testHasher(), logging.NewNop()), sessions
}

// ---- fake store ----

// flakyStore wraps a MemoryStore and fails reads or writes on demand.
type flakyStore struct {
	*kv.MemoryStore

	mu        sync.Mutex
	failReads bool
	failWrite bool
	reads     int
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: kv.NewMemoryStore()}
}

func (f *flakyStore) setFailures(reads, writes bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failReads, f.failWrite = reads, writes
}

func (f *flakyStore) readErr() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.failReads {
		return errDiskFull
	}
	return nil
}

func (f *flakyStore) writeErr() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite {
		return errDiskFull
	}
	return nil
}

func (f *flakyStore) readCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

func (f *flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := f.readErr(); err != nil {
		return nil, err
	}
	return f.MemoryStore.Get(ctx, key)
}

func (f *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if err := f.writeErr(); err != nil {
		return err
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func (f *flakyStore) Delete(ctx context.Context, key string) error {
	if err := f.writeErr(); err != nil {
		return err
	}
	return f.MemoryStore.Delete(ctx, key)
}

func (f *flakyStore) WithTx(ctx context.Context, fn func(ctx context.Context, r kv.Repository) error) error {
	if err := f.writeErr(); err != nil {
		return err
	}
	return f.MemoryStore.WithTx(ctx, fn)
}
