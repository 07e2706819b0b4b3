// Package repository holds the current validated dataset snapshot.
//
// The snapshot is replaced atomically as a whole, never patched in
// place. Loads that race are resolved by token: a load takes a token
// when it begins, and a commit carrying an older token than the last
// committed one is discarded rather than merged.
package repository

import (
	"context"
	"sync"
	"time"

	"github.com/paceline/paceline/internal/domain/model"
	"github.com/paceline/paceline/internal/domain/sanitize"
	"github.com/paceline/paceline/pkg/metrics"
)

// Snapshot is one fully-loaded validated dataset plus its derived
// identity lists. All fields are plain data; readers must not mutate
// them.
type Snapshot struct {
	LoadID   string
	LoadedAt time.Time
	Records  []model.Record
	Runners  []string
	Years    []int
	Stats    sanitize.Stats
}

// Store provides read access to the current snapshot and token-gated
// replacement.
type Store interface {
	// Begin reserves a load token. Tokens increase monotonically.
	Begin(ctx context.Context) uint64

	// Replace commits snap if token is newer than the last committed
	// token. Returns false when the commit was stale and discarded.
	Replace(ctx context.Context, token uint64, snap *Snapshot) bool

	// Snapshot returns the current snapshot, or false before the first
	// successful load.
	Snapshot(ctx context.Context) (*Snapshot, bool)
}

// memoryStore implements Store with a mutex-guarded pointer swap.
type memoryStore struct {
	mu        sync.RWMutex
	current   *Snapshot
	nextToken uint64
	committed uint64
}

// NewMemoryStore creates an empty in-memory snapshot store.
func NewMemoryStore(_ context.Context) Store {
	return &memoryStore{}
}

func (s *memoryStore) Begin(_ context.Context) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextToken++
	return s.nextToken
}

func (s *memoryStore) Replace(_ context.Context, token uint64, snap *Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token <= s.committed {
		metrics.RecordStaleLoadDiscarded()
		return false
	}
	s.committed = token
	s.current = snap
	metrics.UpdateDatasetRecords(len(snap.Records))
	metrics.UpdateDatasetRunners(len(snap.Runners))
	metrics.UpdateDatasetYears(len(snap.Years))
	return true
}

func (s *memoryStore) Snapshot(_ context.Context) (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, false
	}
	return s.current, true
}
