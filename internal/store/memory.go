package store

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

var (
	// ErrNotFound is returned when no document is available for a key.
	ErrNotFound = errors.New("no document for key")
)

// record is the latest document for one key and when it was stored.
type record[T any] struct {
	doc      T
	storedAt time.Time
}

// MemoryStore is a concurrency-safe in-memory holder of the latest fetched
// document per key. Save replaces the previous document; documents are
// never merged.
type MemoryStore[T any] struct {
	mu sync.RWMutex

	// key: location key or region code
	data map[string]record[T]

	// documents older than maxAge read as absent (0 = never)
	maxAge time.Duration
	clock  clockwork.Clock
}

// NewMemoryStore creates a new MemoryStore. If maxAge is <= 0, documents
// never go stale. A nil clock uses the real clock.
func NewMemoryStore[T any](maxAge time.Duration, clock clockwork.Clock) *MemoryStore[T] {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryStore[T]{
		data:   make(map[string]record[T]),
		maxAge: maxAge,
		clock:  clock,
	}
}

// Save replaces the document stored under key.
func (s *MemoryStore[T]) Save(key string, doc T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = record[T]{doc: doc, storedAt: s.clock.Now()}
}

// Latest returns the most recent document for key.
func (s *MemoryStore[T]) Latest(key string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero T
	rec, ok := s.data[key]
	if !ok {
		return zero, ErrNotFound
	}
	if s.maxAge > 0 && s.clock.Since(rec.storedAt) > s.maxAge {
		return zero, ErrNotFound
	}
	return rec.doc, nil
}

// StoredAt reports when the document for key was saved.
func (s *MemoryStore[T]) StoredAt(key string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[key]
	return rec.storedAt, ok
}
