package gateway

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"
)

// Entry is a stored response.
type Entry struct {
	Status   int
	Header   http.Header
	Body     []byte
	StoredAt time.Time
}

// Store is a set of named caches keyed by request identity.
type Store interface {
	// Match looks the key up across every cache.
	Match(ctx context.Context, key string) (Entry, bool, error)
	// Put stores e under key in the named cache, creating the cache if needed.
	Put(ctx context.Context, cache, key string, e Entry) error
	// Names lists the caches that currently exist.
	Names(ctx context.Context) ([]string, error)
	// Delete drops a whole cache.
	Delete(ctx context.Context, cache string) error
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu     sync.RWMutex
	caches map[string]map[string]Entry
	order  []string // creation order, searched first to last
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{caches: make(map[string]map[string]Entry)}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) Match(_ context.Context, key string) (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, name := range m.order {
		if e, ok := m.caches[name][key]; ok {
			return cloneEntry(e), true, nil
		}
	}
	return Entry{}, false, nil
}

func (m *MemoryStore) Put(_ context.Context, cache, key string, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.caches[cache]
	if !ok {
		c = make(map[string]Entry)
		m.caches[cache] = c
		m.order = append(m.order, cache)
	}
	if e.StoredAt.IsZero() {
		e.StoredAt = time.Now().UTC()
	}
	c[key] = cloneEntry(e)
	return nil
}

func (m *MemoryStore) Names(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := append([]string(nil), m.order...)
	sort.Strings(out)
	return out, nil
}

func (m *MemoryStore) Delete(_ context.Context, cache string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.caches[cache]; !ok {
		return nil
	}
	delete(m.caches, cache)
	for i, n := range m.order {
		if n == cache {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func cloneEntry(e Entry) Entry {
	e.Header = e.Header.Clone()
	e.Body = append([]byte(nil), e.Body...)
	return e
}
