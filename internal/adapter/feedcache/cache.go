// Package feedcache provides a feature-flagged TTL+LRU decorator around
// point sources so repeated menu selections inside one session can reuse a
// recently fetched payload instead of hitting the feed again.
package feedcache

import (
	"context"
	"sync"
	"time"

	"github.com/couchcryptid/disaster-map/internal/domain"
	"github.com/couchcryptid/disaster-map/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Store is a thread-safe LRU of datasets keyed by source name, shared by all
// cached sources in a session.
type Store struct {
	maxEntries int
	ttl        time.Duration
	clock      clockwork.Clock

	mu      sync.Mutex
	entries map[string]*entry
	head    *entry // most recently used
	tail    *entry // least recently used
}

type entry struct {
	key      string
	value    domain.Dataset
	storedAt time.Time
	prev     *entry
	next     *entry
}

// NewStore creates a dataset store holding at most maxEntries datasets, each
// valid for ttl from the moment it was stored.
func NewStore(maxEntries int, ttl time.Duration, clock clockwork.Clock) *Store {
	return &Store{
		maxEntries: maxEntries,
		ttl:        ttl,
		clock:      clock,
		entries:    make(map[string]*entry),
	}
}

// CachedSource wraps a PointSource with the store.
type CachedSource struct {
	inner   domain.PointSource
	store   *Store
	metrics *observability.Metrics
}

// Wrap decorates a point source with the shared store.
func Wrap(inner domain.PointSource, store *Store, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{inner: inner, store: store, metrics: metrics}
}

func (c *CachedSource) Name() string  { return c.inner.Name() }
func (c *CachedSource) Title() string { return c.inner.Title() }

// Fetch returns the cached dataset when a fresh one exists, otherwise fetches
// through and caches the result. Failed fetches are never cached so the next
// selection retries.
func (c *CachedSource) Fetch(ctx context.Context) (domain.Dataset, error) {
	if dataset, ok := c.store.get(c.inner.Name()); ok {
		c.metrics.CacheLookups.WithLabelValues(c.inner.Name(), "hit").Inc()
		return dataset, nil
	}
	c.metrics.CacheLookups.WithLabelValues(c.inner.Name(), "miss").Inc()

	dataset, err := c.inner.Fetch(ctx)
	if err != nil {
		return domain.Dataset{}, err
	}
	c.store.put(c.inner.Name(), dataset)
	return dataset, nil
}

func (s *Store) get(key string) (domain.Dataset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return domain.Dataset{}, false
	}
	if s.clock.Now().Sub(e.storedAt) >= s.ttl {
		delete(s.entries, e.key)
		s.remove(e)
		return domain.Dataset{}, false
	}
	s.moveToFront(e)
	return e.value, true
}

func (s *Store) put(key string, value domain.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		e.value = value
		e.storedAt = s.clock.Now()
		s.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value, storedAt: s.clock.Now()}
	s.entries[key] = e
	s.addToFront(e)

	if len(s.entries) > s.maxEntries {
		s.evictTail()
	}
}

func (s *Store) moveToFront(e *entry) {
	if e == s.head {
		return
	}
	s.remove(e)
	s.addToFront(e)
}

func (s *Store) addToFront(e *entry) {
	e.next = s.head
	e.prev = nil
	if s.head != nil {
		s.head.prev = e
	}
	s.head = e
	if s.tail == nil {
		s.tail = e
	}
}

func (s *Store) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		s.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		s.tail = e.prev
	}
}

func (s *Store) evictTail() {
	if s.tail == nil {
		return
	}
	delete(s.entries, s.tail.key)
	s.remove(s.tail)
}
