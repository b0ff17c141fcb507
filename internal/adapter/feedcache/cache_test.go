package feedcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/couchcryptid/disaster-map/internal/domain"
	"github.com/couchcryptid/disaster-map/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock source ---

type countingSource struct {
	name    string
	fetches int
	err     error
}

func (s *countingSource) Name() string  { return s.name }
func (s *countingSource) Title() string { return "Test " + s.name }

func (s *countingSource) Fetch(_ context.Context) (domain.Dataset, error) {
	s.fetches++
	if s.err != nil {
		return domain.Dataset{}, s.err
	}
	return domain.Dataset{Source: s.name, Title: s.Title()}, nil
}

func testStore(maxEntries int, ttl time.Duration, clock clockwork.Clock) *Store {
	return NewStore(maxEntries, ttl, clock)
}

// --- tests ---

func TestCachedSource_Hit(t *testing.T) {
	clock := clockwork.NewFakeClock()
	src := &countingSource{name: "fire"}
	cached := Wrap(src, testStore(4, time.Minute, clock), observability.NewMetricsForTesting())

	ds1, err := cached.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fire", ds1.Source)

	ds2, err := cached.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fire", ds2.Source)

	assert.Equal(t, 1, src.fetches, "should only call inner once")
}

func TestCachedSource_TTLExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	src := &countingSource{name: "quake"}
	cached := Wrap(src, testStore(4, time.Minute, clock), observability.NewMetricsForTesting())

	_, err := cached.Fetch(context.Background())
	require.NoError(t, err)

	clock.Advance(59 * time.Second)
	_, err = cached.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, src.fetches, "fresh entry should still be served")

	clock.Advance(2 * time.Second)
	_, err = cached.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.fetches, "expired entry should refetch")
}

func TestCachedSource_ErrorNotCached(t *testing.T) {
	clock := clockwork.NewFakeClock()
	src := &countingSource{name: "fire", err: domain.ErrFetchFailed}
	cached := Wrap(src, testStore(4, time.Minute, clock), observability.NewMetricsForTesting())

	_, err := cached.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrFetchFailed))

	// Next selection retries the source instead of serving a cached failure.
	src.err = nil
	_, err = cached.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.fetches)
}

func TestCachedSource_PassesThroughMetadata(t *testing.T) {
	clock := clockwork.NewFakeClock()
	src := &countingSource{name: "fire"}
	cached := Wrap(src, testStore(4, time.Minute, clock), observability.NewMetricsForTesting())

	assert.Equal(t, "fire", cached.Name())
	assert.Equal(t, "Test fire", cached.Title())
}

func TestStore_Eviction(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := testStore(2, time.Minute, clock)

	s.put("a", domain.Dataset{Source: "a"})
	s.put("b", domain.Dataset{Source: "b"})
	s.put("c", domain.Dataset{Source: "c"}) // evicts "a"

	_, ok := s.get("a")
	assert.False(t, ok, "a should have been evicted")

	_, ok = s.get("b")
	assert.True(t, ok)
	_, ok = s.get("c")
	assert.True(t, ok)
}

func TestStore_RecentUseProtectsFromEviction(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := testStore(2, time.Minute, clock)

	s.put("a", domain.Dataset{Source: "a"})
	s.put("b", domain.Dataset{Source: "b"})

	_, ok := s.get("a") // a becomes most recently used
	require.True(t, ok)

	s.put("c", domain.Dataset{Source: "c"}) // evicts "b"

	_, ok = s.get("a")
	assert.True(t, ok)
	_, ok = s.get("b")
	assert.False(t, ok)
}

func TestStore_PutRefreshesTimestamp(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := testStore(2, time.Minute, clock)

	s.put("a", domain.Dataset{Source: "a"})
	clock.Advance(45 * time.Second)
	s.put("a", domain.Dataset{Source: "a"})
	clock.Advance(45 * time.Second)

	// 90s since the first put, 45s since the refresh.
	_, ok := s.get("a")
	assert.True(t, ok)
}
