package walker

import (
	"sync"

	"github.com/nuget/resolve-core/graph"
	"github.com/nuget/resolve-core/provider"
)

// inFlightCache de-duplicates concurrent and repeat lookups for the same
// (name, range) key, so that a diamond dependency shape triggers one round
// of provider calls rather than one per incoming edge. The framework is
// not part of the key. One cache belongs to a Walker and is shared by
// every Walk call on it. This mirrors the bundledVersions cache pattern in
// deps.dev/util/resolve's APIClient, generalized from a single fixed key
// (bundle path) to the full range key this walker needs.
type inFlightCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	done  chan struct{}
	match *graph.Match
	src   provider.Provider
	err   error
}

func newInFlightCache() *inFlightCache {
	return &inFlightCache{entries: make(map[string]*cacheEntry)}
}

func cacheKey(r graph.LibraryRange) string {
	return graph.NameKey(r.Name) + "|" + r.VersionRange.Original() + "|" + r.String()
}

// do returns the cached result for r's key if present or in flight,
// otherwise calls fn once and caches its result for all callers.
func (c *inFlightCache) do(r graph.LibraryRange, fn func() (*graph.Match, provider.Provider, error)) (*graph.Match, provider.Provider, error) {
	key := cacheKey(r)

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.mu.Unlock()
		<-e.done
		return e.match, e.src, e.err
	}
	e := &cacheEntry{done: make(chan struct{})}
	c.entries[key] = e
	c.mu.Unlock()

	e.match, e.src, e.err = fn()
	close(e.done)
	return e.match, e.src, e.err
}
