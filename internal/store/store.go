// Package store holds the client-side collections for each entity kind.
// Every mutation is followed by a resynchronization: a forced re-fetch of
// the owning collection under its last filter, so the visible state always
// matches the server. Fetches carry a generation token; a response is
// applied only if no newer fetch has started since, so a stale response
// can never overwrite a newer one.
package store

import (
	"context"
	"sync"

	"github.com/mfreeman/rosterhub/internal/client"
	"github.com/mfreeman/rosterhub/internal/filter"
)

const (
	teamsPath   = "/api/v1/teams"
	playersPath = "/api/v1/players"
	rostersPath = "/api/v1/rosters"
	gamesPath   = "/api/v1/games"
)

// collection is the visible, cached result of the most recent list for
// one entity kind under one filter.
type collection[T any] struct {
	mu     sync.Mutex
	gen    uint64
	filter filter.Filter
	loaded bool
	items  []T
}

// cached returns the visible items if they were fetched under f and the
// collection has not been invalidated.
func (c *collection[T]) cached(f filter.Filter) ([]T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded || !c.filter.Equal(f) {
		return nil, false
	}
	return snapshot(c.items), true
}

// begin registers a new in-flight fetch and returns its token.
// Beginning a fetch supersedes every earlier in-flight fetch.
func (c *collection[T]) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	return c.gen
}

// commit applies a fetch result unless a newer fetch has begun since
// token was issued. Reports whether the result became visible.
func (c *collection[T]) commit(token uint64, f filter.Filter, items []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.gen {
		return false
	}
	c.filter = f
	c.items = items
	c.loaded = true
	return true
}

// visible returns the current visible items
func (c *collection[T]) visible() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return snapshot(c.items)
}

// lastFilter returns the filter the visible collection was fetched under
func (c *collection[T]) lastFilter() filter.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// invalidate forces the next list to re-fetch
func (c *collection[T]) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
}

func snapshot[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

// list re-fetches the collection if the composed query changed, returning
// the cached items otherwise. Ordering is server-defined and preserved.
func list[T any](ctx context.Context, gw *client.Client, path string, col *collection[T], f filter.Filter) ([]T, error) {
	if items, ok := col.cached(f); ok {
		return items, nil
	}

	token := col.begin()

	var fetched []T
	if err := gw.Get(ctx, path, f.Query(), &fetched); err != nil {
		return nil, err
	}
	if fetched == nil {
		fetched = []T{}
	}

	if !col.commit(token, f, fetched) {
		// A newer fetch superseded this one; its result stays visible
		return col.visible(), nil
	}
	return fetched, nil
}

// resync is the named post-condition of every mutation: a forced re-fetch
// of the collection under its last filter.
func resync[T any](ctx context.Context, gw *client.Client, path string, col *collection[T]) error {
	f := col.lastFilter()
	token := col.begin()

	var fetched []T
	if err := gw.Get(ctx, path, f.Query(), &fetched); err != nil {
		return err
	}
	if fetched == nil {
		fetched = []T{}
	}

	col.commit(token, f, fetched)
	return nil
}

// finishMutation implements the shared tail of create/update/delete:
// resync on success, and on NotFound resync anyway (the entity vanished
// concurrently, so the collection is refreshed) before propagating.
func finishMutation[T any](ctx context.Context, gw *client.Client, path string, col *collection[T], opErr error) error {
	if opErr != nil {
		if client.IsKind(opErr, client.KindNotFound) {
			_ = resync(ctx, gw, path, col)
		}
		return opErr
	}
	return resync(ctx, gw, path, col)
}
