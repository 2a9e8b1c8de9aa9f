package counter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/IvanMykytyn/BetterMeTestTask/internal/querystate"
)

const (
	cacheFreshFor = 5 * time.Minute
	cacheKeepFor  = 10 * time.Minute
)

type lister interface {
	List(ctx context.Context, p querystate.Params) (*ListResponse, error)
}

// CachedLister caches list pages per full parameter set. A refetch failure
// falls back to the last good page for the same key (flagged stale) so the
// table never blanks out under the user; create/import invalidate everything.
type CachedLister struct {
	upstream lister

	mu      sync.Mutex
	entries map[string]*cacheEntry
	group   singleflight.Group

	now func() time.Time
}

type cacheEntry struct {
	resp      *ListResponse
	fetchedAt time.Time
}

func NewCachedLister(upstream lister) *CachedLister {
	return &CachedLister{
		upstream: upstream,
		entries:  make(map[string]*cacheEntry),
		now:      time.Now,
	}
}

// Get returns the page for p. stale is true when the returned data came from
// the cache because the upstream fetch failed; err then carries that failure
// so the caller can show an inline error next to the stale data.
func (l *CachedLister) Get(ctx context.Context, p querystate.Params) (resp *ListResponse, stale bool, err error) {
	key := cacheKey(p)

	l.mu.Lock()
	l.evictExpiredLocked()
	if e, ok := l.entries[key]; ok && l.now().Sub(e.fetchedAt) < cacheFreshFor {
		l.mu.Unlock()
		return e.resp, false, nil
	}
	l.mu.Unlock()

	v, fetchErr, _ := l.group.Do(key, func() (any, error) {
		fresh, err := l.upstream.List(ctx, p)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.entries[key] = &cacheEntry{resp: fresh, fetchedAt: l.now()}
		l.mu.Unlock()
		return fresh, nil
	})
	if fetchErr == nil {
		return v.(*ListResponse), false, nil
	}

	l.mu.Lock()
	e, ok := l.entries[key]
	l.mu.Unlock()
	if ok {
		return e.resp, true, fetchErr
	}
	return nil, false, fetchErr
}

// Invalidate drops every cached page. Called after a successful create or
// import, since any page may now be out of date.
func (l *CachedLister) Invalidate() {
	l.mu.Lock()
	l.entries = make(map[string]*cacheEntry)
	l.mu.Unlock()
}

func (l *CachedLister) evictExpiredLocked() {
	cutoff := l.now().Add(-cacheKeepFor)
	for k, e := range l.entries {
		if e.fetchedAt.Before(cutoff) {
			delete(l.entries, k)
		}
	}
}

// cacheKey includes every list input so distinct search/page/size/filter
// combinations cache independently.
func cacheKey(p querystate.Params) string {
	return p.Values().Encode()
}
