package counter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanMykytyn/BetterMeTestTask/internal/querystate"
)

type fakeLister struct {
	calls int
	resp  *ListResponse
	err   error
}

func (f *fakeLister) List(ctx context.Context, p querystate.Params) (*ListResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func TestCacheHitSkipsUpstream(t *testing.T) {
	up := &fakeLister{resp: &ListResponse{NumPages: 3}}
	l := NewCachedLister(up)

	p := querystate.Default().WithSearch("x")
	_, stale, err := l.Get(context.Background(), p)
	require.NoError(t, err)
	assert.False(t, stale)

	_, _, err = l.Get(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 1, up.calls)
}

func TestDistinctParamsCacheIndependently(t *testing.T) {
	up := &fakeLister{resp: &ListResponse{}}
	l := NewCachedLister(up)

	_, _, _ = l.Get(context.Background(), querystate.Default())
	_, _, _ = l.Get(context.Background(), querystate.Default().WithPage(2))
	_, _, _ = l.Get(context.Background(), querystate.Default().WithSearch("a"))
	_, _, _ = l.Get(context.Background(), querystate.Default().WithFilters(querystate.Filters{City: "SF"}))

	assert.Equal(t, 4, up.calls)
}

func TestInvalidateDropsEverything(t *testing.T) {
	up := &fakeLister{resp: &ListResponse{}}
	l := NewCachedLister(up)

	p := querystate.Default()
	_, _, _ = l.Get(context.Background(), p)
	l.Invalidate()
	_, _, _ = l.Get(context.Background(), p)

	assert.Equal(t, 2, up.calls)
}

func TestUpstreamErrorServesStalePage(t *testing.T) {
	up := &fakeLister{resp: &ListResponse{NumPages: 5}}
	l := NewCachedLister(up)

	now := time.Now()
	l.now = func() time.Time { return now }

	p := querystate.Default()
	_, _, err := l.Get(context.Background(), p)
	require.NoError(t, err)

	// entry ages past freshness but not past eviction
	now = now.Add(cacheFreshFor + time.Minute)
	up.err = errors.New("connection refused")

	resp, stale, err := l.Get(context.Background(), p)
	require.Error(t, err)
	assert.True(t, stale)
	require.NotNil(t, resp)
	assert.Equal(t, 5, resp.NumPages)
}

func TestUpstreamErrorWithoutCacheReturnsError(t *testing.T) {
	up := &fakeLister{err: errors.New("boom")}
	l := NewCachedLister(up)

	resp, stale, err := l.Get(context.Background(), querystate.Default())
	assert.Nil(t, resp)
	assert.False(t, stale)
	assert.Error(t, err)
}

func TestExpiredEntriesEvicted(t *testing.T) {
	up := &fakeLister{resp: &ListResponse{NumPages: 1}}
	l := NewCachedLister(up)

	now := time.Now()
	l.now = func() time.Time { return now }

	p := querystate.Default()
	_, _, _ = l.Get(context.Background(), p)

	now = now.Add(cacheKeepFor + time.Minute)
	up.err = errors.New("down")

	// entry is gone, so no stale fallback either
	resp, stale, err := l.Get(context.Background(), p)
	assert.Nil(t, resp)
	assert.False(t, stale)
	assert.Error(t, err)
}
