package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchParsesFirstHit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "new york", q.Get("q"))
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "1", q.Get("limit"))
		assert.Contains(t, r.Header.Get("User-Agent"), "BetterMeOrders")
		_, _ = w.Write([]byte(`[{"lat":"40.7128","lon":"-74.0060","display_name":"New York, USA"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), nil)
	res, err := c.Search(context.Background(), "new york")
	require.NoError(t, err)
	assert.Equal(t, 40.7128, res.Lat)
	assert.Equal(t, -74.006, res.Lng)
	assert.Equal(t, "New York, USA", res.DisplayName)
}

func TestSearchEmptyResultIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client(), nil).Search(context.Background(), "nowhere at all")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchHTTPErrorIsSearchFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client(), nil).Search(context.Background(), "paris")
	assert.ErrorIs(t, err, ErrSearchFailed)
}

func TestSearchBadCoordinatesIsSearchFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":"garbage","lon":"-74.0","display_name":"x"}]`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client(), nil).Search(context.Background(), "paris")
	assert.ErrorIs(t, err, ErrSearchFailed)
}

func TestSearchUsesCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(`[{"lat":"48.8566","lon":"2.3522","display_name":"Paris"}]`))
	}))
	defer srv.Close()

	cache, err := OpenCache(t.TempDir()+"/geocode.db", nil)
	require.NoError(t, err)

	c := NewClient(srv.URL, srv.Client(), cache)
	_, err = c.Search(context.Background(), "Paris")
	require.NoError(t, err)

	// second lookup, different spacing/case, must not hit the network
	res, err := c.Search(context.Background(), "  paris ")
	require.NoError(t, err)
	assert.Equal(t, 48.8566, res.Lat)
	assert.Equal(t, 1, hits)
}
