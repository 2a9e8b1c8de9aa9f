// Package geocode resolves free-text place names to coordinates through a
// nominatim-style search endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultEndpoint = "https://nominatim.openstreetmap.org/search"
	userAgent       = "BetterMeOrders/1.0 (location picker)"
)

var (
	// ErrNotFound: the service answered but had no candidate.
	ErrNotFound = errors.New("location not found")
	// ErrSearchFailed: transport or HTTP-level failure.
	ErrSearchFailed = errors.New("search failed")
)

type Result struct {
	Lat         float64
	Lng         float64
	DisplayName string
}

type Client struct {
	endpoint string
	http     *http.Client
	cache    *Cache
}

// NewClient builds a geocoding client. cache may be nil, in which case every
// lookup goes to the network.
func NewClient(endpoint string, httpClient *http.Client, cache *Cache) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{endpoint: endpoint, http: httpClient, cache: cache}
}

// wire shape of a nominatim hit; lat/lon arrive as strings.
type searchHit struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Search looks up a single candidate for query. The caller is responsible
// for trimming and the minimum-length rule; an empty query is an error here.
func (c *Client) Search(ctx context.Context, query string) (Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{}, fmt.Errorf("%w: empty query", ErrSearchFailed)
	}

	if c.cache != nil {
		if res, ok := c.cache.Lookup(query); ok {
			return res, nil
		}
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("%w: status %d", ErrSearchFailed, resp.StatusCode)
	}

	var hits []searchHit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	if len(hits) == 0 {
		return Result{}, ErrNotFound
	}

	hit := hits[0]
	lat, latErr := strconv.ParseFloat(hit.Lat, 64)
	lng, lngErr := strconv.ParseFloat(hit.Lon, 64)
	if latErr != nil || lngErr != nil {
		return Result{}, fmt.Errorf("%w: bad coordinates %q/%q", ErrSearchFailed, hit.Lat, hit.Lon)
	}

	res := Result{Lat: lat, Lng: lng, DisplayName: hit.DisplayName}
	if c.cache != nil {
		c.cache.Store(query, res, hits)
	}
	return res, nil
}
