// Package counter is the HTTP client for the remote counter API, the system
// that owns orders, tax math and jurisdiction lookup. This app never touches
// order storage directly.
package counter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/IvanMykytyn/BetterMeTestTask/internal/querystate"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// APIError is a non-2xx answer from the counter API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("counter api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("counter api: status %d", e.Status)
}

// List fetches one page of orders.
// GET /counter/orders/list
func (c *Client) List(ctx context.Context, p querystate.Params) (*ListResponse, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("page_size", strconv.Itoa(p.PageSize))
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	encodeFilters(q, p.Filters)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/counter/orders/list?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var out ListResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}
	return &out, nil
}

// Create posts a single new order.
// POST /counter/orders
func (c *Client) Create(ctx context.Context, in CreateOrderInput) (*CreateOrderResponse, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/counter/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var out CreateOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode create response: %w", err)
	}
	return &out, nil
}

func encodeFilters(q url.Values, f querystate.Filters) {
	if f.FromTimestamp != "" {
		q.Set("from_timestamp", f.FromTimestamp)
	}
	if f.ToTimestamp != "" {
		q.Set("to_timestamp", f.ToTimestamp)
	}
	if f.MinSubtotal != nil {
		q.Set("min_subtotal", formatFloat(*f.MinSubtotal))
	}
	if f.MaxSubtotal != nil {
		q.Set("max_subtotal", formatFloat(*f.MaxSubtotal))
	}
	if f.MinTotal != nil {
		q.Set("min_total", formatFloat(*f.MinTotal))
	}
	if f.MaxTotal != nil {
		q.Set("max_total", formatFloat(*f.MaxTotal))
	}
	if f.State != "" {
		q.Set("state", f.State)
	}
	if f.County != "" {
		q.Set("county", f.County)
	}
	if f.City != "" {
		q.Set("city", f.City)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// checkStatus drains error bodies into an *APIError. The API is loose about
// the error key, so a few are tried.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	msg := ""
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	if err == nil && len(body) > 0 {
		var payload map[string]any
		if json.Unmarshal(body, &payload) == nil {
			for _, key := range []string{"detail", "error", "message"} {
				if s, ok := payload[key].(string); ok && s != "" {
					msg = s
					break
				}
			}
		}
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}
