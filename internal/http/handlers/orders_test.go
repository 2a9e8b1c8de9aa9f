package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanMykytyn/BetterMeTestTask/internal/counter"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/geocode"
	apphttp "github.com/IvanMykytyn/BetterMeTestTask/internal/http"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/http/draftcookie"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/http/flash"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/importer"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/picker"
)

type stubGeocoder struct{}

func (stubGeocoder) Search(ctx context.Context, query string) (geocode.Result, error) {
	return geocode.Result{}, geocode.ErrNotFound
}

// upstream is a scripted counter API.
type upstream struct {
	t          *testing.T
	list       counter.ListResponse
	listErr    int // when non-zero, list answers with this status
	lastQuery  url.Values
	created    []counter.CreateOrderInput
	importBody []byte
}

func (u *upstream) server() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /counter/orders/list", func(w http.ResponseWriter, r *http.Request) {
		u.lastQuery = r.URL.Query()
		if u.listErr != 0 {
			w.WriteHeader(u.listErr)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "boom"})
			return
		}
		_ = json.NewEncoder(w).Encode(u.list)
	})
	mux.HandleFunc("POST /counter/orders", func(w http.ResponseWriter, r *http.Request) {
		var in counter.CreateOrderInput
		require.NoError(u.t, json.NewDecoder(r.Body).Decode(&in))
		u.created = append(u.created, in)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(counter.CreateOrderResponse{ID: 42, Timestamp: "2024-05-01 00:00:00"})
	})
	mux.HandleFunc("POST /counter/orders/import", func(w http.ResponseWriter, r *http.Request) {
		f, _, err := r.FormFile(counter.ImportField)
		require.NoError(u.t, err)
		defer f.Close()
		u.importBody, err = io.ReadAll(f)
		require.NoError(u.t, err)
		_ = json.NewEncoder(w).Encode(counter.ImportResponse{Message: "Imported 5 orders"})
	})
	srv := httptest.NewServer(mux)
	u.t.Cleanup(srv.Close)
	return srv
}

func newTestRouter(t *testing.T, u *upstream, mods ...func(*apphttp.Deps)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := counter.NewClient(u.server().URL, nil)
	secret := []byte("test-secret")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	deps := apphttp.Deps{
		API:            api,
		Cache:          counter.NewCachedLister(api),
		Flash:          flash.NewCodec(secret, "flash", false),
		Draft:          draftcookie.New(secret, "orders_draft", false),
		Picker:         picker.NewSessions(stubGeocoder{}, picker.Config{}),
		Tracker:        importer.NewTracker(),
		ImportMaxBytes: 1 << 20,
	}
	for _, mod := range mods {
		mod(&deps)
	}
	return apphttp.NewRouter(logger, deps)
}

func sampleOrders() counter.ListResponse {
	return counter.ListResponse{
		Count:       2,
		NumPages:    1,
		CurrentPage: 1,
		Results: []counter.Order{
			{ID: 1, Subtotal: 100, TaxAmount: 8, TotalAmount: 108, CompositeTaxRate: 0.08,
				State: "Texas", County: "Travis", City: "Austin", Timestamp: "2024-03-01 10:00:00"},
			{ID: 2, Subtotal: 50, TaxAmount: 4, TotalAmount: 54, CompositeTaxRate: 0.08,
				State: "Washington", County: "King", City: "Seattle", Timestamp: "2024-03-02 10:00:00"},
		},
	}
}

func TestListRendersOrders(t *testing.T) {
	u := &upstream{t: t, list: sampleOrders()}
	r := newTestRouter(t, u)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Austin")
	assert.Contains(t, body, "$108.00")
	assert.Contains(t, body, "03/01/2024")
	assert.Contains(t, body, "2 orders")
}

func TestListForwardsStateToAPI(t *testing.T) {
	u := &upstream{t: t, list: sampleOrders()}
	r := newTestRouter(t, u)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/orders?search=aus&page=3&pageSize=50&state=Texas", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "aus", u.lastQuery.Get("search"))
	assert.Equal(t, "3", u.lastQuery.Get("page"))
	assert.Equal(t, "50", u.lastQuery.Get("page_size"))
	assert.Equal(t, "Texas", u.lastQuery.Get("state"))
}

func TestListShowsErrorWhenAPIDown(t *testing.T) {
	u := &upstream{t: t, listErr: http.StatusInternalServerError}
	r := newTestRouter(t, u)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Could not load orders from the API.")
	assert.Contains(t, w.Body.String(), "No orders found.")
}

func TestListShowsStalePageWhenAPIFails(t *testing.T) {
	u := &upstream{t: t, list: sampleOrders()}
	r := newTestRouter(t, u)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))
	require.Equal(t, http.StatusOK, w.Code)

	// With the fresh window still open, a second request never reaches the
	// broken upstream and renders the cached page unfazed.
	u.listErr = http.StatusBadGateway
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Austin")
	assert.NotContains(t, w.Body.String(), "Could not load orders")
}

func TestApplyFiltersRedirectsWithFilterParams(t *testing.T) {
	u := &upstream{t: t, list: sampleOrders()}
	r := newTestRouter(t, u)

	form := url.Values{}
	form.Set("state", "Texas")
	form.Set("minSubtotal", "10")
	form.Set("fromDate", "2024-01-01")

	req := httptest.NewRequest(http.MethodPost, "/orders/filters?search=aus&page=7", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	q := loc.Query()
	assert.Equal(t, "/orders", loc.Path)
	assert.Equal(t, "Texas", q.Get("state"))
	assert.Equal(t, "10", q.Get("minSubtotal"))
	assert.Equal(t, "2024-01-01 00:00:00", q.Get("fromTimestamp"))
	assert.Equal(t, "aus", q.Get("search"))
	// New filters restart from the first page.
	assert.Empty(t, q.Get("page"))
}

func TestResetFiltersKeepsPageSize(t *testing.T) {
	u := &upstream{t: t, list: sampleOrders()}
	r := newTestRouter(t, u)

	req := httptest.NewRequest(http.MethodPost, "/orders/filters/reset?search=aus&pageSize=100&state=Texas", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	q := loc.Query()
	assert.Empty(t, q.Get("search"))
	assert.Empty(t, q.Get("state"))
	assert.Equal(t, "100", q.Get("pageSize"))
}

func TestCreateOrderSuccess(t *testing.T) {
	u := &upstream{t: t, list: sampleOrders()}
	r := newTestRouter(t, u)

	form := url.Values{}
	form.Set("latitude", "30.2672")
	form.Set("longitude", "-97.7431")
	form.Set("subtotal", "120.50")
	form.Set("orderDate", "2024-05-01")

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/orders", w.Header().Get("Location"))
	require.Len(t, u.created, 1)
	assert.InDelta(t, 30.2672, u.created[0].Latitude, 1e-9)
	assert.InDelta(t, -97.7431, u.created[0].Longitude, 1e-9)
	assert.InDelta(t, 120.50, u.created[0].Subtotal, 1e-9)
	assert.Equal(t, "2024-05-01 00:00:00", u.created[0].Timestamp)
}

func TestCreateOrderRejectsOutOfRangeLatitude(t *testing.T) {
	u := &upstream{t: t, list: sampleOrders()}
	r := newTestRouter(t, u)

	form := url.Values{}
	form.Set("latitude", "95")
	form.Set("longitude", "-97.7431")
	form.Set("subtotal", "120.50")

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Latitude must be a number between -90 and 90.")
	// Typed values survive the re-render.
	assert.Contains(t, w.Body.String(), "value=\"95\"")
	assert.Empty(t, u.created)
}

func TestCreateOrderRejectsNonFiniteSubtotal(t *testing.T) {
	u := &upstream{t: t, list: sampleOrders()}
	r := newTestRouter(t, u)

	// ParseFloat happily turns these into float64s, so they must be caught
	// by validation instead of leaking into the API payload.
	for _, subtotal := range []string{"NaN", "Inf", "-Inf"} {
		form := url.Values{}
		form.Set("latitude", "30.2672")
		form.Set("longitude", "-97.7431")
		form.Set("subtotal", subtotal)

		req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "subtotal %q", subtotal)
		assert.Contains(t, w.Body.String(), "Subtotal must be a positive amount.")
	}
	assert.Empty(t, u.created)
}

func TestCreateOrderRequiresFields(t *testing.T) {
	u := &upstream{t: t, list: sampleOrders()}
	r := newTestRouter(t, u)

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "This field is required.")
	assert.Empty(t, u.created)
}

func TestImportProgressUnknownUpload(t *testing.T) {
	u := &upstream{t: t, list: sampleOrders()}
	r := newTestRouter(t, u)

	req := httptest.NewRequest(http.MethodGet, "/api/imports/nope/progress", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown upload.")
}
