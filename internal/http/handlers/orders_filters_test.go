package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveDraft(t *testing.T, r http.Handler, form url.Values) *http.Cookie {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/filters/draft", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	for _, ck := range w.Result().Cookies() {
		if ck.Name == "orders_draft" && ck.MaxAge >= 0 {
			return ck
		}
	}
	t.Fatal("draft cookie must be set")
	return nil
}

func TestRemoveChipClearsFilterAndDraft(t *testing.T) {
	u := &upstream{t: t, list: sampleOrders()}
	r := newTestRouter(t, u)

	form := url.Values{}
	form.Set("state", "Texas")
	form.Set("city", "Austin")
	draftCookie := saveDraft(t, r, form)

	// Removing the city chip drops it from the applied filters and from the
	// saved draft in one go.
	req := httptest.NewRequest(http.MethodGet, "/orders/filters/remove/city?state=Texas&city=Austin", nil)
	req.AddCookie(draftCookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/orders", loc.Path)
	assert.Equal(t, "Texas", loc.Query().Get("state"))
	assert.Empty(t, loc.Query().Get("city"))

	var updated *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "orders_draft" {
			updated = ck
		}
	}
	require.NotNil(t, updated, "removing a chip must rewrite the draft cookie")

	// The panel no longer resurrects the removed value.
	req = httptest.NewRequest(http.MethodGet, w.Header().Get("Location"), nil)
	req.AddCookie(updated)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="state" value="Texas"`)
	assert.NotContains(t, w.Body.String(), `value="Austin"`)
}

func TestRemoveChipPreservesSort(t *testing.T) {
	u := &upstream{t: t, list: sampleOrders()}
	r := newTestRouter(t, u)

	req := httptest.NewRequest(http.MethodGet,
		"/orders/filters/remove/state?state=Texas&city=Austin&sort=timestamp&dir=desc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	q := loc.Query()
	assert.Empty(t, q.Get("state"))
	assert.Equal(t, "Austin", q.Get("city"))
	assert.Equal(t, "timestamp", q.Get("sort"))
	assert.Equal(t, "desc", q.Get("dir"))
}
