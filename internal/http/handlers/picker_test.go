package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormStartsPickerSession(t *testing.T) {
	u := &upstream{t: t, list: sampleOrders()}
	r := newTestRouter(t, u)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/new", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	m := regexp.MustCompile(`id="picker-session" name="pickerSession" value="([^"]+)"`).FindStringSubmatch(body)
	require.NotNil(t, m, "create page must carry a picker session id")
	sessionID := m[1]

	// The session is live: picker posts against it succeed.
	req := httptest.NewRequest(http.MethodPost, "/api/picker/"+sessionID+"/coords",
		strings.NewReader(`{"lat": 30.5, "lng": -97.6}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// The map starts on the default center.
	assert.Contains(t, body, `data-lat="40.7128"`)
	assert.Contains(t, body, `data-lng="-74.006"`)
	assert.Contains(t, body, `data-zoom="7"`)
}

func TestPickerEndpointsRejectUnknownSession(t *testing.T) {
	u := &upstream{t: t, list: sampleOrders()}
	r := newTestRouter(t, u)

	req := httptest.NewRequest(http.MethodPost, "/api/picker/ghost/query",
		strings.NewReader(`{"query": "austin"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Picker session expired")
}

func TestSaveDraftSetsCookie(t *testing.T) {
	u := &upstream{t: t, list: sampleOrders()}
	r := newTestRouter(t, u)

	form := url.Values{}
	form.Set("state", "Texas")
	form.Set("minSubtotal", "25")

	req := httptest.NewRequest(http.MethodPost, "/api/filters/draft", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)

	var draftCookie *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "orders_draft" {
			draftCookie = ck
		}
	}
	require.NotNil(t, draftCookie, "draft cookie must be set")

	// A later list render shows the saved draft in the panel.
	req = httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.AddCookie(draftCookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="state" value="Texas"`)
	assert.Contains(t, w.Body.String(), `name="minSubtotal" step="0.01" min="0" value="25"`)
}
