package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pavilion-status-backend/config"
	"pavilion-status-backend/internal/booking"
	"pavilion-status-backend/internal/catalog"
	"pavilion-status-backend/internal/metrics"
	"pavilion-status-backend/internal/watch"
)

func setupRouter(t *testing.T) (*gin.Engine, *catalog.Store, *watch.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := catalog.NewStore()
	store.ReplaceAll([]catalog.Pavilion{
		{Code: "HOH0", Name: "Blue Ocean Dome", URL: "https://example.com/hoh0", Schedules: map[string]catalog.Status{"1040": catalog.StatusUnavailable}},
		{Code: "CFR0", Name: "Red Cross Pavilion", Schedules: map[string]catalog.Status{}},
	})
	registry := watch.NewRegistry(nil)
	links := booking.NewLinkBuilder(&config.BookingConfig{
		BaseURL:  "https://ticket.example.com/event_time/",
		ScreenID: "108",
		Lottery:  "5",
		Timezone: "UTC",
	})

	serverCfg := &config.ServerConfig{
		RateLimitPerSec: 1000,
		RateLimitBurst:  1000,
		CacheTTLSeconds: 1,
	}
	return NewRouter(serverCfg, store, registry, links, metrics.New()), store, registry
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

func TestListPavilions(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := doRequest(router, http.MethodGet, "/api/pavilions", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var got []catalog.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []catalog.Summary{
		{Code: "HOH0", Name: "Blue Ocean Dome"},
		{Code: "CFR0", Name: "Red Cross Pavilion"},
	}, got, "listing is sorted by name")
}

func TestSearchPavilions(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := doRequest(router, http.MethodGet, "/api/pavilions/search?q=ocean", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"code":"HOH0","name":"Blue Ocean Dome"}]`, w.Body.String())

	w = doRequest(router, http.MethodGet, "/api/pavilions/search", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String(), "empty query returns an empty list, not an error")
}

func TestShowPavilion(t *testing.T) {
	router, _, registry := setupRouter(t)
	registry.SetTicketIDs("U1", []string{"12345"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/pavilions/hoh0", nil)
	req.Header.Set("X-Subscriber-ID", "U1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Code       string         `json:"code"`
		Name       string         `json:"name"`
		Slots      map[string]int `json:"slots"`
		BookingURL string         `json:"bookingUrl"`
		Watched    bool           `json:"watched"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "HOH0", got.Code, "codes are normalized to upper case")
	assert.Equal(t, map[string]int{"1040": 2}, got.Slots)
	assert.Contains(t, got.BookingURL, "id=12345", "booking link carries the caller's own ticket IDs")
	assert.False(t, got.Watched)
}

func TestShowPavilionUnknownCode(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := doRequest(router, http.MethodGet, "/api/pavilions/ZZZZ", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWatchLifecycle(t *testing.T) {
	router, _, registry := setupRouter(t)

	// Unknown codes are rejected.
	w := doRequest(router, http.MethodPut, "/api/watches/ZZZZ", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, registry.List())

	w = doRequest(router, http.MethodPut, "/api/watches/HOH0", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":"HOH0","name":"Blue Ocean Dome","added":true}`, w.Body.String())

	w = doRequest(router, http.MethodPut, "/api/watches/HOH0", "")
	assert.JSONEq(t, `{"code":"HOH0","name":"Blue Ocean Dome","added":false}`, w.Body.String())

	w = doRequest(router, http.MethodGet, "/api/watches", "")
	assert.JSONEq(t, `[{"code":"HOH0","name":"Blue Ocean Dome"}]`, w.Body.String())

	w = doRequest(router, http.MethodDelete, "/api/watches/HOH0", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodDelete, "/api/watches/HOH0", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTicketIDs(t *testing.T) {
	router, _, registry := setupRouter(t)

	w := doRequest(router, http.MethodPut, "/api/subscribers/U1/ticket-ids", `{"ids":" 12345 , ,67890"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ids":["12345","67890"]}`, w.Body.String())
	assert.Equal(t, []string{"12345", "67890"}, registry.TicketIDs("U1"))

	// Empty string clears.
	w = doRequest(router, http.MethodPut, "/api/subscribers/U1/ticket-ids", `{"ids":""}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ids":[]}`, w.Body.String())

	w = doRequest(router, http.MethodGet, "/api/subscribers/U1/ticket-ids", "")
	assert.JSONEq(t, `{"ids":[]}`, w.Body.String())
}

func TestTicketIDsRejectsBadBody(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := doRequest(router, http.MethodPut, "/api/subscribers/U1/ticket-ids", `{`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
