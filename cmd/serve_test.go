package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/venue-finder/internal/venue"
)

type call struct {
	op    string
	arg   string
	limit int
}

// stubSource records lookups and answers from the fallback table.
type stubSource struct {
	mu    sync.Mutex
	calls []call
}

func (s *stubSource) FetchVenues(_ context.Context, city string, limit int) []venue.Venue {
	s.record(call{"fetch", city, limit})
	return venue.FallbackVenues(city)
}

func (s *stubSource) SearchVenues(_ context.Context, query string, limit int) []venue.Venue {
	s.record(call{"search", query, limit})
	return []venue.Venue{}
}

func (s *stubSource) record(c call) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, c)
}

func serve(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthEndpoint(t *testing.T) {
	rr := serve(t, buildRouter(&stubSource{}, 20), "/health")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
	assert.NotEmpty(t, rr.Header().Get(requestIDHeader))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRequestIDPassthrough(t *testing.T) {
	h := buildRouter(&stubSource{}, 20)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", rr.Header().Get(requestIDHeader))
}

func TestVenuesEndpoint(t *testing.T) {
	src := &stubSource{}
	rr := serve(t, buildRouter(src, 20), "/venues?city=New+York&limit=5")

	assert.Equal(t, http.StatusOK, rr.Code)

	var got []venue.Venue
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Madison Square Garden", got[0].Name)
	assert.Equal(t, []call{{"fetch", "New York", 5}}, src.calls)
}

func TestVenuesEndpoint_DefaultLimitAndEmpty(t *testing.T) {
	src := &stubSource{}
	rr := serve(t, buildRouter(src, 20), "/venues?city=Atlanta&limit=abc")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
	assert.Equal(t, 20, src.calls[0].limit)
}

func TestVenuesEndpoint_MissingCity(t *testing.T) {
	src := &stubSource{}
	rr := serve(t, buildRouter(src, 20), "/venues")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"city is required"}`, rr.Body.String())
	assert.Empty(t, src.calls)
}

func TestGeoJSONEndpoint(t *testing.T) {
	rr := serve(t, buildRouter(&stubSource{}, 20), "/venues.geojson?city=chicago")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/geo+json", rr.Header().Get("Content-Type"))

	var body struct {
		Type     string `json:"type"`
		Features []struct {
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "FeatureCollection", body.Type)
	require.Len(t, body.Features, 1)
	assert.Equal(t, "United Center", body.Features[0].Properties["name"])
}

func TestSearchEndpoint(t *testing.T) {
	src := &stubSource{}
	h := buildRouter(src, 20)

	rr := serve(t, h, "/venues/search?q=jazz+club")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
	assert.Equal(t, []call{{"search", "jazz club", 20}}, src.calls)

	rr = serve(t, h, "/venues/search")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSampleEndpoint(t *testing.T) {
	rr := serve(t, buildRouter(&stubSource{}, 20), "/venues/sample?term=the&city=Los+Angeles")

	assert.Equal(t, http.StatusOK, rr.Code)

	var got []venue.Venue
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "The Troubadour", got[0].Name)
}

func TestCORSPreflight(t *testing.T) {
	h := buildRouter(&stubSource{}, 20)
	req := httptest.NewRequest(http.MethodOptions, "/venues?city=LA", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
