package nominatim

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "Chicago", q.Get("q"))
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "1", q.Get("limit"))
		assert.Equal(t, "1", q.Get("addressdetails"))
		assert.Empty(t, q.Get("extratags"))
		assert.Equal(t, "venue-finder-test", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{
			"place_id": 312456,
			"lat": "41.8755616",
			"lon": "-87.6244212",
			"display_name": "Chicago, Cook County, Illinois, United States",
			"class": "boundary",
			"type": "administrative",
			"address": {"city": "Chicago", "state": "Illinois", "country": "United States"}
		}]`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithUserAgent("venue-finder-test"))
	places, err := client.Search(context.Background(), SearchRequest{
		Query:          "Chicago",
		Limit:          1,
		AddressDetails: true,
	})

	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, int64(312456), places[0].PlaceID)
	assert.Equal(t, "Chicago", places[0].Address.City)
	assert.Equal(t, "Illinois", places[0].Address.State)

	lat, lon, err := places[0].Coordinates()
	require.NoError(t, err)
	assert.InDelta(t, 41.8755, lat, 0.001)
	assert.InDelta(t, -87.6244, lon, 0.001)
}

func TestSearch_ExtraTags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("extratags"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		_, _ = io.WriteString(w, `[{"place_id": 1, "lat": "1", "lon": "2", "display_name": "Blue Note", "extratags": {"website": "https://bluenote.net"}}]`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	places, err := client.Search(context.Background(), SearchRequest{Query: "Blue Note", Limit: 20, ExtraTags: true})

	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "https://bluenote.net", places[0].ExtraTags["website"])
}

func TestSearch_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	places, err := client.Search(context.Background(), SearchRequest{Query: "Nonexistent Place Name", Limit: 1})

	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestSearch_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`rate limited`)) //nolint:errcheck
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	places, err := client.Search(context.Background(), SearchRequest{Query: "x"})

	require.Error(t, err)
	assert.Nil(t, places)
	assert.Contains(t, err.Error(), "429")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.HTTPStatus())
}

func TestSearch_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"not": "an array"`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Search(context.Background(), SearchRequest{Query: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestSearch_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(WithBaseURL(srv.URL))
	places, err := client.Search(ctx, SearchRequest{Query: "x"})

	assert.Error(t, err)
	assert.Nil(t, places)
}

func TestSearch_CustomHTTPClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	client := NewClient(WithHTTPClient(newRewriteClient(srv.URL, defaultBaseURL)))
	places, err := client.Search(context.Background(), SearchRequest{Query: "Denver"})

	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestPlaceCoordinates_Invalid(t *testing.T) {
	_, _, err := Place{Lat: "north", Lon: "-1"}.Coordinates()
	assert.Error(t, err)

	_, _, err = Place{Lat: "1", Lon: ""}.Coordinates()
	assert.Error(t, err)
}

func TestAddressLocality(t *testing.T) {
	tests := []struct {
		addr     Address
		expected string
	}{
		{Address{City: "Austin", Town: "x", Village: "y"}, "Austin"},
		{Address{Town: "Woodstock", Village: "y"}, "Woodstock"},
		{Address{Village: "Bethel"}, "Bethel"},
		{Address{}, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.addr.Locality())
	}
}
