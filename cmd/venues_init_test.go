package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/venue-finder/internal/config"
	"github.com/sells-group/venue-finder/internal/venue"
)

func testConfig(nominatimURL, overpassURL string) *config.Config {
	c := &config.Config{}
	c.Nominatim.BaseURL = nominatimURL
	c.Overpass.BaseURL = overpassURL
	c.HTTP.UserAgent = "venue-finder-test/1.0"
	c.HTTP.TimeoutSecs = 5
	c.Fetch.Enabled = true
	c.Fetch.DefaultLimit = 20
	c.Server.Port = 8080
	return c
}

func TestInitResolver_EndToEnd(t *testing.T) {
	var overpassCalls atomic.Int32

	nom := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "venue-finder-test/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "Austin", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"place_id":1,"lat":"30.2672","lon":"-97.7431","display_name":"Austin, Texas"}]`))
	}))
	defer nom.Close()

	ovp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		overpassCalls.Add(1)
		assert.Equal(t, "/api/interpreter", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Contains(t, r.PostForm.Get("data"), "(around:10000,30.2672,-97.7431)")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"elements":[
			{"type":"node","id":101,"lat":30.2669,"lon":-97.7428,"tags":{"name":"Mohawk","amenity":"bar","addr:city":"Austin","addr:state":"TX"}},
			{"type":"way","id":102,"center":{"lat":30.2651,"lon":-97.7466},"tags":{"name":"Moody Theater","building":"theatre"}},
			{"type":"node","id":103,"lat":30.27,"lon":-97.74,"tags":{"amenity":"pub"}}
		]}`))
	}))
	defer ovp.Close()

	res, err := initResolver(testConfig(nom.URL, ovp.URL), "fetch")
	require.NoError(t, err)

	vs := res.FetchVenues(context.Background(), "Austin", 10)

	require.Len(t, vs, 2)
	assert.Equal(t, "Mohawk", vs[0].Name)
	assert.Equal(t, "TX", vs[0].State)
	assert.Equal(t, venue.TypeBar, vs[0].VenueType)
	assert.Equal(t, "Moody Theater", vs[1].Name)
	assert.Equal(t, venue.TypeTheatre, vs[1].VenueType)
	assert.Equal(t, int32(1), overpassCalls.Load())
}

func TestInitResolver_UnreachableFallsBack(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer down.Close()

	res, err := initResolver(testConfig(down.URL, down.URL), "fetch")
	require.NoError(t, err)

	vs := res.FetchVenues(context.Background(), "New York", 10)
	assert.Equal(t, "Madison Square Garden", vs[0].Name)
	assert.Equal(t, "Radio City Music Hall", vs[1].Name)

	assert.Empty(t, res.SearchVenues(context.Background(), "New York", 10))
}

func TestInitResolver_FallbackFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fallback.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
fallback:
  - aliases: [austin]
    venues:
      - id: 7001
        name: Stubb's
        city: Austin
        venue_type: Outdoor Amphitheatre
        lat: 30.2683
        lon: -97.7363
`), 0o644))

	c := testConfig("", "")
	c.Fetch.Enabled = false
	c.Fallback.Path = path

	res, err := initResolver(c, "fetch")
	require.NoError(t, err)
	// Fetching is disabled, so not even the fallback is consulted.
	assert.Empty(t, res.FetchVenues(context.Background(), "Austin", 10))

	c.Fallback.Path = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = initResolver(c, "fetch")
	assert.ErrorContains(t, err, "load fallback file")
}

func TestInitResolver_InvalidConfig(t *testing.T) {
	c := testConfig("", "")
	_, err := initResolver(c, "fetch")
	assert.ErrorContains(t, err, "nominatim.base_url is required")
}

func newOutputCmd(t *testing.T, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addOutputFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	return cmd, &buf
}

func TestWriteVenues_JSON(t *testing.T) {
	cmd, buf := newOutputCmd(t, "--format", "json")

	require.NoError(t, writeVenues(cmd, venue.FallbackVenues("LA")))

	var got []venue.Venue
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Hollywood Bowl", got[0].Name)
}

func TestWriteVenues_Table(t *testing.T) {
	cmd, buf := newOutputCmd(t)

	require.NoError(t, writeVenues(cmd, venue.Sample()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[2], "Red Rocks Amphitheatre")
}

func TestWriteVenues_XLSXRequiresOut(t *testing.T) {
	cmd, _ := newOutputCmd(t, "--format", "xlsx")
	assert.ErrorContains(t, writeVenues(cmd, venue.Sample()), "requires --out")

	path := filepath.Join(t.TempDir(), "venues.xlsx")
	cmd, _ = newOutputCmd(t, "--format", "xlsx", "--out", path)
	require.NoError(t, writeVenues(cmd, venue.Sample()))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Sheets[0].Rows, 4)
}

func TestWriteVenues_UnknownFormat(t *testing.T) {
	cmd, _ := newOutputCmd(t, "--format", "csv")
	assert.ErrorContains(t, writeVenues(cmd, nil), "unknown format")
}

func TestWriteDetails(t *testing.T) {
	var buf bytes.Buffer

	writeDetails(&buf, venue.FallbackVenues("chicago"))

	out := buf.String()
	assert.Contains(t, out, "United Center (Arena, large-scale)")
	assert.Contains(t, out, "with a capacity of 23,500")
	assert.Contains(t, out, "Map:      https://www.google.com/maps?q=41.8807,-87.6742")
	assert.Contains(t, out, "Inquiry:  mailto:?subject=Booking%20Inquiry%20-%20United%20Center")
}
