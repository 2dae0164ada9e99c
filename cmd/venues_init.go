package main

import (
	"net/http"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/venue-finder/internal/config"
	"github.com/sells-group/venue-finder/internal/resolver"
	"github.com/sells-group/venue-finder/internal/venue"
	"github.com/sells-group/venue-finder/pkg/nominatim"
	"github.com/sells-group/venue-finder/pkg/overpass"
)

// initResolver builds the Nominatim and Overpass clients from config and
// wires them, plus any extra fallback entries, into a Resolver.
func initResolver(c *config.Config, mode string) (*resolver.Resolver, error) {
	if err := c.Validate(mode); err != nil {
		return nil, err
	}

	hc := &http.Client{Timeout: c.HTTP.Timeout()}

	geocoder := nominatim.NewClient(
		nominatim.WithBaseURL(c.Nominatim.BaseURL),
		nominatim.WithHTTPClient(hc),
		nominatim.WithUserAgent(c.HTTP.UserAgent),
	)
	places := overpass.NewClient(
		overpass.WithBaseURL(c.Overpass.BaseURL),
		overpass.WithHTTPClient(hc),
		overpass.WithUserAgent(c.HTTP.UserAgent),
	)

	table := venue.DefaultFallbackTable()
	if c.Fallback.Path != "" {
		entries, err := venue.LoadFallbackFile(c.Fallback.Path)
		if err != nil {
			return nil, eris.Wrap(err, "load fallback file")
		}
		table = table.Extend(entries...)
		zap.L().Info("loaded extra fallback entries",
			zap.String("path", c.Fallback.Path),
			zap.Int("entries", len(entries)),
		)
	}

	if !c.Fetch.Enabled {
		zap.L().Debug("live fetching disabled, lookups return empty results")
	}

	return resolver.New(geocoder, places,
		resolver.WithLogger(zap.L()),
		resolver.WithCanFetch(c.Fetch.Enabled),
		resolver.WithFallbackTable(table),
	), nil
}

// resolveLimit prefers an explicit flag value over the configured default.
func resolveLimit(flagLimit, cfgLimit int) int {
	if flagLimit > 0 {
		return flagLimit
	}
	return cfgLimit
}
