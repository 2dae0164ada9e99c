// Package resolver turns a city name or a free-text query into normalized
// venues using Nominatim and Overpass, degrading to a static fallback table
// instead of returning errors.
package resolver

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/sells-group/venue-finder/internal/venue"
	"github.com/sells-group/venue-finder/pkg/nominatim"
	"github.com/sells-group/venue-finder/pkg/overpass"
)

// DefaultLimit caps results when a caller passes a non-positive limit.
const DefaultLimit = 20

const (
	queryTimeoutSecs = 25
	primaryRadius    = 10000
	retryRadius      = 50000
	searchQualifier  = " music venue concert hall club"
)

var (
	primaryFilters = []overpass.Filter{
		{Key: "amenity", Values: []string{"nightclub", "bar", "pub", "restaurant", "theatre"}},
		{Key: "leisure", Values: []string{"nightclub", "dance"}},
		{Key: "building", Values: []string{"theatre", "concert_hall", "auditorium"}},
		{Key: "tourism", Values: []string{"theatre", "attraction"}},
	}
	retryFilters = []overpass.Filter{
		{Key: "amenity", Values: []string{"nightclub", "bar", "pub"}},
		{Key: "leisure", Values: []string{"nightclub", "dance"}},
	}
	searchKeywords = []string{"music", "concert", "club", "theatre", "hall"}
)

// PrimaryQuery is the first venue query around a geocoded point: nodes and
// ways of every venue category within 10 km.
func PrimaryQuery(lat, lon float64) overpass.Query {
	return overpass.Query{
		TimeoutSecs: queryTimeoutSecs,
		Kinds:       []overpass.Kind{overpass.Node, overpass.Way},
		Filters:     primaryFilters,
		Radius:      primaryRadius,
		Lat:         lat,
		Lon:         lon,
	}
}

// RetryQuery is the single follow-up issued when PrimaryQuery finds nothing:
// nightlife nodes only, within 50 km.
func RetryQuery(lat, lon float64) overpass.Query {
	return overpass.Query{
		TimeoutSecs: queryTimeoutSecs,
		Kinds:       []overpass.Kind{overpass.Node},
		Filters:     retryFilters,
		Radius:      retryRadius,
		Lat:         lat,
		Lon:         lon,
	}
}

// Resolver fetches venues from live map services. It is safe for concurrent
// use.
type Resolver struct {
	geocoder   nominatim.Client
	places     overpass.Client
	normalizer *venue.Normalizer
	fallback   *venue.FallbackTable
	canFetch   bool
	log        *zap.Logger
	tracer     trace.Tracer
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// WithCanFetch controls whether network lookups are allowed. When false both
// resolvers return empty results without touching the network.
func WithCanFetch(ok bool) Option {
	return func(r *Resolver) {
		r.canFetch = ok
	}
}

// WithNormalizer overrides the default Normalizer.
func WithNormalizer(n *venue.Normalizer) Option {
	return func(r *Resolver) {
		if n != nil {
			r.normalizer = n
		}
	}
}

// WithFallbackTable overrides the built-in fallback table.
func WithFallbackTable(t *venue.FallbackTable) Option {
	return func(r *Resolver) {
		if t != nil {
			r.fallback = t
		}
	}
}

// New creates a Resolver over the given clients. Fetching is enabled by
// default.
func New(geocoder nominatim.Client, places overpass.Client, opts ...Option) *Resolver {
	r := &Resolver{
		geocoder:   geocoder,
		places:     places,
		normalizer: venue.NewNormalizer(),
		fallback:   venue.DefaultFallbackTable(),
		canFetch:   true,
		log:        zap.NewNop(),
		tracer:     otel.Tracer("venue-finder/resolver"),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// FetchVenues returns up to limit venues near city. Any failure along the
// geocode and query chain yields the fallback venues for city, which may be
// empty. It never returns nil.
func (r *Resolver) FetchVenues(ctx context.Context, city string, limit int) []venue.Venue {
	if !r.canFetch {
		return []venue.Venue{}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	ctx, span := r.tracer.Start(ctx, "FetchVenues", trace.WithAttributes(
		attribute.String("venue.city", city),
		attribute.Int("venue.limit", limit),
	))
	defer span.End()

	vs, err := r.fetch(ctx, city, limit)
	if err != nil {
		fallback := r.fallback.Lookup(city)
		span.RecordError(err)
		span.SetStatus(codes.Error, "live lookup failed")
		span.SetAttributes(attribute.Int("venue.fallback_count", len(fallback)))
		r.log.Warn("resolver: live lookup failed, using fallback",
			zap.String("city", city),
			zap.Int("fallback_count", len(fallback)),
			zap.Error(err),
		)
		return fallback
	}

	span.SetAttributes(attribute.Int("venue.count", len(vs)))
	span.SetStatus(codes.Ok, "")
	r.log.Info("resolver: fetched venues",
		zap.String("city", city),
		zap.Int("count", len(vs)),
	)
	return vs
}

func (r *Resolver) fetch(ctx context.Context, city string, limit int) ([]venue.Venue, error) {
	lat, lon, err := r.geocode(ctx, city)
	if err != nil {
		return nil, err
	}

	elements, err := r.query(ctx, PrimaryQuery(lat, lon))
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		r.log.Debug("resolver: no venues in primary radius, retrying wider",
			zap.String("city", city),
			zap.Int("radius_m", retryRadius),
		)
		elements, err = r.query(ctx, RetryQuery(lat, lon))
		if err != nil {
			return nil, err
		}
	}

	if len(elements) > limit {
		elements = elements[:limit]
	}

	vs := make([]venue.Venue, 0, len(elements))
	for i, el := range elements {
		vs = append(vs, r.normalizer.FromElement(el, i, city))
	}
	vs = venue.Keep(vs)
	if len(vs) == 0 {
		return nil, &EmptyResultError{City: city}
	}
	return vs, nil
}

func (r *Resolver) geocode(ctx context.Context, city string) (lat, lon float64, err error) {
	places, err := r.geocoder.Search(ctx, nominatim.SearchRequest{
		Query:          city,
		Limit:          1,
		AddressDetails: true,
	})
	if err != nil {
		return 0, 0, newNetworkError("geocode", err)
	}
	if len(places) == 0 {
		return 0, 0, &ResolutionError{Place: city}
	}

	lat, lon, err = places[0].Coordinates()
	if err != nil {
		return 0, 0, &ResolutionError{Place: city, Reason: err.Error()}
	}
	return lat, lon, nil
}

func (r *Resolver) query(ctx context.Context, q overpass.Query) ([]overpass.Element, error) {
	resp, err := r.places.Interpret(ctx, q)
	if err != nil {
		return nil, newNetworkError("overpass", err)
	}
	if resp == nil {
		return nil, nil
	}
	if resp.Remark != "" {
		r.log.Debug("resolver: overpass remark", zap.String("remark", resp.Remark))
	}
	return resp.Elements, nil
}

// SearchVenues runs a free-text venue search. Results whose display name
// carries none of the venue keywords are dropped. Failures yield an empty
// slice; the fallback table is not consulted.
func (r *Resolver) SearchVenues(ctx context.Context, query string, limit int) []venue.Venue {
	query = strings.TrimSpace(query)
	if !r.canFetch || query == "" {
		return []venue.Venue{}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	ctx, span := r.tracer.Start(ctx, "SearchVenues", trace.WithAttributes(
		attribute.String("venue.query", query),
		attribute.Int("venue.limit", limit),
	))
	defer span.End()

	places, err := r.geocoder.Search(ctx, nominatim.SearchRequest{
		Query:          query + searchQualifier,
		Limit:          limit,
		AddressDetails: true,
		ExtraTags:      true,
	})
	if err != nil {
		err = newNetworkError("search", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		r.log.Warn("resolver: search failed", zap.String("query", query), zap.Error(err))
		return []venue.Venue{}
	}

	vs := make([]venue.Venue, 0, len(places))
	for _, p := range places {
		if !venue.ContainsAnyFold(p.DisplayName, searchKeywords...) {
			continue
		}
		// Positions count matched results only.
		vs = append(vs, r.normalizer.FromPlace(p, len(vs)))
	}
	vs = venue.Keep(vs)
	if len(vs) > limit {
		vs = vs[:limit]
	}

	span.SetAttributes(attribute.Int("venue.count", len(vs)))
	span.SetStatus(codes.Ok, "")
	r.log.Info("resolver: searched venues",
		zap.String("query", query),
		zap.Int("matched", len(vs)),
		zap.Int("raw", len(places)),
	)
	return vs
}
