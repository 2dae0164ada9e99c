package resolver

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sells-group/venue-finder/internal/venue"
)

// overviewConcurrency bounds the concurrent city lookups of Overview.
const overviewConcurrency = 3

// Fetcher is the subset of Resolver the Directory depends on.
type Fetcher interface {
	FetchVenues(ctx context.Context, city string, limit int) []venue.Venue
	SearchVenues(ctx context.Context, query string, limit int) []venue.Venue
}

// Directory holds the current venue listing. Every query replaces the listing
// wholesale; results are never merged.
type Directory struct {
	fetcher Fetcher
	limit   int

	mu      sync.Mutex
	current []venue.Venue
}

// NewDirectory creates a Directory seeded with the sample listing.
func NewDirectory(f Fetcher, limit int) *Directory {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Directory{
		fetcher: f,
		limit:   limit,
		current: venue.Sample(),
	}
}

// Load replaces the listing with the venues near city.
func (d *Directory) Load(ctx context.Context, city string) []venue.Venue {
	vs := d.fetcher.FetchVenues(ctx, city, d.limit)
	d.replace(vs)
	return d.Current()
}

// Search replaces the listing with the results of a free-text search.
func (d *Directory) Search(ctx context.Context, query string) []venue.Venue {
	vs := d.fetcher.SearchVenues(ctx, query, d.limit)
	d.replace(vs)
	return d.Current()
}

// Overview looks up several cities concurrently, at most three at a time.
// Each completed lookup replaces the listing, so the city whose lookup
// finishes last determines the result.
func (d *Directory) Overview(ctx context.Context, cities ...string) []venue.Venue {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(overviewConcurrency)

	for _, city := range cities {
		g.Go(func() error {
			d.replace(d.fetcher.FetchVenues(gctx, city, d.limit))
			return nil
		})
	}
	_ = g.Wait()

	return d.Current()
}

// Current returns a copy of the listing.
func (d *Directory) Current() []venue.Venue {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]venue.Venue, len(d.current))
	for i, v := range d.current {
		out[i] = v.Clone()
	}
	return out
}

// Filter applies c to the listing.
func (d *Directory) Filter(c venue.Criteria) []venue.Venue {
	return venue.Filter(d.Current(), c)
}

// Cities returns the city filter choices for the listing.
func (d *Directory) Cities() []string {
	return venue.Cities(d.Current())
}

func (d *Directory) replace(vs []venue.Venue) {
	if vs == nil {
		vs = []venue.Venue{}
	}
	d.mu.Lock()
	d.current = vs
	d.mu.Unlock()
}
