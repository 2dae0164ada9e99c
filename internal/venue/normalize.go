package venue

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/sells-group/venue-finder/pkg/nominatim"
	"github.com/sells-group/venue-finder/pkg/overpass"
)

const (
	defaultCountry   = "USA"
	unknownCity      = "Unknown"
	stockImageFormat = "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?w=400&h=300&fit=crop&sig=%d"

	// relationIDOffset keeps relation ids clear of negated way ids.
	relationIDOffset int64 = 1 << 40
)

// Normalizer maps raw Overpass elements and Nominatim places onto Venue.
// It is safe for concurrent use as long as the injected functions are.
type Normalizer struct {
	now    func() time.Time
	rating func() float64
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithClock sets the time source used to derive ids for records without one.
func WithClock(now func() time.Time) NormalizerOption {
	return func(n *Normalizer) {
		n.now = now
	}
}

// WithRatingSource sets the function drawing a value in [0, 1) that is
// scaled into the [4.0, 5.0) rating range.
func WithRatingSource(f func() float64) NormalizerOption {
	return func(n *Normalizer) {
		n.rating = f
	}
}

// NewNormalizer creates a Normalizer. Ratings are random per call unless a
// rating source is injected.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		now:    time.Now,
		rating: rand.Float64,
	}
	for _, o := range opts {
		o(n)
	}
	return n
}

// FromElement normalizes a tag-shaped Overpass element. index is the element's
// position in its batch; searchCity fills in when the tags carry no locality.
func (n *Normalizer) FromElement(el overpass.Element, index int, searchCity string) Venue {
	tags := el.Tags
	city := firstNonEmpty(tags["addr:city"], tags["addr:town"], tags["addr:suburb"], searchCity)

	address := tags["addr:full"]
	if address == "" {
		if street := tags["addr:street"]; street != "" {
			address = street + ", " + city
		} else {
			address = city
		}
	}

	lat, lon, _ := el.Point()

	v := Venue{
		ID:        n.id(ElementID(el), index),
		Name:      strings.TrimSpace(tags["name"]),
		City:      city,
		State:     tags["addr:state"],
		Country:   firstNonEmpty(tags["addr:country"], defaultCountry),
		VenueType: TypeFromTags(tags),
		Lat:       lat,
		Lon:       lon,
		Address:   address,
		Phone:     firstNonEmpty(tags["phone"], tags["contact:phone"]),
		Website:   firstNonEmpty(tags["website"], tags["contact:website"]),
		Image:     fmt.Sprintf(stockImageFormat, index),
	}
	n.derive(&v)
	return v
}

// FromPlace normalizes a display-name-shaped Nominatim search result.
func (n *Normalizer) FromPlace(p nominatim.Place, index int) Venue {
	name, _, _ := strings.Cut(p.DisplayName, ",")

	// Unparsable coordinates stay zero and fail Valid.
	lat, lon, err := p.Coordinates()
	if err != nil {
		lat, lon = 0, 0
	}

	v := Venue{
		ID:        n.id(p.PlaceID, index),
		Name:      strings.TrimSpace(name),
		City:      firstNonEmpty(p.Address.Locality(), unknownCity),
		State:     p.Address.State,
		Country:   firstNonEmpty(p.Address.Country, defaultCountry),
		VenueType: TypeFromDisplayName(p.DisplayName),
		Lat:       lat,
		Lon:       lon,
		Address:   p.DisplayName,
		Phone:     firstNonEmpty(p.ExtraTags["phone"], p.ExtraTags["contact:phone"]),
		Website:   firstNonEmpty(p.ExtraTags["website"], p.ExtraTags["contact:website"]),
		Image:     fmt.Sprintf(stockImageFormat, index),
	}
	n.derive(&v)
	return v
}

// derive fills the fields that depend only on the inferred type.
func (n *Normalizer) derive(v *Venue) {
	capacity, amenities := Profile(v.VenueType)
	v.Capacity = intPtr(capacity)
	v.Amenities = amenities
	v.Price = PriceTier(capacity)
	v.StageSize = StageSizeTier(capacity)
	v.LoadIn = LoadInTier(capacity)
	v.Rating = floatPtr(4.0 + n.rating())
}

// ElementID maps an OSM element onto a venue id. Nodes, ways and relations are
// numbered independently, so nodes keep their id, ways are negated and
// relations are negated past relationIDOffset. Zero stays zero.
func ElementID(el overpass.Element) int64 {
	if el.ID == 0 {
		return 0
	}
	switch el.Type {
	case "way":
		return -el.ID
	case "relation":
		return -(el.ID + relationIDOffset)
	default:
		return el.ID
	}
}

func (n *Normalizer) id(sourceID int64, index int) int64 {
	if sourceID != 0 {
		return sourceID
	}
	return n.now().UnixMilli() + int64(index)
}

// TypeFromTags infers a venue type from OSM tags. The first matching rule wins.
func TypeFromTags(tags map[string]string) Type {
	switch {
	case tags["amenity"] == "nightclub":
		return TypeClub
	case tags["amenity"] == "bar", tags["amenity"] == "pub":
		return TypeBar
	case tags["building"] == "theatre":
		return TypeTheatre
	case tags["building"] == "concert_hall":
		return TypeConcertHall
	case tags["leisure"] == "nightclub":
		return TypeClub
	default:
		return TypeMusicVenue
	}
}

// TypeFromDisplayName infers a venue type from a free-text display name,
// checking club, theatre, then hall.
func TypeFromDisplayName(displayName string) Type {
	folded := fold(displayName)
	switch {
	case strings.Contains(folded, "club"):
		return TypeClub
	case strings.Contains(folded, "theatre"):
		return TypeTheatre
	case strings.Contains(folded, "hall"):
		return TypeConcertHall
	default:
		return TypeMusicVenue
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
