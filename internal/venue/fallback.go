package venue

import (
	"os"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// FallbackEntry binds a set of city aliases to hand-authored venues.
type FallbackEntry struct {
	Aliases []string `yaml:"aliases"`
	Venues  []Venue  `yaml:"venues"`
}

// FallbackTable holds the venues returned when live lookups fail entirely.
type FallbackTable struct {
	entries []FallbackEntry
}

// shortAlias is the longest alias, in runes, that must match a whole word.
// Two-letter aliases like "la" would otherwise match inside unrelated names.
const shortAlias = 2

// NewFallbackTable builds a table from entries, checked in order.
func NewFallbackTable(entries ...FallbackEntry) *FallbackTable {
	return &FallbackTable{entries: entries}
}

// DefaultFallbackTable returns the built-in table for New York, Los Angeles
// and Chicago.
func DefaultFallbackTable() *FallbackTable {
	return NewFallbackTable(builtinFallback()...)
}

// Extend returns a new table with entries appended after t's own.
func (t *FallbackTable) Extend(entries ...FallbackEntry) *FallbackTable {
	all := make([]FallbackEntry, 0, len(t.entries)+len(entries))
	all = append(all, t.entries...)
	all = append(all, entries...)
	return &FallbackTable{entries: all}
}

// Lookup returns copies of the venues of the first entry with an alias
// contained in city, ignoring case. Unmatched cities yield an empty slice.
func (t *FallbackTable) Lookup(city string) []Venue {
	for _, e := range t.entries {
		if !matchesAlias(city, e.Aliases) {
			continue
		}
		out := make([]Venue, 0, len(e.Venues))
		for _, v := range e.Venues {
			out = append(out, v.Clone())
		}
		return out
	}
	return []Venue{}
}

// FallbackVenues looks city up in the built-in table.
func FallbackVenues(city string) []Venue {
	return DefaultFallbackTable().Lookup(city)
}

// LoadFallbackFile reads extra fallback entries from a YAML file with a
// top-level "fallback" list.
func LoadFallbackFile(path string) ([]FallbackEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fallback: read %s", path)
	}

	var wrapper struct {
		Fallback []FallbackEntry `yaml:"fallback"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "fallback: parse file")
	}

	for i, e := range wrapper.Fallback {
		if len(e.Aliases) == 0 {
			return nil, eris.Errorf("fallback: entry %d has no aliases", i)
		}
		for j, v := range e.Venues {
			if !v.Valid() {
				return nil, eris.Errorf("fallback: entry %d venue %d (%q) has no name or coordinates", i, j, v.Name)
			}
			if !v.VenueType.Valid() {
				return nil, eris.Errorf("fallback: entry %d venue %q has unknown type %q", i, v.Name, v.VenueType)
			}
		}
	}
	return wrapper.Fallback, nil
}

func matchesAlias(city string, aliases []string) bool {
	for _, a := range aliases {
		if utf8.RuneCountInString(a) <= shortAlias {
			if containsWordFold(city, a) {
				return true
			}
			continue
		}
		if ContainsFold(city, a) {
			return true
		}
	}
	return false
}

func builtinFallback() []FallbackEntry {
	return []FallbackEntry{
		{
			Aliases: []string{"new york", "nyc"},
			Venues: []Venue{
				{
					ID:        1001,
					Name:      "Madison Square Garden",
					City:      "New York",
					Country:   "USA",
					Capacity:  intPtr(20789),
					VenueType: TypeArena,
					Lat:       40.7505,
					Lon:       -73.9934,
					Address:   "4 Pennsylvania Plaza, New York, NY",
					Amenities: []string{"World-Class Sound", "Full Production", "VIP Suites"},
					Image:     "https://images.unsplash.com/photo-1571266028243-e68f8570c0e5?w=400&h=300&fit=crop",
					Rating:    floatPtr(4.9),
					Price:     "$150,000",
					StageSize: `80' x 60'`,
					LoadIn:    "Loading dock",
				},
				{
					ID:        1002,
					Name:      "Radio City Music Hall",
					City:      "New York",
					Country:   "USA",
					Capacity:  intPtr(6010),
					VenueType: TypeConcertHall,
					Lat:       40.7600,
					Lon:       -73.9798,
					Address:   "1260 6th Ave, New York, NY",
					Amenities: []string{"Historic Venue", "Professional Sound", "Seating"},
					Image:     "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?w=400&h=300&fit=crop",
					Rating:    floatPtr(4.8),
					Price:     "$25,000",
					StageSize: `60' x 40'`,
					LoadIn:    "Loading dock",
				},
			},
		},
		{
			Aliases: []string{"los angeles", "la"},
			Venues: []Venue{
				{
					ID:        2001,
					Name:      "Hollywood Bowl",
					City:      "Los Angeles",
					Country:   "USA",
					Capacity:  intPtr(17500),
					VenueType: TypeOutdoorAmphitheatre,
					Lat:       34.1122,
					Lon:       -118.3394,
					Address:   "2301 N Highland Ave, Los Angeles, CA",
					Amenities: []string{"Natural Acoustics", "Mountain Views", "Food Trucks"},
					Image:     "https://images.unsplash.com/photo-1470229722913-7c0e2dbbafd3?w=400&h=300&fit=crop",
					Rating:    floatPtr(4.7),
					Price:     "$35,000",
					StageSize: `70' x 50'`,
					LoadIn:    "Truck access",
				},
			},
		},
		{
			Aliases: []string{"chicago"},
			Venues: []Venue{
				{
					ID:        3001,
					Name:      "United Center",
					City:      "Chicago",
					Country:   "USA",
					Capacity:  intPtr(23500),
					VenueType: TypeArena,
					Lat:       41.8807,
					Lon:       -87.6742,
					Address:   "1901 W Madison St, Chicago, IL",
					Amenities: []string{"World-Class Sound", "Full Production", "VIP Areas"},
					Image:     "https://images.unsplash.com/photo-1571266028243-e68f8570c0e5?w=400&h=300&fit=crop",
					Rating:    floatPtr(4.8),
					Price:     "$200,000",
					StageSize: `100' x 80'`,
					LoadIn:    "Loading dock",
				},
			},
		},
	}
}
