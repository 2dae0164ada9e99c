// Package venue defines the uniform Venue record and the rules that derive it
// from third-party map data.
package venue

import "math"

// Type is the fixed set of venue categories.
type Type string

const (
	TypeClub                Type = "Club"
	TypeBar                 Type = "Bar"
	TypeTheatre             Type = "Theatre"
	TypeConcertHall         Type = "Concert Hall"
	TypeArena               Type = "Arena"
	TypeMusicVenue          Type = "Music Venue"
	TypeOutdoorAmphitheatre Type = "Outdoor Amphitheatre"
)

// Types lists every Type in display order.
var Types = []Type{
	TypeClub,
	TypeBar,
	TypeTheatre,
	TypeConcertHall,
	TypeArena,
	TypeMusicVenue,
	TypeOutdoorAmphitheatre,
}

// Valid reports whether t is one of the known types.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Venue is the uniform record handed to consumers.
type Venue struct {
	ID        int64    `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	City      string   `json:"city" yaml:"city"`
	State     string   `json:"state,omitempty" yaml:"state,omitempty"`
	Country   string   `json:"country,omitempty" yaml:"country,omitempty"`
	Capacity  *int     `json:"capacity,omitempty" yaml:"capacity,omitempty"`
	VenueType Type     `json:"venue_type" yaml:"venue_type"`
	Lat       float64  `json:"lat" yaml:"lat"`
	Lon       float64  `json:"lon" yaml:"lon"`
	Address   string   `json:"address,omitempty" yaml:"address,omitempty"`
	Phone     string   `json:"phone,omitempty" yaml:"phone,omitempty"`
	Website   string   `json:"website,omitempty" yaml:"website,omitempty"`
	Amenities []string `json:"amenities" yaml:"amenities"`
	Image     string   `json:"image,omitempty" yaml:"image,omitempty"`
	Rating    *float64 `json:"rating,omitempty" yaml:"rating,omitempty"`
	Price     string   `json:"price,omitempty" yaml:"price,omitempty"`
	StageSize string   `json:"stage_size,omitempty" yaml:"stage_size,omitempty"`
	LoadIn    string   `json:"load_in,omitempty" yaml:"load_in,omitempty"`
}

// Valid reports whether v may be surfaced: it needs a name and a coordinate
// pair that is finite with neither component zero.
func (v Venue) Valid() bool {
	if v.Name == "" {
		return false
	}
	if !finite(v.Lat) || !finite(v.Lon) {
		return false
	}
	return v.Lat != 0 && v.Lon != 0
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// CapacityOrZero returns the capacity, or 0 when unknown.
func (v Venue) CapacityOrZero() int {
	if v.Capacity == nil {
		return 0
	}
	return *v.Capacity
}

// Clone returns a deep copy of v.
func (v Venue) Clone() Venue {
	c := v
	if v.Capacity != nil {
		c.Capacity = intPtr(*v.Capacity)
	}
	if v.Rating != nil {
		c.Rating = floatPtr(*v.Rating)
	}
	if v.Amenities != nil {
		c.Amenities = clone(v.Amenities)
	}
	return c
}

// Keep returns the valid venues of vs in order.
func Keep(vs []Venue) []Venue {
	out := make([]Venue, 0, len(vs))
	for _, v := range vs {
		if v.Valid() {
			out = append(out, v)
		}
	}
	return out
}

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }
