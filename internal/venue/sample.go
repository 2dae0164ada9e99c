package venue

// AllCities is the city filter value that matches every venue.
const AllCities = "All Cities"

// Criteria narrows a venue listing. Empty fields match everything.
type Criteria struct {
	// Term must be contained in the venue name, ignoring case.
	Term string
	// City must equal the venue city exactly, unless empty or AllCities.
	City string
}

// Filter returns the venues of vs that satisfy c, in order.
func Filter(vs []Venue, c Criteria) []Venue {
	out := make([]Venue, 0, len(vs))
	for _, v := range vs {
		if c.Term != "" && !ContainsFold(v.Name, c.Term) {
			continue
		}
		if c.City != "" && c.City != AllCities && v.City != c.City {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Cities returns the city filter choices for vs: AllCities followed by each
// distinct city in first-seen order.
func Cities(vs []Venue) []string {
	seen := make(map[string]struct{}, len(vs))
	out := []string{AllCities}
	for _, v := range vs {
		if _, ok := seen[v.City]; ok {
			continue
		}
		seen[v.City] = struct{}{}
		out = append(out, v.City)
	}
	return out
}

// Sample returns the static listing shown when no live query has run.
func Sample() []Venue {
	return []Venue{
		{
			ID:        1,
			Name:      "The Fillmore",
			City:      "San Francisco",
			State:     "CA",
			Country:   "USA",
			Capacity:  intPtr(1200),
			VenueType: TypeConcertHall,
			Lat:       37.7840,
			Lon:       -122.4330,
			Address:   "1805 Geary Blvd, San Francisco, CA",
			Amenities: []string{"Professional Sound", "Lighting Rig", "Bar"},
		},
		{
			ID:        2,
			Name:      "Red Rocks Amphitheatre",
			City:      "Denver",
			State:     "CO",
			Country:   "USA",
			Capacity:  intPtr(9525),
			VenueType: TypeOutdoorAmphitheatre,
			Lat:       39.6654,
			Lon:       -105.2057,
			Address:   "18300 W Alameda Pkwy, Morrison, CO",
			Amenities: []string{"Natural Acoustics", "Mountain Views"},
		},
		{
			ID:        3,
			Name:      "The Troubadour",
			City:      "Los Angeles",
			State:     "CA",
			Country:   "USA",
			Capacity:  intPtr(500),
			VenueType: TypeClub,
			Lat:       34.0815,
			Lon:       -118.3893,
			Address:   "9081 Santa Monica Blvd, West Hollywood, CA",
			Amenities: []string{"Sound System", "Bar", "Stage"},
		},
	}
}
