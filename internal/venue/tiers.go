package venue

// Estimated capacities by type.
const (
	capacityClub        = 300
	capacityBar         = 150
	capacityTheatre     = 800
	capacityConcertHall = 1200
	capacityDefault     = 200
)

var (
	clubAmenities    = []string{"Sound System", "Lighting", "Bar", "Dance Floor"}
	seatedAmenities  = []string{"Professional Sound", "Lighting Rig", "Seating", "Stage"}
	defaultAmenities = []string{"Sound System", "Bar", "Stage"}
)

// Profile returns the estimated capacity and amenity list for a venue type.
// The returned slice is a fresh copy.
func Profile(t Type) (capacity int, amenities []string) {
	switch t {
	case TypeClub:
		return capacityClub, clone(clubAmenities)
	case TypeBar:
		return capacityBar, clone(defaultAmenities)
	case TypeTheatre:
		return capacityTheatre, clone(seatedAmenities)
	case TypeConcertHall:
		return capacityConcertHall, clone(seatedAmenities)
	default:
		return capacityDefault, clone(defaultAmenities)
	}
}

// PriceTier maps a capacity onto a booking price. Bounds are exclusive.
func PriceTier(capacity int) string {
	switch {
	case capacity > 1000:
		return "$5,000"
	case capacity > 500:
		return "$3,000"
	case capacity > 200:
		return "$2,000"
	default:
		return "$1,500"
	}
}

// StageSizeTier maps a capacity onto a stage size description.
func StageSizeTier(capacity int) string {
	switch {
	case capacity > 1000:
		return `40' x 30'`
	case capacity > 500:
		return `30' x 20'`
	default:
		return `20' x 15'`
	}
}

// LoadInTier maps a capacity onto a load-in description.
func LoadInTier(capacity int) string {
	if capacity > 1000 {
		return "Loading dock"
	}
	return "Street level"
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
