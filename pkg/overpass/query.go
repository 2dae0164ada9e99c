package overpass

import (
	"strconv"
	"strings"
)

// Kind is an OSM element type that a query statement selects.
type Kind string

// Element kinds.
const (
	Node Kind = "node"
	Way  Kind = "way"
)

// Filter matches a tag key against an anchored alternation of values,
// e.g. ["amenity"~"^(bar|pub)$"].
type Filter struct {
	Key    string
	Values []string
}

func (f Filter) String() string {
	return `["` + f.Key + `"~"^(` + strings.Join(f.Values, "|") + `)$"]`
}

// Query is an "around" union query: every filter is applied to every kind,
// restricted to named elements within Radius meters of (Lat, Lon).
type Query struct {
	TimeoutSecs int
	Kinds       []Kind
	Filters     []Filter
	Radius      int
	Lat         float64
	Lon         float64
}

// String renders the query in Overpass QL. Statements are grouped by kind,
// then by filter, in declaration order.
func (q Query) String() string {
	around := "(around:" + strconv.Itoa(q.Radius) + "," +
		strconv.FormatFloat(q.Lat, 'f', -1, 64) + "," +
		strconv.FormatFloat(q.Lon, 'f', -1, 64) + ")"

	var b strings.Builder
	b.WriteString("[out:json][timeout:" + strconv.Itoa(q.TimeoutSecs) + "];\n(\n")
	for _, k := range q.Kinds {
		for _, f := range q.Filters {
			b.WriteString("  " + string(k) + f.String() + `["name"]` + around + ";\n")
		}
	}
	b.WriteString(");\nout center;\n")
	return b.String()
}
