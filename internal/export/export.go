// Package export renders venue listings in the formats the CLI and HTTP API
// offer.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/venue-finder/internal/venue"
)

// Format names an output encoding.
type Format string

const (
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatGeoJSON Format = "geojson"
	FormatXLSX    Format = "xlsx"
)

// Formats lists every supported Format.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML, FormatGeoJSON, FormatXLSX}

// ParseFormat resolves a format name, ignoring case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", eris.Errorf("export: unknown format %q", s)
}

// Binary reports whether the format produces non-text output.
func (f Format) Binary() bool {
	return f == FormatXLSX
}

// Write encodes vs to w in format f.
func Write(w io.Writer, f Format, vs []venue.Venue) error {
	switch f {
	case FormatTable:
		return WriteTable(w, vs)
	case FormatJSON:
		return WriteJSON(w, vs)
	case FormatYAML:
		return WriteYAML(w, vs)
	case FormatGeoJSON:
		return WriteGeoJSON(w, vs)
	case FormatXLSX:
		return WriteXLSX(w, vs)
	default:
		return eris.Errorf("export: unknown format %q", f)
	}
}

// WriteJSON writes vs as an indented JSON array.
func WriteJSON(w io.Writer, vs []venue.Venue) error {
	if vs == nil {
		vs = []venue.Venue{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(vs); err != nil {
		return eris.Wrap(err, "export: encode json")
	}
	return nil
}

// WriteYAML writes vs as a YAML sequence under a top-level "venues" key.
func WriteYAML(w io.Writer, vs []venue.Venue) error {
	if vs == nil {
		vs = []venue.Venue{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string][]venue.Venue{"venues": vs}); err != nil {
		return eris.Wrap(err, "export: encode yaml")
	}
	if err := enc.Close(); err != nil {
		return eris.Wrap(err, "export: flush yaml")
	}
	return nil
}

// WriteTable writes a fixed-width summary of vs.
func WriteTable(out io.Writer, vs []venue.Venue) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tTYPE\tCITY\tCAPACITY\tPRICE\tRATING")
	for _, v := range vs {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			v.ID,
			v.Name,
			v.VenueType,
			v.City,
			venue.FormatCapacity(v, "-"),
			dash(v.Price),
			rating(v),
		)
	}
	return eris.Wrap(w.Flush(), "export: flush table")
}

func rating(v venue.Venue) string {
	if v.Rating == nil {
		return "-"
	}
	return strconv.FormatFloat(*v.Rating, 'f', 1, 64)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
