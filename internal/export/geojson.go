package export

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/venue-finder/internal/venue"
)

// FeatureCollection converts vs into a GeoJSON feature collection with one
// point feature per venue. Venues failing Valid are skipped.
func FeatureCollection(vs []venue.Venue) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(vs))}
	for _, v := range vs {
		if !v.Valid() {
			continue
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         strconv.FormatInt(v.ID, 10),
			Geometry:   geom.NewPointFlat(geom.XY, []float64{v.Lon, v.Lat}),
			Properties: properties(v),
		})
	}
	return fc
}

// WriteGeoJSON writes vs as a GeoJSON FeatureCollection.
func WriteGeoJSON(w io.Writer, vs []venue.Venue) error {
	data, err := json.Marshal(FeatureCollection(vs))
	if err != nil {
		return eris.Wrap(err, "export: encode geojson")
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return eris.Wrap(err, "export: write geojson")
	}
	return nil
}

func properties(v venue.Venue) map[string]any {
	p := map[string]any{
		"name":       v.Name,
		"city":       v.City,
		"venue_type": string(v.VenueType),
		"amenities":  v.Amenities,
	}
	optional := map[string]string{
		"state":      v.State,
		"country":    v.Country,
		"address":    v.Address,
		"phone":      v.Phone,
		"website":    v.Website,
		"image":      v.Image,
		"price":      v.Price,
		"stage_size": v.StageSize,
		"load_in":    v.LoadIn,
	}
	for k, s := range optional {
		if s != "" {
			p[k] = s
		}
	}
	if v.Capacity != nil {
		p["capacity"] = *v.Capacity
	}
	if v.Rating != nil {
		p["rating"] = *v.Rating
	}
	return p
}
