package export

import (
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/venue-finder/internal/venue"
)

// SheetName is the worksheet that WriteXLSX fills.
const SheetName = "Venues"

var xlsxHeader = []string{
	"ID", "Name", "Type", "City", "State", "Country", "Capacity",
	"Lat", "Lon", "Address", "Phone", "Website", "Amenities",
	"Rating", "Price", "Stage Size", "Load-In",
}

// WriteXLSX writes vs as a single-sheet workbook with a header row.
// Unknown capacity and rating cells are left blank.
func WriteXLSX(w io.Writer, vs []venue.Venue) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SheetName)
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range xlsxHeader {
		header.AddCell().SetString(h)
	}

	for _, v := range vs {
		row := sheet.AddRow()
		row.AddCell().SetInt64(v.ID)
		row.AddCell().SetString(v.Name)
		row.AddCell().SetString(string(v.VenueType))
		row.AddCell().SetString(v.City)
		row.AddCell().SetString(v.State)
		row.AddCell().SetString(v.Country)
		if c := row.AddCell(); v.Capacity != nil {
			c.SetInt(*v.Capacity)
		}
		row.AddCell().SetFloat(v.Lat)
		row.AddCell().SetFloat(v.Lon)
		row.AddCell().SetString(v.Address)
		row.AddCell().SetString(v.Phone)
		row.AddCell().SetString(v.Website)
		row.AddCell().SetString(strings.Join(v.Amenities, ", "))
		if c := row.AddCell(); v.Rating != nil {
			c.SetFloat(*v.Rating)
		}
		row.AddCell().SetString(v.Price)
		row.AddCell().SetString(v.StageSize)
		row.AddCell().SetString(v.LoadIn)
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write xlsx")
	}
	return nil
}
