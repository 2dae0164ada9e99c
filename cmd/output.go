package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/venue-finder/internal/export"
	"github.com/sells-group/venue-finder/internal/venue"
)

// addOutputFlags registers --format and --out on cmd.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", string(export.FormatTable), "output format (table, json, yaml, geojson, xlsx)")
	cmd.Flags().String("out", "", "write output to this file instead of stdout (required for xlsx)")
}

// writeVenues encodes vs in the format selected by cmd's flags.
func writeVenues(cmd *cobra.Command, vs []venue.Venue) error {
	name, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")

	format, err := export.ParseFormat(name)
	if err != nil {
		return err
	}
	if format.Binary() && outPath == "" {
		return eris.Errorf("%s output requires --out", format)
	}

	if outPath == "" {
		if len(vs) == 0 && format == export.FormatTable {
			fmt.Fprintln(os.Stderr, "No venues found.")
			return nil
		}
		return export.Write(cmd.OutOrStdout(), format, vs)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return eris.Wrap(err, "create output file")
	}
	if err := export.Write(f, format, vs); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return eris.Wrap(err, "close output file")
	}
	fmt.Fprintf(os.Stderr, "Wrote %d venues to %s\n", len(vs), outPath)
	return nil
}

// writeDetails prints the detail view of each venue.
func writeDetails(out io.Writer, vs []venue.Venue) {
	for i, v := range vs {
		if i > 0 {
			_, _ = fmt.Fprintln(out)
		}
		d := venue.Describe(v)
		_, _ = fmt.Fprintf(out, "%s (%s, %s)\n", v.Name, v.VenueType, d.Size)
		_, _ = fmt.Fprintf(out, "  %s\n", d.Description)
		if v.Address != "" {
			_, _ = fmt.Fprintf(out, "  Address:  %s\n", v.Address)
		}
		if len(v.Amenities) > 0 {
			_, _ = fmt.Fprintf(out, "  Amenities: %v\n", v.Amenities)
		}
		_, _ = fmt.Fprintf(out, "  Phone:    %s\n", d.PhoneLink)
		_, _ = fmt.Fprintf(out, "  Website:  %s\n", d.WebsiteLink)
		_, _ = fmt.Fprintf(out, "  Map:      %s\n", d.MapLink)
		_, _ = fmt.Fprintf(out, "  Inquiry:  %s\n", d.InquiryMailto)
	}
}
