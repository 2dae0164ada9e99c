package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/venue-finder/internal/venue"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "List the built-in sample venues",
	RunE: func(cmd *cobra.Command, _ []string) error {
		term, _ := cmd.Flags().GetString("term")
		city, _ := cmd.Flags().GetString("city")

		vs := venue.Filter(venue.Sample(), venue.Criteria{Term: term, City: city})
		return writeVenues(cmd, vs)
	},
}

func init() {
	sampleCmd.Flags().String("term", "", "keep venues whose name contains this text")
	sampleCmd.Flags().String("city", venue.AllCities, "keep venues in this city")
	addOutputFlags(sampleCmd)
	rootCmd.AddCommand(sampleCmd)
}
