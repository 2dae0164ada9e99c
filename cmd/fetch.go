package main

import (
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <city>",
	Short: "Find music venues near a city",
	Long:  "Geocodes the city, queries OpenStreetMap for nearby venues and prints them. Falls back to built-in venues for well-known cities when live lookups fail.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext(cmd)
		defer stop()

		res, err := initResolver(cfg, "fetch")
		if err != nil {
			return err
		}

		limitFlag, _ := cmd.Flags().GetInt("limit")
		details, _ := cmd.Flags().GetBool("details")

		vs := res.FetchVenues(ctx, args[0], resolveLimit(limitFlag, cfg.Fetch.DefaultLimit))

		if details {
			writeDetails(cmd.OutOrStdout(), vs)
			return nil
		}
		return writeVenues(cmd, vs)
	},
}

func init() {
	fetchCmd.Flags().Int("limit", 0, "max venues to return (default from config)")
	fetchCmd.Flags().Bool("details", false, "print a detail view of each venue")
	addOutputFlags(fetchCmd)
	rootCmd.AddCommand(fetchCmd)
}
