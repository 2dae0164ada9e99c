package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Free-text search for music venues",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext(cmd)
		defer stop()

		res, err := initResolver(cfg, "fetch")
		if err != nil {
			return err
		}

		limitFlag, _ := cmd.Flags().GetInt("limit")
		vs := res.SearchVenues(ctx, strings.Join(args, " "), resolveLimit(limitFlag, cfg.Fetch.DefaultLimit))
		return writeVenues(cmd, vs)
	},
}

func init() {
	searchCmd.Flags().Int("limit", 0, "max venues to return (default from config)")
	addOutputFlags(searchCmd)
	rootCmd.AddCommand(searchCmd)
}
