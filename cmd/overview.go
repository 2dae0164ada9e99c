package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/venue-finder/internal/resolver"
)

var overviewCmd = &cobra.Command{
	Use:   "overview <city>...",
	Short: "Look up several cities at once",
	Long:  "Fetches venues for up to three cities concurrently. Results are not merged: the listing holds whichever city finished last.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext(cmd)
		defer stop()

		res, err := initResolver(cfg, "fetch")
		if err != nil {
			return err
		}

		limitFlag, _ := cmd.Flags().GetInt("limit")
		dir := resolver.NewDirectory(res, resolveLimit(limitFlag, cfg.Fetch.DefaultLimit))

		vs := dir.Overview(ctx, args...)
		zap.L().Info("overview complete",
			zap.Strings("cities", args),
			zap.Int("venues", len(vs)),
		)
		return writeVenues(cmd, vs)
	},
}

func init() {
	overviewCmd.Flags().Int("limit", 0, "max venues per city (default from config)")
	addOutputFlags(overviewCmd)
	rootCmd.AddCommand(overviewCmd)
}
