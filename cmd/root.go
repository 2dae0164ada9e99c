package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/venue-finder/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:          "venue-finder",
	Short:        "Music venue lookup over OpenStreetMap",
	Long:         "Geocodes cities, queries OpenStreetMap for nearby music venues, normalizes them into a uniform record and exports or serves the results.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		applyLogFlags(cmd, &c.Log)
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "override log.level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "override log.format (json, console)")
}

// applyLogFlags lets the persistent flags win over file and env settings.
func applyLogFlags(cmd *cobra.Command, lc *config.LogConfig) {
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		lc.Level = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		lc.Format = v
	}
}

// signalContext derives the command context, cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
