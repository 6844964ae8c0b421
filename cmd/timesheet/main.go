// Package main provides the CLI entry point for timesheet-go.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ukaji3/timesheet-go/internal/config"
	"github.com/ukaji3/timesheet-go/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootFlags are the flags shared by every subcommand.
type rootFlags struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	rootCmd := &cobra.Command{
		Use:   "timesheet",
		Short: "Validate employee timesheet workbooks",
		Long: `timesheet-go checks pivot-style timesheet workbooks for missing and
non-billable entries, highlights incomplete rows and writes a Summary sheet.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "YAML configuration file")

	rootCmd.AddCommand(newCheckCmd(&flags), newServeCmd(&flags))
	return rootCmd
}

// load reads the configuration and builds the logger. Logs go to stderr so
// stdout stays usable for reports.
func (f *rootFlags) load(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(cmd.ErrOrStderr(), cfg.Logging)
	slog.SetDefault(logger)
	return cfg, logger, nil
}
