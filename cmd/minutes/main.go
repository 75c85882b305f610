// Package main implements the minutes CLI for extracting action items from
// meeting transcripts.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/minuted/internal/config"
	"github.com/fyrsmithlabs/minuted/internal/logging"
	"github.com/fyrsmithlabs/minuted/internal/pipeline"
)

var (
	// configPath is the optional YAML config file shared by all commands
	configPath string
	// verbose switches console logging to debug level
	verbose bool
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "minutes",
	Short: "Extract action items from meeting transcripts",
	Long: `minutes parses raw meeting transcripts (Zoom, Google Meet, Teams or plain
"Speaker: text" exports), extracts action items and commitments, and renders
summaries as markdown, JSON or a compact one-liner.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(statsCmd)
}

// setup loads config, builds the logger and the pipeline. Shared by every
// command.
func setup() (*config.Config, *zap.Logger, *pipeline.Pipeline, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	logCfg := cfg.Logging
	logCfg.Format = "console"
	if verbose {
		logCfg.Level = "debug"
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("initializing logger: %w", err)
	}

	return cfg, logger, pipeline.New(cfg.Extract, logger), nil
}
