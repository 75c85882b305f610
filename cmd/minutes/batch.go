package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/minuted/internal/logging"
	"github.com/fyrsmithlabs/minuted/internal/report"
)

var batchOutput string

var batchCmd = &cobra.Command{
	Use:   "batch <directory>",
	Short: "Process every transcript in a directory",
	Long: `Process all .txt transcripts in a directory. Each file is handled
independently; one failing transcript does not stop the batch.

Examples:
  # Write markdown and JSON reports next to the transcripts
  minutes batch ./transcripts

  # Write reports to a separate directory
  minutes batch ./transcripts --output ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "directory for generated reports (default: alongside inputs)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	_, logger, p, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logging.Sync(logger) }()

	dir := args[0]
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	outDir := batchOutput
	if outDir == "" {
		outDir = dir
	}

	gen := report.NewGenerator(logger.Named("report"))
	processed, failed := 0, 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		result, err := p.RunFile(path)
		if err != nil {
			logger.Warn("skipping transcript", zap.String("path", path), zap.Error(err))
			fmt.Fprintf(cmd.ErrOrStderr(), "FAIL %s: %v\n", path, err)
			failed++
			continue
		}

		base := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		opts := report.Options{
			Title:        "Meeting Summary: " + base,
			IncludeStats: true,
		}

		md, err := gen.Markdown(result.Items, opts)
		if err == nil {
			err = gen.Save(md, filepath.Join(outDir, base), "markdown")
		}
		if err == nil {
			var doc string
			if doc, err = gen.JSON(result.Items, opts); err == nil {
				err = gen.Save(doc, filepath.Join(outDir, base), "json")
			}
		}
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "FAIL %s: %v\n", path, err)
			failed++
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "OK   %s: %d items\n", path, len(result.Items))
		processed++
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d processed, %d failed\n", processed, failed)
	if processed == 0 && failed == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No .txt transcripts found in %s\n", dir)
	}
	return nil
}
