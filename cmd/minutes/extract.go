package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/minuted/internal/logging"
	"github.com/fyrsmithlabs/minuted/internal/mail"
	"github.com/fyrsmithlabs/minuted/internal/pipeline"
	"github.com/fyrsmithlabs/minuted/internal/report"
)

var (
	extractFormat  string
	extractOutput  string
	extractTitle   string
	extractContext bool
	extractEmail   []string
)

var extractCmd = &cobra.Command{
	Use:   "extract <transcript>",
	Short: "Extract action items from a transcript file",
	Long: `Extract action items from a meeting transcript and render a summary.

Examples:
  # Markdown summary to stdout
  minutes extract standup.txt

  # JSON document to a file
  minutes extract standup.txt --format json --output reports/standup

  # Compact one-liner
  minutes extract standup.txt --format compact

  # Read from stdin
  cat standup.txt | minutes extract -

  # Email the summary
  minutes extract standup.txt --email alice@example.com --email bob@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "markdown", "output format: markdown, json or compact")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "write output to this path instead of stdout")
	extractCmd.Flags().StringVarP(&extractTitle, "title", "t", "", "meeting title for the summary header")
	extractCmd.Flags().BoolVar(&extractContext, "context", false, "include surrounding discussion for each item")
	extractCmd.Flags().StringSliceVar(&extractEmail, "email", nil, "email the summary to these recipients")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, logger, p, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logging.Sync(logger) }()

	path := args[0]
	var result *pipeline.Result
	if path == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		result, err = p.Run(string(content))
		if err != nil {
			return err
		}
	} else {
		var err error
		result, err = p.RunFile(path)
		if err != nil {
			return err
		}
	}

	title := extractTitle
	if title == "" {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if path == "-" {
			base = "stdin"
		}
		title = "Meeting Summary: " + base
	}

	gen := report.NewGenerator(logger.Named("report"))
	opts := report.Options{
		Title:          title,
		IncludeStats:   true,
		IncludeContext: extractContext,
	}

	var content string
	switch extractFormat {
	case "markdown", "md":
		extractFormat = "markdown"
		content, err = gen.Markdown(result.Items, opts)
	case "json":
		content, err = gen.JSON(result.Items, opts)
	case "compact":
		content = gen.Compact(result.Items)
	default:
		return fmt.Errorf("unknown format %q (use markdown, json or compact)", extractFormat)
	}
	if err != nil {
		return err
	}

	if extractOutput != "" && extractFormat != "compact" {
		if err := gen.Save(content, extractOutput, extractFormat); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s report to %s\n", extractFormat, extractOutput)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), content)
	}

	if len(extractEmail) > 0 {
		sender := mail.NewSender(cfg.SMTP, logger.Named("mail"))
		body := gen.EmailBody(result.Items, title, "")
		if err := sender.SendSummary(extractEmail, title, body, ""); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Summary emailed to %d recipient(s)\n", len(extractEmail))
	}

	return nil
}
