package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/minuted/internal/action"
	"github.com/fyrsmithlabs/minuted/internal/logging"
	"github.com/fyrsmithlabs/minuted/internal/transcript"
)

var validateCmd = &cobra.Command{
	Use:   "validate <transcript>",
	Short: "Check that a transcript parses cleanly",
	Long: `Parse a transcript without extraction and report what was recognized:
message count, detected line formats and the speakers found.

Examples:
  minutes validate standup.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var statsCmd = &cobra.Command{
	Use:   "stats <transcript>",
	Short: "Show action item statistics for a transcript",
	Long: `Run extraction and print aggregate statistics without the full summary.

Examples:
  minutes stats standup.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func runValidate(cmd *cobra.Command, args []string) error {
	_, logger, _, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logging.Sync(logger) }()

	n := transcript.NewNormalizer(logger.Named("transcript"))
	messages, err := n.NormalizeFile(args[0])
	if err != nil {
		return err
	}

	stats := transcript.Stats(messages)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: OK\n\n", args[0])
	fmt.Fprintf(out, "Messages:           %d\n", stats.TotalMessages)
	fmt.Fprintf(out, "With timestamps:    %d\n", stats.WithTimestamps)
	fmt.Fprintf(out, "Without timestamps: %d\n", stats.WithoutTimestamps)
	fmt.Fprintf(out, "Unknown speakers:   %d\n", stats.UnknownSpeakers)
	fmt.Fprintf(out, "Speakers:           %s\n", strings.Join(transcript.Speakers(messages), ", "))
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	_, logger, p, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logging.Sync(logger) }()

	result, err := p.RunFile(args[0])
	if err != nil {
		return err
	}
	stats := result.Stats

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total items:       %d\n", stats.Total)
	fmt.Fprintf(out, "Assigned:          %d\n", stats.Assigned)
	fmt.Fprintf(out, "Unassigned:        %d\n", stats.Unassigned)
	fmt.Fprintf(out, "With deadline:     %d\n", stats.WithDeadline)
	fmt.Fprintf(out, "Without deadline:  %d\n", stats.WithoutDeadline)
	fmt.Fprintf(out, "Unique assignees:  %d\n", stats.UniqueAssignees)
	fmt.Fprintf(out, "Priority:          high=%d medium=%d low=%d\n",
		stats.ByPriority[action.PriorityHigh],
		stats.ByPriority[action.PriorityMedium],
		stats.ByPriority[action.PriorityLow])

	if len(stats.ByAssignee) > 0 {
		names := make([]string, 0, len(stats.ByAssignee))
		for name := range stats.ByAssignee {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintf(out, "\nBy assignee:\n")
		for _, name := range names {
			fmt.Fprintf(out, "  %-20s %d\n", name, stats.ByAssignee[name])
		}
	}
	return nil
}
