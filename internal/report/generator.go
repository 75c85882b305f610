// Package report renders extracted action items as markdown summaries, JSON
// documents, compact one-liners and plain-text email bodies. It consumes only
// the typed item list and its statistics, never raw transcript text.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/minuted/internal/action"
	"github.com/fyrsmithlabs/minuted/internal/fault"
)

// Options controls summary rendering.
type Options struct {
	Title          string
	Date           string
	IncludeStats   bool
	IncludeContext bool
}

// Generator renders summaries. A nil logger disables logging.
type Generator struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewGenerator creates a report generator.
func NewGenerator(logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{logger: logger, now: time.Now}
}

// Markdown renders a full markdown summary.
func (g *Generator) Markdown(items []action.Item, opts Options) (string, error) {
	if strings.TrimSpace(opts.Title) == "" {
		return "", fault.InvalidArgument("title", "must be a non-empty string")
	}
	if opts.Date == "" {
		opts.Date = g.now().Format("January 2, 2006")
	}

	g.logger.Debug("generating markdown summary", zap.Int("items", len(items)))

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", opts.Title)
	fmt.Fprintf(&b, "**Date:** %s\n", opts.Date)
	fmt.Fprintf(&b, "**Generated:** %s\n\n---\n\n", g.now().Format("2006-01-02 15:04"))

	if opts.IncludeStats && len(items) > 0 {
		writeStatsSection(&b, action.Statistics(items))
	}
	writeItemsSection(&b, items, opts.IncludeContext)
	if len(items) > 0 {
		writeByAssigneeSection(&b, items)
		writeByPrioritySection(&b, items)
		writeDeadlinesSection(&b, items)
	}
	writeNextStepsSection(&b, items)

	return b.String(), nil
}

func writeStatsSection(b *strings.Builder, stats action.Stats) {
	b.WriteString("## Summary Statistics\n\n")
	fmt.Fprintf(b, "- **Total action items:** %d\n", stats.Total)
	fmt.Fprintf(b, "- **Assigned:** %d | **Unassigned:** %d\n", stats.Assigned, stats.Unassigned)
	fmt.Fprintf(b, "- **With deadlines:** %d\n", stats.WithDeadline)
	fmt.Fprintf(b, "- **Unique assignees:** %d\n", stats.UniqueAssignees)
	b.WriteString("- **Priority breakdown:**\n")
	fmt.Fprintf(b, "  - High: %d\n", stats.ByPriority[action.PriorityHigh])
	fmt.Fprintf(b, "  - Medium: %d\n", stats.ByPriority[action.PriorityMedium])
	fmt.Fprintf(b, "  - Low: %d\n", stats.ByPriority[action.PriorityLow])
	b.WriteString("\n---\n\n")
}

func writeItemsSection(b *strings.Builder, items []action.Item, includeContext bool) {
	b.WriteString("## Action Items\n\n")
	if len(items) == 0 {
		b.WriteString("*No action items detected in this meeting.*\n\n")
		return
	}

	for i, item := range items {
		fmt.Fprintf(b, "%d. [ ] %s\n", i+1, item.Task)
		fmt.Fprintf(b, "   - **Assignee:** %s\n", assigneeLabel(item))
		if item.Deadline != "" {
			fmt.Fprintf(b, "   - **Deadline:** %s\n", item.Deadline)
		}
		if item.Priority != action.PriorityMedium {
			fmt.Fprintf(b, "   - **Priority:** %s\n", item.Priority)
		}
		if item.Timestamp != "" {
			fmt.Fprintf(b, "   - **Mentioned at:** %s\n", item.Timestamp)
		}
		if includeContext && item.Context != "" {
			fmt.Fprintf(b, "   - *Context:* %s\n", head(item.Context, 150))
		}
		b.WriteString("\n")
	}
	b.WriteString("---\n\n")
}

func writeByAssigneeSection(b *strings.Builder, items []action.Item) {
	b.WriteString("## Action Items by Assignee\n\n")
	groups := groupByAssignee(items)
	for _, name := range sortedKeys(groups) {
		fmt.Fprintf(b, "### %s (%d items)\n\n", name, len(groups[name]))
		for _, item := range groups[name] {
			line := "- " + item.Task
			if item.Deadline != "" {
				line += " (due " + item.Deadline + ")"
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("---\n\n")
}

func writeByPrioritySection(b *strings.Builder, items []action.Item) {
	b.WriteString("## Action Items by Priority\n\n")
	for _, priority := range []action.Priority{action.PriorityHigh, action.PriorityMedium, action.PriorityLow} {
		group := action.FilterByPriority(items, priority)
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(b, "### %s priority (%d items)\n\n", titleCase(string(priority)), len(group))
		for _, item := range group {
			line := fmt.Sprintf("- %s (%s)", item.Task, assigneeLabel(item))
			if item.Deadline != "" {
				line += " - due " + item.Deadline
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("---\n\n")
}

func writeDeadlinesSection(b *strings.Builder, items []action.Item) {
	b.WriteString("## Upcoming Deadlines\n\n")

	var dated []action.Item
	for _, item := range items {
		if item.Deadline != "" {
			dated = append(dated, item)
		}
	}
	if len(dated) == 0 {
		b.WriteString("*No deadlines specified.*\n\n")
		return
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return deadlineSortKey(dated[i].Deadline).Before(deadlineSortKey(dated[j].Deadline))
	})
	for _, item := range dated {
		fmt.Fprintf(b, "- **%s** - %s (%s)\n", item.Deadline, item.Task, assigneeLabel(item))
	}
	b.WriteString("\n---\n\n")
}

func writeNextStepsSection(b *strings.Builder, items []action.Item) {
	b.WriteString("## Next Steps\n\n")
	if len(items) == 0 {
		b.WriteString("*No immediate next steps identified.*\n")
		return
	}

	high := action.FilterByPriority(items, action.PriorityHigh)
	if len(high) > 0 {
		b.WriteString("**Immediate actions (high priority):**\n\n")
		for i, item := range high {
			if i == 5 {
				break
			}
			fmt.Fprintf(b, "1. %s - %s\n", assigneeLabel(item), item.Task)
		}
		b.WriteString("\n")
	}

	b.WriteString("**General recommendations:**\n\n")
	b.WriteString("- Review and assign unassigned action items\n")
	b.WriteString("- Set deadlines for items without due dates\n")
	b.WriteString("- Schedule a follow-up meeting if needed\n")
}

// deadlineSortKey orders symbolic tokens first and unparseable deadlines
// last.
func deadlineSortKey(deadline string) time.Time {
	upper := strings.ToUpper(deadline)
	if strings.Contains(upper, "ASAP") || strings.Contains(upper, "TODAY") || strings.Contains(upper, "TOMORROW") {
		return time.Time{}
	}
	fields := strings.Fields(deadline)
	if len(fields) > 0 {
		if t, err := time.Parse("2006-01-02", fields[0]); err == nil {
			return t
		}
	}
	return time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC)
}

// Document is the JSON output shape for API integration.
type Document struct {
	Meeting    MeetingInfo   `json:"meeting"`
	Items      []action.Item `json:"action_items"`
	Statistics *action.Stats `json:"statistics,omitempty"`
}

// MeetingInfo heads a JSON document.
type MeetingInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	GeneratedAt string `json:"generated_at"`
}

// JSON renders a JSON document with a fresh report ID.
func (g *Generator) JSON(items []action.Item, opts Options) (string, error) {
	if opts.Date == "" {
		opts.Date = g.now().Format("2006-01-02")
	}
	doc := Document{
		Meeting: MeetingInfo{
			ID:          uuid.NewString(),
			Title:       opts.Title,
			Date:        opts.Date,
			GeneratedAt: g.now().Format(time.RFC3339),
		},
		Items: items,
	}
	if opts.IncludeStats {
		stats := action.Statistics(items)
		doc.Statistics = &stats
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fault.OutputFailed("encoding JSON document", err)
	}
	return string(out), nil
}

// Compact renders a one-line summary.
func (g *Generator) Compact(items []action.Item) string {
	stats := action.Statistics(items)
	return fmt.Sprintf("%d action items | %d high priority | %d assigned | %d with deadlines",
		stats.Total, stats.ByPriority[action.PriorityHigh], stats.Assigned, stats.WithDeadline)
}

// EmailBody renders the plain-text body for a summary email, grouped by
// assignee.
func (g *Generator) EmailBody(items []action.Item, title, date string) string {
	if date == "" {
		date = g.now().Format("January 2, 2006")
	}

	var b strings.Builder
	b.WriteString("Hello Team,\n\n")
	fmt.Fprintf(&b, "Here's a summary of action items from our %s on %s.\n\n", title, date)
	b.WriteString(g.Compact(items))
	b.WriteString("\n\nACTION ITEMS:\n")

	groups := groupByAssignee(items)
	for _, name := range sortedKeys(groups) {
		fmt.Fprintf(&b, "\n%s:\n", name)
		for _, item := range groups[name] {
			line := "  * " + item.Task
			if item.Deadline != "" {
				line += " (due: " + item.Deadline + ")"
			}
			if item.Priority == action.PriorityHigh {
				line += " [HIGH]"
			}
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("\nPlease review your assigned items and reach out if you have any questions.\n")
	b.WriteString("\nBest regards\n")
	return b.String()
}

// Save writes rendered content to path, creating parent directories and
// fixing the extension for the given format ("markdown" or "json").
func (g *Generator) Save(content, path, format string) error {
	if content == "" {
		return fault.InvalidArgument("content", "cannot be empty")
	}
	if strings.TrimSpace(path) == "" {
		return fault.InvalidArgument("path", "cannot be empty")
	}

	var ext string
	switch format {
	case "markdown":
		ext = ".md"
	case "json":
		ext = ".json"
	default:
		return fault.InvalidArgument("format", "must be markdown or json")
	}
	if filepath.Ext(path) != ext {
		path = strings.TrimSuffix(path, filepath.Ext(path)) + ext
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fault.OutputFailed("creating output directory "+dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fault.OutputFailed("writing "+path, err)
	}

	g.logger.Info("saved report", zap.String("path", path), zap.String("format", format))
	return nil
}

func assigneeLabel(item action.Item) string {
	if item.Assignee == "" {
		return "Unassigned"
	}
	return "@" + item.Assignee
}

func groupByAssignee(items []action.Item) map[string][]action.Item {
	groups := make(map[string][]action.Item)
	for _, item := range items {
		name := item.Assignee
		if name == "" {
			name = action.Unassigned
		}
		groups[name] = append(groups[name], item)
	}
	return groups
}

func sortedKeys(groups map[string][]action.Item) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
