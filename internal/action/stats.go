package action

import "strings"

// Statistics aggregates counts over items. It is a pure, total function:
// an empty input yields all-zero counts with initialized maps.
func Statistics(items []Item) Stats {
	stats := Stats{
		Total:      len(items),
		ByAssignee: make(map[string]int),
		ByPriority: map[Priority]int{
			PriorityHigh:   0,
			PriorityMedium: 0,
			PriorityLow:    0,
		},
	}

	seen := make(map[string]bool)
	for _, item := range items {
		assignee := item.Assignee
		if assignee == "" {
			assignee = Unassigned
			stats.Unassigned++
		} else {
			stats.Assigned++
			seen[assignee] = true
		}
		stats.ByAssignee[assignee]++
		stats.ByPriority[item.Priority]++

		if item.Deadline != "" {
			stats.WithDeadline++
		} else {
			stats.WithoutDeadline++
		}
	}
	stats.UniqueAssignees = len(seen)
	return stats
}

// FilterByAssignee returns the items assigned to name (case-insensitive).
func FilterByAssignee(items []Item, name string) []Item {
	var out []Item
	for _, item := range items {
		if item.Assignee != "" && strings.EqualFold(item.Assignee, name) {
			out = append(out, item)
		}
	}
	return out
}

// FilterByPriority returns the items at the given priority.
func FilterByPriority(items []Item, priority Priority) []Item {
	var out []Item
	for _, item := range items {
		if item.Priority == priority {
			out = append(out, item)
		}
	}
	return out
}
