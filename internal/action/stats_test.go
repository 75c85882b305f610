package action

import "testing"

func TestStatisticsEmpty(t *testing.T) {
	stats := Statistics(nil)

	if stats.Total != 0 {
		t.Errorf("Total = %d, want 0", stats.Total)
	}
	if stats.ByAssignee == nil || stats.ByPriority == nil {
		t.Fatal("maps must be initialized even for empty input")
	}
	for _, p := range []Priority{PriorityHigh, PriorityMedium, PriorityLow} {
		if _, ok := stats.ByPriority[p]; !ok {
			t.Errorf("ByPriority missing bucket %v", p)
		}
	}
}

func TestStatistics(t *testing.T) {
	items := []Item{
		{Task: "a", Assignee: "Alice", Deadline: "2026-03-13", Priority: PriorityHigh},
		{Task: "b", Assignee: "Alice", Priority: PriorityMedium},
		{Task: "c", Assignee: "Bob", Deadline: "ASAP", Priority: PriorityHigh},
		{Task: "d", Priority: PriorityLow},
	}

	stats := Statistics(items)

	if stats.Total != 4 {
		t.Errorf("Total = %d, want 4", stats.Total)
	}
	if stats.Assigned != 3 || stats.Unassigned != 1 {
		t.Errorf("assigned split = %d/%d, want 3/1", stats.Assigned, stats.Unassigned)
	}
	if stats.WithDeadline != 2 || stats.WithoutDeadline != 2 {
		t.Errorf("deadline split = %d/%d, want 2/2", stats.WithDeadline, stats.WithoutDeadline)
	}
	if stats.UniqueAssignees != 2 {
		t.Errorf("UniqueAssignees = %d, want 2", stats.UniqueAssignees)
	}
	if stats.ByAssignee["Alice"] != 2 || stats.ByAssignee["Bob"] != 1 || stats.ByAssignee[Unassigned] != 1 {
		t.Errorf("ByAssignee = %v", stats.ByAssignee)
	}
	if stats.ByPriority[PriorityHigh] != 2 || stats.ByPriority[PriorityMedium] != 1 || stats.ByPriority[PriorityLow] != 1 {
		t.Errorf("ByPriority = %v", stats.ByPriority)
	}
}

func TestFilterByAssignee(t *testing.T) {
	items := []Item{
		{Task: "a", Assignee: "Alice"},
		{Task: "b", Assignee: "alice"},
		{Task: "c", Assignee: "Bob"},
	}

	got := FilterByAssignee(items, "ALICE")
	if len(got) != 2 {
		t.Errorf("got %d items, want 2 (case-insensitive match)", len(got))
	}
}

func TestFilterByPriority(t *testing.T) {
	items := []Item{
		{Task: "a", Priority: PriorityHigh},
		{Task: "b", Priority: PriorityLow},
		{Task: "c", Priority: PriorityHigh},
	}

	got := FilterByPriority(items, PriorityHigh)
	if len(got) != 2 {
		t.Errorf("got %d items, want 2", len(got))
	}
}
