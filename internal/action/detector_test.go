package action

import (
	"strings"
	"testing"
	"time"
)

// fixedClock pins deadline resolution to Wednesday, March 11 2026.
func fixedClock() time.Time {
	return time.Date(2026, time.March, 11, 10, 0, 0, 0, time.UTC)
}

func newTestDetector() *Detector {
	cfg := DefaultDetectorConfig()
	cfg.Now = fixedClock
	return NewDetector(cfg)
}

func extractOne(t *testing.T, d *Detector, speaker, text string) Item {
	t.Helper()
	items, err := d.Extract([]Message{{Speaker: speaker, Text: text}})
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1: %+v", len(items), items)
	}
	return items[0]
}

func TestExtractEmptyInput(t *testing.T) {
	d := newTestDetector()

	items, err := d.Extract(nil)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items, want 0", len(items))
	}
}

func TestExtractSkipsBlankMessages(t *testing.T) {
	d := newTestDetector()

	items, err := d.Extract([]Message{
		{Speaker: "Sam", Text: "   "},
		{Speaker: "Alice", Text: "I'll send the notes after the call"},
	})
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
}

func TestExtractIgnoresPlainDiscussion(t *testing.T) {
	d := newTestDetector()

	items, err := d.Extract([]Message{
		{Speaker: "Sam", Text: "Good morning everyone"},
		{Speaker: "Alice", Text: "The weather is nice today"},
	})
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items, want 0: %+v", len(items), items)
	}
}

func TestNegationVetoesCommitment(t *testing.T) {
	d := newTestDetector()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"committed", "We should update the onboarding docs", 1},
		{"hedged", "Maybe we should update the onboarding docs", 0},
		{"refused", "John won't be able to finish the report", 0},
		{"negated_modal", "We should not merge this yet", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := d.Extract([]Message{{Speaker: "Sam", Text: tt.text}})
			if err != nil {
				t.Fatalf("Extract() error: %v", err)
			}
			if len(items) != tt.want {
				t.Errorf("got %d items, want %d", len(items), tt.want)
			}
		})
	}
}

func TestAssigneeResolution(t *testing.T) {
	d := newTestDetector()

	tests := []struct {
		name    string
		speaker string
		text    string
		want    string
	}{
		{"mention_wins", "Sam", "TODO: @jordan will fix the build ASAP", "jordan"},
		{"first_person_contraction", "Alice", "I'll send the notes after the call", "Alice"},
		{"first_person_modal", "Bob", "I will follow up with legal tomorrow", "Bob"},
		{"named_modal", "Sam", "Sarah will prepare the deck", "Sarah"},
		{"stoplisted_name_falls_back_to_speaker", "Sam", "Monday will be a holiday", "Sam"},
		{"assigned_to", "Sam", "This task is assigned to Marcus", "Marcus"},
		{"unassigned", "Sam", "The wiki needs to be updated eventually", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := extractOne(t, d, tt.speaker, tt.text)
			if item.Assignee != tt.want {
				t.Errorf("assignee = %q, want %q", item.Assignee, tt.want)
			}
		})
	}
}

func TestPriorityDetection(t *testing.T) {
	d := newTestDetector()

	tests := []struct {
		name string
		text string
		want Priority
	}{
		{"urgent_cue", "We must fix this urgent login issue", PriorityHigh},
		{"hard_deadline_token", "Alice will deploy the patch today", PriorityHigh},
		{"high_beats_low", "We should fix this ASAP if possible", PriorityHigh},
		{"low_cue", "We should tidy the backlog if possible", PriorityLow},
		{"eventually", "The wiki needs to be updated eventually", PriorityLow},
		{"default_medium", "Bob will review the PR", PriorityMedium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := extractOne(t, d, "Sam", tt.text)
			if item.Priority != tt.want {
				t.Errorf("priority = %v, want %v", item.Priority, tt.want)
			}
		})
	}
}

func TestTaskPrefixStripping(t *testing.T) {
	d := newTestDetector()

	tests := []struct {
		text string
		want string
	}{
		{"Action item: update the runbook", "update the runbook"},
		{"TODO: @jordan will fix the build", "@jordan will fix the build"},
		{"task: Bob will rotate the keys", "Bob will rotate the keys"},
	}
	for _, tt := range tests {
		item := extractOne(t, d, "Sam", tt.text)
		if item.Task != tt.want {
			t.Errorf("task = %q, want %q", item.Task, tt.want)
		}
	}
}

func TestTaskTruncation(t *testing.T) {
	d := newTestDetector()

	long := "Bob will review " + strings.Repeat("the very long proposal ", 20)
	item := extractOne(t, d, "Sam", long)

	if len(item.Task) != maxTaskLength {
		t.Errorf("task length = %d, want %d", len(item.Task), maxTaskLength)
	}
	if !strings.HasSuffix(item.Task, "...") {
		t.Errorf("truncated task should end with ellipsis: %q", item.Task)
	}
}

func TestContextCapture(t *testing.T) {
	cfg := DefaultDetectorConfig()
	cfg.Now = fixedClock
	d := NewDetector(cfg)

	items, err := d.Extract([]Message{
		{Speaker: "Sam", Text: "The login page is broken"},
		{Speaker: "Alice", Text: "I'll fix the login page"},
		{Speaker: "Carol", Text: "Thanks, ping me when done"},
	})
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	want := "Sam: The login page is broken | Carol: Thanks, ping me when done"
	if items[0].Context != want {
		t.Errorf("context = %q, want %q", items[0].Context, want)
	}
}

func TestContextDisabled(t *testing.T) {
	d := NewDetector(DetectorConfig{CaptureContext: false, Now: fixedClock})

	items, err := d.Extract([]Message{
		{Speaker: "Sam", Text: "The login page is broken"},
		{Speaker: "Alice", Text: "I'll fix the login page"},
	})
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if items[0].Context != "" {
		t.Errorf("context = %q, want empty", items[0].Context)
	}
}

func TestItemCarriesSpeakerAndTimestamp(t *testing.T) {
	d := newTestDetector()

	items, err := d.Extract([]Message{
		{Timestamp: "00:04:12", Speaker: "Alice", Text: "I'll draft the proposal"},
	})
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if items[0].Speaker != "Alice" || items[0].Timestamp != "00:04:12" {
		t.Errorf("item = %+v, want speaker Alice at 00:04:12", items[0])
	}
}
