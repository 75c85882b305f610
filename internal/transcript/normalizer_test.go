package transcript

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fyrsmithlabs/minuted/internal/fault"
)

func TestNormalizeFormats(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		name    string
		content string
		want    []Message
	}{
		{
			name:    "zoom",
			content: "00:00:15 Sam Carter: Let's get started",
			want: []Message{
				{Timestamp: "00:00:15", Speaker: "Sam Carter", Text: "Let's get started"},
			},
		},
		{
			name:    "bracketed",
			content: "[00:01:02] Bob: Reviewing the deploy checklist",
			want: []Message{
				{Timestamp: "00:01:02", Speaker: "Bob", Text: "Reviewing the deploy checklist"},
			},
		},
		{
			name:    "meet_with_meridiem",
			content: "10:30 AM Carol: Hello everyone",
			want: []Message{
				{Timestamp: "10:30 AM", Speaker: "Carol", Text: "Hello everyone"},
			},
		},
		{
			name:    "meet_without_meridiem",
			content: "9:05 Carol: Quick update on staging",
			want: []Message{
				{Timestamp: "9:05", Speaker: "Carol", Text: "Quick update on staging"},
			},
		},
		{
			name:    "plain",
			content: "Alice Wong: The migration finished last night",
			want: []Message{
				{Speaker: "Alice Wong", Text: "The migration finished last night"},
			},
		},
		{
			name:    "mixed_formats",
			content: "00:00:15 Sam: Let's get started\nAlice: Sounds good to me",
			want: []Message{
				{Timestamp: "00:00:15", Speaker: "Sam", Text: "Let's get started"},
				{Speaker: "Alice", Text: "Sounds good to me"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.Normalize(tt.content)
			if err != nil {
				t.Fatalf("Normalize() error: %v", err)
			}
			assertMessages(t, got, tt.want)
		})
	}
}

func TestNormalizeContinuationLines(t *testing.T) {
	n := NewNormalizer(nil)

	got, err := n.Normalize("00:00:15 Sam: Let's start\nthe meeting now")
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	want := []Message{
		{Timestamp: "00:00:15", Speaker: "Sam", Text: "Let's start the meeting now"},
	}
	assertMessages(t, got, want)
}

func TestNormalizeTeamsHeaderAbsorbed(t *testing.T) {
	n := NewNormalizer(nil)

	got, err := n.Normalize("Carol Jones [10:30 AM]\nThe release branch is cut")
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	want := []Message{
		{Speaker: SpeakerUnknown, Text: "The release branch is cut"},
	}
	assertMessages(t, got, want)
}

func TestNormalizeSkipsMetadata(t *testing.T) {
	n := NewNormalizer(nil)

	content := `=== Weekly Sync ===
Meeting ID: 824 113 9921
Passcode: 4242
Recording started
00:00:15 Sam: Agenda is short today
2 participants`
	got, err := n.Normalize(content)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	want := []Message{
		{Timestamp: "00:00:15", Speaker: "Sam", Text: "Agenda is short today"},
	}
	assertMessages(t, got, want)
}

func TestNormalizeCleansSpeakerAnnotations(t *testing.T) {
	n := NewNormalizer(nil)

	got, err := n.Normalize("00:00:01 John   Smith (he/him): Hi everyone")
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if got[0].Speaker != "John Smith" {
		t.Errorf("speaker = %q, want %q", got[0].Speaker, "John Smith")
	}
}

func TestNormalizeDropsNearEmptyMessages(t *testing.T) {
	n := NewNormalizer(nil)

	got, err := n.Normalize("Bob: k\nAlice: I pushed the fix")
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	want := []Message{
		{Speaker: "Alice", Text: "I pushed the fix"},
	}
	assertMessages(t, got, want)
}

func TestNormalizeErrors(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		name    string
		content string
		kind    fault.Kind
	}{
		{"empty", "", fault.KindEmptyInput},
		{"whitespace_only", "   \n\t\n  ", fault.KindEmptyInput},
		{"prose_without_structure", "just some meeting notes\nwith no speakers at all", fault.KindMalformedInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize(tt.content)
			if !fault.IsKind(err, tt.kind) {
				t.Errorf("Normalize() error = %v, want kind %v", err, tt.kind)
			}
		})
	}
}

func TestNormalizeIsStateless(t *testing.T) {
	n := NewNormalizer(nil)
	content := "00:00:15 Sam: Let's get started\nAlice: Sounds good"

	first, err := n.Normalize(content)
	if err != nil {
		t.Fatalf("first Normalize() error: %v", err)
	}
	second, err := n.Normalize(content)
	if err != nil {
		t.Fatalf("second Normalize() error: %v", err)
	}
	assertMessages(t, second, first)
}

func TestNormalizeFile(t *testing.T) {
	n := NewNormalizer(nil)
	dir := t.TempDir()

	path := filepath.Join(dir, "standup.txt")
	if err := os.WriteFile(path, []byte("Alice: I'll review the PR today"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := n.NormalizeFile(path)
	if err != nil {
		t.Fatalf("NormalizeFile() error: %v", err)
	}
	if len(got) != 1 || got[0].Speaker != "Alice" {
		t.Errorf("unexpected messages: %+v", got)
	}
}

func TestNormalizeFileLatin1Fallback(t *testing.T) {
	n := NewNormalizer(nil)
	dir := t.TempDir()

	path := filepath.Join(dir, "notes.txt")
	content := append([]byte("Alice: Caf"), 0xE9)
	content = append(content, []byte(" budget review")...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := n.NormalizeFile(path)
	if err != nil {
		t.Fatalf("NormalizeFile() error: %v", err)
	}
	if got[0].Text != "Café budget review" {
		t.Errorf("text = %q, want %q", got[0].Text, "Café budget review")
	}
}

func TestNormalizeFileErrors(t *testing.T) {
	n := NewNormalizer(nil)
	dir := t.TempDir()

	pdf := filepath.Join(dir, "slides.pdf")
	if err := os.WriteFile(pdf, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		kind fault.Kind
	}{
		{"empty_path", "  ", fault.KindInvalidArgument},
		{"missing", filepath.Join(dir, "nope.txt"), fault.KindFileNotFound},
		{"directory", dir, fault.KindNotAFile},
		{"wrong_extension", pdf, fault.KindUnsupportedFileType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.NormalizeFile(tt.path)
			if !fault.IsKind(err, tt.kind) {
				t.Errorf("NormalizeFile(%q) error = %v, want kind %v", tt.path, err, tt.kind)
			}
		})
	}
}

func TestSpeakersAndStats(t *testing.T) {
	messages := []Message{
		{Timestamp: "00:00:01", Speaker: "Sam", Text: "Morning"},
		{Speaker: "Alice", Text: "Morning"},
		{Speaker: SpeakerUnknown, Text: "Who joined?"},
		{Timestamp: "00:00:09", Speaker: "Sam", Text: "Let's begin"},
	}

	speakers := Speakers(messages)
	if len(speakers) != 2 || speakers[0] != "Alice" || speakers[1] != "Sam" {
		t.Errorf("Speakers() = %v, want [Alice Sam]", speakers)
	}

	stats := Stats(messages)
	if stats.TotalMessages != 4 {
		t.Errorf("TotalMessages = %d, want 4", stats.TotalMessages)
	}
	if stats.WithTimestamps != 2 || stats.WithoutTimestamps != 2 {
		t.Errorf("timestamp split = %d/%d, want 2/2", stats.WithTimestamps, stats.WithoutTimestamps)
	}
	if stats.UniqueSpeakers != 2 {
		t.Errorf("UniqueSpeakers = %d, want 2", stats.UniqueSpeakers)
	}
	if stats.UnknownSpeakers != 1 {
		t.Errorf("UnknownSpeakers = %d, want 1", stats.UnknownSpeakers)
	}
}

func assertMessages(t *testing.T, got, want []Message) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d messages, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
