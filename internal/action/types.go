package action

// Priority classifies how urgent an action item is.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Unassigned is the sentinel bucket for items with no assignee.
const Unassigned = "Unassigned"

// Message is the utterance shape the detector consumes. It mirrors
// transcript.Message so the two packages stay decoupled; the detector
// depends only on the normalizer's output shape, not its internals.
type Message struct {
	Timestamp string `json:"timestamp"`
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
}

// Item is one detected obligation extracted from a single utterance.
// Items are created in input order and never mutated after creation.
type Item struct {
	// Task is the cleaned description, truncated to 200 characters with an
	// ellipsis when longer.
	Task string `json:"task"`
	// Assignee is the normalized name, empty when none was found.
	Assignee string `json:"assignee,omitempty"`
	// Deadline is an ISO date (YYYY-MM-DD), a date with an " EOD" suffix,
	// the symbolic token "ASAP", or the raw matched phrase when
	// normalization failed. Empty when no deadline was mentioned.
	Deadline string `json:"deadline,omitempty"`
	Priority Priority `json:"priority"`
	// Context is the surrounding-message excerpt (one message each side),
	// empty when unavailable or not requested.
	Context   string `json:"context,omitempty"`
	Speaker   string `json:"speaker"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Stats aggregates counts over an extracted item list. It is recomputed on
// demand and holds no identity of its own.
type Stats struct {
	Total           int              `json:"total"`
	Assigned        int              `json:"assigned"`
	Unassigned      int              `json:"unassigned"`
	WithDeadline    int              `json:"with_deadline"`
	WithoutDeadline int              `json:"without_deadline"`
	UniqueAssignees int              `json:"unique_assignees"`
	ByAssignee      map[string]int   `json:"by_assignee"`
	ByPriority      map[Priority]int `json:"by_priority"`
}
