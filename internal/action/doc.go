// Package action detects commitments ("action items") in normalized meeting
// messages using cascading pattern tables.
//
// For each message the detector runs a short-circuiting cascade: action-signal
// test, negation veto, task extraction, assignee resolution, deadline
// extraction and normalization, priority inference, and optional
// context-window capture. All rule lists are ordered data evaluated
// first-match-wins, so the cascade stays auditable and testable.
//
// Deadlines normalize to an ISO calendar date, a date with an " EOD" suffix,
// or the symbolic token "ASAP"; when a matched phrase cannot be normalized
// the raw phrase is kept rather than failing the batch.
package action
