// Package transcript normalizes raw meeting-transcript text into an ordered
// sequence of speaker-attributed messages.
//
// Input arrives in several loosely-specified line formats (Zoom, Google Meet,
// bracketed timestamps, bare "Name: text"). A fixed-priority matcher cascade
// recognizes each line; unrecognized lines are treated as continuations of
// the previous utterance, and metadata noise (separators, "Meeting ID:",
// recording markers) is skipped.
//
// The package is stateless across calls: a single Normalizer may be shared
// between goroutines, and batch processing of many files is safe to
// parallelize by the caller.
package transcript
