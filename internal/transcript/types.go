package transcript

// SpeakerUnknown is the sentinel speaker for lines whose author could not be
// determined.
const SpeakerUnknown = "Unknown"

// Message is one speaker-attributed utterance from a transcript.
// Text may be the join of an initial line plus continuation lines.
type Message struct {
	// Timestamp is the free-form time string from the source line, empty
	// when the matched format carries none.
	Timestamp string `json:"timestamp"`
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
}

// FormatStats summarizes the shape of a normalized transcript.
type FormatStats struct {
	TotalMessages     int `json:"total_messages"`
	WithTimestamps    int `json:"with_timestamps"`
	WithoutTimestamps int `json:"without_timestamps"`
	UniqueSpeakers    int `json:"unique_speakers"`
	UnknownSpeakers   int `json:"unknown_speakers"`
}
