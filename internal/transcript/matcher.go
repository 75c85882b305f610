package transcript

import (
	"regexp"
	"strings"
)

// lineMatcher recognizes one transcript line shape. Matchers are stateless,
// consume exactly one trimmed non-empty line and never fail; parse returns
// nil for shapes that are recognized but carry no message (header-only lines).
type lineMatcher struct {
	name  string
	re    *regexp.Regexp
	parse func(groups []string) *Message
}

// newLineMatchers returns the matcher cascade in its fixed priority order.
// The first matcher whose pattern matches wins; no matcher is re-tried.
func newLineMatchers() []lineMatcher {
	return []lineMatcher{
		{
			// Zoom: "00:00:00 John Doe: Message"
			name: "zoom",
			re:   regexp.MustCompile(`^(\d{2}:\d{2}:\d{2})\s+(.+?):\s+(.+)$`),
			parse: func(g []string) *Message {
				return &Message{Timestamp: g[1], Speaker: cleanSpeaker(g[2]), Text: strings.TrimSpace(g[3])}
			},
		},
		{
			// Bracketed timestamp: "[00:00:00] John Doe: Message"
			name: "bracket",
			re:   regexp.MustCompile(`^\[(\d{2}:\d{2}:\d{2})\]\s+(.+?):\s+(.+)$`),
			parse: func(g []string) *Message {
				return &Message{Timestamp: g[1], Speaker: cleanSpeaker(g[2]), Text: strings.TrimSpace(g[3])}
			},
		},
		{
			// Google Meet: "10:30 AM John Doe: Message" or "10:30 John Doe: Message"
			name: "meet",
			re:   regexp.MustCompile(`(?i)^(\d{1,2}:\d{2}(?:\s*[AP]M)?)\s+(.+?):\s+(.+)$`),
			parse: func(g []string) *Message {
				return &Message{Timestamp: strings.TrimSpace(g[1]), Speaker: cleanSpeaker(g[2]), Text: strings.TrimSpace(g[3])}
			},
		},
		{
			// Plain: "John Doe: Message"
			name: "plain",
			re:   regexp.MustCompile(`^([A-Z][a-zA-Z\s.]+?):\s+(.+)$`),
			parse: func(g []string) *Message {
				return &Message{Speaker: cleanSpeaker(g[1]), Text: strings.TrimSpace(g[2])}
			},
		},
		{
			// Teams header: "John Doe [10:30 AM]". The message itself is on
			// the following line; the header is absorbed without producing a
			// message and without pairing it to what follows.
			name:  "teams_header",
			re:    regexp.MustCompile(`(?i)^(.+?)\s+\[(\d{1,2}:\d{2}(?:\s*[AP]M)?)\]$`),
			parse: func([]string) *Message { return nil },
		},
	}
}

var (
	parenAnnotation   = regexp.MustCompile(`\s*\(.*?\)\s*`)
	bracketAnnotation = regexp.MustCompile(`\s*\[.*?\]\s*`)
)

// cleanSpeaker normalizes a captured speaker name: collapses whitespace and
// strips "(you)" / "[host]" style annotations. An empty result becomes the
// Unknown sentinel.
func cleanSpeaker(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	name = parenAnnotation.ReplaceAllString(name, "")
	name = bracketAnnotation.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	if name == "" {
		return SpeakerUnknown
	}
	return name
}
