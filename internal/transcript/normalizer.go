package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"

	"github.com/fyrsmithlabs/minuted/internal/fault"
)

// metadataExprs match header/footer noise that carries no dialogue.
var metadataExprs = []string{
	`^={3,}`,
	`^-{3,}`,
	`^Meeting\s+ID:`,
	`^Passcode:`,
	`^Recording\s+started`,
	`^Recording\s+ended`,
	`^Transcript\s+(?:started|ended)`,
	`^\d+\s+participants?`,
	`^Zoom\s+Meeting`,
	`^Google\s+Meet`,
}

// Normalizer turns raw transcript text into an ordered message sequence.
// It holds only compiled patterns, so a single instance is safe for
// concurrent use; each call allocates fresh scanning state.
type Normalizer struct {
	matchers []lineMatcher
	metadata []*regexp.Regexp
	logger   *zap.Logger
}

// NewNormalizer creates a normalizer. A nil logger disables logging.
func NewNormalizer(logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	metadata := make([]*regexp.Regexp, 0, len(metadataExprs))
	for _, expr := range metadataExprs {
		metadata = append(metadata, regexp.MustCompile(`(?i)`+expr))
	}
	return &Normalizer{
		matchers: newLineMatchers(),
		metadata: metadata,
		logger:   logger,
	}
}

// Normalize parses transcript content into speaker-attributed messages.
//
// Scanning is a two-state machine: with no open message, a matched line opens
// one and an unmatched line opens an Unknown-speaker message; with an open
// message, a matched line finalizes it and opens the next while an unmatched
// line is appended as a continuation. The open message is flushed at
// end of input.
func (n *Normalizer) Normalize(content string) ([]Message, error) {
	if strings.TrimSpace(content) == "" {
		n.logger.Error("empty transcript content")
		return nil, fault.EmptyTranscript()
	}

	lines := strings.Split(strings.TrimSpace(content), "\n")
	n.logger.Debug("normalizing transcript", zap.Int("lines", len(lines)))

	var (
		messages   []Message
		open       *Message
		nonBlank   int
		recognized int
	)

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		nonBlank++

		if n.isMetadata(line) {
			n.logger.Debug("skipping metadata line", zap.String("line", truncate(line, 50)))
			continue
		}

		parsed, matched := n.matchLine(line)
		switch {
		case matched && parsed != nil:
			if open != nil {
				messages = append(messages, *open)
			}
			m := *parsed
			open = &m
			recognized++
		case matched:
			// Header-only shape (e.g. "Name [10:30 AM]"): absorbed,
			// no message produced, open buffer untouched.
			recognized++
		case open != nil:
			open.Text += " " + line
		default:
			open = &Message{Speaker: SpeakerUnknown, Text: line}
		}
	}

	if open != nil {
		messages = append(messages, *open)
	}

	if len(messages) == 0 || recognized == 0 {
		n.logger.Error("no valid messages found", zap.Int("non_blank_lines", nonBlank))
		return nil, fault.MalformedTranscript(fmt.Sprintf(
			"no speaker/message format recognized in %d lines", nonBlank))
	}

	cleaned := cleanMessages(messages)
	n.logger.Info("normalized transcript",
		zap.Int("messages", len(cleaned)),
		zap.Int("non_blank_lines", nonBlank))
	return cleaned, nil
}

// NormalizeFile reads and normalizes a transcript file. Accepted extensions
// are .txt or none. Content that is not valid UTF-8 gets one Latin-1 retry.
func (n *Normalizer) NormalizeFile(path string) ([]Message, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fault.InvalidArgument("path", "cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			n.logger.Error("transcript file not found", zap.String("path", path))
			return nil, fault.FileNotFound(path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fault.NotAFile(path)
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != ".txt" && ext != "" {
		n.logger.Warn("unsupported file extension", zap.String("ext", ext))
		return nil, fault.UnsupportedFileType(ext)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	content, err := decodeContent(raw)
	if err != nil {
		n.logger.Error("undecodable transcript", zap.String("path", path), zap.Error(err))
		return nil, fault.EncodingFailure("UTF-8, ISO 8859-1")
	}

	n.logger.Info("read transcript file",
		zap.String("path", path),
		zap.Int("bytes", len(raw)))
	return n.Normalize(content)
}

// Speakers returns the sorted unique speaker names, excluding Unknown.
func Speakers(messages []Message) []string {
	seen := make(map[string]bool)
	for _, m := range messages {
		if m.Speaker != "" && m.Speaker != SpeakerUnknown {
			seen[m.Speaker] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stats computes format statistics over a normalized message sequence.
func Stats(messages []Message) FormatStats {
	stats := FormatStats{
		TotalMessages:  len(messages),
		UniqueSpeakers: len(Speakers(messages)),
	}
	for _, m := range messages {
		if m.Timestamp != "" {
			stats.WithTimestamps++
		} else {
			stats.WithoutTimestamps++
		}
		if m.Speaker == SpeakerUnknown {
			stats.UnknownSpeakers++
		}
	}
	return stats
}

// matchLine runs the matcher cascade. The bool reports whether any matcher
// recognized the line; a recognized line may still carry no message.
func (n *Normalizer) matchLine(line string) (*Message, bool) {
	for _, m := range n.matchers {
		if groups := m.re.FindStringSubmatch(line); groups != nil {
			return m.parse(groups), true
		}
	}
	return nil, false
}

func (n *Normalizer) isMetadata(line string) bool {
	for _, re := range n.metadata {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// cleanMessages drops near-empty messages left over from noise lines.
func cleanMessages(messages []Message) []Message {
	cleaned := make([]Message, 0, len(messages))
	for _, m := range messages {
		if len(strings.TrimSpace(m.Text)) < 2 {
			continue
		}
		cleaned = append(cleaned, m)
	}
	return cleaned
}

// decodeContent decodes raw bytes as UTF-8, retrying once as Latin-1.
func decodeContent(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
