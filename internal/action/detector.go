package action

import (
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"go.uber.org/zap"
)

const (
	maxTaskLength    = 200
	contextCharLimit = 100
)

// actionCueExprs are lexical commitment cues, tested against lowercased text
// in order of decreasing strength.
var actionCueExprs = []string{
	`\baction\s+item\b`,
	`\btodo\b`,
	`\bto-do\b`,
	`\btask\b`,
	`\bfollow\s*up\b`,
	`\bfollow-up\b`,
	`\bneed(?:s)?\s+to\b`,
	`\bhas\s+to\b`,
	`\bhave\s+to\b`,
	`\bmust\b`,
	`\bshould\b`,
	`\bwill\b`,
	`\bgonna\b`,
	`\bgoing\s+to\b`,
	`\bresponsible\s+for\b`,
	`\btake\s+care\s+of\b`,
	`\bwork\s+on\b`,
	`\bhandle\b`,
}

// assignmentShapeExprs recognize "someone commits to something" phrasing even
// when no bare cue word fires.
var assignmentShapeExprs = []string{
	`(?i)@(\w+)\s+(?:will|should|needs?\s+to|must)`,
	`(?i)(\w+)\s+will\s+`,
	`(?i)(\w+)\s+should\s+`,
	`(?i)(\w+)\s+needs?\s+to\s+`,
	`(?i)(\w+)\s+must\s+`,
	`(?i)(\w+)\s+is\s+(?:going\s+to|gonna)\s+`,
	`(?i)assign(?:ed)?\s+to\s+(\w+)`,
	`(?i)(\w+)\s+to\s+(?:handle|work\s+on|take\s+care\s+of)`,
	`(?i)I\s+will\s+`,
	`(?i)I'll\s+`,
}

// negationCueExprs veto a message even when a commitment cue matched.
// Hedging words count as negation: "maybe we should" is not a commitment.
var negationCueExprs = []string{
	`\bwon't\b`,
	`\bwill\s+not\b`,
	`\bshould\s+not\b`,
	`\bshouldn't\b`,
	`\bdon't\s+need\b`,
	`\bno\s+need\s+to\b`,
	`\bmaybe\b`,
	`\bmight\b`,
	`\bcould\b`,
}

var highPriorityExprs = []string{
	`\burgent\b`,
	`\basap\b`,
	`\bcritical\b`,
	`\bimmediate(?:ly)?\b`,
	`\bhigh\s+priority\b`,
	`\btop\s+priority\b`,
	`\bemergency\b`,
	`\bblocking\b`,
}

var lowPriorityExprs = []string{
	`\bnice\s+to\s+have\b`,
	`\bwhen\s+(?:you\s+)?(?:have\s+)?time\b`,
	`\bif\s+possible\b`,
	`\boptional\b`,
	`\blow\s+priority\b`,
	`\beventually\b`,
}

// nameStoplist filters false positives from the capitalized-name-then-modal
// assignee heuristic (sentence-initial common words and weekday names).
var nameStoplist = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
	"sure": true, "got": true, "yes": true, "okay": true, "right": true,
	"also": true, "one": true, "will": true, "sounds": true, "that": true,
	"good": true,
}

// DetectorConfig configures a Detector.
type DetectorConfig struct {
	// CaptureContext controls whether each item carries a surrounding-message
	// excerpt.
	CaptureContext bool
	// ContextWindow is the number of adjacent messages captured on each side.
	ContextWindow int
	// Now supplies the reference "today" for deadline resolution. Defaults
	// to time.Now; tests pin it.
	Now func() time.Time
	// Logger receives per-message diagnostics. Nil disables logging.
	Logger *zap.Logger
}

// DefaultDetectorConfig returns the production configuration.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		CaptureContext: true,
		ContextWindow:  1,
	}
}

// Detector decides per-message whether a commitment exists and extracts its
// task, assignee, deadline and priority. All pattern tables are compiled once
// in the constructor; a Detector is safe for concurrent use.
type Detector struct {
	actionCues   []*regexp.Regexp
	assignShapes []*regexp.Regexp
	negationCues []*regexp.Regexp
	highCues     []*regexp.Regexp
	lowCues      []*regexp.Regexp

	taskPrefix   *regexp.Regexp
	mention      *regexp.Regexp
	firstPerson  *regexp.Regexp
	nameModal    *regexp.Regexp
	assignedTo   *regexp.Regexp
	bareCommit   *regexp.Regexp
	hardDeadline *regexp.Regexp

	deadlineRules []deadlineRule
	dates         *when.Parser

	captureContext bool
	contextWindow  int
	now            func() time.Time
	logger         *zap.Logger
}

// NewDetector creates a detector from cfg.
func NewDetector(cfg DetectorConfig) *Detector {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.ContextWindow <= 0 {
		cfg.ContextWindow = 1
	}

	dates := when.New(nil)
	dates.Add(en.All...)
	dates.Add(common.All...)

	return &Detector{
		actionCues:   compileAll(actionCueExprs),
		assignShapes: compileAll(assignmentShapeExprs),
		negationCues: compileAll(negationCueExprs),
		highCues:     compileAll(highPriorityExprs),
		lowCues:      compileAll(lowPriorityExprs),

		taskPrefix:  regexp.MustCompile(`(?i)^(?:action\s+item:?|todo:?|task:?)\s*`),
		mention:     regexp.MustCompile(`@(\w+)`),
		firstPerson: regexp.MustCompile(`(?i)\bI(?:\s+(?:will|should|need\s+to|must|can)|'ll)\b`),
		nameModal:   regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\s+(?:will|should|needs?\s+to|must|can)\b`),
		assignedTo:  regexp.MustCompile(`assign(?:ed)?\s+to\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`),
		bareCommit:  regexp.MustCompile(`(?i)\b(?:will|must)\b`),

		hardDeadline: regexp.MustCompile(`(?i)\b(?:ASAP|today|tonight|EOD)\b`),

		deadlineRules: newDeadlineRules(),
		dates:         dates,

		captureContext: cfg.CaptureContext,
		contextWindow:  cfg.ContextWindow,
		now:            cfg.Now,
		logger:         cfg.Logger,
	}
}

// Extract runs the detection cascade over messages and returns items in input
// order. Messages with no usable text are skipped with a warning; an empty
// input yields an empty result, not an error. The error return is reserved
// for batch-level failures.
func (d *Detector) Extract(messages []Message) ([]Item, error) {
	items := make([]Item, 0)
	if len(messages) == 0 {
		d.logger.Warn("no messages to scan for action items")
		return items, nil
	}

	d.logger.Info("scanning messages for action items", zap.Int("messages", len(messages)))

	for i, msg := range messages {
		if strings.TrimSpace(msg.Text) == "" {
			d.logger.Warn("message has no text, skipping", zap.Int("index", i))
			continue
		}

		if !d.isActionSignal(msg.Text) {
			continue
		}
		if d.isNegated(msg.Text) {
			d.logger.Debug("negation veto", zap.String("text", head(msg.Text, 50)))
			continue
		}

		item := Item{
			Task:      d.extractTask(msg.Text),
			Assignee:  d.extractAssignee(msg.Text, msg.Speaker),
			Deadline:  d.extractDeadline(msg.Text),
			Priority:  d.detectPriority(msg.Text),
			Speaker:   msg.Speaker,
			Timestamp: msg.Timestamp,
		}
		if d.captureContext {
			item.Context = d.buildContext(messages, i)
		}
		items = append(items, item)
		d.logger.Debug("extracted action item",
			zap.String("task", head(item.Task, 50)),
			zap.String("assignee", item.Assignee))
	}

	d.logger.Info("extraction complete", zap.Int("items", len(items)))
	return items, nil
}

// isActionSignal reports whether text carries any commitment cue or
// assignment shape.
func (d *Detector) isActionSignal(text string) bool {
	lower := strings.ToLower(text)
	for _, re := range d.actionCues {
		if re.MatchString(lower) {
			return true
		}
	}
	for _, re := range d.assignShapes {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func (d *Detector) isNegated(text string) bool {
	lower := strings.ToLower(text)
	for _, re := range d.negationCues {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// extractTask strips explicit marker prefixes and bounds the length.
func (d *Detector) extractTask(text string) string {
	task := strings.TrimSpace(d.taskPrefix.ReplaceAllString(text, ""))
	if len(task) > maxTaskLength {
		task = task[:maxTaskLength-3] + "..."
	}
	return task
}

// extractAssignee resolves the assignee with a fixed precedence: @mention,
// first-person phrasing (speaker), capitalized name before a modal,
// explicit "assigned to", then a bare will/must falling back to the speaker.
func (d *Detector) extractAssignee(text, speaker string) string {
	if m := d.mention.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if d.firstPerson.MatchString(text) {
		return speaker
	}
	if m := d.nameModal.FindStringSubmatch(text); m != nil {
		if !nameStoplist[strings.ToLower(m[1])] {
			return m[1]
		}
	}
	if m := d.assignedTo.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if d.bareCommit.MatchString(text) {
		return speaker
	}
	return ""
}

// detectPriority infers priority from urgency cues. High wins over low; a
// hard deadline token (ASAP/today/tonight/EOD) also forces high.
func (d *Detector) detectPriority(text string) Priority {
	lower := strings.ToLower(text)
	for _, re := range d.highCues {
		if re.MatchString(lower) {
			return PriorityHigh
		}
	}
	if d.hardDeadline.MatchString(text) {
		return PriorityHigh
	}
	for _, re := range d.lowCues {
		if re.MatchString(lower) {
			return PriorityLow
		}
	}
	return PriorityMedium
}

// buildContext joins the adjacent messages as "speaker: text" excerpts.
func (d *Detector) buildContext(messages []Message, idx int) string {
	start := idx - d.contextWindow
	if start < 0 {
		start = 0
	}
	end := idx + d.contextWindow + 1
	if end > len(messages) {
		end = len(messages)
	}

	var parts []string
	for i := start; i < end; i++ {
		if i == idx {
			continue
		}
		speaker := messages[i].Speaker
		if speaker == "" {
			speaker = SpeakerUnknown
		}
		parts = append(parts, speaker+": "+head(messages[i].Text, contextCharLimit))
	}
	return strings.Join(parts, " | ")
}

// SpeakerUnknown mirrors the normalizer's sentinel for unattributed lines.
const SpeakerUnknown = "Unknown"

func compileAll(exprs []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		res = append(res, regexp.MustCompile(expr))
	}
	return res
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
