package action

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

// eodSuffix marks a date whose obligation lands at end of day.
const eodSuffix = " EOD"

type deadlineKind int

const (
	deadlineWeekday deadlineKind = iota
	deadlinePeriod
	deadlineDate
	deadlineRelative
	deadlineDuration
	deadlineEOD
	deadlineEOW
	deadlineASAP
)

// deadlineRule pairs a phrase pattern with its normalization semantics.
// Rules are evaluated in order; the first match wins.
type deadlineRule struct {
	re   *regexp.Regexp
	kind deadlineKind
}

func newDeadlineRules() []deadlineRule {
	return []deadlineRule{
		{regexp.MustCompile(`(?i)\bby\s+(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`), deadlineWeekday},
		{regexp.MustCompile(`(?i)\bby\s+end\s+of\s+(week|month|quarter|year)\b`), deadlinePeriod},
		{regexp.MustCompile(`(?i)\bby\s+(\w+\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?)`), deadlineDate},
		{regexp.MustCompile(`(?i)\bby\s+(tomorrow|today|tonight)\b`), deadlineRelative},
		{regexp.MustCompile(`(?i)\bby\s+(next\s+\w+)`), deadlineRelative},
		{regexp.MustCompile(`(?i)\bby\s+(this\s+\w+)`), deadlineRelative},
		{regexp.MustCompile(`(?i)\bin\s+(\d+)\s+(day|week|month)s?\b`), deadlineDuration},
		{regexp.MustCompile(`(?i)\bdue\s+(?:on\s+)?(\w+\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?)`), deadlineDate},
		{regexp.MustCompile(`(?i)\bdeadline:?\s+(\w+\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?)`), deadlineDate},
		{regexp.MustCompile(`(?i)\buntil\s+(\w+\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?)`), deadlineDate},
		{regexp.MustCompile(`(?i)\bbefore\s+(\w+\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?)`), deadlineDate},
		{regexp.MustCompile(`(?i)\bEOD\b`), deadlineEOD},
		{regexp.MustCompile(`(?i)\bEOW\b`), deadlineEOW},
		{regexp.MustCompile(`(?i)\bASAP\b`), deadlineASAP},
	}
}

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// extractDeadline tries the deadline rules in order and normalizes the first
// match. Normalization failure of a matched phrase degrades to the raw
// matched text rather than failing the extraction.
func (d *Detector) extractDeadline(text string) string {
	for _, rule := range d.deadlineRules {
		m := rule.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if normalized, ok := d.normalizeDeadline(rule.kind, m); ok {
			return normalized
		}
		// Best-effort fallback: keep the phrase the speaker used.
		return m[0]
	}
	return ""
}

func (d *Detector) normalizeDeadline(kind deadlineKind, m []string) (string, bool) {
	today := d.now()

	switch kind {
	case deadlineWeekday:
		target, ok := weekdayNames[strings.ToLower(m[1])]
		if !ok {
			return "", false
		}
		return nextWeekday(today, target).Format(isoDate), true

	case deadlinePeriod:
		return d.periodEnd(today, strings.ToLower(m[1]))

	case deadlineDate:
		return d.parseDatePhrase(m[1])

	case deadlineRelative:
		return d.resolveRelative(today, m[1])

	case deadlineDuration:
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return "", false
		}
		return durationEnd(today, n, strings.ToLower(m[2])), true

	case deadlineEOD:
		return today.Format(isoDate) + eodSuffix, true

	case deadlineEOW:
		return nextWeekday(today, time.Friday).Format(isoDate), true

	case deadlineASAP:
		return "ASAP", true
	}
	return "", false
}

// nextWeekday returns the next occurrence of target strictly after today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	days := int(target) - int(today.Weekday())
	if days <= 0 {
		days += 7
	}
	return today.AddDate(0, 0, days)
}

// periodEnd resolves "by end of week/month/quarter/year".
func (d *Detector) periodEnd(today time.Time, period string) (string, bool) {
	switch period {
	case "week":
		return nextWeekday(today, time.Friday).Format(isoDate), true
	case "month":
		// Day 0 of the next month normalizes to the last day of this one.
		last := time.Date(today.Year(), today.Month()+1, 0, 0, 0, 0, 0, today.Location())
		return last.Format(isoDate), true
	case "quarter":
		lastMonth := time.Month(((int(today.Month())-1)/3 + 1) * 3)
		last := time.Date(today.Year(), lastMonth+1, 0, 0, 0, 0, 0, today.Location())
		return last.Format(isoDate), true
	case "year":
		return fmt.Sprintf("%d-12-31", today.Year()), true
	}
	return "", false
}

var ordinalSuffix = regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)\b`)

var monthDayLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
}

var monthDayNoYearLayouts = []string{
	"January 2",
	"Jan 2",
}

// parseDatePhrase normalizes a free-form "<month> <day>[, year]" phrase.
// A date that lands in the current year but has already passed is assumed to
// mean next year. Unparseable phrases fall through to the natural-language
// date parser before giving up.
func (d *Detector) parseDatePhrase(phrase string) (string, bool) {
	today := d.now()
	cleaned := strings.TrimSpace(ordinalSuffix.ReplaceAllString(phrase, "$1"))
	cleaned = capitalizeFirst(cleaned)

	for _, layout := range monthDayLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return d.rollForwardIfPast(t, today).Format(isoDate), true
		}
	}
	for _, layout := range monthDayNoYearLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			t = time.Date(today.Year(), t.Month(), t.Day(), 0, 0, 0, 0, today.Location())
			return d.rollForwardIfPast(t, today).Format(isoDate), true
		}
	}

	if res, err := d.dates.Parse(phrase, today); err == nil && res != nil {
		return d.rollForwardIfPast(res.Time, today).Format(isoDate), true
	}
	return "", false
}

// rollForwardIfPast applies the "past date in the current year means next
// year" heuristic.
func (d *Detector) rollForwardIfPast(t, today time.Time) time.Time {
	if t.Year() == today.Year() && t.Before(today) {
		return t.AddDate(1, 0, 0)
	}
	return t
}

// resolveRelative handles today/tomorrow/tonight and "next X"/"this X".
func (d *Detector) resolveRelative(today time.Time, phrase string) (string, bool) {
	switch strings.ToLower(phrase) {
	case "today":
		return today.Format(isoDate), true
	case "tomorrow":
		return today.AddDate(0, 0, 1).Format(isoDate), true
	case "tonight":
		return today.Format(isoDate) + eodSuffix, true
	}
	if res, err := d.dates.Parse(phrase, today); err == nil && res != nil {
		return res.Time.Format(isoDate), true
	}
	return "", false
}

// durationEnd resolves "in N days/weeks/months"; months approximate to
// 30 days each.
func durationEnd(today time.Time, n int, unit string) string {
	switch {
	case strings.HasPrefix(unit, "day"):
		return today.AddDate(0, 0, n).Format(isoDate)
	case strings.HasPrefix(unit, "week"):
		return today.AddDate(0, 0, 7*n).Format(isoDate)
	default:
		return today.AddDate(0, 0, 30*n).Format(isoDate)
	}
}

func capitalizeFirst(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
