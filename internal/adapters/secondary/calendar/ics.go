package calendar

import (
	"strings"
	"time"

	"github.com/lorrc/agent-toolbar-backend/internal/core/domain"
)

// ParseICS extracts VEVENT blocks from an ICS feed. The parser is
// deliberately tolerant: a malformed event is dropped, the rest of the
// feed still parses. Feeds in the wild routinely mix line endings,
// carry unknown properties, and truncate mid-event.
func ParseICS(text string, loc *time.Location) []domain.ShiftEvent {
	var events []domain.ShiftEvent
	var cur *domain.ShiftEvent

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(line, "BEGIN:VEVENT"):
			cur = &domain.ShiftEvent{}
		case strings.HasPrefix(line, "END:VEVENT"):
			if cur != nil && cur.Title != "" && !cur.Start.IsZero() && !cur.End.IsZero() && cur.Start.Before(cur.End) {
				events = append(events, *cur)
			}
			cur = nil
		case cur == nil:
			// Outside any event; calendar-level properties are ignored.
		case strings.HasPrefix(line, "SUMMARY"):
			cur.Title = propertyValue(line)
		case strings.HasPrefix(line, "DTSTART"):
			if t, ok := parseICSTime(propertyValue(line), loc); ok {
				cur.Start = t
			}
		case strings.HasPrefix(line, "DTEND"):
			if t, ok := parseICSTime(propertyValue(line), loc); ok {
				cur.End = t
			}
		}
	}
	return events
}

// propertyValue returns everything after the first colon. Parameters
// like DTSTART;TZID=... sit before it and are not interpreted; the
// timestamp itself decides UTC versus floating.
func propertyValue(line string) string {
	if i := strings.IndexByte(line, ':'); i >= 0 {
		return strings.TrimSpace(line[i+1:])
	}
	return ""
}

const icsTimeLayout = "20060102T1504"

// parseICSTime reads a DATE-TIME value. A trailing Z marks UTC and is
// converted into loc; a floating time is taken to already be in loc.
// Seconds are ignored, matching minute-resolution shift feeds.
func parseICSTime(v string, loc *time.Location) (time.Time, bool) {
	utc := strings.HasSuffix(v, "Z")
	v = strings.TrimSuffix(v, "Z")
	if len(v) < len(icsTimeLayout) {
		return time.Time{}, false
	}
	v = v[:len(icsTimeLayout)]

	if utc {
		t, err := time.Parse(icsTimeLayout, v)
		if err != nil {
			return time.Time{}, false
		}
		return t.In(loc), true
	}
	t, err := time.ParseInLocation(icsTimeLayout, v, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
