package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"BEGIN:VEVENT\r\n" +
	"SUMMARY:Chat Shift\r\n" +
	"DTSTART:20260305T090000Z\r\n" +
	"DTEND:20260305T120000Z\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"SUMMARY:Ticket Shift\r\n" +
	"DTSTART;TZID=Europe/Berlin:20260305T140000\r\n" +
	"DTEND;TZID=Europe/Berlin:20260305T170000\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestParseICS(t *testing.T) {
	t.Run("parses utc and floating times", func(t *testing.T) {
		berlin, err := time.LoadLocation("Europe/Berlin")
		require.NoError(t, err)

		events := ParseICS(sampleFeed, berlin)
		require.Len(t, events, 2)

		assert.Equal(t, "Chat Shift", events[0].Title)
		// 09:00Z is 10:00 in Berlin (CET).
		assert.Equal(t, 10, events[0].Start.Hour())
		assert.Equal(t, berlin.String(), events[0].Start.Location().String())

		assert.Equal(t, "Ticket Shift", events[1].Title)
		assert.Equal(t, 14, events[1].Start.Hour())
	})

	t.Run("drops incomplete events and keeps the rest", func(t *testing.T) {
		feed := "BEGIN:VCALENDAR\n" +
			"BEGIN:VEVENT\n" +
			"SUMMARY:No times here\n" +
			"END:VEVENT\n" +
			"BEGIN:VEVENT\n" +
			"SUMMARY:Chat Shift\n" +
			"DTSTART:20260305T090000Z\n" +
			"DTEND:20260305T120000Z\n" +
			"END:VEVENT\n" +
			"END:VCALENDAR\n"

		events := ParseICS(feed, time.UTC)
		require.Len(t, events, 1)
		assert.Equal(t, "Chat Shift", events[0].Title)
	})

	t.Run("inverted events are dropped", func(t *testing.T) {
		feed := "BEGIN:VEVENT\n" +
			"SUMMARY:Chat Shift\n" +
			"DTSTART:20260305T120000Z\n" +
			"DTEND:20260305T090000Z\n" +
			"END:VEVENT\n" +
			"BEGIN:VEVENT\n" +
			"SUMMARY:Zero Length\n" +
			"DTSTART:20260305T090000Z\n" +
			"DTEND:20260305T090000Z\n" +
			"END:VEVENT\n"
		assert.Empty(t, ParseICS(feed, time.UTC))
	})

	t.Run("malformed timestamps drop their event", func(t *testing.T) {
		feed := "BEGIN:VEVENT\n" +
			"SUMMARY:Broken\n" +
			"DTSTART:not-a-time\n" +
			"DTEND:20260305T120000Z\n" +
			"END:VEVENT\n"
		assert.Empty(t, ParseICS(feed, time.UTC))
	})

	t.Run("truncated feed does not panic", func(t *testing.T) {
		feed := "BEGIN:VCALENDAR\nBEGIN:VEVENT\nSUMMARY:Chat Shift\nDTSTART:20260305T0900"
		assert.NotPanics(t, func() { ParseICS(feed, time.UTC) })
	})

	t.Run("garbage input yields no events", func(t *testing.T) {
		assert.Empty(t, ParseICS("", time.UTC))
		assert.Empty(t, ParseICS("complete nonsense\nwith lines\n", time.UTC))
		assert.Empty(t, ParseICS(strings.Repeat("::::\n", 50), time.UTC))
	})

	t.Run("mixed line endings", func(t *testing.T) {
		feed := "BEGIN:VEVENT\r\nSUMMARY:Chat Shift\nDTSTART:20260305T090000Z\r\nDTEND:20260305T120000Z\nEND:VEVENT\n"
		assert.Len(t, ParseICS(feed, time.UTC), 1)
	})

	t.Run("seconds are ignored", func(t *testing.T) {
		feed := "BEGIN:VEVENT\nSUMMARY:Chat Shift\nDTSTART:20260305T090059Z\nDTEND:20260305T120000Z\nEND:VEVENT\n"
		events := ParseICS(feed, time.UTC)
		require.Len(t, events, 1)
		assert.Equal(t, 0, events[0].Start.Second())
		assert.Equal(t, 0, events[0].Start.Minute())
	})
}
