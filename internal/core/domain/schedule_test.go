package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

func TestInferQueue(t *testing.T) {
	tests := []struct {
		title string
		want  QueueMode
	}{
		{"Chat Shift", QueueChats},
		{"LIVE CHATS", QueueChats},
		{"Tickets AM", QueueTickets},
		{"ticket triage", QueueTickets},
		{"Team standup", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, InferQueue(tt.title))
		})
	}
}

func TestResolve(t *testing.T) {
	events := []ShiftEvent{
		{Title: "Chat Shift", Start: mustParse(t, "2026-03-05T09:00:00Z"), End: mustParse(t, "2026-03-05T12:00:00Z")},
		{Title: "Ticket Shift", Start: mustParse(t, "2026-03-05T13:00:00Z"), End: mustParse(t, "2026-03-05T17:00:00Z")},
		{Title: "Team standup", Start: mustParse(t, "2026-03-05T10:00:00Z"), End: mustParse(t, "2026-03-05T10:30:00Z")},
	}

	t.Run("inside a shift", func(t *testing.T) {
		state := Resolve(events, mustParse(t, "2026-03-05T10:00:00Z"))
		require.NotNil(t, state.Active)
		assert.Equal(t, "Chat Shift", state.Active.Title)
		require.NotNil(t, state.Next)
		assert.Equal(t, "Ticket Shift", state.Next.Title)
	})

	t.Run("between shifts", func(t *testing.T) {
		state := Resolve(events, mustParse(t, "2026-03-05T12:30:00Z"))
		assert.Nil(t, state.Active)
		require.NotNil(t, state.Next)
		assert.Equal(t, "Ticket Shift", state.Next.Title)
	})

	t.Run("after the last shift", func(t *testing.T) {
		state := Resolve(events, mustParse(t, "2026-03-05T18:00:00Z"))
		assert.Nil(t, state.Active)
		assert.Nil(t, state.Next)
	})

	t.Run("boundary instants count as active", func(t *testing.T) {
		start := Resolve(events, mustParse(t, "2026-03-05T09:00:00Z"))
		require.NotNil(t, start.Active)

		end := Resolve(events, mustParse(t, "2026-03-05T12:00:00Z"))
		require.NotNil(t, end.Active)
		assert.Equal(t, "Chat Shift", end.Active.Title)
	})

	t.Run("meetings never become shifts", func(t *testing.T) {
		meetings := []ShiftEvent{
			{Title: "Team standup", Start: mustParse(t, "2026-03-05T10:00:00Z"), End: mustParse(t, "2026-03-05T10:30:00Z")},
		}
		state := Resolve(meetings, mustParse(t, "2026-03-05T10:15:00Z"))
		assert.Nil(t, state.Active)
		assert.Nil(t, state.Next)
	})

	t.Run("overlapping shifts earliest wins", func(t *testing.T) {
		overlap := []ShiftEvent{
			{Title: "Ticket Shift", Start: mustParse(t, "2026-03-05T09:30:00Z"), End: mustParse(t, "2026-03-05T12:00:00Z")},
			{Title: "Chat Shift", Start: mustParse(t, "2026-03-05T09:00:00Z"), End: mustParse(t, "2026-03-05T11:00:00Z")},
		}
		state := Resolve(overlap, mustParse(t, "2026-03-05T10:00:00Z"))
		require.NotNil(t, state.Active)
		assert.Equal(t, "Chat Shift", state.Active.Title)
	})

	t.Run("empty schedule", func(t *testing.T) {
		state := Resolve(nil, mustParse(t, "2026-03-05T10:00:00Z"))
		assert.Nil(t, state.Active)
		assert.Nil(t, state.Next)
	})
}

func TestScheduledHours(t *testing.T) {
	events := []ShiftEvent{
		{Title: "Chat Shift", Start: mustParse(t, "2026-03-05T09:00:00Z"), End: mustParse(t, "2026-03-05T12:00:00Z")},
		{Title: "Chat Shift", Start: mustParse(t, "2026-03-05T13:00:00Z"), End: mustParse(t, "2026-03-05T14:30:00Z")},
		{Title: "Ticket Shift", Start: mustParse(t, "2026-03-05T15:00:00Z"), End: mustParse(t, "2026-03-05T17:00:00Z")},
		{Title: "Standup", Start: mustParse(t, "2026-03-05T10:00:00Z"), End: mustParse(t, "2026-03-05T10:30:00Z")},
		{Title: "Chat Shift", Start: mustParse(t, "2026-03-05T18:00:00Z"), End: mustParse(t, "2026-03-05T18:00:00Z")},
		{Title: "Ticket Shift", Start: mustParse(t, "2026-03-05T20:00:00Z"), End: mustParse(t, "2026-03-05T19:00:00Z")},
	}

	chat, ticket := ScheduledHours(events)
	assert.InDelta(t, 4.5, chat, 0.0001)
	assert.InDelta(t, 2.0, ticket, 0.0001)
}

func TestShiftEventKey(t *testing.T) {
	ev := ShiftEvent{Title: "Chat Shift", Start: mustParse(t, "2026-03-05T09:00:00+02:00")}
	other := ShiftEvent{Title: "Chat Shift", Start: mustParse(t, "2026-03-05T07:00:00Z")}

	// Same instant expressed in different zones is the same shift.
	assert.Equal(t, ev.Key(), other.Key())
}
