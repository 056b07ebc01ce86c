package domain

import (
	"sort"
	"strings"
	"time"
)

// QueueMode is the work category a shift or counter refers to.
type QueueMode string

const (
	QueueChats   QueueMode = "chats"
	QueueTickets QueueMode = "tickets"
)

// ShiftEvent is a single calendar entry, with both timestamps already in the
// viewer's zone. Immutable once produced by the parser.
type ShiftEvent struct {
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Key uniquely identifies a shift instance for reminder deduplication.
func (e ShiftEvent) Key() string {
	return e.Title + "|" + e.Start.UTC().Format(time.RFC3339)
}

// ShiftState is the derived "am I on shift" answer. Never persisted;
// recomputed from the schedule cache plus wall-clock time.
type ShiftState struct {
	Active *ShiftEvent `json:"active,omitempty"`
	Next   *ShiftEvent `json:"next,omitempty"`
}

// InferQueue maps a shift title onto the queue it represents. Titles that
// mention neither queue belong to unrelated meetings and yield "".
func InferQueue(title string) QueueMode {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "chat"):
		return QueueChats
	case strings.Contains(t, "ticket"):
		return QueueTickets
	default:
		return ""
	}
}

// Resolve determines the active and next shift for the given instant. Only
// events whose title matches a queue keyword count as shifts. When shifts
// overlap (a feed-authoring error), the earliest-starting one wins; the next
// shift is the earliest future start regardless of the active one.
func Resolve(events []ShiftEvent, now time.Time) ShiftState {
	relevant := make([]ShiftEvent, 0, len(events))
	for _, ev := range events {
		if InferQueue(ev.Title) != "" {
			relevant = append(relevant, ev)
		}
	}
	sort.Slice(relevant, func(i, j int) bool {
		return relevant[i].Start.Before(relevant[j].Start)
	})

	var state ShiftState
	for i := range relevant {
		ev := relevant[i]
		if state.Active == nil && !now.Before(ev.Start) && !now.After(ev.End) {
			state.Active = &relevant[i]
		} else if state.Next == nil && ev.Start.After(now) {
			state.Next = &relevant[i]
		}
		if state.Active != nil && state.Next != nil {
			break
		}
	}
	return state
}

// ScheduledHours sums event durations per queue, in hours. Zero-length and
// inverted events contribute nothing.
func ScheduledHours(events []ShiftEvent) (chatHours, ticketHours float64) {
	for _, ev := range events {
		d := ev.End.Sub(ev.Start)
		if d <= 0 {
			continue
		}
		switch InferQueue(ev.Title) {
		case QueueChats:
			chatHours += d.Hours()
		case QueueTickets:
			ticketHours += d.Hours()
		}
	}
	return chatHours, ticketHours
}
