package domain

import "time"

// EventType identifies the kind of engine event being broadcast.
type EventType string

const (
	EventTimerTick         EventType = "TIMER_TICK"
	EventShiftReminder     EventType = "SHIFT_REMINDER"
	EventScheduleRefreshed EventType = "SCHEDULE_REFRESHED"
	EventCountersUpdated   EventType = "COUNTERS_UPDATED"
	EventDailyReset        EventType = "DAILY_RESET"
)

// Event is the envelope pushed to connected toolbar clients. Fire and
// forget: a slow consumer is dropped, never waited on.
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

// ReminderKind distinguishes the three shift notifications.
type ReminderKind string

const (
	// ReminderStart fires shortly before a shift begins.
	ReminderStart ReminderKind = "start"
	// ReminderLateStart fires when the viewer shows up after a shift
	// already began, within a short grace window.
	ReminderLateStart ReminderKind = "late_start"
	// ReminderEnd fires shortly before the active shift ends.
	ReminderEnd ReminderKind = "end"
)

// ShiftReminder is the payload of a SHIFT_REMINDER event.
type ShiftReminder struct {
	Kind  ReminderKind `json:"kind"`
	Queue QueueMode    `json:"queue,omitempty"`
	Title string       `json:"title"`
	Start time.Time    `json:"start"`
}

// ScheduleRefreshed is the payload of a SCHEDULE_REFRESHED event.
type ScheduleRefreshed struct {
	EventCount  int     `json:"eventCount"`
	ChatHours   float64 `json:"chatHours"`
	TicketHours float64 `json:"ticketHours"`
}

// DailyReset is the payload of a DAILY_RESET event.
type DailyReset struct {
	ArchivedDay LocalDayKey `json:"archivedDay"`
	NewAnchor   UTCDayKey   `json:"newAnchor"`
}

// CountersUpdated is the payload of a COUNTERS_UPDATED event.
type CountersUpdated struct {
	Counters Counters  `json:"counters"`
	Queue    QueueMode `json:"queue"`
}
