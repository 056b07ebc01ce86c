package domain

import "strings"

// Settings is the user-tunable configuration synced across replicas.
type Settings struct {
	CalendarURL        string  `json:"calendarUrl"`
	ChatsGoalPerHour   int     `json:"chatsGoalPerHour"`
	TicketsGoalPerHour int     `json:"ticketsGoalPerHour"`
	PreShiftWarnMin    int     `json:"preShiftWarnMin"`
	// Scheduled-hours snapshot from the most recent schedule refresh,
	// consumed when archiving a day whose feed is no longer reachable.
	LastDayChatHours   float64 `json:"lastDayChatHours"`
	LastDayTicketHours float64 `json:"lastDayTicketHours"`
}

const (
	DefaultChatsGoalPerHour   = 10
	DefaultTicketsGoalPerHour = 12
	DefaultPreShiftWarnMin    = 5
)

// DefaultSettings returns the settings a fresh install starts with.
func DefaultSettings() Settings {
	return Settings{
		ChatsGoalPerHour:   DefaultChatsGoalPerHour,
		TicketsGoalPerHour: DefaultTicketsGoalPerHour,
		PreShiftWarnMin:    DefaultPreShiftWarnMin,
	}
}

// Goals extracts the per-hour goal pair.
func (s Settings) Goals() Goals {
	return Goals{ChatsPerHour: s.ChatsGoalPerHour, TicketsPerHour: s.TicketsGoalPerHour}
}

// Normalize coerces out-of-range values back to safe defaults. Goal
// rates outside [1, 100] revert to the defaults, the warn lead outside
// [1, 60] minutes reverts to 5, and a calendar URL that is not https
// is cleared entirely.
func (s Settings) Normalize() Settings {
	if s.ChatsGoalPerHour < 1 || s.ChatsGoalPerHour > 100 {
		s.ChatsGoalPerHour = DefaultChatsGoalPerHour
	}
	if s.TicketsGoalPerHour < 1 || s.TicketsGoalPerHour > 100 {
		s.TicketsGoalPerHour = DefaultTicketsGoalPerHour
	}
	if s.PreShiftWarnMin < 1 || s.PreShiftWarnMin > 60 {
		s.PreShiftWarnMin = DefaultPreShiftWarnMin
	}
	s.CalendarURL = strings.TrimSpace(s.CalendarURL)
	if s.CalendarURL != "" && !strings.HasPrefix(s.CalendarURL, "https://") {
		s.CalendarURL = ""
	}
	if s.LastDayChatHours < 0 {
		s.LastDayChatHours = 0
	}
	if s.LastDayTicketHours < 0 {
		s.LastDayTicketHours = 0
	}
	return s
}
