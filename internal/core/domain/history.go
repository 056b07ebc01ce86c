package domain

import "math"

// MaxCountValue caps a single day's counter; anything beyond it is a
// runaway auto-increment, not real work.
const MaxCountValue = 999

// Counters are the mutable "today" tallies. Exactly one Counters value is
// live at a time; it belongs to the day identified by the UTC rollover
// anchor, which is not necessarily the viewer's local day.
type Counters struct {
	Chats   int `json:"chats"`
	Tickets int `json:"tickets"`
}

// DayRecord is one archived day: final counts plus the scheduled hours that
// were in effect, so goal math stays reproducible after the fact.
type DayRecord struct {
	Chats       int     `json:"chats"`
	Tickets     int     `json:"tickets"`
	ChatHours   float64 `json:"chatHours"`
	TicketHours float64 `json:"ticketHours"`
}

// DailyHistory maps local day keys to archived records. Append/overwrite
// only; a day is never silently deleted outside an explicit bulk clear.
type DailyHistory map[LocalDayKey]DayRecord

// Goals are the per-hour targets for each queue.
type Goals struct {
	ChatsPerHour   int `json:"chatsPerHour"`
	TicketsPerHour int `json:"ticketsPerHour"`
}

// ClampCount keeps a counter inside [0, MaxCountValue].
func ClampCount(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxCountValue {
		return MaxCountValue
	}
	return n
}

// PercentToGoal returns how far count is toward perHourGoal*scheduledHours,
// as a rounded percentage. Non-positive goals or hours yield 0: there is no
// target to measure against, and a day with no scheduled time earns nothing.
// The result is deliberately not clamped at 100; exceeding goal is real.
func PercentToGoal(count, perHourGoal int, scheduledHours float64) int {
	if perHourGoal <= 0 || scheduledHours <= 0 {
		return 0
	}
	target := float64(perHourGoal) * scheduledHours
	return int(math.Round(float64(count) / target * 100))
}

// DayMeetsGoal reports whether a day hit both queues' targets. A queue with
// zero scheduled hours is automatically satisfied: you cannot miss a goal
// for work you were never scheduled to do.
func DayMeetsGoal(rec DayRecord, goals Goals) bool {
	chatsOK := rec.ChatHours <= 0 ||
		rec.Chats >= int(math.Round(float64(goals.ChatsPerHour)*rec.ChatHours))
	ticketsOK := rec.TicketHours <= 0 ||
		rec.Tickets >= int(math.Round(float64(goals.TicketsPerHour)*rec.TicketHours))
	return chatsOK && ticketsOK
}

// ComputeStreak walks daysNewestFirst and counts consecutive qualifying days,
// stopping at the first miss. The in-progress day is not in history yet, so
// the caller passes its synthesized record separately.
func ComputeStreak(history DailyHistory, goals Goals, today LocalDayKey, todayRec DayRecord, daysNewestFirst []LocalDayKey) int {
	streak := 0
	for _, day := range daysNewestFirst {
		var rec DayRecord
		var ok bool
		if day == today {
			rec, ok = todayRec, true
		} else {
			rec, ok = history[day]
		}
		if !ok || !DayMeetsGoal(rec, goals) {
			break
		}
		streak++
	}
	return streak
}
