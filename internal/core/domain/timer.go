package domain

import (
	"fmt"
	"time"
)

// TimerMode is the coarse UI state the toolbar countdown renders.
type TimerMode string

const (
	// ModeLive counts down to the end of the active shift.
	ModeLive TimerMode = "live"
	// ModeWait counts down to the start of the next shift.
	ModeWait TimerMode = "wait"
	// ModeDone means nothing is scheduled for the rest of the day.
	ModeDone TimerMode = "done"
)

// NoShiftsText is the countdown sentinel shown when nothing is scheduled.
const NoShiftsText = "No shifts"

// TimerUpdate is the structured broadcast emitted once per tick. Consumers
// only care about the latest value; there is no back-pressure contract.
type TimerUpdate struct {
	Mode  TimerMode `json:"uiMode"`
	Text  string    `json:"uiText"`
	Queue QueueMode `json:"intendedMode,omitempty"`
}

// FormatMMSS renders a duration as "MM:SS", clamping negatives to zero.
// Minutes are not wrapped at an hour; a long wait shows as e.g. "90:00".
func FormatMMSS(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// BuildTimerUpdate derives the per-tick display state. Precedence is
// live > wait > done.
func BuildTimerUpdate(state ShiftState, now time.Time) TimerUpdate {
	switch {
	case state.Active != nil:
		return TimerUpdate{
			Mode:  ModeLive,
			Text:  FormatMMSS(state.Active.End.Sub(now)),
			Queue: InferQueue(state.Active.Title),
		}
	case state.Next != nil:
		return TimerUpdate{
			Mode:  ModeWait,
			Text:  FormatMMSS(state.Next.Start.Sub(now)) + " →",
			Queue: InferQueue(state.Next.Title),
		}
	default:
		return TimerUpdate{Mode: ModeDone, Text: NoShiftsText}
	}
}
