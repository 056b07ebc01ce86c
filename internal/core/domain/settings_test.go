package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingsNormalize(t *testing.T) {
	t.Run("valid settings pass through", func(t *testing.T) {
		s := Settings{
			CalendarURL:        "https://example.com/cal.ics",
			ChatsGoalPerHour:   8,
			TicketsGoalPerHour: 15,
			PreShiftWarnMin:    10,
		}
		assert.Equal(t, s, s.Normalize())
	})

	t.Run("out of range goals revert to defaults", func(t *testing.T) {
		s := Settings{ChatsGoalPerHour: 0, TicketsGoalPerHour: 500, PreShiftWarnMin: 5}
		got := s.Normalize()
		assert.Equal(t, DefaultChatsGoalPerHour, got.ChatsGoalPerHour)
		assert.Equal(t, DefaultTicketsGoalPerHour, got.TicketsGoalPerHour)
	})

	t.Run("warn lead clamps to default", func(t *testing.T) {
		s := DefaultSettings()
		s.PreShiftWarnMin = 0
		assert.Equal(t, DefaultPreShiftWarnMin, s.Normalize().PreShiftWarnMin)

		s.PreShiftWarnMin = 120
		assert.Equal(t, DefaultPreShiftWarnMin, s.Normalize().PreShiftWarnMin)
	})

	t.Run("non-https calendar url is cleared", func(t *testing.T) {
		s := DefaultSettings()
		s.CalendarURL = "http://example.com/cal.ics"
		assert.Empty(t, s.Normalize().CalendarURL)

		s.CalendarURL = "  https://example.com/cal.ics  "
		assert.Equal(t, "https://example.com/cal.ics", s.Normalize().CalendarURL)
	})

	t.Run("negative hour snapshots floor at zero", func(t *testing.T) {
		s := DefaultSettings()
		s.LastDayChatHours = -1
		s.LastDayTicketHours = -0.5
		got := s.Normalize()
		assert.Zero(t, got.LastDayChatHours)
		assert.Zero(t, got.LastDayTicketHours)
	})
}
