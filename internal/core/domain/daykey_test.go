package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUTCDayKeyFor(t *testing.T) {
	t.Run("uses UTC date fields regardless of zone", func(t *testing.T) {
		tokyo, err := time.LoadLocation("Asia/Tokyo")
		require.NoError(t, err)

		// 02:00 on the 5th in Tokyo is still the 4th in UTC.
		instant := time.Date(2026, 3, 5, 2, 0, 0, 0, tokyo)
		assert.Equal(t, UTCDayKey("2026-03-04"), UTCDayKeyFor(instant))
	})

	t.Run("matches local key for UTC instants", func(t *testing.T) {
		instant := time.Date(2026, 3, 5, 23, 59, 0, 0, time.UTC)
		assert.Equal(t, UTCDayKey("2026-03-05"), UTCDayKeyFor(instant))
		assert.Equal(t, LocalDayKey("2026-03-05"), LocalDayKeyFor(instant))
	})
}

func TestUTCDayKeyLocalIn(t *testing.T) {
	tests := []struct {
		name string
		zone string
		key  UTCDayKey
		want LocalDayKey
	}{
		{"utc is identity", "UTC", "2026-03-05", "2026-03-05"},
		{"positive offset stays on same day", "Asia/Tokyo", "2026-03-05", "2026-03-05"},
		{"negative offset stays on same day", "America/Los_Angeles", "2026-03-05", "2026-03-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := time.LoadLocation(tt.zone)
			require.NoError(t, err)

			got, err := tt.key.LocalIn(loc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects malformed keys", func(t *testing.T) {
		_, err := UTCDayKey("garbage").LocalIn(time.UTC)
		assert.Error(t, err)
	})
}
