package domain

import (
	"fmt"
	"time"
)

const dayKeyLayout = "2006-01-02"

// UTCDayKey identifies a calendar day by its UTC date fields. It is the
// authoritative trigger for daily rollover: unambiguous and monotonic no
// matter what offset the viewer sits in.
type UTCDayKey string

// LocalDayKey identifies a calendar day by the viewer's local date fields.
// History records are keyed by it so that archived rows line up with the
// day the agent actually worked.
type LocalDayKey string

// UTCDayKeyFor returns the UTC day key for the given instant.
func UTCDayKeyFor(t time.Time) UTCDayKey {
	return UTCDayKey(t.UTC().Format(dayKeyLayout))
}

// LocalDayKeyFor returns the day key for the given instant in its own zone.
func LocalDayKeyFor(t time.Time) LocalDayKey {
	return LocalDayKey(t.Format(dayKeyLayout))
}

// LocalIn converts a UTC day key into the local day key it corresponds to in
// loc. The conversion anchors at noon UTC, so any offset within +/-12h lands
// on the intended calendar day.
func (k UTCDayKey) LocalIn(loc *time.Location) (LocalDayKey, error) {
	t, err := time.Parse(dayKeyLayout, string(k))
	if err != nil {
		return "", fmt.Errorf("parse utc day key %q: %w", k, err)
	}
	noon := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
	return LocalDayKeyFor(noon.In(loc)), nil
}
