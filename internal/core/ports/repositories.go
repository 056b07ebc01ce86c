package ports

import (
	"context"
	"time"

	"github.com/lorrc/agent-toolbar-backend/internal/core/domain"
)

// SettingsRepository persists the synced user settings blob.
type SettingsRepository interface {
	Get(ctx context.Context) (domain.Settings, error)
	Set(ctx context.Context, s domain.Settings) error
}

// CounterRepository persists the live daily counters.
type CounterRepository interface {
	Get(ctx context.Context) (domain.Counters, error)
	Set(ctx context.Context, c domain.Counters) error
}

// AnchorRepository persists the UTC day anchor the rollover compares
// against. Get returns an empty key when no anchor has been written.
type AnchorRepository interface {
	Get(ctx context.Context) (domain.UTCDayKey, error)
	Set(ctx context.Context, k domain.UTCDayKey) error
}

// HistoryRepository persists archived day records keyed by local day.
type HistoryRepository interface {
	All(ctx context.Context) (domain.DailyHistory, error)
	Day(ctx context.Context, key domain.LocalDayKey) (domain.DayRecord, bool, error)
	Upsert(ctx context.Context, key domain.LocalDayKey, rec domain.DayRecord) error
	Replace(ctx context.Context, h domain.DailyHistory) error
	Clear(ctx context.Context) error
}

// ActivityLogRepository persists the append-only local activity log.
type ActivityLogRepository interface {
	Append(ctx context.Context, e domain.ActivityEntry) error
	ForDay(ctx context.Context, key domain.LocalDayKey) ([]domain.ActivityEntry, error)
	ClearDay(ctx context.Context, key domain.LocalDayKey) error
	ClearAll(ctx context.Context) error
}

// CacheStatus describes the calendar cache for diagnostics.
type CacheStatus struct {
	CachedAt   time.Time `json:"cachedAt"`
	EventCount int       `json:"eventCount"`
	Stale      bool      `json:"stale"`
}

// CalendarSource fetches and caches today's shift events from an ICS
// feed. Events never returns a fetch error once a cache exists; stale
// data is served instead.
type CalendarSource interface {
	Events(ctx context.Context, url string, maxAge time.Duration) ([]domain.ShiftEvent, error)
	Invalidate()
	CacheStatus() CacheStatus
}
