package ports

import (
	"context"
	"time"

	"github.com/lorrc/agent-toolbar-backend/internal/core/domain"
)

// ScheduleStatus is the composite snapshot served to toolbar clients.
type ScheduleStatus struct {
	State       domain.ShiftState  `json:"state"`
	Timer       domain.TimerUpdate `json:"timer"`
	ChatHours   float64            `json:"chatHours"`
	TicketHours float64            `json:"ticketHours"`
	Cache       CacheStatus        `json:"cache"`
}

// ScheduleService owns the cached shift schedule derived from the
// configured calendar feed.
type ScheduleService interface {
	Refresh(ctx context.Context, force bool) error
	Status(ctx context.Context) (ScheduleStatus, error)
	State(ctx context.Context) (domain.ShiftState, error)
	ScheduledHours(ctx context.Context) (chat, ticket float64, err error)
}

// IncrementParams defines the input for a counter mutation.
type IncrementParams struct {
	Queue    domain.QueueMode
	Delta    int
	Source   string
	TicketID string
}

// CounterService defines the port for daily counter mutations.
type CounterService interface {
	Get(ctx context.Context) (domain.Counters, error)
	Increment(ctx context.Context, params IncrementParams) (domain.Counters, error)
	Set(ctx context.Context, c domain.Counters) (domain.Counters, error)
}

// RolloverService owns the daily rollover. RollIfNeeded is safe to
// call from any goroutine and is a no-op when the anchor matches the
// current UTC day.
type RolloverService interface {
	RollIfNeeded(ctx context.Context, now time.Time) (bool, error)
	Force(ctx context.Context, now time.Time) error
	ArchiveOnly(ctx context.Context, now time.Time) error
	Anchor(ctx context.Context) (domain.UTCDayKey, error)
}

// TimerService drives the one second UI clock and shift reminders.
type TimerService interface {
	Run(ctx context.Context)
	Tick(ctx context.Context, now time.Time) (domain.TimerUpdate, error)
}

// StatsService computes the weekly summary and streak.
type StatsService interface {
	Summary(ctx context.Context, now time.Time) (domain.StatsSummary, error)
}

// SettingsService validates and persists the synced user settings.
type SettingsService interface {
	Get(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, s domain.Settings) (domain.Settings, error)
}

// AdminService defines the port for backup and maintenance operations.
type AdminService interface {
	Backup(ctx context.Context) (domain.Backup, error)
	Restore(ctx context.Context, b domain.Backup) error
	ClearAll(ctx context.Context) error
}

// EventBroadcaster pushes engine events to connected clients.
type EventBroadcaster interface {
	Broadcast(event domain.Event)
}
