package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/lorrc/agent-toolbar-backend/internal/core/domain"
	"github.com/lorrc/agent-toolbar-backend/internal/core/ports"
)

// TimerService drives the once-per-second countdown and fires shift
// reminders. Reminder dedupe keys live only in memory; a restart may
// re-fire a reminder, which beats missing one.
type TimerService struct {
	schedule     ports.ScheduleService
	rollover     ports.RolloverService
	settingsRepo ports.SettingsRepository
	broadcaster  ports.EventBroadcaster
	clock        ports.Clock
	logger       *slog.Logger

	tick  time.Duration
	grace time.Duration

	lastStartKey string
	lastLateKey  string
	lastEndKey   string
}

var _ ports.TimerService = (*TimerService)(nil)

// NewTimerService creates a new timer service. grace is the window
// after a shift's start during which a late-login reminder still
// fires.
func NewTimerService(
	schedule ports.ScheduleService,
	rollover ports.RolloverService,
	settingsRepo ports.SettingsRepository,
	broadcaster ports.EventBroadcaster,
	clock ports.Clock,
	logger *slog.Logger,
	tick, grace time.Duration,
) *TimerService {
	return &TimerService{
		schedule:     schedule,
		rollover:     rollover,
		settingsRepo: settingsRepo,
		broadcaster:  broadcaster,
		clock:        clock,
		logger:       logger,
		tick:         tick,
		grace:        grace,
	}
}

// Run loops until the context is cancelled. Each tick first gives the
// rollover a chance to run, then recomputes and broadcasts the timer.
// Tick is only ever called from this goroutine, so the dedupe keys
// need no locking.
func (s *TimerService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := s.clock.Now()
			if _, err := s.rollover.RollIfNeeded(ctx, now); err != nil {
				s.logger.Error("rollover check failed", "error", err)
			}
			if _, err := s.Tick(ctx, now); err != nil {
				s.logger.Error("timer tick failed", "error", err)
			}
		}
	}
}

// Tick recomputes the countdown for now, broadcasts it, and fires any
// due reminders.
func (s *TimerService) Tick(ctx context.Context, now time.Time) (domain.TimerUpdate, error) {
	state, err := s.schedule.State(ctx)
	if err != nil {
		return domain.TimerUpdate{}, err
	}

	update := domain.BuildTimerUpdate(state, now)
	s.broadcaster.Broadcast(domain.Event{Type: domain.EventTimerTick, Payload: update})

	if state.Active == nil && state.Next == nil {
		// Nothing scheduled; let reminders re-arm for the next day.
		s.lastStartKey, s.lastLateKey, s.lastEndKey = "", "", ""
		return update, nil
	}

	warn, err := s.warnLead(ctx)
	if err != nil {
		return update, err
	}

	if next := state.Next; next != nil {
		until := next.Start.Sub(now)
		if until > 0 && until <= warn && s.lastStartKey != next.Key() {
			s.lastStartKey = next.Key()
			s.remind(domain.ReminderStart, *next)
		}
	}

	if active := state.Active; active != nil {
		sinceStart := now.Sub(active.Start)
		if sinceStart >= 0 && sinceStart <= s.grace &&
			s.lastStartKey != active.Key() && s.lastLateKey != active.Key() {
			s.lastLateKey = active.Key()
			s.remind(domain.ReminderLateStart, *active)
		}
		if active.End.Sub(now) <= warn && s.lastEndKey != active.Key() {
			s.lastEndKey = active.Key()
			s.remind(domain.ReminderEnd, *active)
		}
	}

	return update, nil
}

func (s *TimerService) warnLead(ctx context.Context) (time.Duration, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return 0, err
	}
	return time.Duration(settings.PreShiftWarnMin) * time.Minute, nil
}

func (s *TimerService) remind(kind domain.ReminderKind, ev domain.ShiftEvent) {
	s.broadcaster.Broadcast(domain.Event{
		Type: domain.EventShiftReminder,
		Payload: domain.ShiftReminder{
			Kind:  kind,
			Queue: domain.InferQueue(ev.Title),
			Title: ev.Title,
			Start: ev.Start,
		},
	})
	s.logger.Info("shift reminder fired", "kind", kind, "title", ev.Title, "start", ev.Start)
}
