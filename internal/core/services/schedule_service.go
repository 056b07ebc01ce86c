package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lorrc/agent-toolbar-backend/internal/core/domain"
	apperrors "github.com/lorrc/agent-toolbar-backend/internal/core/errors"
	"github.com/lorrc/agent-toolbar-backend/internal/core/ports"
)

// ScheduleService owns the in-memory view of today's shift schedule. It
// refreshes from the calendar source, caches the resulting events, and
// snapshots scheduled hours into settings so rollover can archive a day
// even when the feed is unreachable at midnight.
type ScheduleService struct {
	settingsRepo ports.SettingsRepository
	calendar     ports.CalendarSource
	broadcaster  ports.EventBroadcaster
	clock        ports.Clock
	logger       *slog.Logger

	backgroundMaxAge time.Duration

	mu          sync.RWMutex
	events      []domain.ShiftEvent
	chatHours   float64
	ticketHours float64
	loaded      bool
}

var _ ports.ScheduleService = (*ScheduleService)(nil)

// NewScheduleService creates a new schedule service.
func NewScheduleService(
	settingsRepo ports.SettingsRepository,
	calendar ports.CalendarSource,
	broadcaster ports.EventBroadcaster,
	clock ports.Clock,
	logger *slog.Logger,
	backgroundMaxAge time.Duration,
) *ScheduleService {
	return &ScheduleService{
		settingsRepo:     settingsRepo,
		calendar:         calendar,
		broadcaster:      broadcaster,
		clock:            clock,
		logger:           logger,
		backgroundMaxAge: backgroundMaxAge,
	}
}

// Refresh re-reads the calendar feed and rebuilds the cached schedule.
// With force set the cache is bypassed entirely, and a missing calendar
// URL is reported as an error so an explicit refresh request gets a
// clear answer. On the background path a missing URL just empties the
// schedule; the toolbar shows no shifts until one is configured.
func (s *ScheduleService) Refresh(ctx context.Context, force bool) error {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return err
	}
	if settings.CalendarURL == "" {
		s.mu.Lock()
		s.events = nil
		s.chatHours = 0
		s.ticketHours = 0
		s.loaded = true
		s.mu.Unlock()
		if force {
			return apperrors.ErrNoCalendarURL
		}
		return nil
	}

	maxAge := s.backgroundMaxAge
	if force {
		s.calendar.Invalidate()
		maxAge = 0
	}

	events, err := s.calendar.Events(ctx, settings.CalendarURL, maxAge)
	if err != nil {
		return err
	}

	rawChat, rawTicket := domain.ScheduledHours(events)

	s.mu.Lock()
	s.events = events
	s.chatHours = floorHours(rawChat)
	s.ticketHours = floorHours(rawTicket)
	s.loaded = true
	s.mu.Unlock()

	// Persist the raw snapshot for rollover. Best effort: a write
	// failure degrades goal math for one archived day, nothing more.
	settings.LastDayChatHours = rawChat
	settings.LastDayTicketHours = rawTicket
	if err := s.settingsRepo.Set(ctx, settings); err != nil {
		s.logger.Warn("failed to persist scheduled-hours snapshot", "error", err)
	}

	s.broadcaster.Broadcast(domain.Event{
		Type: domain.EventScheduleRefreshed,
		Payload: domain.ScheduleRefreshed{
			EventCount:  len(events),
			ChatHours:   rawChat,
			TicketHours: rawTicket,
		},
	})
	s.logger.Info("schedule refreshed",
		"events", len(events),
		"chat_hours", rawChat,
		"ticket_hours", rawTicket,
		"forced", force,
	)
	return nil
}

// State resolves the active/next shift pair for the current instant,
// refreshing lazily on first use.
func (s *ScheduleService) State(ctx context.Context) (domain.ShiftState, error) {
	events, err := s.snapshot(ctx)
	if err != nil {
		return domain.ShiftState{}, err
	}
	return domain.Resolve(events, s.clock.Now()), nil
}

// Status returns the composite snapshot served to toolbar clients.
func (s *ScheduleService) Status(ctx context.Context) (ports.ScheduleStatus, error) {
	events, err := s.snapshot(ctx)
	if err != nil {
		return ports.ScheduleStatus{}, err
	}
	now := s.clock.Now()
	state := domain.Resolve(events, now)

	s.mu.RLock()
	chat, ticket := s.chatHours, s.ticketHours
	s.mu.RUnlock()

	return ports.ScheduleStatus{
		State:       state,
		Timer:       domain.BuildTimerUpdate(state, now),
		ChatHours:   chat,
		TicketHours: ticket,
		Cache:       s.calendar.CacheStatus(),
	}, nil
}

// ScheduledHours returns today's goal-math hours. Before the first
// successful refresh it falls back to the persisted snapshot.
func (s *ScheduleService) ScheduledHours(ctx context.Context) (float64, float64, error) {
	s.mu.RLock()
	loaded, chat, ticket := s.loaded, s.chatHours, s.ticketHours
	s.mu.RUnlock()
	if loaded {
		return chat, ticket, nil
	}
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return 0, 0, err
	}
	return floorHours(settings.LastDayChatHours), floorHours(settings.LastDayTicketHours), nil
}

func (s *ScheduleService) snapshot(ctx context.Context) ([]domain.ShiftEvent, error) {
	s.mu.RLock()
	loaded := s.loaded
	events := s.events
	s.mu.RUnlock()
	if loaded {
		return events, nil
	}
	if err := s.Refresh(ctx, false); err != nil {
		return nil, err
	}
	s.mu.RLock()
	events = s.events
	s.mu.RUnlock()
	return events, nil
}

// floorHours lifts a tiny-but-nonzero scheduled block to a full hour so
// per-hour goal targets never become fractions of a single unit.
func floorHours(h float64) float64 {
	if h > 0 && h < 1 {
		return 1
	}
	return h
}
