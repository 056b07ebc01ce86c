package services

import (
	"context"
	"time"

	"github.com/lorrc/agent-toolbar-backend/internal/core/domain"
	apperrors "github.com/lorrc/agent-toolbar-backend/internal/core/errors"
	"github.com/lorrc/agent-toolbar-backend/internal/core/ports"
)

// maxIncrementDelta bounds a single mutation; bulk corrections go
// through Set instead.
const maxIncrementDelta = 50

// CounterService implements business logic for the daily tallies.
// Every mutation is clamped, logged to the activity trail, and
// mirrored into today's history row so the weekly view stays current
// without waiting for rollover.
type CounterService struct {
	counterRepo  ports.CounterRepository
	historyRepo  ports.HistoryRepository
	activityRepo ports.ActivityLogRepository
	broadcaster  ports.EventBroadcaster
	clock        ports.Clock
	loc          *time.Location
}

var _ ports.CounterService = (*CounterService)(nil)

// NewCounterService creates a new counter service.
func NewCounterService(
	counterRepo ports.CounterRepository,
	historyRepo ports.HistoryRepository,
	activityRepo ports.ActivityLogRepository,
	broadcaster ports.EventBroadcaster,
	clock ports.Clock,
	loc *time.Location,
) *CounterService {
	return &CounterService{
		counterRepo:  counterRepo,
		historyRepo:  historyRepo,
		activityRepo: activityRepo,
		broadcaster:  broadcaster,
		clock:        clock,
		loc:          loc,
	}
}

// Get returns the live counters.
func (s *CounterService) Get(ctx context.Context) (domain.Counters, error) {
	return s.counterRepo.Get(ctx)
}

// Increment applies a delta to one queue's counter.
func (s *CounterService) Increment(ctx context.Context, params ports.IncrementParams) (domain.Counters, error) {
	if params.Queue != domain.QueueChats && params.Queue != domain.QueueTickets {
		return domain.Counters{}, apperrors.ErrInvalidQueue
	}
	if params.Delta == 0 || params.Delta < -maxIncrementDelta || params.Delta > maxIncrementDelta {
		return domain.Counters{}, apperrors.ErrInvalidDelta
	}

	counters, err := s.counterRepo.Get(ctx)
	if err != nil {
		return domain.Counters{}, err
	}

	var newValue int
	switch params.Queue {
	case domain.QueueChats:
		counters.Chats = domain.ClampCount(counters.Chats + params.Delta)
		newValue = counters.Chats
	case domain.QueueTickets:
		counters.Tickets = domain.ClampCount(counters.Tickets + params.Delta)
		newValue = counters.Tickets
	}

	if err := s.counterRepo.Set(ctx, counters); err != nil {
		return domain.Counters{}, err
	}

	now := s.clock.Now().In(s.loc)
	entry := domain.ActivityEntry{
		Time:     now,
		Day:      domain.LocalDayKeyFor(now),
		Queue:    params.Queue,
		Delta:    params.Delta,
		NewValue: newValue,
		Source:   params.Source,
		TicketID: params.TicketID,
	}
	if err := s.activityRepo.Append(ctx, entry); err != nil {
		return domain.Counters{}, err
	}

	if err := s.mirrorToday(ctx, counters, now); err != nil {
		return domain.Counters{}, err
	}

	s.broadcaster.Broadcast(domain.Event{
		Type:    domain.EventCountersUpdated,
		Payload: domain.CountersUpdated{Counters: counters, Queue: params.Queue},
	})
	return counters, nil
}

// Set overwrites both counters, clamping each into range. Used by
// restore and manual corrections.
func (s *CounterService) Set(ctx context.Context, c domain.Counters) (domain.Counters, error) {
	c.Chats = domain.ClampCount(c.Chats)
	c.Tickets = domain.ClampCount(c.Tickets)
	if err := s.counterRepo.Set(ctx, c); err != nil {
		return domain.Counters{}, err
	}
	if err := s.mirrorToday(ctx, c, s.clock.Now().In(s.loc)); err != nil {
		return domain.Counters{}, err
	}
	s.broadcaster.Broadcast(domain.Event{
		Type:    domain.EventCountersUpdated,
		Payload: domain.CountersUpdated{Counters: c},
	})
	return c, nil
}

// mirrorToday keeps today's history row in sync with the live
// counters, preserving whatever hours snapshot the row already holds.
func (s *CounterService) mirrorToday(ctx context.Context, c domain.Counters, now time.Time) error {
	day := domain.LocalDayKeyFor(now)
	rec, _, err := s.historyRepo.Day(ctx, day)
	if err != nil {
		return err
	}
	rec.Chats = c.Chats
	rec.Tickets = c.Tickets
	return s.historyRepo.Upsert(ctx, day, rec)
}
