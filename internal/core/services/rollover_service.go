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

// RolloverService archives the finished day and resets the live
// counters when the UTC calendar date advances past the stored anchor.
// All entry points funnel through one mutex so concurrent ticks,
// watchers, and operator requests cannot double-archive a day.
type RolloverService struct {
	anchorRepo   ports.AnchorRepository
	counterRepo  ports.CounterRepository
	historyRepo  ports.HistoryRepository
	settingsRepo ports.SettingsRepository
	broadcaster  ports.EventBroadcaster
	logger       *slog.Logger
	loc          *time.Location

	mu sync.Mutex
}

var _ ports.RolloverService = (*RolloverService)(nil)

// NewRolloverService creates a new rollover service. Archived records
// are keyed by the local day in loc.
func NewRolloverService(
	anchorRepo ports.AnchorRepository,
	counterRepo ports.CounterRepository,
	historyRepo ports.HistoryRepository,
	settingsRepo ports.SettingsRepository,
	broadcaster ports.EventBroadcaster,
	logger *slog.Logger,
	loc *time.Location,
) *RolloverService {
	return &RolloverService{
		anchorRepo:   anchorRepo,
		counterRepo:  counterRepo,
		historyRepo:  historyRepo,
		settingsRepo: settingsRepo,
		broadcaster:  broadcaster,
		logger:       logger,
		loc:          loc,
	}
}

// RollIfNeeded compares the stored anchor with now's UTC day. On first
// run it initializes the anchor without archiving anything. It returns
// whether a rollover actually happened.
func (s *RolloverService) RollIfNeeded(ctx context.Context, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	anchor, err := s.anchorRepo.Get(ctx)
	if err != nil {
		return false, err
	}
	current := domain.UTCDayKeyFor(now)
	if anchor == "" {
		return false, s.anchorRepo.Set(ctx, current)
	}
	if anchor == current {
		return false, nil
	}
	if err := s.rollLocked(ctx, now, anchor); err != nil {
		return false, err
	}
	return true, nil
}

// Force archives the anchored day and resets counters regardless of
// whether the UTC day has advanced. Operator escape hatch. Unlike the
// tick path it does not wait on a rollover already in progress.
func (s *RolloverService) Force(ctx context.Context, now time.Time) error {
	if !s.mu.TryLock() {
		return apperrors.ErrRolloverInFlight
	}
	defer s.mu.Unlock()

	anchor, err := s.anchorRepo.Get(ctx)
	if err != nil {
		return err
	}
	if anchor == "" {
		anchor = domain.UTCDayKeyFor(now)
	}
	return s.rollLocked(ctx, now, anchor)
}

// ArchiveOnly writes the current counters into history under the
// anchored day without resetting anything. Safe to call repeatedly;
// the archive row is simply overwritten with fresher counts.
func (s *RolloverService) ArchiveOnly(ctx context.Context, now time.Time) error {
	if !s.mu.TryLock() {
		return apperrors.ErrRolloverInFlight
	}
	defer s.mu.Unlock()

	anchor, err := s.anchorRepo.Get(ctx)
	if err != nil {
		return err
	}
	if anchor == "" {
		anchor = domain.UTCDayKeyFor(now)
	}
	_, err = s.archiveLocked(ctx, anchor)
	return err
}

// Anchor exposes the stored UTC anchor for diagnostics.
func (s *RolloverService) Anchor(ctx context.Context) (domain.UTCDayKey, error) {
	return s.anchorRepo.Get(ctx)
}

func (s *RolloverService) rollLocked(ctx context.Context, now time.Time, anchor domain.UTCDayKey) error {
	day, err := s.archiveLocked(ctx, anchor)
	if err != nil {
		return err
	}
	if err := s.counterRepo.Set(ctx, domain.Counters{}); err != nil {
		return err
	}
	newAnchor := domain.UTCDayKeyFor(now)
	if err := s.anchorRepo.Set(ctx, newAnchor); err != nil {
		return err
	}

	s.broadcaster.Broadcast(domain.Event{
		Type:    domain.EventDailyReset,
		Payload: domain.DailyReset{ArchivedDay: day, NewAnchor: newAnchor},
	})
	s.logger.Info("daily rollover complete",
		"archived_day", day,
		"old_anchor", anchor,
		"new_anchor", newAnchor,
	)
	return nil
}

func (s *RolloverService) archiveLocked(ctx context.Context, anchor domain.UTCDayKey) (domain.LocalDayKey, error) {
	day, err := anchor.LocalIn(s.loc)
	if err != nil {
		return "", err
	}
	counters, err := s.counterRepo.Get(ctx)
	if err != nil {
		return "", err
	}
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return "", err
	}

	rec := domain.DayRecord{
		Chats:       counters.Chats,
		Tickets:     counters.Tickets,
		ChatHours:   settings.LastDayChatHours,
		TicketHours: settings.LastDayTicketHours,
	}
	if err := s.historyRepo.Upsert(ctx, day, rec); err != nil {
		return "", err
	}
	return day, nil
}
