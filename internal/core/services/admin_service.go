package services

import (
	"context"

	"github.com/lorrc/agent-toolbar-backend/internal/core/domain"
	apperrors "github.com/lorrc/agent-toolbar-backend/internal/core/errors"
	"github.com/lorrc/agent-toolbar-backend/internal/core/ports"
)

// AdminService implements backup, restore, and the clear-all reset.
type AdminService struct {
	settingsRepo ports.SettingsRepository
	counterRepo  ports.CounterRepository
	historyRepo  ports.HistoryRepository
	activityRepo ports.ActivityLogRepository
	broadcaster  ports.EventBroadcaster
	clock        ports.Clock
}

var _ ports.AdminService = (*AdminService)(nil)

// NewAdminService creates a new admin service.
func NewAdminService(
	settingsRepo ports.SettingsRepository,
	counterRepo ports.CounterRepository,
	historyRepo ports.HistoryRepository,
	activityRepo ports.ActivityLogRepository,
	broadcaster ports.EventBroadcaster,
	clock ports.Clock,
) *AdminService {
	return &AdminService{
		settingsRepo: settingsRepo,
		counterRepo:  counterRepo,
		historyRepo:  historyRepo,
		activityRepo: activityRepo,
		broadcaster:  broadcaster,
		clock:        clock,
	}
}

// Backup snapshots all synced state. The local activity log is
// deliberately excluded; it never leaves the replica it was written on.
func (s *AdminService) Backup(ctx context.Context) (domain.Backup, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return domain.Backup{}, err
	}
	counters, err := s.counterRepo.Get(ctx)
	if err != nil {
		return domain.Backup{}, err
	}
	history, err := s.historyRepo.All(ctx)
	if err != nil {
		return domain.Backup{}, err
	}
	return domain.Backup{
		BackupTime: s.clock.Now(),
		Settings:   settings,
		Counters:   counters,
		History:    history,
	}, nil
}

// Restore replaces synced state with the backup's contents. Counters
// and goal values pass through the same clamps as live input.
func (s *AdminService) Restore(ctx context.Context, b domain.Backup) error {
	if b.History == nil {
		return apperrors.ErrBackupInvalid
	}
	if err := s.settingsRepo.Set(ctx, b.Settings.Normalize()); err != nil {
		return err
	}
	counters := domain.Counters{
		Chats:   domain.ClampCount(b.Counters.Chats),
		Tickets: domain.ClampCount(b.Counters.Tickets),
	}
	if err := s.counterRepo.Set(ctx, counters); err != nil {
		return err
	}
	if err := s.historyRepo.Replace(ctx, b.History); err != nil {
		return err
	}
	s.broadcaster.Broadcast(domain.Event{
		Type:    domain.EventCountersUpdated,
		Payload: domain.CountersUpdated{Counters: counters},
	})
	return nil
}

// ClearAll resets the replica to factory state: default settings, zero
// counters, no history, no activity log.
func (s *AdminService) ClearAll(ctx context.Context) error {
	if err := s.settingsRepo.Set(ctx, domain.DefaultSettings()); err != nil {
		return err
	}
	if err := s.counterRepo.Set(ctx, domain.Counters{}); err != nil {
		return err
	}
	if err := s.historyRepo.Clear(ctx); err != nil {
		return err
	}
	if err := s.activityRepo.ClearAll(ctx); err != nil {
		return err
	}
	s.broadcaster.Broadcast(domain.Event{
		Type:    domain.EventCountersUpdated,
		Payload: domain.CountersUpdated{Counters: domain.Counters{}},
	})
	return nil
}
