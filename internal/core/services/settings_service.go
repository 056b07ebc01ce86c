package services

import (
	"context"
	"strings"

	"github.com/lorrc/agent-toolbar-backend/internal/core/domain"
	apperrors "github.com/lorrc/agent-toolbar-backend/internal/core/errors"
	"github.com/lorrc/agent-toolbar-backend/internal/core/ports"
)

// SettingsService validates and persists the synced user settings.
type SettingsService struct {
	settingsRepo ports.SettingsRepository
	calendar     ports.CalendarSource
}

var _ ports.SettingsService = (*SettingsService)(nil)

// NewSettingsService creates a new settings service.
func NewSettingsService(settingsRepo ports.SettingsRepository, calendar ports.CalendarSource) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo, calendar: calendar}
}

// Get returns the current settings.
func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

// Update normalizes and persists new settings. A non-empty calendar
// URL must use https; anything else is rejected rather than silently
// dropped. The scheduled-hours snapshot is owned by the schedule
// refresh, so incoming values for it are discarded in favor of what
// is already stored. A calendar URL change drops the feed cache so
// the next refresh hits the network.
func (s *SettingsService) Update(ctx context.Context, incoming domain.Settings) (domain.Settings, error) {
	if url := strings.TrimSpace(incoming.CalendarURL); url != "" && !strings.HasPrefix(url, "https://") {
		return domain.Settings{}, apperrors.ErrCalendarNotHTTPS
	}

	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return domain.Settings{}, err
	}

	incoming.LastDayChatHours = current.LastDayChatHours
	incoming.LastDayTicketHours = current.LastDayTicketHours
	next := incoming.Normalize()

	if err := s.settingsRepo.Set(ctx, next); err != nil {
		return domain.Settings{}, err
	}
	if next.CalendarURL != current.CalendarURL {
		s.calendar.Invalidate()
	}
	return next, nil
}
