package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/lorrc/agent-toolbar-backend/internal/core/domain"
	"github.com/lorrc/agent-toolbar-backend/internal/core/ports"
)

const (
	settingsKey      = "settings"
	settingsCacheTTL = 5 * time.Second
)

// SettingsRepository stores the settings blob as JSON in app_state,
// with a short read cache since the timer loop consults settings once
// a second.
type SettingsRepository struct {
	db *sql.DB

	mu        sync.Mutex
	cached    domain.Settings
	fetchedAt time.Time
}

var _ ports.SettingsRepository = (*SettingsRepository)(nil)

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context) (domain.Settings, error) {
	r.mu.Lock()
	if !r.fetchedAt.IsZero() && time.Since(r.fetchedAt) < settingsCacheTTL {
		s := r.cached
		r.mu.Unlock()
		return s, nil
	}
	r.mu.Unlock()

	raw, ok, err := getState(ctx, r.db, settingsKey)
	if err != nil {
		return domain.Settings{}, err
	}
	settings := domain.DefaultSettings()
	if ok {
		if err := json.Unmarshal([]byte(raw), &settings); err != nil {
			return domain.Settings{}, err
		}
	}

	r.mu.Lock()
	r.cached = settings
	r.fetchedAt = time.Now()
	r.mu.Unlock()
	return settings, nil
}

func (r *SettingsRepository) Set(ctx context.Context, s domain.Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := setState(ctx, r.db, settingsKey, string(raw)); err != nil {
		return err
	}
	r.mu.Lock()
	r.cached = s
	r.fetchedAt = time.Now()
	r.mu.Unlock()
	return nil
}
