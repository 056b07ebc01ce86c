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
	countersKey      = "counters"
	countersCacheTTL = time.Second
)

// CounterRepository stores the live counters as JSON in app_state. The
// read cache is shorter than the settings one; counters change often.
type CounterRepository struct {
	db *sql.DB

	mu        sync.Mutex
	cached    domain.Counters
	fetchedAt time.Time
}

var _ ports.CounterRepository = (*CounterRepository)(nil)

func NewCounterRepository(db *sql.DB) *CounterRepository {
	return &CounterRepository{db: db}
}

func (r *CounterRepository) Get(ctx context.Context) (domain.Counters, error) {
	r.mu.Lock()
	if !r.fetchedAt.IsZero() && time.Since(r.fetchedAt) < countersCacheTTL {
		c := r.cached
		r.mu.Unlock()
		return c, nil
	}
	r.mu.Unlock()

	raw, ok, err := getState(ctx, r.db, countersKey)
	if err != nil {
		return domain.Counters{}, err
	}
	var counters domain.Counters
	if ok {
		if err := json.Unmarshal([]byte(raw), &counters); err != nil {
			return domain.Counters{}, err
		}
	}

	r.mu.Lock()
	r.cached = counters
	r.fetchedAt = time.Now()
	r.mu.Unlock()
	return counters, nil
}

func (r *CounterRepository) Set(ctx context.Context, c domain.Counters) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	if err := setState(ctx, r.db, countersKey, string(raw)); err != nil {
		return err
	}
	r.mu.Lock()
	r.cached = c
	r.fetchedAt = time.Now()
	r.mu.Unlock()
	return nil
}
