package calendar

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/lorrc/agent-toolbar-backend/internal/core/domain"
	apperrors "github.com/lorrc/agent-toolbar-backend/internal/core/errors"
	"github.com/lorrc/agent-toolbar-backend/internal/core/ports"
)

// maxEventsPerDay caps how many events one day's schedule may carry.
// Anything beyond it is a runaway feed, not a real roster.
const maxEventsPerDay = 100

// Config tunes the fetcher's network behavior.
type Config struct {
	Timeout     time.Duration
	Attempts    int
	BackoffBase time.Duration
}

// Fetcher is the CalendarSource backed by an HTTPS ICS feed. It keeps
// one cache slot holding today's filtered events; concurrent callers
// during a fetch get the current cache instead of piling on.
type Fetcher struct {
	client *http.Client
	clock  ports.Clock
	logger *slog.Logger
	loc    *time.Location
	cfg    Config

	mu       sync.Mutex
	inFlight bool
	cached   []domain.ShiftEvent
	cachedAt time.Time
	cacheDay domain.LocalDayKey
	stale    bool
}

var _ ports.CalendarSource = (*Fetcher)(nil)

// NewFetcher creates a calendar fetcher. Events are returned in loc.
func NewFetcher(clock ports.Clock, logger *slog.Logger, loc *time.Location, cfg Config) *Fetcher {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	return &Fetcher{
		client: &http.Client{Timeout: cfg.Timeout},
		clock:  clock,
		logger: logger,
		loc:    loc,
		cfg:    cfg,
	}
}

// Events returns today's shift events, serving the cache when it is
// younger than maxAge and still belongs to today. A failed fetch
// degrades to stale cached data rather than erroring; only context
// cancellation propagates.
func (f *Fetcher) Events(ctx context.Context, url string, maxAge time.Duration) ([]domain.ShiftEvent, error) {
	now := f.clock.Now().In(f.loc)
	today := domain.LocalDayKeyFor(now)

	f.mu.Lock()
	if !f.cachedAt.IsZero() && f.cacheDay == today && maxAge > 0 && now.Sub(f.cachedAt) < maxAge {
		events := f.cached
		f.mu.Unlock()
		return events, nil
	}
	if f.inFlight {
		// Someone else is already refreshing; hand back what we have.
		events := f.cached
		f.mu.Unlock()
		return events, nil
	}
	f.inFlight = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight = false
		f.mu.Unlock()
	}()

	body, err := f.fetch(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		f.mu.Lock()
		f.stale = true
		events := f.cached
		f.mu.Unlock()
		f.logger.Warn("calendar fetch failed, serving cache", "error", err, "cached_events", len(events))
		return events, nil
	}

	events := selectDay(ParseICS(body, f.loc), today, f.loc)

	f.mu.Lock()
	f.cached = events
	f.cachedAt = now
	f.cacheDay = today
	f.stale = false
	f.mu.Unlock()

	return events, nil
}

// Invalidate drops the cache so the next Events call hits the network.
func (f *Fetcher) Invalidate() {
	f.mu.Lock()
	f.cached = nil
	f.cachedAt = time.Time{}
	f.cacheDay = ""
	f.stale = false
	f.mu.Unlock()
}

// CacheStatus reports the cache slot for diagnostics.
func (f *Fetcher) CacheStatus() ports.CacheStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return ports.CacheStatus{
		CachedAt:   f.cachedAt,
		EventCount: len(f.cached),
		Stale:      f.stale,
	}
}

// fetch downloads the feed with retries. Client errors are permanent:
// a 404 will not heal by retrying, and hammering a misconfigured URL
// helps nobody.
func (f *Fetcher) fetch(ctx context.Context, url string) (string, error) {
	var body string

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := f.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return backoff.Permanent(fmt.Errorf("%w: status %d", apperrors.ErrCalendarFetch, resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%w: status %d", apperrors.ErrCalendarFetch, resp.StatusCode)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		body = string(data)
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = f.cfg.BackoffBase
	bo.Multiplier = 2
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(f.cfg.Attempts-1)), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		return "", err
	}
	return body, nil
}

// selectDay keeps events whose local start date is the given day,
// sorted by start, capped at maxEventsPerDay. An overnight shift
// belongs to the day it started on.
func selectDay(events []domain.ShiftEvent, day domain.LocalDayKey, loc *time.Location) []domain.ShiftEvent {
	kept := make([]domain.ShiftEvent, 0, len(events))
	for _, ev := range events {
		if domain.LocalDayKeyFor(ev.Start.In(loc)) == day {
			kept = append(kept, ev)
		}
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Start.Before(kept[j].Start) })
	if len(kept) > maxEventsPerDay {
		kept = kept[:maxEventsPerDay]
	}
	return kept
}
