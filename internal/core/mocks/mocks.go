package mocks

import (
	"context"
	"time"

	"github.com/lorrc/agent-toolbar-backend/internal/core/domain"
	"github.com/lorrc/agent-toolbar-backend/internal/core/ports"
	"github.com/stretchr/testify/mock"
)

// MockSettingsRepository is a mock implementation of ports.SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (domain.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Set(ctx context.Context, s domain.Settings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockCounterRepository is a mock implementation of ports.CounterRepository
type MockCounterRepository struct {
	mock.Mock
}

func (m *MockCounterRepository) Get(ctx context.Context) (domain.Counters, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Counters), args.Error(1)
}

func (m *MockCounterRepository) Set(ctx context.Context, c domain.Counters) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockAnchorRepository is a mock implementation of ports.AnchorRepository
type MockAnchorRepository struct {
	mock.Mock
}

func (m *MockAnchorRepository) Get(ctx context.Context) (domain.UTCDayKey, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.UTCDayKey), args.Error(1)
}

func (m *MockAnchorRepository) Set(ctx context.Context, k domain.UTCDayKey) error {
	args := m.Called(ctx, k)
	return args.Error(0)
}

// MockHistoryRepository is a mock implementation of ports.HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) All(ctx context.Context) (domain.DailyHistory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.DailyHistory), args.Error(1)
}

func (m *MockHistoryRepository) Day(ctx context.Context, key domain.LocalDayKey) (domain.DayRecord, bool, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(domain.DayRecord), args.Bool(1), args.Error(2)
}

func (m *MockHistoryRepository) Upsert(ctx context.Context, key domain.LocalDayKey, rec domain.DayRecord) error {
	args := m.Called(ctx, key, rec)
	return args.Error(0)
}

func (m *MockHistoryRepository) Replace(ctx context.Context, h domain.DailyHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHistoryRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockActivityLogRepository is a mock implementation of ports.ActivityLogRepository
type MockActivityLogRepository struct {
	mock.Mock
}

func (m *MockActivityLogRepository) Append(ctx context.Context, e domain.ActivityEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockActivityLogRepository) ForDay(ctx context.Context, key domain.LocalDayKey) ([]domain.ActivityEntry, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityEntry), args.Error(1)
}

func (m *MockActivityLogRepository) ClearDay(ctx context.Context, key domain.LocalDayKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockActivityLogRepository) ClearAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockCalendarSource is a mock implementation of ports.CalendarSource
type MockCalendarSource struct {
	mock.Mock
}

func (m *MockCalendarSource) Events(ctx context.Context, url string, maxAge time.Duration) ([]domain.ShiftEvent, error) {
	args := m.Called(ctx, url, maxAge)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShiftEvent), args.Error(1)
}

func (m *MockCalendarSource) Invalidate() {
	m.Called()
}

func (m *MockCalendarSource) CacheStatus() ports.CacheStatus {
	args := m.Called()
	return args.Get(0).(ports.CacheStatus)
}

// MockScheduleService is a mock implementation of ports.ScheduleService
type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) Refresh(ctx context.Context, force bool) error {
	args := m.Called(ctx, force)
	return args.Error(0)
}

func (m *MockScheduleService) Status(ctx context.Context) (ports.ScheduleStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(ports.ScheduleStatus), args.Error(1)
}

func (m *MockScheduleService) State(ctx context.Context) (domain.ShiftState, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ShiftState), args.Error(1)
}

func (m *MockScheduleService) ScheduledHours(ctx context.Context) (float64, float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Get(1).(float64), args.Error(2)
}

// MockRolloverService is a mock implementation of ports.RolloverService
type MockRolloverService struct {
	mock.Mock
}

func (m *MockRolloverService) RollIfNeeded(ctx context.Context, now time.Time) (bool, error) {
	args := m.Called(ctx, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockRolloverService) Force(ctx context.Context, now time.Time) error {
	args := m.Called(ctx, now)
	return args.Error(0)
}

func (m *MockRolloverService) ArchiveOnly(ctx context.Context, now time.Time) error {
	args := m.Called(ctx, now)
	return args.Error(0)
}

func (m *MockRolloverService) Anchor(ctx context.Context) (domain.UTCDayKey, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.UTCDayKey), args.Error(1)
}

// MockCounterService is a mock implementation of ports.CounterService
type MockCounterService struct {
	mock.Mock
}

func (m *MockCounterService) Get(ctx context.Context) (domain.Counters, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Counters), args.Error(1)
}

func (m *MockCounterService) Increment(ctx context.Context, params ports.IncrementParams) (domain.Counters, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(domain.Counters), args.Error(1)
}

func (m *MockCounterService) Set(ctx context.Context, c domain.Counters) (domain.Counters, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(domain.Counters), args.Error(1)
}

// MockBroadcaster records every event it is handed.
type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) Broadcast(event domain.Event) {
	m.Called(event)
}

// FakeClock returns a fixed, settable instant.
type FakeClock struct {
	Time time.Time
}

func (c *FakeClock) Now() time.Time { return c.Time }

// Advance moves the fake clock forward.
func (c *FakeClock) Advance(d time.Duration) { c.Time = c.Time.Add(d) }
