package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/agent-toolbar-backend/internal/core/domain"
	"github.com/lorrc/agent-toolbar-backend/internal/core/mocks"
)

func newTimerFixture(now time.Time) (*TimerService, *mocks.MockScheduleService, *mocks.MockSettingsRepository, *mocks.MockBroadcaster) {
	schedule := new(mocks.MockScheduleService)
	rollover := new(mocks.MockRolloverService)
	settingsRepo := new(mocks.MockSettingsRepository)
	broadcaster := new(mocks.MockBroadcaster)
	clock := &mocks.FakeClock{Time: now}
	svc := NewTimerService(schedule, rollover, settingsRepo, broadcaster, clock, testLogger(), time.Second, 10*time.Minute)
	return svc, schedule, settingsRepo, broadcaster
}

func reminderOfKind(kind domain.ReminderKind) interface{} {
	return mock.MatchedBy(func(ev domain.Event) bool {
		r, ok := ev.Payload.(domain.ShiftReminder)
		return ev.Type == domain.EventShiftReminder && ok && r.Kind == kind
	})
}

func tickEvent() interface{} {
	return mock.MatchedBy(func(ev domain.Event) bool {
		return ev.Type == domain.EventTimerTick
	})
}

func TestTimerService_Tick(t *testing.T) {
	ctx := context.Background()

	t.Run("broadcasts the countdown every tick", func(t *testing.T) {
		now := time.Date(2026, 3, 5, 10, 30, 0, 0, time.UTC)
		shift := domain.ShiftEvent{
			Title: "Chat Shift",
			Start: time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC),
		}
		svc, schedule, settingsRepo, broadcaster := newTimerFixture(now)
		schedule.On("State", ctx).Return(domain.ShiftState{Active: &shift}, nil)
		settingsRepo.On("Get", ctx).Return(domain.DefaultSettings(), nil)
		broadcaster.On("Broadcast", tickEvent()).Return()

		update, err := svc.Tick(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, domain.ModeLive, update.Mode)
		assert.Equal(t, "90:00", update.Text)
		assert.Equal(t, domain.QueueChats, update.Queue)
		broadcaster.AssertExpectations(t)
	})

	t.Run("pre-start reminder fires once inside the warn window", func(t *testing.T) {
		now := time.Date(2026, 3, 5, 9, 56, 0, 0, time.UTC)
		next := domain.ShiftEvent{
			Title: "Chat Shift",
			Start: time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC),
		}
		svc, schedule, settingsRepo, broadcaster := newTimerFixture(now)
		schedule.On("State", ctx).Return(domain.ShiftState{Next: &next}, nil)
		settingsRepo.On("Get", ctx).Return(domain.DefaultSettings(), nil)
		broadcaster.On("Broadcast", tickEvent()).Return()
		broadcaster.On("Broadcast", reminderOfKind(domain.ReminderStart)).Return()

		_, err := svc.Tick(ctx, now)
		require.NoError(t, err)
		_, err = svc.Tick(ctx, now.Add(time.Second))
		require.NoError(t, err)

		broadcaster.AssertNumberOfCalls(t, "Broadcast", 3)
	})

	t.Run("no pre-start reminder outside the warn window", func(t *testing.T) {
		now := time.Date(2026, 3, 5, 9, 40, 0, 0, time.UTC)
		next := domain.ShiftEvent{
			Title: "Chat Shift",
			Start: time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC),
		}
		svc, schedule, settingsRepo, broadcaster := newTimerFixture(now)
		schedule.On("State", ctx).Return(domain.ShiftState{Next: &next}, nil)
		settingsRepo.On("Get", ctx).Return(domain.DefaultSettings(), nil)
		broadcaster.On("Broadcast", tickEvent()).Return()

		_, err := svc.Tick(ctx, now)
		require.NoError(t, err)
		broadcaster.AssertNotCalled(t, "Broadcast", reminderOfKind(domain.ReminderStart))
	})

	t.Run("late-start reminder fires within the grace window", func(t *testing.T) {
		now := time.Date(2026, 3, 5, 10, 4, 0, 0, time.UTC)
		active := domain.ShiftEvent{
			Title: "Ticket Shift",
			Start: time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC),
		}
		svc, schedule, settingsRepo, broadcaster := newTimerFixture(now)
		schedule.On("State", ctx).Return(domain.ShiftState{Active: &active}, nil)
		settingsRepo.On("Get", ctx).Return(domain.DefaultSettings(), nil)
		broadcaster.On("Broadcast", tickEvent()).Return()
		broadcaster.On("Broadcast", reminderOfKind(domain.ReminderLateStart)).Return()

		_, err := svc.Tick(ctx, now)
		require.NoError(t, err)
		_, err = svc.Tick(ctx, now.Add(time.Second))
		require.NoError(t, err)
		broadcaster.AssertNumberOfCalls(t, "Broadcast", 3)
	})

	t.Run("pre-start reminder suppresses the late-start one", func(t *testing.T) {
		start := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
		shift := domain.ShiftEvent{
			Title: "Chat Shift",
			Start: start,
			End:   start.Add(2 * time.Hour),
		}
		svc, schedule, settingsRepo, broadcaster := newTimerFixture(start.Add(-2 * time.Minute))
		schedule.On("State", ctx).Return(domain.ShiftState{Next: &shift}, nil).Once()
		schedule.On("State", ctx).Return(domain.ShiftState{Active: &shift}, nil)
		settingsRepo.On("Get", ctx).Return(domain.DefaultSettings(), nil)
		broadcaster.On("Broadcast", tickEvent()).Return()
		broadcaster.On("Broadcast", reminderOfKind(domain.ReminderStart)).Return()

		_, err := svc.Tick(ctx, start.Add(-2*time.Minute))
		require.NoError(t, err)
		_, err = svc.Tick(ctx, start.Add(time.Minute))
		require.NoError(t, err)

		broadcaster.AssertNotCalled(t, "Broadcast", reminderOfKind(domain.ReminderLateStart))
	})

	t.Run("end reminder fires near the shift end", func(t *testing.T) {
		now := time.Date(2026, 3, 5, 11, 57, 0, 0, time.UTC)
		active := domain.ShiftEvent{
			Title: "Chat Shift",
			Start: time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC),
		}
		svc, schedule, settingsRepo, broadcaster := newTimerFixture(now)
		schedule.On("State", ctx).Return(domain.ShiftState{Active: &active}, nil)
		settingsRepo.On("Get", ctx).Return(domain.DefaultSettings(), nil)
		broadcaster.On("Broadcast", tickEvent()).Return()
		broadcaster.On("Broadcast", reminderOfKind(domain.ReminderEnd)).Return()

		_, err := svc.Tick(ctx, now)
		require.NoError(t, err)
		_, err = svc.Tick(ctx, now.Add(time.Second))
		require.NoError(t, err)
		broadcaster.AssertNumberOfCalls(t, "Broadcast", 3)
	})

	t.Run("empty day re-arms the dedupe keys", func(t *testing.T) {
		now := time.Date(2026, 3, 5, 9, 56, 0, 0, time.UTC)
		next := domain.ShiftEvent{
			Title: "Chat Shift",
			Start: time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC),
		}
		svc, schedule, settingsRepo, broadcaster := newTimerFixture(now)
		schedule.On("State", ctx).Return(domain.ShiftState{Next: &next}, nil).Once()
		schedule.On("State", ctx).Return(domain.ShiftState{}, nil).Once()
		schedule.On("State", ctx).Return(domain.ShiftState{Next: &next}, nil).Once()
		settingsRepo.On("Get", ctx).Return(domain.DefaultSettings(), nil)
		broadcaster.On("Broadcast", tickEvent()).Return()
		broadcaster.On("Broadcast", reminderOfKind(domain.ReminderStart)).Return()

		_, err := svc.Tick(ctx, now)
		require.NoError(t, err)
		_, err = svc.Tick(ctx, now)
		require.NoError(t, err)
		_, err = svc.Tick(ctx, now)
		require.NoError(t, err)

		// Three ticks plus two start reminders: the empty state in
		// between cleared the dedupe key.
		broadcaster.AssertNumberOfCalls(t, "Broadcast", 5)
	})
}
