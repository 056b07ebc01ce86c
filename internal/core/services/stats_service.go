package services

import (
	"context"
	"time"

	"github.com/lorrc/agent-toolbar-backend/internal/core/domain"
	"github.com/lorrc/agent-toolbar-backend/internal/core/ports"
)

const (
	summaryDays    = 7
	streakScanDays = 60
)

// StatsService computes the weekly summary and streak from history
// plus the in-progress day, which it synthesizes from live counters
// and the current hours snapshot.
type StatsService struct {
	historyRepo  ports.HistoryRepository
	counterRepo  ports.CounterRepository
	settingsRepo ports.SettingsRepository
	schedule     ports.ScheduleService
	clock        ports.Clock
	loc          *time.Location
}

var _ ports.StatsService = (*StatsService)(nil)

// NewStatsService creates a new stats service.
func NewStatsService(
	historyRepo ports.HistoryRepository,
	counterRepo ports.CounterRepository,
	settingsRepo ports.SettingsRepository,
	schedule ports.ScheduleService,
	clock ports.Clock,
	loc *time.Location,
) *StatsService {
	return &StatsService{
		historyRepo:  historyRepo,
		counterRepo:  counterRepo,
		settingsRepo: settingsRepo,
		schedule:     schedule,
		clock:        clock,
		loc:          loc,
	}
}

// Summary returns the last seven days newest first, today included,
// plus the current streak length.
func (s *StatsService) Summary(ctx context.Context, now time.Time) (domain.StatsSummary, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return domain.StatsSummary{}, err
	}
	goals := settings.Goals()

	history, err := s.historyRepo.All(ctx)
	if err != nil {
		return domain.StatsSummary{}, err
	}

	todayRec, err := s.todayRecord(ctx)
	if err != nil {
		return domain.StatsSummary{}, err
	}

	local := now.In(s.loc)
	today := domain.LocalDayKeyFor(local)

	days := make([]domain.DayStat, 0, summaryDays)
	for i := 0; i < summaryDays; i++ {
		day := domain.LocalDayKeyFor(local.AddDate(0, 0, -i))
		rec, ok := history[day]
		if day == today {
			rec, ok = todayRec, true
		}
		if !ok {
			rec = domain.DayRecord{}
		}
		days = append(days, domain.DayStat{
			Day:       day,
			Record:    rec,
			MetGoal:   DayHasData(rec) && domain.DayMeetsGoal(rec, goals),
			ChatPct:   domain.PercentToGoal(rec.Chats, goals.ChatsPerHour, rec.ChatHours),
			TicketPct: domain.PercentToGoal(rec.Tickets, goals.TicketsPerHour, rec.TicketHours),
		})
	}

	scan := make([]domain.LocalDayKey, 0, streakScanDays)
	for i := 0; i < streakScanDays; i++ {
		scan = append(scan, domain.LocalDayKeyFor(local.AddDate(0, 0, -i)))
	}
	streak := domain.ComputeStreak(history, goals, today, todayRec, scan)

	return domain.StatsSummary{Days: days, Streak: streak}, nil
}

// todayRecord builds the not-yet-archived record for the current day.
func (s *StatsService) todayRecord(ctx context.Context) (domain.DayRecord, error) {
	counters, err := s.counterRepo.Get(ctx)
	if err != nil {
		return domain.DayRecord{}, err
	}
	chatHours, ticketHours, err := s.schedule.ScheduledHours(ctx)
	if err != nil {
		return domain.DayRecord{}, err
	}
	return domain.DayRecord{
		Chats:       counters.Chats,
		Tickets:     counters.Tickets,
		ChatHours:   chatHours,
		TicketHours: ticketHours,
	}, nil
}

// DayHasData reports whether a record contains any recorded work or
// scheduled time. Empty days never count toward a streak or show as
// "goal met".
func DayHasData(rec domain.DayRecord) bool {
	return rec.Chats > 0 || rec.Tickets > 0 || rec.ChatHours > 0 || rec.TicketHours > 0
}
