package scheduler

import (
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the engine's background watchers on fixed intervals.
// It is a thin wrapper over cron that recovers panicking jobs so one
// bad watcher cannot take the process down.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a stopped scheduler.
func New(logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: logger.With("component", "scheduler"),
	}
}

// Every registers job to run at the given interval once Start is
// called.
func (s *Scheduler) Every(interval time.Duration, name string, job func()) {
	s.cron.Schedule(cron.Every(interval), cron.FuncJob(func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("watcher panicked", "watcher", name, "panic", r)
			}
		}()
		job()
	}))
	s.logger.Info("watcher registered", "watcher", name, "interval", interval)
}

// Start launches the watchers in their own goroutines.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
