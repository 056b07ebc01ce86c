package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	httpAdapter "github.com/lorrc/agent-toolbar-backend/internal/adapters/primary/http"
	mw "github.com/lorrc/agent-toolbar-backend/internal/adapters/primary/http/middleware"
	"github.com/lorrc/agent-toolbar-backend/internal/adapters/primary/websocket"
	"github.com/lorrc/agent-toolbar-backend/internal/adapters/secondary/calendar"
	"github.com/lorrc/agent-toolbar-backend/internal/adapters/secondary/sqlite"
	"github.com/lorrc/agent-toolbar-backend/internal/config"
	"github.com/lorrc/agent-toolbar-backend/internal/core/ports"
	"github.com/lorrc/agent-toolbar-backend/internal/core/services"
	"github.com/lorrc/agent-toolbar-backend/internal/infrastructure/logging"
	"github.com/lorrc/agent-toolbar-backend/internal/scheduler"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stdout,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	})

	logger.Info("starting engine",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	loc := cfg.Location()
	clock := ports.SystemClock{}

	// 3. Open Local Store
	db, err := sqlite.Open(cfg.Store.Path)
	if err != nil {
		logger.Error("failed to open store", "error", err, "path", cfg.Store.Path)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("store ready", "path", cfg.Store.Path)

	// 4. Real-time Hub
	runCtx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()

	hub := websocket.NewHub(logger)
	go hub.Run(runCtx)

	// 5. Rate Limiter
	var rateLimiter *mw.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = mw.NewRateLimiter(mw.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.RateLimit.BurstSize,
			CleanupInterval:   time.Minute,
			TTL:               3 * time.Minute,
		})
	}

	// 6. Dependency Injection (Wiring the Hexagon)

	// Error Handler
	errorHandler := httpAdapter.NewErrorHandler(logger)

	// Repositories (Secondary Adapters)
	settingsRepo := sqlite.NewSettingsRepository(db)
	counterRepo := sqlite.NewCounterRepository(db)
	anchorRepo := sqlite.NewAnchorRepository(db)
	historyRepo := sqlite.NewHistoryRepository(db)
	activityRepo := sqlite.NewActivityLogRepository(db)

	// Calendar Source (Secondary Adapter)
	calendarSource := calendar.NewFetcher(clock, logger, loc, calendar.Config{
		Timeout:     cfg.Calendar.FetchTimeout,
		Attempts:    cfg.Calendar.FetchAttempts,
		BackoffBase: cfg.Calendar.BackoffBase,
	})

	// Services (Core)
	scheduleService := services.NewScheduleService(settingsRepo, calendarSource, hub, clock, logger, cfg.Calendar.BackgroundMaxAge)
	rolloverService := services.NewRolloverService(anchorRepo, counterRepo, historyRepo, settingsRepo, hub, logger, loc)
	counterService := services.NewCounterService(counterRepo, historyRepo, activityRepo, hub, clock, loc)
	statsService := services.NewStatsService(historyRepo, counterRepo, settingsRepo, scheduleService, clock, loc)
	settingsService := services.NewSettingsService(settingsRepo, calendarSource)
	adminService := services.NewAdminService(settingsRepo, counterRepo, historyRepo, activityRepo, hub, clock)
	timerService := services.NewTimerService(scheduleService, rolloverService, settingsRepo, hub, clock, logger,
		cfg.Timer.TickInterval, cfg.Timer.LateStartGrace)

	// Initial pass: settle the anchor, then warm the schedule cache.
	startCtx, cancelStart := context.WithTimeout(runCtx, 30*time.Second)
	if _, err := rolloverService.RollIfNeeded(startCtx, clock.Now()); err != nil {
		logger.Error("initial rollover check failed", "error", err)
		cancelStart()
		os.Exit(1)
	}
	if err := scheduleService.Refresh(startCtx, false); err != nil {
		logger.Warn("initial schedule refresh failed", "error", err)
	}
	cancelStart()

	// Background loops: 1s timer plus coarse watchers that catch up
	// after laptop sleep or a stalled tick loop.
	go timerService.Run(runCtx)

	watchers := scheduler.New(logger)
	watchers.Every(cfg.Timer.WatcherInterval, "rollover", func() {
		if _, err := rolloverService.RollIfNeeded(runCtx, clock.Now()); err != nil {
			logger.Error("rollover watcher failed", "error", err)
		}
	})
	watchers.Every(cfg.Timer.WatcherInterval, "schedule-refresh", func() {
		if err := scheduleService.Refresh(runCtx, false); err != nil {
			logger.Warn("schedule refresh watcher failed", "error", err)
		}
	})
	watchers.Start()
	defer watchers.Stop()

	// Handlers (Primary Adapters)
	scheduleHandler := httpAdapter.NewScheduleHandler(scheduleService, errorHandler, logger)
	countersHandler := httpAdapter.NewCountersHandler(counterService, errorHandler, logger)
	historyHandler := httpAdapter.NewHistoryHandler(historyRepo, activityRepo, errorHandler, logger)
	statsHandler := httpAdapter.NewStatsHandler(statsService, clock, errorHandler, logger)
	rolloverHandler := httpAdapter.NewRolloverHandler(rolloverService, clock, errorHandler, logger)
	settingsHandler := httpAdapter.NewSettingsHandler(settingsService, errorHandler, logger)
	adminHandler := httpAdapter.NewAdminHandler(adminService, errorHandler, logger)
	wsHandler := httpAdapter.NewWebSocketHandler(hub, cfg, logger)
	healthHandler := httpAdapter.NewHealthHandler(sqlite.Pinger{DB: db}, cfg.App.Version)

	// 7. Setup Router
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.RecoveryLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.WebSocket.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", mw.RequestIDHeader},
		MaxAge:         300,
	}))

	if rateLimiter != nil {
		r.Use(rateLimiter.Middleware)
	}

	// Health check endpoints (outside /api/v1 for standard probe paths)
	r.Get("/health", healthHandler.HandleHealth)
	r.Get("/health/live", healthHandler.HandleLiveness)
	r.Get("/health/ready", healthHandler.HandleReadiness)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ws", wsHandler.ServeHTTP)

		r.Route("/schedule", scheduleHandler.RegisterRoutes)
		r.Route("/counters", countersHandler.RegisterRoutes)
		r.Route("/history", historyHandler.RegisterRoutes)
		r.Route("/stats", statsHandler.RegisterRoutes)
		r.Route("/rollover", rolloverHandler.RegisterRoutes)
		r.Route("/settings", settingsHandler.RegisterRoutes)
		r.Route("/admin", adminHandler.RegisterRoutes)
	})

	// 8. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	cancelRun()
	logger.Info("engine shutdown complete")
}
