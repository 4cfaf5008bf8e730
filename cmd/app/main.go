package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pondkeeper/pondkeeper/internal/bootstrap"
	"github.com/pondkeeper/pondkeeper/internal/calendar"
	"github.com/pondkeeper/pondkeeper/internal/clock"
	"github.com/pondkeeper/pondkeeper/internal/config"
	"github.com/pondkeeper/pondkeeper/internal/database"
	"github.com/pondkeeper/pondkeeper/internal/economy"
	"github.com/pondkeeper/pondkeeper/internal/hunger"
	"github.com/pondkeeper/pondkeeper/internal/progression"
	"github.com/pondkeeper/pondkeeper/internal/push"
	"github.com/pondkeeper/pondkeeper/internal/reminder"
	"github.com/pondkeeper/pondkeeper/internal/scheduler"
	"github.com/pondkeeper/pondkeeper/internal/server"
	"github.com/pondkeeper/pondkeeper/internal/tasks"
	"github.com/pondkeeper/pondkeeper/internal/user"
	"github.com/pondkeeper/pondkeeper/internal/worker"
)

// Database pool tuning
const (
	dbMaxConns    = 10
	dbMaxIdleTime = 5 * time.Minute
	dbMaxLifetime = 30 * time.Minute
)

// Worker pool sizing. One worker is enough for the sweep cadence; the queue
// absorbs a manual sweep landing on top of a scheduled one.
const (
	workerCount     = 2
	workerQueueSize = 16
)

// shutdownTimeout bounds how long graceful shutdown may take
const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	// Setup logging (stdout + session file)
	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Logger setup failed", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	if err := run(cfg); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	dbPool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConns, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	// Item catalog
	cat, err := bootstrap.LoadCatalog(cfg)
	if err != nil {
		dbPool.Close()
		return err
	}

	resolver := clock.NewResolver()

	// Push delivery: real relay when configured, log-only otherwise
	var pushSender reminder.PushSender = push.NewLogSender()
	var relayClient *push.Client
	if cfg.RelayURL != "" {
		relayClient = push.NewClient(cfg.RelayURL, cfg.RelayPassword)
		relayClient.Start(ctx)
		pushSender = relayClient
	}

	// Task tracker: real client when configured, empty source otherwise
	var taskSource progression.TaskSource = tasks.EmptySource{}
	if cfg.TaskTrackerURL != "" {
		taskSource = tasks.NewClient(cfg.TaskTrackerURL, cfg.TaskTrackerAPIKey)
	}

	// Services
	hungerSvc := hunger.NewService(repos.Account)
	userSvc := user.NewService(repos.Account, hungerSvc)
	economySvc := economy.NewService(repos.Account, cat)
	progressionSvc := progression.NewService(repos.Account, cat, taskSource, resolver, calendar.GiftContainerItemID)
	calendarSvc := calendar.NewService(repos.Account, resolver)
	reminderSvc := reminder.NewService(repos.Account, taskSource, pushSender, resolver)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, cat, server.Services{
		User:        userSvc,
		Hunger:      hungerSvc,
		Economy:     economySvc,
		Progression: progressionSvc,
		Calendar:    calendarSvc,
		Reminder:    reminderSvc,
	}, cfg.SweepBudget)

	// Background reminder sweeps
	pool := worker.NewPool(workerCount, workerQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(cfg.SweepInterval, worker.NewReminderWorker(reminderSvc, cfg.SweepBudget))

	// Start the server; errors before a shutdown signal are fatal
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:      srv,
		Scheduler:   sched,
		WorkerPool:  pool,
		RelayClient: relayClient,
		DBPool:      dbPool,
	})

	return nil
}
