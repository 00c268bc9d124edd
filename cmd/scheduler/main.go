package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/segyhp/propmgmt/internal/config"
	"github.com/segyhp/propmgmt/internal/logging"
	"github.com/segyhp/propmgmt/internal/scheduler"
	"github.com/segyhp/propmgmt/internal/service"
	"github.com/segyhp/propmgmt/internal/storage"
)

const lockPrefix = "propmgmt:scheduler:"

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any(logging.FieldError, err))
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format, os.Stdout)
	slog.SetDefault(logger)
	logger.Info("starting arrears scheduler")

	ctx := context.Background()

	backend, err := storage.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open storage", slog.Any(logging.FieldError, err))
		os.Exit(1)
	}
	defer backend.Close()

	redisClient, err := storage.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Error("failed to connect to redis", slog.Any(logging.FieldError, err))
		os.Exit(1)
	}

	var locker scheduler.Locker
	if redisClient != nil {
		defer redisClient.Close()
		locker = scheduler.NewRedisLocker(redisClient, lockPrefix)
	}

	jobs := scheduler.NewJobs(service.NewReportService(backend.Repos), locker, logger)

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds(), cron.WithLocation(cfg.GetSchedulerLocation()))

	// Schedule tasks
	if err := jobs.Register(c, cfg.Scheduler.DailySpec, cfg.Scheduler.WeeklySpec); err != nil {
		logger.Error("failed to schedule jobs", slog.Any(logging.FieldError, err))
		os.Exit(1)
	}

	// Start the scheduler
	c.Start()
	logger.Info("scheduler started",
		slog.String("daily", cfg.Scheduler.DailySpec),
		slog.String("weekly", cfg.Scheduler.WeeklySpec),
		slog.String("timezone", cfg.Scheduler.Timezone),
	)

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down scheduler")
	<-c.Stop().Done()
	logger.Info("scheduler stopped")
}
