package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-day-scheduler/internal/config"
	"github.com/KasumiMercury/primind-day-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-day-scheduler/internal/handler"
	"github.com/KasumiMercury/primind-day-scheduler/internal/health"
	"github.com/KasumiMercury/primind-day-scheduler/internal/infra/calendar"
	"github.com/KasumiMercury/primind-day-scheduler/internal/infra/memstore"
	"github.com/KasumiMercury/primind-day-scheduler/internal/infra/repository"
	"github.com/KasumiMercury/primind-day-scheduler/internal/infra/schedulerecorder"
	"github.com/KasumiMercury/primind-day-scheduler/internal/observability/logging"
	"github.com/KasumiMercury/primind-day-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/primind-day-scheduler/internal/observability/middleware"
	"github.com/KasumiMercury/primind-day-scheduler/internal/service/appointment"
	"github.com/KasumiMercury/primind-day-scheduler/internal/service/lane"
	"github.com/KasumiMercury/primind-day-scheduler/internal/service/project"
	"github.com/KasumiMercury/primind-day-scheduler/internal/service/schedule"
	"github.com/KasumiMercury/primind-day-scheduler/internal/service/settings"
	"github.com/KasumiMercury/primind-day-scheduler/internal/service/slot"
	"github.com/KasumiMercury/primind-day-scheduler/internal/service/task"
)

// Version is set via ldflags at build time
var Version = "dev"

const module = logging.Module("day-scheduler")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	obs, err := initObservability(ctx, cfg.LogLevel)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	scheduleMetrics, err := metrics.NewScheduleMetrics()
	if err != nil {
		slog.Error("failed to initialize schedule metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB for local, BigQuery for gcloud
	resultRecorder, err := schedulerecorder.NewRecorder(ctx, schedulerecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize schedule result recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := resultRecorder.Flush(flushCtx); err != nil {
			slog.Warn("failed to flush schedule result recorder", slog.String("error", err.Error()))
		}
		if err := resultRecorder.Close(); err != nil {
			slog.Warn("failed to close schedule result recorder", slog.String("error", err.Error()))
		}
	}()

	healthChecker := health.NewChecker(Version, string(cfg.Store.Backend))

	var (
		taskRepo     domain.TaskRepository
		projectRepo  domain.ProjectRepository
		settingsRepo domain.SettingsRepository
	)

	switch cfg.Store.Backend {
	case config.StoreBackendRedis:
		redisClient, err := connectRedis(ctx, cfg.Redis)
		if err != nil {
			return 1
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Warn("failed to close redis client", slog.String("error", err.Error()))
			}
		}()

		taskRepo = repository.NewTaskRepository(redisClient, cfg.Redis.KeyPrefix)
		projectRepo = repository.NewProjectRepository(redisClient, cfg.Redis.KeyPrefix)
		settingsRepo = repository.NewSettingsRepository(redisClient, cfg.Redis.KeyPrefix)
		healthChecker.WithRedis(redisClient)

	case config.StoreBackendMemory:
		store := memstore.New()
		taskRepo = store
		projectRepo = store
		settingsRepo = store
		slog.Warn("using in-memory store, data is lost on restart")
	}

	settingsService := settings.NewService(settingsRepo, domain.Settings{
		PomodoroWorkDuration: cfg.Schedule.PomodoroWorkDuration,
		PomodoroShortBreak:   cfg.Schedule.PomodoroShortBreak,
	})
	if _, err := settingsService.EnsureDefaults(ctx); err != nil {
		slog.Error("failed to seed settings", slog.String("error", err.Error()))
		return 1
	}

	var appointmentSource domain.AppointmentSource
	if cfg.Calendar.Enabled() {
		calendarClient, err := calendar.NewClient(ctx, cfg.Calendar, cfg.Schedule.Location)
		if err != nil {
			slog.Error("failed to initialize calendar client", slog.String("error", err.Error()))
			return 1
		}
		appointmentSource = calendarClient

		slog.Info("calendar import enabled",
			slog.String("calendar_id", cfg.Calendar.CalendarID),
			slog.String("timezone", cfg.Schedule.Location.String()),
		)
	} else {
		slog.Info("GOOGLE_CALENDAR_ID not set, calendar import disabled")
	}

	taskService := task.NewService(taskRepo)
	scheduleService := schedule.NewService(
		taskRepo,
		settingsRepo,
		lane.NewClassifier(),
		slot.NewChecker(),
		cfg.Schedule.FixedOverlapPolicy,
		scheduleMetrics,
		resultRecorder,
	)
	projectService := project.NewService(projectRepo, taskRepo)
	appointmentService := appointment.NewService(appointmentSource, taskRepo, cfg.Calendar.CalendarID, scheduleMetrics)

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready"},
		Module:      module,
		TracerName:  "github.com/KasumiMercury/primind-day-scheduler/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	handler.RegisterRoutes(r, handler.Handlers{
		Schedule:    handler.NewScheduleHandler(scheduleService, taskService),
		Task:        handler.NewTaskHandler(taskService, scheduleService),
		Settings:    handler.NewSettingsHandler(settingsService),
		Appointment: handler.NewAppointmentHandler(appointmentService),
		Project:     handler.NewProjectHandler(projectService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("store", string(cfg.Store.Backend)),
			slog.String("fixed_overlap_policy", string(cfg.Schedule.FixedOverlapPolicy)),
			slog.Int("pomodoro_work_duration", cfg.Schedule.PomodoroWorkDuration),
			slog.Int("pomodoro_short_break", cfg.Schedule.PomodoroShortBreak),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

func connectRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	redisClient := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		_ = redisClient.Close()
		return nil, err
	}

	slog.Info("redis connected",
		slog.String("addr", cfg.Addr),
		slog.Int("db", cfg.DB),
		slog.String("key_prefix", cfg.KeyPrefix),
	)

	return redisClient, nil
}
