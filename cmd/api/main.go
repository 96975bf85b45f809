package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/worktime-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worktime-backend-go/internal/repository/postgresql"
	deadlineService "github.com/cmlabs-hris/worktime-backend-go/internal/service/deadline"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	taskRepo := postgresql.NewTaskRepository(db)
	calendarRepo := postgresql.NewCalendarRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	transactor := postgresql.NewTransactor(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	deadlineSvc := deadlineService.NewDeadlineService(
		transactor,
		taskRepo,
		calendarRepo,
		leaveRepo,
		notificationRepo,
		deadlineService.Config{
			AckThresholdMinutes: cfg.Deadline.AckThresholdMinutes,
			DefaultTimezone:     cfg.Deadline.DefaultTimezone,
		},
	)

	scheduler := cron.NewScheduler(ctx)
	if err := cron.NewDelayJobs(deadlineSvc, cfg.Cron.DelayInterval).RegisterJobs(scheduler); err != nil {
		return fmt.Errorf("register cron jobs: %w", err)
	}
	scheduler.Start()

	deadlineHandler := appHTTP.NewDeadlineHandler(deadlineSvc)
	router := appHTTP.NewRouter(JWTService, deadlineHandler, cfg)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown failed", "error", err)
	}
	if err := scheduler.Stop(shutdownCtx); err != nil {
		slog.Error("Cron scheduler shutdown failed", "error", err)
	}

	slog.Info("Server stopped")
	return nil
}
