package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"dispocli/internal/config"
	"dispocli/internal/infrastructure"
	"dispocli/internal/ingest"
	"dispocli/internal/marketcal"
	"dispocli/internal/services"
	transport "dispocli/internal/transport/http"
)

func main() {
	var logger *slog.Logger
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("PANIC RECOVERED: %v\n%s\n", r, debug.Stack())
			if logger != nil {
				logger.Error("server panicked",
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())))
			}
			os.Exit(1)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err = infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Printf("Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogger()

	providers, err := infrastructure.InitializeOTel(logger)
	if err != nil {
		logger.Error("failed to initialize observability", slog.Any("error", err))
		os.Exit(1)
	}
	defer providers.Shutdown(context.Background())

	metrics, err := infrastructure.NewRunMetrics(providers.Meter)
	if err != nil {
		logger.Error("failed to create run metrics", slog.Any("error", err))
		os.Exit(1)
	}

	calendar := loadCalendar(cfg.Calendar.HolidayFile, logger)
	client := ingest.NewClient(cfg.Sources, logger)
	service := services.NewReportService(client, calendar, metrics, logger)
	router := transport.NewRouter(transport.NewReportHandler(service, logger), providers.PrometheusHTTP, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.Int("port", cfg.Server.Port))
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", slog.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			os.Exit(1)
		}
	}
}

func loadCalendar(path string, logger *slog.Logger) *marketcal.Calendar {
	if _, err := os.Stat(path); err != nil {
		logger.Warn("holiday file not found, using weekends-only calendar",
			slog.String("path", path))
		return marketcal.New(nil)
	}
	calendar, err := marketcal.LoadHolidays(path)
	if err != nil {
		logger.Error("failed to load holiday file", slog.String("path", path), slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("holiday table loaded",
		slog.String("path", path),
		slog.Int("holidays", calendar.HolidayCount()))
	return calendar
}
