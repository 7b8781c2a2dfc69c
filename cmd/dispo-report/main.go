package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"dispocli/internal/config"
	"dispocli/internal/dates"
	"dispocli/internal/exporter"
	"dispocli/internal/infrastructure"
	"dispocli/internal/ingest"
	"dispocli/internal/marketcal"
	"dispocli/internal/notify"
	"dispocli/internal/services"
)

func main() {
	var logger *slog.Logger
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("PANIC RECOVERED: %v\n%s\n", r, debug.Stack())
			if logger != nil {
				logger.Error("report run panicked",
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())))
			}
			os.Exit(1)
		}
	}()

	dateStr := flag.String("date", "", "reference date (YYYY-MM-DD); defaults to today (UTC)")
	doExport := flag.Bool("export", true, "write CSV and XLSX report files")
	doNotify := flag.Bool("notify", true, "send the Telegram notification when configured")
	flag.Parse()

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

	today := dates.Midnight(time.Now().UTC())
	if *dateStr != "" {
		parsed, err := time.Parse("2006-01-02", *dateStr)
		if err != nil {
			logger.Error("invalid -date flag", slog.String("value", *dateStr), slog.Any("error", err))
			os.Exit(1)
		}
		today = dates.Midnight(parsed)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		logger.Error("failed to create directories", slog.Any("error", err))
		os.Exit(1)
	}

	calendar := loadCalendar(cfg.Calendar.HolidayFile, logger)
	client := ingest.NewClient(cfg.Sources, logger)
	service := services.NewReportService(client, calendar, nil, logger)

	ctx := infrastructure.EnsureTraceID(context.Background())
	report, err := service.Run(ctx, today)
	if err != nil {
		logger.Error("report run failed", slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Println(notify.RenderMessage(report))

	if *doExport {
		if _, err := exporter.NewCSVWriter(cfg.Paths.ReportsDir).WriteReport(report); err != nil {
			logger.Error("CSV export failed", slog.Any("error", err))
		}
		if _, err := exporter.NewExcelWriter(cfg.Paths.ReportsDir).WriteReport(report); err != nil {
			logger.Error("XLSX export failed", slog.Any("error", err))
		}
	}

	if *doNotify && cfg.Telegram.Enabled() {
		notifier := notify.NewTelegramNotifier(cfg.Telegram, logger)
		if err := notifier.Send(ctx, report); err != nil {
			logger.Error("notification failed", slog.Any("error", err))
			os.Exit(1)
		}
	}
}

// loadCalendar builds the trading calendar from the configured holiday
// table. A missing table degrades to a weekends-only calendar so a run
// still happens; release dates around holidays will then be off, which the
// warning makes visible.
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
