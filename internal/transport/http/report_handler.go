package http

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"dispocli/internal/dates"
	"dispocli/internal/errors"
	"dispocli/internal/exporter"
	"dispocli/internal/infrastructure"
	"dispocli/pkg/contracts/domain"
)

// ReportRunner is the service boundary the handler depends on.
type ReportRunner interface {
	Run(ctx context.Context, today time.Time) (domain.OrderedReport, error)
}

// ReportHandler serves classified disposal reports.
type ReportHandler struct {
	service ReportRunner
	logger  *slog.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service ReportRunner, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "report")),
	}
}

// GetReport runs a classification for the requested date (default: today,
// UTC) and renders the ordered report as JSON.
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, ok := h.run(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, report)
}

// GetReportCSV streams the same report as CSV rows.
func (h *ReportHandler) GetReportCSV(w http.ResponseWriter, r *http.Request) {
	report, ok := h.run(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=disposal_%s.csv", report.Date.Format("2006-01-02")))

	writer := csv.NewWriter(w)
	_ = writer.Write(exporter.Headers())
	for _, row := range exporter.Rows(report) {
		_ = writer.Write(row)
	}
	writer.Flush()
}

func (h *ReportHandler) run(w http.ResponseWriter, r *http.Request) (domain.OrderedReport, bool) {
	ctx := r.Context()

	today := dates.Midnight(time.Now().UTC())
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			errors.WriteError(w, r, errors.InvalidParameter("date", err).
				WithTraceID(infrastructure.GetTraceID(ctx)))
			return domain.OrderedReport{}, false
		}
		today = dates.Midnight(parsed)
	}

	report, err := h.service.Run(ctx, today)
	if err != nil {
		h.logger.ErrorContext(ctx, "report run failed", slog.Any("error", err))
		errors.WriteError(w, r, errors.ErrUpstreamFetch.
			WithTraceID(infrastructure.GetTraceID(ctx)))
		return domain.OrderedReport{}, false
	}
	return report, true
}
