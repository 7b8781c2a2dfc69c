package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	custommw "dispocli/internal/middleware"
)

// NewRouter assembles the HTTP surface: the report API, health, and the
// Prometheus metrics endpoint. metricsHandler may be nil when the process
// runs without observability.
func NewRouter(reports *ReportHandler, metricsHandler http.Handler, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(custommw.RequestID)
	r.Use(custommw.StructuredLogger(logger))
	r.Use(custommw.Recoverer(logger))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/report", reports.GetReport)
		r.Get("/report/csv", reports.GetReportCSV)
	})

	r.Get("/healthz", NewHealthHandler().Handle)
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}
	return r
}
