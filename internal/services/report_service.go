package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"dispocli/internal/disposal"
	"dispocli/internal/infrastructure"
	"dispocli/internal/marketcal"
	"dispocli/pkg/contracts/domain"
)

// FeedClient is the ingestion boundary consumed by the report service.
// The second return value is the number of feed rows dropped during mapping.
type FeedClient interface {
	FetchTWSE(ctx context.Context) ([]domain.RawDisposalRecord, int, error)
	FetchTPEx(ctx context.Context) ([]domain.RawDisposalRecord, int, error)
}

// ReportService runs the full pipeline: fetch both boards, reconcile,
// classify against a reference date, and assemble the ordered report.
type ReportService struct {
	client   FeedClient
	calendar *marketcal.Calendar
	metrics  *infrastructure.RunMetrics
	logger   *slog.Logger
}

// NewReportService creates a report service. metrics may be nil when the
// caller runs without observability (tests, ad-hoc runs).
func NewReportService(client FeedClient, calendar *marketcal.Calendar, metrics *infrastructure.RunMetrics, logger *slog.Logger) *ReportService {
	return &ReportService{
		client:   client,
		calendar: calendar,
		metrics:  metrics,
		logger:   logger.With(slog.String("service", "report")),
	}
}

// Run produces the ordered disposal report for the given reference date.
// The two boards are fetched concurrently; one board failing degrades the
// run to the other's records, matching the per-source isolation of the
// feeds. Only both boards failing fails the run.
func (s *ReportService) Run(ctx context.Context, today time.Time) (domain.OrderedReport, error) {
	start := time.Now()

	var (
		twseRecords, tpexRecords []domain.RawDisposalRecord
		twseDropped, tpexDropped int
		twseErr, tpexErr         error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		twseRecords, twseDropped, twseErr = s.client.FetchTWSE(gctx)
		if twseErr != nil {
			s.logger.ErrorContext(gctx, "main-board fetch failed", slog.Any("error", twseErr))
		}
		return nil
	})
	g.Go(func() error {
		tpexRecords, tpexDropped, tpexErr = s.client.FetchTPEx(gctx)
		if tpexErr != nil {
			s.logger.ErrorContext(gctx, "OTC-board fetch failed", slog.Any("error", tpexErr))
		}
		return nil
	})
	_ = g.Wait()

	if twseErr != nil && tpexErr != nil {
		return domain.OrderedReport{}, fmt.Errorf("all sources failed: twse: %v; tpex: %v", twseErr, tpexErr)
	}

	s.recordFetchMetrics(ctx, domain.SourceTWSE, len(twseRecords), twseDropped)
	s.recordFetchMetrics(ctx, domain.SourceTPEx, len(tpexRecords), tpexDropped)

	raw := make([]domain.RawDisposalRecord, 0, len(twseRecords)+len(tpexRecords))
	raw = append(raw, twseRecords...)
	raw = append(raw, tpexRecords...)

	canonical := disposal.Reconcile(raw)
	classified := disposal.Classify(canonical, today, s.calendar)
	report := disposal.Assemble(classified, today)

	s.recordBucketMetrics(ctx, report)
	if s.metrics != nil {
		s.metrics.RunDuration.Record(ctx, time.Since(start).Seconds())
	}

	s.logger.InfoContext(ctx, "report run complete",
		slog.String("date", report.Date.Format("2006-01-02")),
		slog.Int("raw_records", len(raw)),
		slog.Int("canonical_records", len(canonical)),
		slog.Duration("duration", time.Since(start)))
	return report, nil
}

func (s *ReportService) recordFetchMetrics(ctx context.Context, source domain.Source, fetched, dropped int) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordsFetched.Add(ctx, int64(fetched), infrastructure.SourceAttr(string(source)))
	s.metrics.ParseFailures.Add(ctx, int64(dropped), infrastructure.SourceAttr(string(source)))
}

func (s *ReportService) recordBucketMetrics(ctx context.Context, report domain.OrderedReport) {
	if s.metrics == nil {
		return
	}
	for _, section := range report.Sections {
		for _, group := range section.Buckets {
			s.metrics.BucketSize.Record(ctx, int64(len(group.Entries)),
				infrastructure.BucketAttr(string(section.Source), string(group.Bucket)))
		}
	}
}
