package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"dispocli/internal/dates"
	"dispocli/pkg/contracts/domain"
)

// twseResponse is the envelope of the main-board disposal feed. Rows are
// positional: [1] announce date, [2] security id, [3] security name,
// [6] disposal period text.
type twseResponse struct {
	Data [][]string `json:"data"`
}

const (
	twseMinRowLen      = 7
	twseColAnnounce    = 1
	twseColSecurityID  = 2
	twseColName        = 3
	twseColPeriodRange = 6
)

// FetchTWSE retrieves and maps the main-board disposal rows. Rows whose
// period end cannot be resolved are dropped; the returned dropped count
// feeds the parse-failure metric.
func (c *Client) FetchTWSE(ctx context.Context) ([]domain.RawDisposalRecord, int, error) {
	body, err := c.get(ctx, c.twseURL)
	if err != nil {
		return nil, 0, fmt.Errorf("twse fetch: %w", err)
	}

	var envelope twseResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, 0, fmt.Errorf("twse fetch: malformed response: %w", err)
	}

	records, dropped := mapTWSERows(envelope.Data)
	c.logger.InfoContext(ctx, "fetched main-board disposal rows",
		slog.Int("rows", len(envelope.Data)),
		slog.Int("records", len(records)),
		slog.Int("dropped", dropped))
	return records, dropped, nil
}

// mapTWSERows converts positional feed rows into raw records.
func mapTWSERows(rows [][]string) ([]domain.RawDisposalRecord, int) {
	records := make([]domain.RawDisposalRecord, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		if len(row) < twseMinRowLen {
			dropped++
			continue
		}
		rec, ok := buildRecord(domain.SourceTWSE,
			row[twseColSecurityID], row[twseColName],
			row[twseColAnnounce], row[twseColPeriodRange])
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	return records, dropped
}

// buildRecord maps one feed row into a RawDisposalRecord. A row without a
// parseable period end has no clock anchor and is rejected; a failed
// announce date only leaves that field absent.
func buildRecord(source domain.Source, id, name, announceRaw, rangeRaw string) (domain.RawDisposalRecord, bool) {
	if id == "" {
		return domain.RawDisposalRecord{}, false
	}

	start, end, err := dates.SplitPeriod(rangeRaw)
	if err != nil {
		return domain.RawDisposalRecord{}, false
	}

	rec := domain.RawDisposalRecord{
		SecurityID:   id,
		SecurityName: name,
		Source:       source,
		PeriodStart:  start,
		PeriodEnd:    end,
		RawRange:     rangeRaw,
	}
	if announce, err := dates.Normalize(announceRaw); err == nil {
		rec.AnnounceDate = announce
	}
	return rec, true
}
