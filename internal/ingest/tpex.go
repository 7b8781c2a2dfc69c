package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"dispocli/pkg/contracts/domain"
)

// tpexResponse is the envelope of the OTC-board disposal feed. Rows are
// positional: [0] announce date, [1] security id, [2] security name,
// [3] disposal period text.
type tpexResponse struct {
	AaData [][]string `json:"aaData"`
}

const (
	tpexMinRowLen      = 4
	tpexColAnnounce    = 0
	tpexColSecurityID  = 1
	tpexColName        = 2
	tpexColPeriodRange = 3
)

// FetchTPEx retrieves and maps the OTC-board disposal rows. The TPEx
// endpoint answers with an HTML block page when it suspects automated
// traffic; that case degrades to zero rows instead of failing the run, so
// the main-board report still goes out.
func (c *Client) FetchTPEx(ctx context.Context) ([]domain.RawDisposalRecord, int, error) {
	body, err := c.get(ctx, c.tpexURL)
	if err != nil {
		return nil, 0, fmt.Errorf("tpex fetch: %w", err)
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		c.logger.WarnContext(ctx, "tpex returned non-JSON body, treating as blocked",
			slog.Int("body_len", len(body)))
		return []domain.RawDisposalRecord{}, 0, nil
	}

	var envelope tpexResponse
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, 0, fmt.Errorf("tpex fetch: malformed response: %w", err)
	}

	records, dropped := mapTPExRows(envelope.AaData)
	c.logger.InfoContext(ctx, "fetched OTC-board disposal rows",
		slog.Int("rows", len(envelope.AaData)),
		slog.Int("records", len(records)),
		slog.Int("dropped", dropped))
	return records, dropped, nil
}

// mapTPExRows converts positional feed rows into raw records.
func mapTPExRows(rows [][]string) ([]domain.RawDisposalRecord, int) {
	records := make([]domain.RawDisposalRecord, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		if len(row) < tpexMinRowLen {
			dropped++
			continue
		}
		rec, ok := buildRecord(domain.SourceTPEx,
			row[tpexColSecurityID], row[tpexColName],
			row[tpexColAnnounce], row[tpexColPeriodRange])
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	return records, dropped
}
