package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"dispocli/internal/config"
)

// Client fetches raw disposal rows from the provider feeds. One Client is
// shared by both sources so the rate limiter covers all outbound traffic.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	twseURL    string
	tpexURL    string
	logger     *slog.Logger
}

// NewClient creates a feed client from source configuration.
func NewClient(cfg config.SourcesConfig, logger *slog.Logger) *Client {
	ratePerS := cfg.RatePerS
	if ratePerS <= 0 {
		ratePerS = 1
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(ratePerS), burst),
		userAgent:  cfg.UserAgent,
		twseURL:    cfg.TWSEURL,
		tpexURL:    cfg.TPExURL,
		logger:     logger.With(slog.String("component", "ingest")),
	}
}

// get performs a rate-limited GET and returns the response body.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return body, nil
}
