package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"dispocli/internal/config"
	"dispocli/pkg/contracts/domain"
)

// Notifier delivers a finished report to an external channel.
type Notifier interface {
	Send(ctx context.Context, report domain.OrderedReport) error
}

// TelegramNotifier posts the rendered report to the Telegram Bot API.
type TelegramNotifier struct {
	httpClient *http.Client
	apiBase    string
	botToken   string
	chatID     string
	logger     *slog.Logger
}

// NewTelegramNotifier creates a Telegram notifier from configuration.
func NewTelegramNotifier(cfg config.TelegramConfig, logger *slog.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiBase:    cfg.APIBase,
		botToken:   cfg.BotToken,
		chatID:     cfg.ChatID,
		logger:     logger.With(slog.String("component", "telegram")),
	}
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// Send renders the report and posts it via sendMessage.
func (n *TelegramNotifier) Send(ctx context.Context, report domain.OrderedReport) error {
	payload, err := json.Marshal(sendMessageRequest{
		ChatID: n.chatID,
		Text:   RenderMessage(report),
	})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("telegram returned status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	n.logger.InfoContext(ctx, "report delivered",
		slog.String("date", report.Date.Format("2006-01-02")))
	return nil
}
