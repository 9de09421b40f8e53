package notify

import (
	"context"
	"fmt"
	"time"

	"tradejournal/internal/config"
	"tradejournal/internal/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const sendTimeout = 10 * time.Second

// Sender posts journal events to a Discord-style webhook. Delivery is best
// effort: failures are logged and never surfaced to the caller, since a
// broken webhook must not block saving a trade.
type Sender struct {
	client   *resty.Client
	url      string
	username string
	logger   *zap.Logger
}

// NewSender creates a webhook sender. An empty URL disables delivery.
func NewSender(cfg *config.Notify, logger *zap.Logger) *Sender {
	return &Sender{
		client:   resty.New().SetTimeout(sendTimeout),
		url:      cfg.WebhookURL,
		username: cfg.Username,
		logger:   logger,
	}
}

// Enabled reports whether a webhook URL is configured.
func (s *Sender) Enabled() bool {
	return s.url != ""
}

// Send posts a plain message to the webhook.
func (s *Sender) Send(ctx context.Context, msg string) {
	if !s.Enabled() {
		return
	}

	payload := map[string]string{
		"content":  msg,
		"username": s.username,
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(s.url)
	if err != nil {
		s.logger.Warn("Failed to send webhook notification", zap.Error(err))
		return
	}
	if resp.IsError() {
		s.logger.Warn("Webhook rejected notification",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()))
	}
}

// SendTradeClosed posts a trade-closed card for a freshly exited position.
func (s *Sender) SendTradeClosed(ctx context.Context, trade *models.Trade) {
	if !s.Enabled() || trade.IsOpen() {
		return
	}

	net := trade.NetPnl()
	result := "WIN"
	switch {
	case net < 0:
		result = "LOSS"
	case net == 0:
		result = "BREAK EVEN"
	}

	msg := fmt.Sprintf("%s %s %s | %s | net %+.2f (%.2f%%) | closed %s",
		result, trade.Position, trade.Ticker, trade.Type, net, trade.PnlPercent, trade.ExitDay())
	s.Send(ctx, msg)
}
