package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/colegioeccos/requesthub/internal/config"
)

// Sender delivers a notification to a set of recipients. Delivery is
// best-effort: callers log failures and move on, they never roll back the
// mutation that triggered the send.
type Sender interface {
	Send(ctx context.Context, recipients []string, subject, body string) error
}

// NewSender picks the delivery channel from configuration: a webhook relay
// when NOTIFY_WEBHOOK_URL is set, otherwise a log-only sender.
func NewSender(cfg config.NotificationConfig, logger *zap.Logger) Sender {
	if cfg.WebhookURL != "" {
		return &webhookSender{
			client: &http.Client{Timeout: 10 * time.Second},
			url:    cfg.WebhookURL,
			from:   cfg.EmailFrom,
		}
	}
	return &logSender{from: cfg.EmailFrom, logger: logger}
}

// webhookSender posts the message to an external mail relay.
type webhookSender struct {
	client *http.Client
	url    string
	from   string
}

type webhookMessage struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
}

func (s *webhookSender) Send(ctx context.Context, recipients []string, subject, body string) error {
	if len(recipients) == 0 {
		return nil
	}
	encoded, err := json.Marshal(webhookMessage{
		From:    s.from,
		To:      recipients,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification relay returned %d", resp.StatusCode)
	}
	return nil
}

// logSender records the message instead of delivering it; used in
// development when no relay is configured.
type logSender struct {
	from   string
	logger *zap.Logger
}

func (s *logSender) Send(_ context.Context, recipients []string, subject, body string) error {
	s.logger.Info("notification (log only)",
		zap.String("from", s.from),
		zap.Strings("to", recipients),
		zap.String("subject", subject),
		zap.Int("body_bytes", len(body)))
	return nil
}
