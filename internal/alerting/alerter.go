package alerting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/engrate/eg-power-tariffs-plugin/internal/clock"
	"github.com/engrate/eg-power-tariffs-plugin/internal/config"
)

// Alerter pushes operational alerts to a Slack incoming webhook. Alerts
// with an identical message are deduplicated for the configured TTL so a
// failing dependency does not flood the channel.
type Alerter interface {
	Alert(ctx context.Context, message string)
}

type slackAlerter struct {
	webhookURL string
	dedupeTTL  time.Duration
	client     *http.Client
	clock      clock.Clock
	log        *zap.Logger

	mu   sync.Mutex
	seen map[string]time.Time
}

func New(cfg *config.Config, clk clock.Clock, log *zap.Logger) Alerter {
	if cfg.Alerting.SlackWebhookURL == "" {
		log.Info("alerting disabled, no webhook configured")
		return noopAlerter{}
	}
	return &slackAlerter{
		webhookURL: cfg.Alerting.SlackWebhookURL,
		dedupeTTL:  cfg.Alerting.DedupeTTL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		clock: clk,
		log:   log.Named("alerting"),
		seen:  map[string]time.Time{},
	}
}

func (a *slackAlerter) Alert(ctx context.Context, message string) {
	if !a.shouldSend(message) {
		return
	}

	msg := map[string]any{
		"text": fmt.Sprintf("*Power tariffs alert*\n%s", message),
	}
	body, err := json.Marshal(msg)
	if err != nil {
		a.log.Error("marshal alert payload", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.webhookURL, bytes.NewBuffer(body))
	if err != nil {
		a.log.Error("build alert request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		a.log.Error("send alert", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		a.log.Error("slack webhook rejected alert", zap.Int("status", resp.StatusCode))
	}
}

// shouldSend records the message and reports whether its dedupe window
// has elapsed since the last send.
func (a *slackAlerter) shouldSend(message string) bool {
	now := a.clock.Now()

	a.mu.Lock()
	defer a.mu.Unlock()

	if last, ok := a.seen[message]; ok && now.Sub(last) < a.dedupeTTL {
		return false
	}
	a.seen[message] = now

	for msg, last := range a.seen {
		if now.Sub(last) >= a.dedupeTTL {
			delete(a.seen, msg)
		}
	}
	return true
}

type noopAlerter struct{}

func (noopAlerter) Alert(context.Context, string) {}
