package alerting

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/engrate/eg-power-tariffs-plugin/internal/config"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestAlerter(t *testing.T, clk *fakeClock) (Alerter, *atomic.Int64) {
	t.Helper()

	var sent atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sent.Add(1)
	}))
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Alerting.SlackWebhookURL = server.URL
	cfg.Alerting.DedupeTTL = 15 * time.Minute
	return New(cfg, clk, zap.NewNop()), &sent
}

func TestAlertDeduplicatesByMessage(t *testing.T) {
	clk := &fakeClock{now: time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)}
	alerter, sent := newTestAlerter(t, clk)
	ctx := context.Background()

	alerter.Alert(ctx, "database unreachable")
	alerter.Alert(ctx, "database unreachable")
	alerter.Alert(ctx, "lookup gateway down")
	require.EqualValues(t, 2, sent.Load())

	clk.advance(16 * time.Minute)
	alerter.Alert(ctx, "database unreachable")
	require.EqualValues(t, 3, sent.Load())
}

func TestAlerterWithoutWebhookIsNoop(t *testing.T) {
	clk := &fakeClock{now: time.Now()}
	alerter := New(&config.Config{}, clk, zap.NewNop())
	alerter.Alert(context.Background(), "anything")
	_, ok := alerter.(noopAlerter)
	require.True(t, ok)
}
