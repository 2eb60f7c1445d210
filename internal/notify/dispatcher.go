package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gen2brain/beeep"
	"go.uber.org/zap"

	"github.com/outboundly/outboundly/internal/model"
)

// Dispatcher mirrors notices to configured out-of-app channels: a desktop
// notification and an optional webhook. Mirroring is best-effort; failures
// are logged and never reach the user.
type Dispatcher struct {
	cfg    model.NotificationConfig
	client *http.Client
	log    *zap.Logger
}

// NewDispatcher creates a Dispatcher with sensible defaults.
func NewDispatcher(cfg model.NotificationConfig, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		cfg: cfg,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		log: log,
	}
}

// Dispatch mirrors a single notice.
func (d *Dispatcher) Dispatch(n Notice) {
	title := "Outboundly"
	if n.Kind == KindError {
		title = "Outboundly – export problem"
	}
	message := strings.TrimSpace(n.Message)
	if message == "" {
		message = string(n.Kind)
	}
	if len(message) > 800 {
		message = message[:800] + "..."
	}

	if d.cfg.Desktop {
		if err := beeep.Notify(title, message, ""); err != nil {
			d.log.Debug("desktop notification failed", zap.Error(err))
		}
	}

	if d.cfg.WebhookURL != "" {
		d.postWebhook(n, title, message)
	}
}

func (d *Dispatcher) postWebhook(n Notice, title, message string) {
	payload := map[string]any{
		"id":        n.ID,
		"kind":      n.Kind,
		"title":     title,
		"message":   message,
		"timestamp": n.CreatedAt.Unix(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		d.log.Debug("webhook mirror failed", zap.Error(err))
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
