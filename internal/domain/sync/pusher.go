// internal/domain/sync/pusher.go
package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/sale"
)

// HTTPPusher delivers sale batches to the back office over HTTP
type HTTPPusher struct {
	url    string
	client *http.Client
}

// NewHTTPPusher creates a pusher for the configured remote endpoint
func NewHTTPPusher(cfg *config.SyncConfig) *HTTPPusher {
	timeout := cfg.PushTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPPusher{
		url:    cfg.RemoteURL,
		client: &http.Client{Timeout: timeout},
	}
}

type pushPayload struct {
	Sales []sale.Sale `json:"sales"`
}

// Push POSTs the batch and treats any 2xx status as acknowledgment
func (p *HTTPPusher) Push(ctx context.Context, sales []sale.Sale) error {
	body, err := json.Marshal(pushPayload{Sales: sales})
	if err != nil {
		return fmt.Errorf("failed to encode sales batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sync request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to push sales batch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("remote rejected sales batch: %s", resp.Status)
	}
	return nil
}

// NoopPusher acknowledges every batch without a network call. Used when no
// remote endpoint is configured, so offline tickets still drain locally.
type NoopPusher struct{}

// Push always succeeds
func (NoopPusher) Push(ctx context.Context, sales []sale.Sale) error {
	return nil
}

// NewPusher picks the HTTP pusher when a remote endpoint is configured and
// the no-op stand-in otherwise
func NewPusher(cfg *config.SyncConfig) Pusher {
	if cfg.RemoteURL == "" {
		return NoopPusher{}
	}
	return NewHTTPPusher(cfg)
}
