package registrar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/engrate/eg-power-tariffs-plugin/internal/config"
)

// Manifest describes this plugin to the platform registrar.
type Manifest struct {
	Name     string `json:"name"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Version  string `json:"version"`
	BaseURL  string `json:"base_url"`
}

// Client registers the plugin with the platform on startup. Registration
// is best effort: an unreachable registrar must not keep the service from
// serving traffic.
type Client struct {
	url    string
	client *http.Client
	log    *zap.Logger
}

func NewClient(cfg *config.Config, log *zap.Logger) *Client {
	return &Client{
		url: cfg.Registrar.URL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log.Named("registrar"),
	}
}

// Register posts the manifest to the registrar. A 409 means a previous
// run already registered this plugin and counts as success.
func (c *Client) Register(ctx context.Context, manifest Manifest) error {
	body, err := json.Marshal(manifest)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/plugins", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusOK:
		c.log.Info("plugin registered", zap.String("name", manifest.Name))
		return nil
	case http.StatusConflict:
		c.log.Info("plugin already registered", zap.String("name", manifest.Name))
		return nil
	default:
		return fmt.Errorf("registrar returned status %d", resp.StatusCode)
	}
}
