package anthropic

import (
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Config for the Anthropic vision client.
type Config struct {
	APIKey  string        // if empty, falls back to env ANTHROPIC_API_KEY
	BaseURL string        // default https://api.anthropic.com
	Model   string        // pinned vision-capable model for reproducible extraction
	Timeout time.Duration // http client timeout around the vision call
}

// Client talks to the Anthropic Messages API over plain HTTP.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *slog.Logger
}

const apiVersion = "2023-06-01"

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.anthropic.com"
	}
	if cfg.Model == "" {
		// Pinned version for reproducible OCR results across deploys.
		cfg.Model = "claude-sonnet-4-5-20250929"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger,
	}
}
