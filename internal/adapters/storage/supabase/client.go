// Package supabase is a minimal client for the Supabase Storage REST
// API, covering only what the receipt pipeline needs: collision-free
// uploads, public URL construction, deletes, and a health round-trip.
package supabase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	portssvc "github.com/FleetScanHQ/fuel_tax_app/internal/core/ports/services"
)

// Config for the storage client.
type Config struct {
	ProjectURL string // e.g. https://xyzcompany.supabase.co
	APIKey     string // anon key is sufficient for upload/delete on a public bucket
	Bucket     string // default "fuel-receipts"
	Timeout    time.Duration
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *slog.Logger
}

// Ensure Client implements the ReceiptImageStore port
var _ portssvc.ReceiptImageStore = (*Client)(nil)

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Bucket == "" {
		cfg.Bucket = "fuel-receipts"
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

// UploadReceiptImage stores the image under
// receipts/{truckID}/{unixms}.{ext} and returns its public URL. The
// write timestamp in the path avoids collisions; upsert is disabled so
// the primary upload path never overwrites an existing object.
func (c *Client) UploadReceiptImage(ctx context.Context, truckID, filename, mediaType string, data []byte) (string, error) {
	ext := "jpg"
	if i := strings.LastIndex(filename, "."); i >= 0 && i < len(filename)-1 {
		ext = filename[i+1:]
	}
	if truckID == "" {
		truckID = "unknown"
	}
	path := fmt.Sprintf("receipts/%s/%d.%s", truckID, time.Now().UnixMilli(), ext)

	if err := c.upload(ctx, path, mediaType, data, false); err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}

	c.log.Info("storage.upload.ok", "bucket", c.cfg.Bucket, "path", path, "bytes", len(data))
	return c.PublicURL(path), nil
}

// PublicURL returns the public object URL for a path in the bucket.
func (c *Client) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", strings.TrimRight(c.cfg.ProjectURL, "/"), c.cfg.Bucket, path)
}

// HealthCheck uploads a tiny text object (with upsert, so repeated
// checks do not collide) and removes it again, verifying the bucket
// exists and the key can write.
func (c *Client) HealthCheck(ctx context.Context) error {
	path := fmt.Sprintf("health-check-%d.txt", time.Now().UnixMilli())
	if err := c.upload(ctx, path, "text/plain", []byte("health-check"), true); err != nil {
		return fmt.Errorf("bucket %q upload test failed: %w", c.cfg.Bucket, err)
	}
	if err := c.Delete(ctx, path); err != nil {
		// The bucket works; leaving the test object behind is cosmetic.
		c.log.Warn("storage.health.cleanup_failed", "path", path, "error", err.Error())
	}
	return nil
}

// Delete removes an object from the bucket.
func (c *Client) Delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.objectURL(path), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	return c.do(req)
}

func (c *Client) upload(ctx context.Context, path, mediaType string, data []byte, upsert bool) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.objectURL(path), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", mediaType)
	req.Header.Set("x-upsert", fmt.Sprintf("%t", upsert))
	return c.do(req)
}

func (c *Client) objectURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/%s/%s", strings.TrimRight(c.cfg.ProjectURL, "/"), c.cfg.Bucket, path)
}

func (c *Client) do(req *http.Request) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("storage api request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("storage api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return nil
}
