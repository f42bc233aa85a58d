package anthropic

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/FleetScanHQ/fuel_tax_app/internal/apperrors"
	"github.com/FleetScanHQ/fuel_tax_app/internal/core/domain"
	portssvc "github.com/FleetScanHQ/fuel_tax_app/internal/core/ports/services"
)

// Ensure Client implements the ReceiptExtractor port
var _ portssvc.ReceiptExtractor = (*Client)(nil)

// allowedMediaTypes is the raster-format allow-list the vision API accepts.
var allowedMediaTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

// codeFenceRe strips accidental markdown fences around the JSON reply.
var codeFenceRe = regexp.MustCompile("```(?:json)?|```")

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// ExtractReceipt sends one vision request and parses the strict-JSON
// reply into the extraction contract. One request, one response: no
// retries, no streaming. Latency is dominated by the model (observed
// 3-5s); cancellation comes from ctx and the client timeout.
func (c *Client) ExtractReceipt(ctx context.Context, image []byte, mediaType string) (domain.ExtractedReceiptData, error) {
	if _, ok := allowedMediaTypes[mediaType]; !ok {
		return domain.ExtractedReceiptData{}, fmt.Errorf("%w: unsupported media type %q", apperrors.ErrValidation, mediaType)
	}

	rid := uuid.NewString()
	start := time.Now()
	c.log.Info("vision.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"media_type", mediaType,
		"image_bytes", len(image),
	)

	body := messagesRequest{
		Model:     c.cfg.Model,
		MaxTokens: 1024,
		System:    systemPrompt,
		Messages: []message{{
			Role: "user",
			Content: []contentBlock{
				{Type: "image", Source: &imageSource{
					Type:      "base64",
					MediaType: mediaType,
					Data:      base64.StdEncoding.EncodeToString(image),
				}},
				{Type: "text", Text: userPrompt},
			},
		}},
	}

	raw, err := c.post(ctx, "/v1/messages", body)
	if err != nil {
		c.log.Error("vision.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return domain.ExtractedReceiptData{}, err
	}

	var resp messagesResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return domain.ExtractedReceiptData{}, fmt.Errorf("%w: failed to decode vision response: %s", apperrors.ErrExtractionParse, err.Error())
	}

	text := firstTextBlock(resp)
	if text == "" {
		c.log.Error("vision.extract.no_text_block", "req_id", rid, "raw_bytes", len(raw))
		return domain.ExtractedReceiptData{}, fmt.Errorf("%w: no text block in vision response", apperrors.ErrExtractionParse)
	}

	clean := strings.TrimSpace(codeFenceRe.ReplaceAllString(text, ""))
	var extracted domain.ExtractedReceiptData
	if err := json.Unmarshal([]byte(clean), &extracted); err != nil {
		c.log.Error("vision.extract.parse_error",
			"req_id", rid, "error", err, "content", text,
			"elapsed_ms", time.Since(start).Milliseconds())
		return domain.ExtractedReceiptData{}, fmt.Errorf("%w: failed to parse vision response: %s", apperrors.ErrExtractionParse, text)
	}

	// Never trust the model's arithmetic: re-enforce canonical precision.
	extracted = extracted.Normalize()

	c.log.Info("vision.extract.ok",
		"req_id", rid,
		"seller", extracted.SellerName,
		"state", extracted.SellerState,
		"gallons", extracted.Gallons.StringFixed(3),
		"date", extracted.ReceiptDate,
		"elapsed_ms", time.Since(start).Milliseconds())
	return extracted, nil
}

func firstTextBlock(resp messagesResponse) string {
	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text
		}
	}
	return ""
}

// Ping verifies API reachability for the health surface: it lists the
// models available on the key, prefers the cheapest vision-capable one,
// and round-trips a tiny message. Returns the model identifier used and
// the reply text.
func (c *Client) Ping(ctx context.Context) (string, string, error) {
	raw, err := c.get(ctx, "/v1/models?limit=10")
	if err != nil {
		return "", "", err
	}

	var page struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		return "", "", fmt.Errorf("failed to decode model list: %w", err)
	}
	if len(page.Data) == 0 {
		return "", "", fmt.Errorf("no models available on this API key")
	}

	// Prefer haiku (cheapest), then sonnet, otherwise first available.
	var pingModel string
	for _, pref := range []string{"haiku", "sonnet"} {
		for _, m := range page.Data {
			if strings.Contains(strings.ToLower(m.ID), pref) {
				pingModel = m.ID
				break
			}
		}
		if pingModel != "" {
			break
		}
	}
	if pingModel == "" {
		pingModel = page.Data[0].ID
	}

	body := messagesRequest{
		Model:     pingModel,
		MaxTokens: 10,
		Messages: []message{{
			Role:    "user",
			Content: []contentBlock{{Type: "text", Text: "Reply with: OK"}},
		}},
	}
	rawMsg, err := c.post(ctx, "/v1/messages", body)
	if err != nil {
		return pingModel, "", err
	}
	var resp messagesResponse
	if err := json.Unmarshal(rawMsg, &resp); err != nil {
		return pingModel, "", fmt.Errorf("failed to decode ping response: %w", err)
	}
	return pingModel, strings.TrimSpace(firstTextBlock(resp)), nil
}

func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.cfg.BaseURL, "/")+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	return c.do(req)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(c.cfg.BaseURL, "/")+path, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	return c.do(req)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("Content-Type", "application/json")
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vision api request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read vision api response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("vision api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return raw, nil
}
