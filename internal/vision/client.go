package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/omerbh/quotex/constants"
	"github.com/omerbh/quotex/internal/entity"
)

// Config for the extraction service client.
type Config struct {
	APIKey        string
	BaseURL       string // default https://api.openai.com/v1
	Model         string
	Temperature   float32
	Timeout       time.Duration // http client timeout
	MaxDocumentMB int           // refuse to upload anything larger

	// StrictValidate fails on the first schema violation instead of running
	// the sanitize-and-revalidate pass.
	StrictValidate bool
}

// Client talks to an OpenAI-compatible vision endpoint and returns the
// schema-validated item list.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if cfg.MaxDocumentMB <= 0 {
		cfg.MaxDocumentMB = 20
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// ExtractItems sends the document image to the service and returns the
// validated response. The context bounds the call; cancelling it abandons
// the request without leaving partial state behind.
func (c *Client) ExtractItems(ctx context.Context, doc entity.RawDocument) (Response, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("vision.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"filename", doc.Filename,
		"mime_type", doc.MIMEType,
		"bytes", len(doc.Data),
	)

	if len(doc.Data) == 0 {
		return Response{}, nil, fmt.Errorf("empty document payload")
	}
	if len(doc.Data) > c.cfg.MaxDocumentMB*1024*1024 {
		return Response{}, nil, fmt.Errorf("document exceeds %d MB upload limit", c.cfg.MaxDocumentMB)
	}

	allowed := constants.AsStringSlice()
	schema := BuildItemsJSONSchema(allowed)

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": buildSystemPrompt(allowed)},
			{"role": "user", "content": []map[string]any{
				{"type": "text", "text": buildUserPrompt(doc.Filename)},
				{"type": "image_url", "image_url": map[string]any{"url": dataURL(doc)}},
			}},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(schema)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, httpErr := c.post(ctx, endpoint, body)
	if httpErr != nil {
		c.logger.Error("vision.extract.http_error",
			"req_id", rid, "error", httpErr,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return Response{}, nil, httpErr
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.logger.Error("vision.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return Response{}, raw, fmt.Errorf("decode service response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.logger.Error("vision.extract.no_choices", "req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds())
		return Response{}, raw, fmt.Errorf("no choices in service response")
	}
	rawContent := []byte(strings.TrimSpace(cc.Choices[0].Message.Content))

	// Validate strictly first.
	if err := ValidateJSONAgainstSchema(schema, rawContent); err != nil {
		if c.cfg.StrictValidate {
			return Response{}, rawContent, fmt.Errorf("schema validation failed: %w", err)
		}
		cleaned, droppedKeys, sErr := SanitizeItems(rawContent, c.logger)
		if sErr != nil {
			c.logger.Error("vision.extract.sanitize_failed", "req_id", rid, "error", sErr,
				"elapsed_ms", time.Since(start).Milliseconds())
			return Response{}, rawContent, fmt.Errorf("sanitize failed: %w", sErr)
		}
		if vErr := ValidateJSONAgainstSchema(schema, cleaned); vErr != nil {
			c.logger.Error("vision.extract.schema_validation_failed",
				"req_id", rid, "error", vErr,
				"elapsed_ms", time.Since(start).Milliseconds())
			return Response{}, rawContent, fmt.Errorf("schema validation failed: %w", vErr)
		}
		c.logger.Warn("vision.extract.lenient_sanitize_applied",
			"req_id", rid, "dropped", droppedKeys,
			"elapsed_ms", time.Since(start).Milliseconds())
		rawContent = cleaned
	}

	var out Response
	if err := json.Unmarshal(rawContent, &out); err != nil {
		return Response{}, rawContent, fmt.Errorf("unmarshal items: %w", err)
	}

	c.logger.Info("vision.extract.ok",
		"req_id", rid,
		"items", len(out.Items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, rawContent, nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vision http error: %w", err)
	}
	defer func(body io.ReadCloser) {
		if cerr := body.Close(); cerr != nil {
			c.logger.Warn("vision response body close error", "error", cerr)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("vision status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}

func dataURL(doc entity.RawDocument) string {
	mt := strings.ToLower(strings.TrimSpace(doc.MIMEType))
	if mt == "" || mt == "application/octet-stream" {
		switch constants.NormalizeExt(filepath.Ext(doc.Filename)) {
		case "jpg", "jpeg":
			mt = "image/jpeg"
		case "png":
			mt = "image/png"
		case "gif":
			mt = "image/gif"
		case "webp":
			mt = "image/webp"
		default:
			mt = "application/octet-stream"
		}
	}
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(doc.Data)
}

func buildSystemPrompt(allowedCategories []string) string {
	parts := []string{
		"You are a supplier quotation parser for industrial automation components. Return ONLY JSON that matches the provided JSON Schema.",
		"The document may mix Hebrew and English. Column headers and product names may be in either language.",
		"CRITICAL: copy part numbers exactly as printed, character by character, left to right as they appear in the Latin alphabet. " +
			"Part numbers embedded in Hebrew (right-to-left) text must NOT be reversed or reordered. Preserve casing, spaces, slashes, and dashes.",
		"Prices: report the numeral without currency symbols in 'price', and the currency separately in 'currency' (USD, NIS/ILS, or EUR). " +
			"Detect the currency from the symbol (₪, $, €) or code next to the number.",
		"Category MUST be exactly one of: " + strings.Join(allowedCategories, ", ") + ". If uncertain, choose 'Other'.",
		"Include per-item 'confidence' between 0 and 1 reflecting how legible the source row was.",
		"Never output null. If a field is not present, omit it.",
	}
	return strings.Join(parts, " ")
}

func buildUserPrompt(filename string) string {
	var b strings.Builder
	if f := strings.TrimSpace(filename); f != "" {
		b.WriteString("Filename: ")
		b.WriteString(f)
		b.WriteString("\n")
	}
	b.WriteString("Extract every quoted component from the attached document image into the 'items' array. One item per quoted line.")
	return b.String()
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
