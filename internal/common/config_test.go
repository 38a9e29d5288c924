package common

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "https://api.openai.com/v1", cfg.Vision.BaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.Vision.Model)
	assert.Equal(t, 45*time.Second, cfg.Vision.Timeout)
	assert.Equal(t, 20, cfg.Vision.MaxDocumentMB)
	assert.InDelta(t, 3.7, cfg.Rates.USDToILS, 1e-9)
	assert.InDelta(t, 4.0, cfg.Rates.EURToILS, 1e-9)
	assert.Equal(t, 4, cfg.Extraction.BatchWorkers)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("VISION_MODEL", "gpt-4o")
	t.Setenv("VISION_TIMEOUT", "90s")
	t.Setenv("RATE_USD_ILS", "3.55")
	t.Setenv("BATCH_WORKERS", "8")
	t.Setenv("VISION_MAX_DOCUMENT_MB", "not-a-number") // falls back

	cfg := LoadConfig()

	assert.Equal(t, "gpt-4o", cfg.Vision.Model)
	assert.Equal(t, 90*time.Second, cfg.Vision.Timeout)
	assert.InDelta(t, 3.55, cfg.Rates.USDToILS, 1e-9)
	assert.Equal(t, 8, cfg.Extraction.BatchWorkers)
	assert.Equal(t, 20, cfg.Vision.MaxDocumentMB)
}

func TestValidateVision(t *testing.T) {
	cfg := &Config{Vision: VisionConfig{BaseURL: "https://api.openai.com/v1"}}
	err := cfg.ValidateVision()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VISION_API_KEY")

	cfg.Vision.APIKey = "sk-test"
	assert.NoError(t, cfg.ValidateVision())
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestIDFromContext(ctx))

	ctx = WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", RequestIDFromContext(ctx))
}
