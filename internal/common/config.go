package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Vision     VisionConfig
	Rates      RatesConfig
	Extraction ExtractionConfig
}

// VisionConfig holds the external AI extraction service configuration.
type VisionConfig struct {
	BaseURL       string
	APIKey        string
	Model         string
	Temperature   float32
	Timeout       time.Duration
	MaxDocumentMB int
}

// RatesConfig holds the exchange-rate table supplied to the pipeline.
// EURToUSD may be left zero and is then derived from the ILS rates.
type RatesConfig struct {
	USDToILS float64
	EURToILS float64
	EURToUSD float64
	File     string // optional YAML override file
}

// ExtractionConfig holds pipeline behavior knobs.
type ExtractionConfig struct {
	CategoriesFile string // optional YAML synonym overrides
	BatchWorkers   int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Vision: VisionConfig{
			BaseURL:       getEnv("VISION_BASE_URL", "https://api.openai.com/v1"),
			APIKey:        getEnv("VISION_API_KEY", ""),
			Model:         getEnv("VISION_MODEL", "gpt-4o-mini"),
			Temperature:   getEnvAsFloat32("VISION_TEMPERATURE", 0.0),
			Timeout:       getEnvAsDuration("VISION_TIMEOUT", 45*time.Second),
			MaxDocumentMB: getEnvAsInt("VISION_MAX_DOCUMENT_MB", 20),
		},
		Rates: RatesConfig{
			USDToILS: getEnvAsFloat64("RATE_USD_ILS", 3.7),
			EURToILS: getEnvAsFloat64("RATE_EUR_ILS", 4.0),
			EURToUSD: getEnvAsFloat64("RATE_EUR_USD", 0),
			File:     getEnv("RATES_FILE", ""),
		},
		Extraction: ExtractionConfig{
			CategoriesFile: getEnv("CATEGORIES_FILE", ""),
			BatchWorkers:   getEnvAsInt("BATCH_WORKERS", 4),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateVision validates the vision service configuration. The rest of the
// pipeline runs without it; only the image path requires the service.
func (c *Config) ValidateVision() error {
	if c.Vision.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "VISION_API_KEY is required for image extraction", nil)
	}
	if c.Vision.BaseURL == "" {
		return NewAppError("CONFIG_ERROR", "VISION_BASE_URL is required for image extraction", nil)
	}
	return nil
}
