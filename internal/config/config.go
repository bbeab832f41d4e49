package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	BriefdAPIKey string

	// Inference backend
	InferenceURL    string
	InferenceAPIKey string
	DefaultModel    string

	// Worker pool
	WorkerCount         int
	MaxQueueSize        int
	MaxConcurrentChunks int

	// Upload limits
	MaxUploadBytes int64

	// Result cache
	CacheSize int

	// Keywords
	KeywordCount int

	// Memory guard
	MaxHeapBytes uint64

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		BriefdAPIKey: os.Getenv("BRIEFD_API_KEY"),

		InferenceURL:    envOr("INFERENCE_URL", "https://api-inference.huggingface.co"),
		InferenceAPIKey: os.Getenv("INFERENCE_API_KEY"),
		DefaultModel:    envOr("DEFAULT_MODEL", "facebook/bart-large-cnn"),

		WorkerCount:         envInt("WORKER_COUNT", 4),
		MaxQueueSize:        envInt("MAX_QUEUE_SIZE", 100),
		MaxConcurrentChunks: envInt("MAX_CONCURRENT_CHUNKS", 4),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		CacheSize: envInt("CACHE_SIZE", 100),

		KeywordCount: envInt("KEYWORD_COUNT", 15),

		MaxHeapBytes: envUint64("MAX_HEAP_BYTES", 2<<30), // 2GB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxConcurrentChunks <= 0 {
		cfg.MaxConcurrentChunks = 4
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 100
	}
	if cfg.KeywordCount <= 0 {
		cfg.KeywordCount = 15
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.BriefdAPIKey == "" {
		return fmt.Errorf("BRIEFD_API_KEY is required")
	}
	if c.InferenceAPIKey == "" {
		return fmt.Errorf("INFERENCE_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envUint64(key string, fallback uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
