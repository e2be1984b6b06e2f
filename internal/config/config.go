package config

import (
	"os"
	"time"
)

type Config struct {
	Port               string
	LogLevel           string
	BackendURL         string
	RedisURL           string
	ProviderCacheTTL   time.Duration
	UpstreamTimeout    time.Duration
	DiditAPIKey        string
	DiditWorkflowID    string
	DiditWebhookSecret string
	DiditBaseURL       string
}

func New() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		LogLevel:           os.Getenv("LOGLEVEL"),
		BackendURL:         getBackendURL(),
		RedisURL:           os.Getenv("REDIS_URL"),
		ProviderCacheTTL:   getDuration("PROVIDER_CACHE_TTL", 30*time.Second),
		UpstreamTimeout:    getDuration("UPSTREAM_TIMEOUT", 8*time.Second),
		DiditAPIKey:        os.Getenv("DIDIT_API_KEY"),
		DiditWorkflowID:    os.Getenv("DIDIT_WORKFLOW_ID"),
		DiditWebhookSecret: os.Getenv("DIDIT_WEBHOOK_SECRET"),
		DiditBaseURL:       getEnv("DIDIT_BASE_URL", "https://verification.didit.me"),
	}
}

// getBackendURL falls back to the web app's variable name so the gateway is
// a drop-in inside the existing deployment environment.
func getBackendURL() string {
	if v := os.Getenv("BACKEND_URL"); v != "" {
		return v
	}
	return os.Getenv("NEXT_PUBLIC_API_URL")
}

// ---- Helpers ----

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
