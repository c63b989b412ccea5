package wiki

import (
	"os"
	"time"
)

// DefaultBaseURL is the public PoE2 community wiki API endpoint
const DefaultBaseURL = "https://www.poe2wiki.net/w/api.php"

// Config holds wiki connection settings
type Config struct {
	// BaseURL is the wiki API endpoint (e.g., https://www.poe2wiki.net/w/api.php)
	BaseURL string

	// Timeout for API requests
	Timeout time.Duration

	// UserAgent identifies the client to the wiki
	UserAgent string

	// GemCacheTTL controls how long parsed gem data stays cached
	GemCacheTTL time.Duration

	// MetricsAddr, when set, serves Prometheus metrics on this address
	MetricsAddr string
}

// LoadConfig loads configuration from environment variables.
// The wiki is public and read-only, so no credentials are needed.
func LoadConfig() (*Config, error) {
	baseURL := os.Getenv("POE2_WIKI_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := 30 * time.Second
	if t := os.Getenv("POE2_WIKI_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	cacheTTL := time.Hour
	if t := os.Getenv("POE2_WIKI_CACHE_TTL"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			cacheTTL = d
		}
	}

	userAgent := os.Getenv("POE2_WIKI_USER_AGENT")
	if userAgent == "" {
		userAgent = "Poe2WikiMCPServer/1.0 (https://github.com/json-cam/Poe2-Wiki-MCP)"
	}

	return &Config{
		BaseURL:     baseURL,
		Timeout:     timeout,
		UserAgent:   userAgent,
		GemCacheTTL: cacheTTL,
		MetricsAddr: os.Getenv("POE2_WIKI_METRICS_ADDR"),
	}, nil
}
