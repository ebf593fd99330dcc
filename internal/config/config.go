package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the gateway
type Config struct {
	// Upstream REST API Configuration
	Upstream UpstreamConfig

	// HTTP Server Configuration
	Server ServerConfig

	// Logging Configuration
	Logging LoggingConfig
}

// UpstreamConfig holds upstream REST API configuration
type UpstreamConfig struct {
	BaseURL string // Base URL of the remote API, trailing slash stripped
}

// ServerConfig holds listener and cookie configuration
type ServerConfig struct {
	ListenAddr      string // Address the gateway listens on
	SiteURL         string // Public URL of the storefront, trailing slash stripped
	Production      bool   // Enables the Secure flag on session cookies
	RoutePolicyFile string // Optional YAML override for protected route prefixes
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// Upstream base URL - trailing slash stripped once here so the proxy
	// client can concatenate request paths directly
	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	siteURL := os.Getenv("SITE_URL")
	if siteURL == "" {
		siteURL = "http://localhost:4321"
	}
	siteURL = strings.TrimSuffix(siteURL, "/")

	listenAddr := os.Getenv("LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":4321"
	}

	// Logging configuration - defaults suitable for production
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "json"
	}

	return &Config{
		Upstream: UpstreamConfig{
			BaseURL: baseURL,
		},
		Server: ServerConfig{
			ListenAddr:      listenAddr,
			SiteURL:         siteURL,
			Production:      strings.EqualFold(os.Getenv("ENV"), "production"),
			RoutePolicyFile: os.Getenv("ROUTE_POLICY_FILE"),
		},
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
	}, nil
}
