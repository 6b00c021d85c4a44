package app

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultSupabaseURL = "https://bmnmboxfyxmartvuimaq.supabase.co"

type AppConfig struct {
	// =========================== REQUIRED ===========================

	// API key of the document backend, sent as apikey and bearer token (required)
	SupabaseAPIKey *string
	// Redis configuration (required)
	RedisAddr *string

	// =========================== OPTIONAL ===========================

	// Document backend base URL
	SupabaseURL *string
	// Direct Postgres connection; when set, documents are read with gorm instead of PostgREST
	DSN *string
	// Backend request timeout
	BackendTimeout *time.Duration
	// Row cap the backend applies to a single response (PostgREST max-rows)
	BackendMaxRows *int

	// Logging configuration
	LogLevel *string

	// Environment name (dev, staging, prod)
	Environment *string

	// HTTP server configuration
	Port *string
	Host *string

	// CORS configuration
	AllowOrigins *[]string

	// Page configuration
	AppBaseURL         *string
	SiteName           *string
	RevalidateInterval *time.Duration
	CacheRetention     *time.Duration
	CachePrefix        *string

	// Static generation configuration
	PrerenderInterval    *time.Duration
	PrerenderConcurrency *int
}

func NewAppConfig() *AppConfig {
	config := &AppConfig{}

	// Load required configuration
	loadRequiredConfig(config)

	// Load optional configuration with defaults
	loadOptionalConfig(config)

	return config
}

// IsDev reports whether the service runs in a development environment
func (c *AppConfig) IsDev() bool {
	return *c.Environment == "dev" || *c.Environment == "development"
}

// loadRequiredConfig loads all required configuration values and fails fast if any are missing
func loadRequiredConfig(config *AppConfig) {
	apiKey := os.Getenv("SUPABASE_API_KEY")
	if apiKey == "" {
		log.Fatalf("REQUIRED: SUPABASE_API_KEY not set in environment")
	}
	config.SupabaseAPIKey = &apiKey

	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		log.Fatalf("REQUIRED: REDIS_URL not set in environment")
	}
	config.RedisAddr = &redisAddr
}

// loadOptionalConfig loads all optional configuration values with sensible defaults
func loadOptionalConfig(config *AppConfig) {
	supabaseURL := strings.TrimRight(getEnvWithDefault("SUPABASE_URL", defaultSupabaseURL), "/")
	config.SupabaseURL = &supabaseURL

	dsn := os.Getenv("DB_URL")
	config.DSN = &dsn

	backendTimeout := getSeconds("BACKEND_TIMEOUT_SECONDS", 10)
	config.BackendTimeout = &backendTimeout

	backendMaxRows := getInt("BACKEND_MAX_ROWS", 1000)
	config.BackendMaxRows = &backendMaxRows

	// Available levels: "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"
	logLevel := getEnvWithDefault("LOG_LEVEL", "debug")
	config.LogLevel = &logLevel

	environment := getEnvWithDefault("ENVIRONMENT", "prod")
	config.Environment = &environment

	port := getEnvWithDefault("PORT", "8080")
	config.Port = &port

	host := getEnvWithDefault("HOST", "localhost:"+port)
	config.Host = &host

	appBaseURL := strings.TrimRight(getEnvWithDefault("APP_BASE_URL", "https://peakyminds.com"), "/")
	config.AppBaseURL = &appBaseURL

	siteName := getEnvWithDefault("SITE_NAME", "PeakyMinds")
	config.SiteName = &siteName

	revalidateInterval := getSeconds("REVALIDATE_SECONDS", 300)
	config.RevalidateInterval = &revalidateInterval

	cacheRetention := time.Duration(getInt("CACHE_RETENTION_HOURS", 24)) * time.Hour
	config.CacheRetention = &cacheRetention

	cachePrefix := getEnvWithDefault("CACHE_PREFIX", "challenge_seo")
	config.CachePrefix = &cachePrefix

	prerenderInterval := getSeconds("PRERENDER_INTERVAL_SECONDS", 300)
	config.PrerenderInterval = &prerenderInterval

	prerenderConcurrency := getInt("PRERENDER_CONCURRENCY", 4)
	config.PrerenderConcurrency = &prerenderConcurrency

	loadCORSConfig(config)
}

// loadCORSConfig handles CORS origins configuration with environment-specific defaults
func loadCORSConfig(config *AppConfig) {
	var allowOrigins []string

	if allowOriginsStr := os.Getenv("ALLOW_ORIGINS"); allowOriginsStr != "" {
		for _, origin := range strings.Split(allowOriginsStr, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowOrigins = append(allowOrigins, origin)
			}
		}
	}

	if len(allowOrigins) == 0 {
		if config.IsDev() {
			allowOrigins = []string{"http://localhost:3000"}
		} else {
			allowOrigins = []string{*config.AppBaseURL}
		}
	}

	config.AllowOrigins = &allowOrigins
}

// getInt parses a non-negative integer from environment with default fallback
func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
		return parsed
	}

	log.Printf("Warning: Invalid %s value '%s', using default %d", key, value, defaultValue)
	return defaultValue
}

// getSeconds parses a duration in seconds from environment with default fallback
func getSeconds(key string, defaultSeconds int) time.Duration {
	return time.Duration(getInt(key, defaultSeconds)) * time.Second
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
