package ratelimit

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Rate-limited API paths.
const (
	PathParse       = "/api/parse"
	PathParseStream = "/api/parse/stream"
	PathDownload    = "/api/download"
	PathHealth      = "/health"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Exact path, or a prefix when it ends with "/"
	Method string        // HTTP method
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// DefaultConfig returns the built-in limits without reading the environment.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    300,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		Exempt:          []string{PathHealth},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific limits. Parsing calls
// the model twice and is the strictest; rendering is local and moderate.
func DefaultEndpointConfigs() []EndpointConfig {
	parse := EndpointConfig{Method: http.MethodPost, Limit: 30, Window: time.Hour, Burst: 5}
	download := EndpointConfig{Method: http.MethodPost, Limit: 60, Window: time.Minute, Burst: 10}

	parseStream := parse
	parse.Path = PathParse
	parseStream.Path = PathParseStream
	download.Path = PathDownload

	return []EndpointConfig{parse, parseStream, download}
}

// LoadConfig builds the limiter configuration from RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	config := DefaultConfig()

	config.Enabled = getEnvBool("RATE_LIMIT_ENABLED", true)
	if !config.Enabled {
		return &Config{Enabled: false}
	}

	config.DefaultLimit = getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", config.DefaultLimit)
	config.DefaultWindow = getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", config.DefaultWindow)
	config.CleanupInterval = getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", config.CleanupInterval)
	config.Whitelist = parseIPList(os.Getenv("RATE_LIMIT_WHITELIST"))
	config.Blacklist = parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST"))

	for i := range config.EndpointConfigs {
		ec := &config.EndpointConfigs[i]
		prefix := "RATE_LIMIT_DOWNLOAD"
		if ec.Path == PathParse || ec.Path == PathParseStream {
			prefix = "RATE_LIMIT_PARSE"
		}
		ec.Limit = getEnvInt(prefix+"_LIMIT", ec.Limit)
		ec.Window = getEnvDuration(prefix+"_WINDOW", ec.Window)
		ec.Burst = getEnvInt(prefix+"_BURST", ec.Burst)
	}

	return config
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
