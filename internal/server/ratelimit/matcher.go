package ratelimit

import (
	"slices"
	"strings"
	"time"
)

var unlimited = &EndpointConfig{}

// MatchEndpoint returns the limit for a request. Exempt paths get an
// unlimited config; exact matches win over prefix matches (configured paths
// ending in "/"); anything else falls back to the default limit.
func MatchEndpoint(path, method string, config *Config) *EndpointConfig {
	if slices.Contains(config.Exempt, path) {
		return unlimited
	}

	for i := range config.EndpointConfigs {
		ec := &config.EndpointConfigs[i]
		if ec.Path == path && ec.Method == method {
			return ec
		}
	}

	for i := range config.EndpointConfigs {
		ec := &config.EndpointConfigs[i]
		if ec.Method == method && strings.HasSuffix(ec.Path, "/") && strings.HasPrefix(path, ec.Path) {
			return ec
		}
	}

	return &EndpointConfig{
		Limit:  config.DefaultLimit,
		Window: config.DefaultWindow,
		Burst:  config.DefaultLimit,
	}
}

// key groups requests sharing a bucket: prefix configs share one bucket.
func (ec *EndpointConfig) key(path string) string {
	if ec.Path != "" {
		return ec.Path
	}
	return path
}

func (ec *EndpointConfig) capacity() int {
	if ec.Burst > 0 {
		return ec.Burst
	}
	return ec.Limit
}

// rate is the refill speed in tokens per second.
func (ec *EndpointConfig) rate() float64 {
	window := ec.Window
	if window <= 0 {
		window = time.Minute
	}
	return float64(ec.Limit) / window.Seconds()
}
