package config

import "fmt"

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host        string          `yaml:"host"`
	Port        int             `yaml:"port"`
	CORSOrigins []string        `yaml:"cors_origins"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`

	// TrustProxy keys the rate limiter on the last X-Forwarded-For hop.
	// Enable only behind a proxy that appends it.
	TrustProxy bool `yaml:"trust_proxy"`
}

// RateLimitConfig configures the per-client token bucket on /api/chat.
// RequestsPerMinute of 0 disables limiting.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
	Burst             int `yaml:"burst"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
