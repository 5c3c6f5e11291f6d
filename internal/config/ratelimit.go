package config

import "time"

// RateLimitConfig controls the Redis token-bucket limiter applied to
// the whole API.  KeyStrategy selects how request buckets are keyed
// (per client IP by default).
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string
	Prefix         string
	Debug          bool
}

// LoadRateLimitConfig reads environment variables to build a
// RateLimitConfig, falling back to permissive defaults suitable for
// development.
func LoadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:        envBool("RATE_LIMIT_ENABLED", true),
		Capacity:       atoi(getenv("RATE_LIMIT_CAPACITY", "60")),
		RefillTokens:   atoi(getenv("RATE_LIMIT_REFILL_TOKENS", "60")),
		RefillInterval: parseDur(getenv("RATE_LIMIT_REFILL_INTERVAL", "1m")),
		TTL:            parseDur(getenv("RATE_LIMIT_TTL", "10m")),
		KeyStrategy:    getenv("RATE_LIMIT_KEY_STRATEGY", "ip"),
		Prefix:         getenv("RATE_LIMIT_PREFIX", "ratelimit"),
		Debug:          envBool("RATE_LIMIT_DEBUG", false),
	}
}
