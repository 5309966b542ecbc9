package config

import (
    "os"
    "time"
)

// RateLimitConfig drives the Redis token bucket.  KeyStrategy picks the
// bucket identity: ip, user, route or a combination joined by "_".
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

// LoadRateLimitConfig reads RATE_LIMIT_* variables.  RATE_LIMIT_BURST and
// RATE_LIMIT_REFILL_EVERY are shorthands for capacity and a one-token refill.
func LoadRateLimitConfig() RateLimitConfig {
    e := env{lookup: os.LookupEnv}
    cfg := RateLimitConfig{
        Enabled:        e.boolean("RATE_LIMIT_ENABLED", true),
        Capacity:       e.integer("RATE_LIMIT_CAPACITY", 60),
        RefillTokens:   e.integer("RATE_LIMIT_REFILL_TOKENS", 1),
        RefillInterval: e.duration("RATE_LIMIT_REFILL_INTERVAL", time.Second),
        TTL:            e.duration("RATE_LIMIT_TTL", 10*time.Minute),
        KeyStrategy:    e.get("RATE_LIMIT_KEY_STRATEGY", "ip_user_route"),
        Prefix:         e.get("RATE_LIMIT_PREFIX", "theatre:rl"),
        Debug:          e.boolean("RATE_LIMIT_DEBUG", false),
    }
    if burst := e.integer("RATE_LIMIT_BURST", 0); burst > 0 {
        cfg.Capacity = burst
    }
    if every := e.duration("RATE_LIMIT_REFILL_EVERY", 0); every > 0 {
        cfg.RefillTokens, cfg.RefillInterval = 1, every
    }
    return cfg.normalized()
}

// normalized clamps values the Lua script cannot work with.  Buckets must
// outlive at least five refill intervals.
func (c RateLimitConfig) normalized() RateLimitConfig {
    c.Capacity = max(c.Capacity, 1)
    c.RefillTokens = max(c.RefillTokens, 1)
    if c.RefillInterval <= 0 {
        c.RefillInterval = time.Second
    }
    c.TTL = max(c.TTL, 5*c.RefillInterval)
    return c
}
