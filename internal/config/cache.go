package config

import (
    "os"
    "time"
)

// CacheConfig defines settings for the response cache middleware.
// When Enabled is false or no Redis client is configured, caching is off.
// KeyStrategy is "path_query" (default) or "path".  VersionKey names the
// counter bumped by every successful write; it is part of each entry key so
// a single INCR invalidates the whole cache.
type CacheConfig struct {
    Enabled      bool
    TTL          time.Duration
    KeyStrategy  string
    Prefix       string
    VersionKey   string
    MaxBodyBytes int
}

func LoadCacheConfig() CacheConfig {
    e := env{lookup: os.LookupEnv}
    prefix := e.get("CACHE_PREFIX", "theatre:cache")
    return CacheConfig{
        Enabled:      e.boolean("CACHE_ENABLED", true),
        TTL:          e.duration("CACHE_TTL", 30*time.Second),
        KeyStrategy:  e.get("CACHE_KEY_STRATEGY", "path_query"),
        Prefix:       prefix,
        VersionKey:   e.get("CACHE_VERSION_KEY", prefix+":version"),
        MaxBodyBytes: e.integer("CACHE_MAX_BODY_BYTES", 1<<20),
    }
}
