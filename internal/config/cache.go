package config

import (
    "strings"
    "time"
)

// CacheConfig defines settings for the response cache in front of the
// booking list and calendar endpoints.  Entries are purged whenever a
// booking is created, updated or deleted, so TTL only bounds staleness
// when a purge is missed.
type CacheConfig struct {
    Enabled      bool
    Methods      map[string]bool
    TTL          time.Duration
    KeyStrategy  string // route | method_route | route_query | method_route_query
    Prefix       string
    MaxBodyBytes int
}

// LoadCacheConfig reads CACHE_* variables.  Methods are upper-cased.
func LoadCacheConfig() CacheConfig {
    methods := map[string]bool{}
    for _, m := range splitList(getenv("CACHE_METHODS", "GET")) {
        methods[strings.ToUpper(m)] = true
    }
    cfg := CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        Methods:      methods,
        TTL:          envDur("CACHE_TTL", 30*time.Second),
        KeyStrategy:  getenv("CACHE_KEY_STRATEGY", "route_query"),
        Prefix:       getenv("CACHE_PREFIX", "bookings:cache"),
        MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
    }
    if cfg.TTL <= 0 {
        cfg.TTL = 30 * time.Second
    }
    return cfg
}
