package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by LoadConfig.
const (
	EnvEnabled       = "ATS_RATE_LIMIT_ENABLED"
	EnvDefaultLimit  = "ATS_RATE_LIMIT_DEFAULT_LIMIT"
	EnvDefaultWindow = "ATS_RATE_LIMIT_DEFAULT_WINDOW"
	EnvScoreLimit    = "ATS_RATE_LIMIT_SCORE_LIMIT"
	EnvScoreBurst    = "ATS_RATE_LIMIT_SCORE_BURST"
	EnvCleanup       = "ATS_RATE_LIMIT_CLEANUP_INTERVAL"
	EnvAllowList     = "ATS_RATE_LIMIT_ALLOW"
	EnvDenyList      = "ATS_RATE_LIMIT_DENY"
)

// Policy is the budget for requests matching Method and Path. A Path ending
// in "/" matches every path below it.
type Policy struct {
	Method string
	Path   string
	Limit  int
	Window time.Duration
	Burst  int // capacity; Limit when zero
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Allow           map[string]bool
	Deny            map[string]bool
	Policies        []Policy
	Exempt          []string // paths never limited
}

// LoadConfig builds a Config from the environment.
func LoadConfig() *Config {
	if !envBool(EnvEnabled, true) {
		return &Config{Enabled: false}
	}

	scoreLimit := envInt(EnvScoreLimit, 120)
	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt(EnvDefaultLimit, 600),
		DefaultWindow:   envDuration(EnvDefaultWindow, time.Minute),
		CleanupInterval: envDuration(EnvCleanup, 5*time.Minute),
		Allow:           parseIPList(os.Getenv(EnvAllowList)),
		Deny:            parseIPList(os.Getenv(EnvDenyList)),
		Policies: []Policy{
			{Method: "POST", Path: "/v1/score", Limit: scoreLimit, Window: time.Minute, Burst: envInt(EnvScoreBurst, 20)},
		},
		Exempt: []string{"/health"},
	}
}

// match returns the policy for a request, or nil when the default applies.
func (c *Config) match(method, path string) *Policy {
	for i := range c.Policies {
		if p := &c.Policies[i]; p.Method == method && p.Path == path {
			return p
		}
	}
	for i := range c.Policies {
		p := &c.Policies[i]
		if p.Method == method && strings.HasSuffix(p.Path, "/") && strings.HasPrefix(path, p.Path) {
			return p
		}
	}
	return nil
}

func (c *Config) exempt(path string) bool {
	for _, e := range c.Exempt {
		if e == path {
			return true
		}
	}
	return false
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

// parseIPList parses a comma-separated list of addresses into a set.
func parseIPList(list string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
