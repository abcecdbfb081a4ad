package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvJudgeRequestsPerMinute = "PALETTE_JUDGE_REQUESTS_PER_MINUTE"
	EnvJudgeTimeout           = "PALETTE_JUDGE_TIMEOUT"
	EnvJudgeDisabled          = "PALETTE_JUDGE_DISABLED"
)

// JudgeConfig controls calls to the delegated style judge.
type JudgeConfig struct {
	// Disabled skips the judge entirely; every judgment falls back to its default.
	Disabled          bool   `toml:"disabled"`
	RequestsPerMinute int    `toml:"requests_per_minute"`
	Timeout           string `toml:"timeout"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *JudgeConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *JudgeConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *JudgeConfig) Merge(overlay *JudgeConfig) {
	if overlay.Disabled {
		c.Disabled = true
	}
	if overlay.RequestsPerMinute != 0 {
		c.RequestsPerMinute = overlay.RequestsPerMinute
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *JudgeConfig) loadDefaults() {
	if c.RequestsPerMinute == 0 {
		c.RequestsPerMinute = 60
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
}

func (c *JudgeConfig) loadEnv() {
	if v := os.Getenv(EnvJudgeRequestsPerMinute); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RequestsPerMinute = n
		}
	}
	if v := os.Getenv(EnvJudgeTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvJudgeDisabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Disabled = b
		}
	}
}

func (c *JudgeConfig) validate() error {
	if c.RequestsPerMinute <= 0 {
		return fmt.Errorf("requests_per_minute must be positive, got %d", c.RequestsPerMinute)
	}
	if d, err := time.ParseDuration(c.Timeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid timeout: %q", c.Timeout)
	}
	return nil
}
