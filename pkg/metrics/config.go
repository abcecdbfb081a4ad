package metrics

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"
)

// Exporters a Provider can push to. Console writes JSON to stderr so it
// never mixes with command output on stdout.
const (
	ExporterConsole = "console"
	ExporterOTLP    = "otlp"
)

var exporters = []string{ExporterConsole, ExporterOTLP}

// Config selects where metrics are exported. Instruments record into a no-op
// provider unless Enabled is set.
type Config struct {
	Enabled  bool   `toml:"enabled"`
	Exporter string `toml:"exporter"`
	// Endpoint is the OTLP/HTTP collector host:port. Empty defers to the
	// OTEL_EXPORTER_OTLP_* environment, then localhost:4318.
	Endpoint string `toml:"endpoint"`
	Insecure bool   `toml:"insecure"`
	Interval string `toml:"interval"`
	Timeout  string `toml:"timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Enabled  string
	Exporter string
	Endpoint string
	Insecure string
	Interval string
	Timeout  string
}

// IntervalDuration returns Interval as a time.Duration.
func (c *Config) IntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.Interval)
	return d
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.Exporter != "" {
		c.Exporter = overlay.Exporter
	}
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if overlay.Insecure {
		c.Insecure = true
	}
	if overlay.Interval != "" {
		c.Interval = overlay.Interval
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *Config) loadDefaults() {
	if c.Exporter == "" {
		c.Exporter = ExporterConsole
	}
	if c.Interval == "" {
		c.Interval = "60s"
	}
	if c.Timeout == "" {
		c.Timeout = "10s"
	}
}

func (c *Config) loadEnv(env *Env) {
	setBool := func(name string, dst *bool) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = b
			}
		}
	}
	setString := func(name string, dst *string) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	setBool(env.Enabled, &c.Enabled)
	setString(env.Exporter, &c.Exporter)
	setString(env.Endpoint, &c.Endpoint)
	setBool(env.Insecure, &c.Insecure)
	setString(env.Interval, &c.Interval)
	setString(env.Timeout, &c.Timeout)
}

func (c *Config) validate() error {
	if !slices.Contains(exporters, c.Exporter) {
		return fmt.Errorf("unsupported exporter %q, want one of %v", c.Exporter, exporters)
	}
	if d, err := time.ParseDuration(c.Interval); err != nil || d <= 0 {
		return fmt.Errorf("invalid interval: %q", c.Interval)
	}
	if d, err := time.ParseDuration(c.Timeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid timeout: %q", c.Timeout)
	}
	return nil
}
