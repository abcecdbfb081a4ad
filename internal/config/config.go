package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/palette/pkg/cache"
	"github.com/JaimeStill/palette/pkg/database"
	"github.com/JaimeStill/palette/pkg/metrics"
	"github.com/JaimeStill/palette/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvPaletteEnv             = "PALETTE_ENV"
	EnvPaletteShutdownTimeout = "PALETTE_SHUTDOWN_TIMEOUT"
	EnvPaletteVersion         = "PALETTE_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "PALETTE_DB_HOST",
	Port:            "PALETTE_DB_PORT",
	Name:            "PALETTE_DB_NAME",
	User:            "PALETTE_DB_USER",
	Password:        "PALETTE_DB_PASSWORD",
	SSLMode:         "PALETTE_DB_SSL_MODE",
	MaxOpenConns:    "PALETTE_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "PALETTE_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "PALETTE_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "PALETTE_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "PALETTE_STORAGE_CONTAINER_NAME",
	ConnectionString: "PALETTE_STORAGE_CONNECTION_STRING",
}

var cacheEnv = &cache.Env{
	Addr:        "PALETTE_CACHE_ADDR",
	Password:    "PALETTE_CACHE_PASSWORD",
	DB:          "PALETTE_CACHE_DB",
	Prefix:      "PALETTE_CACHE_PREFIX",
	TTL:         "PALETTE_CACHE_TTL",
	DialTimeout: "PALETTE_CACHE_DIAL_TIMEOUT",
}

var metricsEnv = &metrics.Env{
	Enabled:  "PALETTE_METRICS_ENABLED",
	Exporter: "PALETTE_METRICS_EXPORTER",
	Endpoint: "PALETTE_METRICS_ENDPOINT",
	Insecure: "PALETTE_METRICS_INSECURE",
	Interval: "PALETTE_METRICS_INTERVAL",
	Timeout:  "PALETTE_METRICS_TIMEOUT",
}

// Config is the root configuration for palette.
type Config struct {
	Database        database.Config      `toml:"database"`
	Storage         storage.Config       `toml:"storage"`
	Cache           cache.Config         `toml:"cache"`
	Metrics         metrics.Config       `toml:"metrics"`
	Agent           gaconfig.AgentConfig `toml:"agent"`
	Judge           JudgeConfig          `toml:"judge"`
	Engine          EngineConfig         `toml:"engine"`
	ShutdownTimeout string               `toml:"shutdown_timeout"`
	Version         string               `toml:"version"`
}

// Env returns the PALETTE_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvPaletteEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. Without a config.toml, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	return LoadFrom(BaseConfigFile)
}

// LoadFrom is Load with an explicit base file path. The overlay is resolved
// next to the base file.
func LoadFrom(base string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(base); err == nil {
		loaded, err := load(base)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(base); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Cache.Merge(&overlay.Cache)
	c.Metrics.Merge(&overlay.Metrics)
	c.Agent.Merge(&overlay.Agent)
	c.Judge.Merge(&overlay.Judge)
	c.Engine.Merge(&overlay.Engine)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Cache.Finalize(cacheEnv); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := c.Metrics.Finalize(metricsEnv); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if err := FinalizeAgent(&c.Agent); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	if err := c.Judge.Finalize(); err != nil {
		return fmt.Errorf("judge: %w", err)
	}
	if err := c.Engine.Finalize(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvPaletteShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvPaletteVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(base string) string {
	env := os.Getenv(EnvPaletteEnv)
	if env == "" {
		return ""
	}
	path := filepath.Join(filepath.Dir(base), fmt.Sprintf(OverlayConfigPattern, env))
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
