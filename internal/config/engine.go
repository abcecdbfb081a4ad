package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
)

const (
	EnvEngineMinCompatibility = "PALETTE_ENGINE_MIN_COMPATIBILITY"
	EnvEngineMaxMatches       = "PALETTE_ENGINE_MAX_MATCHES"
	EnvEngineRecommendLimit   = "PALETTE_ENGINE_RECOMMEND_LIMIT"
	EnvEngineSelectCandidates = "PALETTE_ENGINE_SELECT_CANDIDATES"
	EnvEngineWorkers          = "PALETTE_ENGINE_WORKERS"
)

// DefaultMinCompatibility applies when min_compatibility is not set.
const DefaultMinCompatibility = 50.0

// EngineConfig tunes learning, matching, and consistency scoring.
// MinCompatibility is a pointer so an explicit 0 (no threshold) survives
// defaulting; it is always set after Finalize.
type EngineConfig struct {
	MinCompatibility *float64         `toml:"min_compatibility"`
	MaxMatches       int              `toml:"max_matches"`
	RecommendLimit   int              `toml:"recommend_limit"`
	SelectCandidates int              `toml:"select_candidates"`
	Workers          int              `toml:"workers"`
	Similarity       SimilarityConfig `toml:"similarity"`
	Weights          WeightsConfig    `toml:"weights"`
}

// SimilarityConfig holds the caption clustering thresholds.
type SimilarityConfig struct {
	MinJaccard       float64 `toml:"min_jaccard"`
	MaxLengthDiffPct float64 `toml:"max_length_diff"`
}

// WeightsConfig holds the overall consistency weights per dimension.
type WeightsConfig struct {
	Visual   float64 `toml:"visual"`
	Content  float64 `toml:"content"`
	Platform float64 `toml:"platform"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *EngineConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *EngineConfig) Merge(overlay *EngineConfig) {
	if overlay.MinCompatibility != nil {
		v := *overlay.MinCompatibility
		c.MinCompatibility = &v
	}
	if overlay.MaxMatches != 0 {
		c.MaxMatches = overlay.MaxMatches
	}
	if overlay.RecommendLimit != 0 {
		c.RecommendLimit = overlay.RecommendLimit
	}
	if overlay.SelectCandidates != 0 {
		c.SelectCandidates = overlay.SelectCandidates
	}
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
	if overlay.Similarity.MinJaccard != 0 {
		c.Similarity.MinJaccard = overlay.Similarity.MinJaccard
	}
	if overlay.Similarity.MaxLengthDiffPct != 0 {
		c.Similarity.MaxLengthDiffPct = overlay.Similarity.MaxLengthDiffPct
	}
	// weights are replaced as a unit so a partial overlay cannot break the sum
	if overlay.Weights != (WeightsConfig{}) {
		c.Weights = overlay.Weights
	}
}

func (c *EngineConfig) loadDefaults() {
	if c.MinCompatibility == nil {
		v := DefaultMinCompatibility
		c.MinCompatibility = &v
	}
	if c.MaxMatches == 0 {
		c.MaxMatches = 5
	}
	if c.RecommendLimit == 0 {
		c.RecommendLimit = 5
	}
	if c.SelectCandidates == 0 {
		c.SelectCandidates = 10
	}
	if c.Workers == 0 {
		c.Workers = 4
	}
	if c.Similarity.MinJaccard == 0 {
		c.Similarity.MinJaccard = 0.7
	}
	if c.Similarity.MaxLengthDiffPct == 0 {
		c.Similarity.MaxLengthDiffPct = 0.3
	}
	if c.Weights == (WeightsConfig{}) {
		c.Weights = WeightsConfig{Visual: 0.40, Content: 0.35, Platform: 0.25}
	}
}

func (c *EngineConfig) loadEnv() {
	if v := os.Getenv(EnvEngineMinCompatibility); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.MinCompatibility = &f
		}
	}
	setInt := func(envVar string, dst *int) {
		if v := os.Getenv(envVar); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	setInt(EnvEngineMaxMatches, &c.MaxMatches)
	setInt(EnvEngineRecommendLimit, &c.RecommendLimit)
	setInt(EnvEngineSelectCandidates, &c.SelectCandidates)
	setInt(EnvEngineWorkers, &c.Workers)
}

func (c *EngineConfig) validate() error {
	if m := *c.MinCompatibility; m < 0 || m > 100 {
		return fmt.Errorf("min_compatibility must be within [0,100], got %v", m)
	}
	if c.MaxMatches < 1 {
		return fmt.Errorf("max_matches must be positive, got %d", c.MaxMatches)
	}
	if c.RecommendLimit < 1 {
		return fmt.Errorf("recommend_limit must be positive, got %d", c.RecommendLimit)
	}
	if c.SelectCandidates < 1 {
		return fmt.Errorf("select_candidates must be positive, got %d", c.SelectCandidates)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Similarity.MinJaccard <= 0 || c.Similarity.MinJaccard > 1 {
		return fmt.Errorf("similarity.min_jaccard must be within (0,1], got %v", c.Similarity.MinJaccard)
	}
	if c.Similarity.MaxLengthDiffPct <= 0 || c.Similarity.MaxLengthDiffPct > 1 {
		return fmt.Errorf("similarity.max_length_diff must be within (0,1], got %v", c.Similarity.MaxLengthDiffPct)
	}
	w := c.Weights
	if w.Visual < 0 || w.Content < 0 || w.Platform < 0 {
		return fmt.Errorf("weights must be non-negative")
	}
	if sum := w.Visual + w.Content + w.Platform; math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("weights must sum to 1, got %v", sum)
	}
	return nil
}
