package main

import (
	"fmt"
	"time"

	"github.com/JaimeStill/palette/internal/assets"
	"github.com/JaimeStill/palette/internal/captions"
	"github.com/JaimeStill/palette/internal/config"
	"github.com/JaimeStill/palette/internal/consistency"
	"github.com/JaimeStill/palette/internal/infrastructure"
	"github.com/JaimeStill/palette/internal/judge"
	"github.com/JaimeStill/palette/internal/learning"
	"github.com/JaimeStill/palette/internal/matching"
	"github.com/JaimeStill/palette/internal/styles"
	"github.com/JaimeStill/palette/internal/templates"
)

// App wires infrastructure, stores, and the engine for one CLI invocation.
type App struct {
	infra *infrastructure.Infrastructure

	Templates   templates.System
	Styles      styles.System
	Learner     *learning.Learner
	Matching    matching.System
	Consistency *consistency.Scorer
}

func NewApp(cfg *config.Config) (*App, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	db := infra.Database.Connection()
	templateStore := templates.New(db, infra.Logger)
	styleStore := styles.New(db, infra.Logger)

	j := newJudge(cfg, infra)
	engine := cfg.Engine

	learner := learning.New(learning.Deps{
		Captions:  captions.New(db, infra.Logger),
		Assets:    assets.New(db, infra.Logger),
		Templates: templateStore,
		Styles:    styleStore,
		Blobs:     infra.Storage,
		Similarity: learning.Similarity{
			MinJaccard:    engine.Similarity.MinJaccard,
			MaxLengthDiff: engine.Similarity.MaxLengthDiffPct,
		},
		Metrics: infra.Metrics,
		Logger:  infra.Logger,
	})

	matcher := matching.New(templateStore, j, matching.Options{
		MinCompatibility: *engine.MinCompatibility,
		MaxMatches:       engine.MaxMatches,
		RecommendLimit:   engine.RecommendLimit,
		SelectCandidates: engine.SelectCandidates,
		Workers:          engine.Workers,
	}, infra.Logger)

	scorer, err := consistency.NewScorer(j, styleStore, consistency.Weights{
		Visual:   engine.Weights.Visual,
		Content:  engine.Weights.Content,
		Platform: engine.Weights.Platform,
	}, infra.Logger)
	if err != nil {
		return nil, fmt.Errorf("consistency init failed: %w", err)
	}

	return &App{
		infra:       infra,
		Templates:   templateStore,
		Styles:      styleStore,
		Learner:     learner,
		Matching:    matcher,
		Consistency: scorer,
	}, nil
}

func newJudge(cfg *config.Config, infra *infrastructure.Infrastructure) judge.Judge {
	if cfg.Judge.Disabled {
		infra.Logger.Info("judge disabled, using heuristic defaults")
		return judge.Unavailable()
	}

	j := judge.New(cfg.Agent, judge.Options{
		RequestsPerMinute: cfg.Judge.RequestsPerMinute,
		Timeout:           cfg.Judge.TimeoutDuration(),
	}, infra.Metrics, infra.Logger)

	if infra.Cache != nil {
		j = judge.Cached(j, infra.Cache, infra.Logger)
	}
	return j
}

// Start registers infrastructure hooks and waits for every startup check.
func (a *App) Start() error {
	if err := a.infra.Start(); err != nil {
		return err
	}
	if err := a.infra.Lifecycle.WaitForStartup(); err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}
	return nil
}

func (a *App) Shutdown(timeout time.Duration) error {
	return a.infra.Lifecycle.Shutdown(timeout)
}
