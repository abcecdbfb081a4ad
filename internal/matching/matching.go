// Package matching finds, ranks, and applies templates for a campaign.
package matching

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/palette/internal/judge"
	"github.com/JaimeStill/palette/internal/templates"
)

// TemplateStore is the template persistence matching depends on.
type TemplateStore interface {
	Find(ctx context.Context, id uuid.UUID) (*templates.Template, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, campaignID *uuid.UUID) ([]templates.Template, error)
	RecordUsage(ctx context.Context, id uuid.UUID) (*templates.Template, error)
}

// System defines the matching operations.
type System interface {
	// Match scores every workspace template against req and returns those at
	// or above the minimum compatibility, best first, capped to the maximum.
	Match(ctx context.Context, workspaceID uuid.UUID, campaignID *uuid.UUID, req Request) ([]ScoredTemplate, error)
	// Recommend ranks workspace templates by performance and recency.
	Recommend(ctx context.Context, workspaceID uuid.UUID, campaignID *uuid.UUID, limit int) ([]templates.Template, error)
	// Apply adapts text to a template and records one use of it.
	Apply(ctx context.Context, templateID uuid.UUID, ac ApplyContext) (*Application, error)
	// Select applies the top ranked templates and returns the best result,
	// or nil when no template could be applied.
	Select(ctx context.Context, workspaceID uuid.UUID, campaignID *uuid.UUID, ac ApplyContext) (*Selection, error)
}

// Options tunes matching. Zero fields take defaults, except MinCompatibility
// where zero admits every template.
type Options struct {
	MinCompatibility float64
	MaxMatches       int
	RecommendLimit   int
	SelectCandidates int
	Workers          int
}

func (o Options) withDefaults() Options {
	if o.MaxMatches <= 0 {
		o.MaxMatches = 5
	}
	if o.RecommendLimit <= 0 {
		o.RecommendLimit = DefaultRecommendLimit
	}
	if o.SelectCandidates <= 0 {
		o.SelectCandidates = 10
	}
	if o.Workers <= 0 {
		o.Workers = 4
	}
	return o
}

// DefaultOptions returns the standard thresholds.
func DefaultOptions() Options {
	return Options{MinCompatibility: 50}.withDefaults()
}

type engine struct {
	store  TemplateStore
	scorer *Scorer
	opts   Options
	logger *slog.Logger
	now    func() time.Time
}

// New creates a matching System over store, judging style alignment with j.
func New(store TemplateStore, j judge.Judge, opts Options, logger *slog.Logger) System {
	return &engine{
		store:  store,
		scorer: NewScorer(j, logger),
		opts:   opts.withDefaults(),
		logger: logger.With("system", "matching"),
		now:    time.Now,
	}
}

func (e *engine) Match(ctx context.Context, workspaceID uuid.UUID, campaignID *uuid.UUID, req Request) ([]ScoredTemplate, error) {
	items, err := e.store.ListByWorkspace(ctx, workspaceID, campaignID)
	if err != nil {
		return nil, e.fail(ctx, "match", workspaceID, campaignID, err)
	}

	scored := make([]ScoredTemplate, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)
	for i := range items {
		g.Go(func() error {
			scored[i] = e.scorer.Score(gctx, items[i], req)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, e.fail(ctx, "match", workspaceID, campaignID, err)
	}

	matches := make([]ScoredTemplate, 0, len(scored))
	for _, s := range scored {
		if s.CompatibilityScore >= e.opts.MinCompatibility {
			matches = append(matches, s)
		}
	}

	slices.SortStableFunc(matches, func(a, b ScoredTemplate) int {
		switch {
		case a.CompatibilityScore > b.CompatibilityScore:
			return -1
		case a.CompatibilityScore < b.CompatibilityScore:
			return 1
		}
		return 0
	})

	if len(matches) > e.opts.MaxMatches {
		matches = matches[:e.opts.MaxMatches]
	}

	e.logger.InfoContext(ctx, "templates matched",
		"workspace_id", workspaceID,
		"campaign_id", campaignID,
		"candidates", len(items),
		"matches", len(matches),
	)
	return matches, nil
}

func (e *engine) Recommend(ctx context.Context, workspaceID uuid.UUID, campaignID *uuid.UUID, limit int) ([]templates.Template, error) {
	if limit <= 0 {
		limit = e.opts.RecommendLimit
	}

	items, err := e.store.ListByWorkspace(ctx, workspaceID, campaignID)
	if err != nil {
		return nil, e.fail(ctx, "recommend", workspaceID, campaignID, err)
	}
	return Rank(items, e.now(), limit), nil
}

func (e *engine) Apply(ctx context.Context, templateID uuid.UUID, ac ApplyContext) (*Application, error) {
	t, err := e.store.Find(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("find template %s: %w", templateID, err)
	}

	app := Adapt(*t, ac)

	if _, err := e.store.RecordUsage(ctx, templateID); err != nil {
		return nil, fmt.Errorf("record usage of %s: %w", templateID, err)
	}
	return &app, nil
}

// fail logs err with its scope and wraps it in ErrMatchingFailed.
func (e *engine) fail(ctx context.Context, op string, workspaceID uuid.UUID, campaignID *uuid.UUID, err error) error {
	e.logger.ErrorContext(ctx, op+" failed",
		"workspace_id", workspaceID,
		"campaign_id", campaignID,
		"error", err,
	)
	return fmt.Errorf("%w: %s: %w", ErrMatchingFailed, op, err)
}
