package matching

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/palette/internal/templates"
)

// Selection weights blend application confidence with template quality.
const (
	confidenceWeight = 0.6
	qualityWeight    = 0.4
)

// Selection is the winning application of an auto-select run.
type Selection struct {
	Template    templates.Template `json:"template"`
	Application Application        `json:"application"`
	Score       float64            `json:"score"`
	Considered  int                `json:"considered"`
	Succeeded   int                `json:"succeeded"`
}

// SelectionScore blends an application's confidence with its template's
// average score.
func SelectionScore(app Application, t templates.Template) float64 {
	return app.Confidence*confidenceWeight + (t.PerformanceMetrics.AverageScore/10)*qualityWeight
}

func (e *engine) Select(ctx context.Context, workspaceID uuid.UUID, campaignID *uuid.UUID, ac ApplyContext) (*Selection, error) {
	items, err := e.store.ListByWorkspace(ctx, workspaceID, campaignID)
	if err != nil {
		return nil, e.fail(ctx, "select", workspaceID, campaignID, err)
	}

	candidates := Rank(items, e.now(), e.opts.SelectCandidates)
	if len(candidates) == 0 {
		return nil, nil
	}

	apps := make([]*Application, len(candidates))

	var g errgroup.Group
	g.SetLimit(e.opts.Workers)
	for i, t := range candidates {
		g.Go(func() error {
			app, err := e.Apply(ctx, t.ID, ac)
			if err != nil {
				e.logger.WarnContext(ctx, "template application failed",
					"workspace_id", workspaceID,
					"template_id", t.ID,
					"error", err,
				)
				return nil
			}
			apps[i] = app
			return nil
		})
	}
	_ = g.Wait()

	var best *Selection
	succeeded := 0
	for i, app := range apps {
		if app == nil {
			continue
		}
		succeeded++

		score := SelectionScore(*app, candidates[i])
		if best == nil || score > best.Score {
			best = &Selection{
				Template:    candidates[i],
				Application: *app,
				Score:       score,
			}
		}
	}

	if best == nil {
		e.logger.WarnContext(ctx, "no template could be applied",
			"workspace_id", workspaceID,
			"campaign_id", campaignID,
			"candidates", len(candidates),
		)
		return nil, nil
	}

	best.Considered = len(candidates)
	best.Succeeded = succeeded

	e.logger.InfoContext(ctx, "template selected",
		"workspace_id", workspaceID,
		"template_id", best.Template.ID,
		"score", best.Score,
	)
	return best, nil
}
