package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/palette/internal/campaigns"
	"github.com/JaimeStill/palette/internal/consistency"
	"github.com/JaimeStill/palette/internal/learning"
	"github.com/JaimeStill/palette/internal/matching"
)

var errUsage = errors.New("invalid arguments")

func runLearn(ctx context.Context, app *App, args []string) (any, error) {
	fs := flag.NewFlagSet("learn", flag.ContinueOnError)
	workspace := fs.String("workspace", "", "workspace id (required)")
	campaign := fs.String("campaign", "", "restrict learning to one campaign")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	workspaceID, campaignID, err := scope(*workspace, *campaign)
	if err != nil {
		return nil, err
	}

	return app.Learner.Learn(ctx, learning.Request{
		WorkspaceID: workspaceID,
		CampaignID:  campaignID,
	})
}

func runRecommend(ctx context.Context, app *App, args []string) (any, error) {
	fs := flag.NewFlagSet("recommend", flag.ContinueOnError)
	workspace := fs.String("workspace", "", "workspace id (required)")
	campaign := fs.String("campaign", "", "restrict to one campaign")
	limit := fs.Int("limit", 0, "maximum templates returned (default from config)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	workspaceID, campaignID, err := scope(*workspace, *campaign)
	if err != nil {
		return nil, err
	}

	return app.Matching.Recommend(ctx, workspaceID, campaignID, *limit)
}

func runMatch(ctx context.Context, app *App, args []string) (any, error) {
	fs := flag.NewFlagSet("match", flag.ContinueOnError)
	workspace := fs.String("workspace", "", "workspace id (required)")
	campaign := fs.String("campaign", "", "restrict to one campaign")
	objective := fs.String("objective", "", "campaign objective (required)")
	stage := fs.String("stage", "", "funnel stage (required)")
	industry := fs.String("industry", campaigns.GenericIndustry, "industry")
	platform := fs.String("platform", "", "target platform (required)")
	style := fs.String("style", "", "style profile id")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	workspaceID, campaignID, err := scope(*workspace, *campaign)
	if err != nil {
		return nil, err
	}

	req := matching.Request{
		Brief: campaigns.Brief{Industry: strings.ToLower(*industry)},
	}
	if req.Brief.Objective, err = campaigns.ParseObjective(*objective); err != nil {
		return nil, err
	}
	if req.Brief.FunnelStage, err = campaigns.ParseFunnelStage(*stage); err != nil {
		return nil, err
	}
	if req.Platform, err = campaigns.ParsePlatform(*platform); err != nil {
		return nil, err
	}

	if *style != "" {
		id, err := parseID("style", *style)
		if err != nil {
			return nil, err
		}
		if req.Style, err = app.Styles.Find(ctx, id); err != nil {
			return nil, err
		}
	}

	return app.Matching.Match(ctx, workspaceID, campaignID, req)
}

func runApply(ctx context.Context, app *App, args []string) (any, error) {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	template := fs.String("template", "", "template id (required)")
	text := fs.String("text", "", "source text (required)")
	target := fs.Int("target", 0, "target length in characters (default: template ideal)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	id, err := parseID("template", *template)
	if err != nil {
		return nil, err
	}
	if *text == "" {
		return nil, fmt.Errorf("%w: -text is required", errUsage)
	}

	return app.Matching.Apply(ctx, id, matching.ApplyContext{
		SourceText:   *text,
		TargetLength: *target,
	})
}

func runSelect(ctx context.Context, app *App, args []string) (any, error) {
	fs := flag.NewFlagSet("select", flag.ContinueOnError)
	workspace := fs.String("workspace", "", "workspace id (required)")
	campaign := fs.String("campaign", "", "restrict to one campaign")
	text := fs.String("text", "", "source text (required)")
	target := fs.Int("target", 0, "target length in characters")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	workspaceID, campaignID, err := scope(*workspace, *campaign)
	if err != nil {
		return nil, err
	}
	if *text == "" {
		return nil, fmt.Errorf("%w: -text is required", errUsage)
	}

	return app.Matching.Select(ctx, workspaceID, campaignID, matching.ApplyContext{
		SourceText:   *text,
		TargetLength: *target,
	})
}

func runScore(ctx context.Context, app *App, args []string) (any, error) {
	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	style := fs.String("style", "", "style profile id (required)")
	depth := fs.String("depth", string(consistency.DepthStandard), "quick, standard, or comprehensive")
	text := fs.String("text", "", "caption text (required)")
	platform := fs.String("platform", "", "target platform (required)")
	objective := fs.String("objective", "", "campaign objective (required)")
	keywords := fs.String("keywords", "", "comma-separated campaign keywords")
	colors := fs.String("colors", "", "comma-separated hex colors used by the creative")
	fonts := fs.String("fonts", "", "comma-separated font families used by the creative")
	layout := fs.String("layout", "", "creative layout")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	id, err := parseID("style", *style)
	if err != nil {
		return nil, err
	}
	d, err := consistency.ParseDepth(*depth)
	if err != nil {
		return nil, err
	}

	c := consistency.Creative{
		Text:         *text,
		Keywords:     splitList(*keywords),
		Colors:       splitList(*colors),
		FontFamilies: splitList(*fonts),
		Layout:       *layout,
	}
	if c.Platform, err = campaigns.ParsePlatform(*platform); err != nil {
		return nil, err
	}
	if c.Objective, err = campaigns.ParseObjective(*objective); err != nil {
		return nil, err
	}

	return app.Consistency.AnalyzeByID(ctx, c, id, d)
}

func runSeed(ctx context.Context, app *App, args []string) (any, error) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	workspace := fs.String("workspace", "", "workspace id (required)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	workspaceID, err := parseID("workspace", *workspace)
	if err != nil {
		return nil, err
	}
	return app.Templates.Seed(ctx, workspaceID)
}

func scope(workspace, campaign string) (uuid.UUID, *uuid.UUID, error) {
	workspaceID, err := parseID("workspace", workspace)
	if err != nil {
		return uuid.Nil, nil, err
	}
	if campaign == "" {
		return workspaceID, nil, nil
	}
	campaignID, err := parseID("campaign", campaign)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return workspaceID, &campaignID, nil
}

func parseID(name, value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, fmt.Errorf("%w: -%s is required", errUsage, name)
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: -%s: %w", errUsage, name, err)
	}
	return id, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
