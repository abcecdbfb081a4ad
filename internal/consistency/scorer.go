package consistency

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/palette/internal/judge"
	"github.com/JaimeStill/palette/internal/styles"
	"github.com/JaimeStill/palette/pkg/formatting"
)

// StyleSource resolves stored style profiles.
type StyleSource interface {
	Find(ctx context.Context, id uuid.UUID) (*styles.StyleProfile, error)
}

// Scorer runs consistency analyses.
type Scorer struct {
	judge   judge.Judge
	styles  StyleSource
	weights Weights
	logger  *slog.Logger
}

// NewScorer creates a Scorer. weights must sum to 1.
func NewScorer(j judge.Judge, src StyleSource, weights Weights, logger *slog.Logger) (*Scorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{
		judge:   j,
		styles:  src,
		weights: weights,
		logger:  logger.With("system", "consistency"),
	}, nil
}

// AnalyzeByID loads the style profile and analyzes c against it. A missing
// profile surfaces as styles.ErrNotFound.
func (s *Scorer) AnalyzeByID(ctx context.Context, c Creative, profileID uuid.UUID, depth Depth) (*Analysis, error) {
	p, err := s.styles.Find(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("find style profile %s: %w", profileID, err)
	}
	return s.Analyze(ctx, c, *p, depth)
}

// Analyze scores c against p at the requested depth. Judge failures never
// fail the analysis; the affected scores keep their heuristic values.
func (s *Scorer) Analyze(ctx context.Context, c Creative, p styles.StyleProfile, depth Depth) (*Analysis, error) {
	a := heuristics(c, p)

	switch depth {
	case DepthQuick:
	case DepthStandard:
		s.standard(ctx, c, p, &a)
	case DepthComprehensive:
		if !s.comprehensive(ctx, c, p, &a) {
			s.logger.WarnContext(ctx, "comprehensive judgment unusable, falling back to standard")
			s.standard(ctx, c, p, &a)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDepth, depth)
	}

	a.Depth = depth
	a.OverallScore = s.weights.overall(&a)
	a.Recommendations = recommendations(a, c, p)
	return &a, nil
}

// standard asks for one score per dimension concurrently. A parsed score
// replaces the dimension's heuristic score.
func (s *Scorer) standard(ctx context.Context, c Creative, p styles.StyleProfile, a *Analysis) {
	targets := []struct {
		dimension string
		score     *float64
	}{
		{"visual", &a.Visual.Score},
		{"content", &a.Content.Score},
		{"platform", &a.Platform.Score},
	}

	var g errgroup.Group
	for _, t := range targets {
		g.Go(func() error {
			if v, ok := s.judgeScore(ctx, dimensionPrompt(t.dimension, c, p)); ok {
				*t.score = v
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (s *Scorer) judgeScore(ctx context.Context, prompt string) (float64, bool) {
	resp, err := s.judge.Judge(ctx, prompt)
	if err != nil {
		s.logger.WarnContext(ctx, "consistency judgment unavailable", "error", err)
		return 0, false
	}
	n, ok := formatting.FirstInt(resp)
	if !ok {
		s.logger.WarnContext(ctx, "consistency judgment unparseable")
		return 0, false
	}
	return clamp(float64(n)), true
}

type dimensionJudgment struct {
	Score   *float64           `json:"score"`
	Metrics map[string]float64 `json:"metrics"`
}

type fullJudgment struct {
	Visual   *dimensionJudgment `json:"visual"`
	Content  *dimensionJudgment `json:"content"`
	Platform *dimensionJudgment `json:"platform"`
}

// comprehensive requests a single structured judgment. It reports false,
// leaving a untouched, when the response is missing or incomplete.
func (s *Scorer) comprehensive(ctx context.Context, c Creative, p styles.StyleProfile, a *Analysis) bool {
	resp, err := s.judge.Judge(ctx, comprehensivePrompt(c, p))
	if err != nil {
		s.logger.WarnContext(ctx, "comprehensive judgment unavailable", "error", err)
		return false
	}

	j, err := formatting.Parse[fullJudgment](resp)
	if err != nil {
		s.logger.WarnContext(ctx, "comprehensive judgment unparseable", "error", err)
		return false
	}
	if j.Visual == nil || j.Content == nil || j.Platform == nil ||
		j.Visual.Score == nil || j.Content.Score == nil || j.Platform.Score == nil {
		return false
	}

	a.Visual.Score = clamp(*j.Visual.Score)
	setMetric(j.Visual.Metrics, "color_alignment", &a.Visual.ColorAlignment)
	setMetric(j.Visual.Metrics, "typography_match", &a.Visual.TypographyMatch)
	setMetric(j.Visual.Metrics, "layout_consistency", &a.Visual.LayoutConsistency)

	a.Content.Score = clamp(*j.Content.Score)
	setMetric(j.Content.Metrics, "tone_match", &a.Content.ToneMatch)
	setMetric(j.Content.Metrics, "keyword_usage", &a.Content.KeywordUsage)
	setMetric(j.Content.Metrics, "message_alignment", &a.Content.MessageAlignment)

	a.Platform.Score = clamp(*j.Platform.Score)
	setMetric(j.Platform.Metrics, "character_limit_compliance", &a.Platform.CharacterLimitCompliance)
	setMetric(j.Platform.Metrics, "cta_presence", &a.Platform.CTAPresence)
	setMetric(j.Platform.Metrics, "format_fit", &a.Platform.FormatFit)

	return true
}

func setMetric(m map[string]float64, key string, dst *float64) {
	if v, ok := m[key]; ok {
		*dst = clamp(v)
	}
}

var dimensionFocus = map[string]string{
	"visual":   "how closely the creative's colors, fonts, and layout follow the brand style",
	"content":  "how well the caption's tone, keywords, and message fit the brand",
	"platform": "how well the caption suits the platform's length limits, call-to-action conventions, and format",
}

func dimensionPrompt(dimension string, c Creative, p styles.StyleProfile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Rate from 0 to 100 %s. Reply with a single integer.\n\n", dimensionFocus[dimension])
	writeContext(&sb, c, p)
	return sb.String()
}

func comprehensivePrompt(c Creative, p styles.StyleProfile) string {
	var sb strings.Builder
	sb.WriteString("Evaluate the creative against the brand style. Reply with JSON only, in this shape, every value from 0 to 100:\n")
	sb.WriteString(`{"visual":{"score":0,"metrics":{"color_alignment":0,"typography_match":0,"layout_consistency":0}},`)
	sb.WriteString(`"content":{"score":0,"metrics":{"tone_match":0,"keyword_usage":0,"message_alignment":0}},`)
	sb.WriteString(`"platform":{"score":0,"metrics":{"character_limit_compliance":0,"cta_presence":0,"format_fit":0}}}`)
	sb.WriteString("\n\n")
	writeContext(&sb, c, p)
	return sb.String()
}

func writeContext(sb *strings.Builder, c Creative, p styles.StyleProfile) {
	fmt.Fprintf(sb, "Caption: %s\n", c.Text)
	fmt.Fprintf(sb, "Platform: %s\n", c.Platform)
	fmt.Fprintf(sb, "Objective: %s\n", c.Objective)
	if len(c.Keywords) > 0 {
		fmt.Fprintf(sb, "Keywords: %s\n", strings.Join(c.Keywords, ", "))
	}
	if len(c.Colors) > 0 {
		fmt.Fprintf(sb, "Creative colors: %s\n", strings.Join(c.Colors, ", "))
	}
	if len(c.FontFamilies) > 0 {
		fmt.Fprintf(sb, "Creative fonts: %s\n", strings.Join(c.FontFamilies, ", "))
	}
	if c.Layout != "" {
		fmt.Fprintf(sb, "Creative layout: %s\n", c.Layout)
	}
	fmt.Fprintf(sb, "\nBrand colors: %s\n", strings.Join(p.Colors.Palette, ", "))
	fmt.Fprintf(sb, "Brand fonts: %s\n", strings.Join(p.Typography.Families, ", "))
	fmt.Fprintf(sb, "Brand layout: %s, %s spacing\n", p.Layout.Composition, p.Layout.Spacing)
}
