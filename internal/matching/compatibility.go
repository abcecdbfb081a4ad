package matching

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/palette/internal/campaigns"
	"github.com/JaimeStill/palette/internal/judge"
	"github.com/JaimeStill/palette/internal/styles"
	"github.com/JaimeStill/palette/internal/templates"
	"github.com/JaimeStill/palette/pkg/formatting"
)

// Compatibility weights. Category checks add their full weight on a match;
// style alignment contributes its 0-100 judgment scaled by styleWeight.
const (
	objectiveWeight = 25
	stageWeight     = 20
	platformWeight  = 15
	industryWeight  = 15
	styleWeight     = 0.25

	// DefaultStyleAlignment stands in when the judge gives no usable score.
	DefaultStyleAlignment = 50
)

// Request is the campaign context a template is matched against.
// Style is optional.
type Request struct {
	Brief    campaigns.Brief      `json:"brief"`
	Platform campaigns.Platform   `json:"platform"`
	Style    *styles.StyleProfile `json:"style,omitempty"`
}

// Adaptation suggests a change that would fit a template to the request.
type Adaptation struct {
	Element        string  `json:"element"`
	Recommendation string  `json:"recommendation"`
	Confidence     float64 `json:"confidence"`
}

// ScoredTemplate is a template with its compatibility for one request.
type ScoredTemplate struct {
	Template            templates.Template `json:"template"`
	CompatibilityScore  float64            `json:"compatibility_score"`
	StyleAlignment      int                `json:"style_alignment"`
	ExpectedPerformance float64            `json:"expected_performance"`
	Adaptations         []Adaptation       `json:"adaptations"`
	Reasoning           string             `json:"reasoning"`
}

// Scorer computes template-to-campaign compatibility.
type Scorer struct {
	judge  judge.Judge
	logger *slog.Logger
}

// NewScorer creates a Scorer that asks j for style alignment.
func NewScorer(j judge.Judge, logger *slog.Logger) *Scorer {
	return &Scorer{
		judge:  j,
		logger: logger.With("system", "compatibility"),
	}
}

// Score rates t against req within [0,100]. Adaptations and reasoning are
// informational and never change the score.
func (s *Scorer) Score(ctx context.Context, t templates.Template, req Request) ScoredTemplate {
	cfg := t.Configuration
	var (
		total   float64
		matched []string
	)

	if cfg.HasObjective(req.Brief.Objective) {
		total += objectiveWeight
		matched = append(matched, fmt.Sprintf("objective %s", req.Brief.Objective))
	}
	if cfg.HasFunnelStage(req.Brief.FunnelStage) {
		total += stageWeight
		matched = append(matched, fmt.Sprintf("funnel stage %s", req.Brief.FunnelStage))
	}
	if cfg.HasPlatform(req.Platform) {
		total += platformWeight
		matched = append(matched, fmt.Sprintf("platform %s", req.Platform))
	}
	if cfg.CoversIndustry(req.Brief.Industry) {
		total += industryWeight
		matched = append(matched, fmt.Sprintf("industry %s", req.Brief.Industry))
	}

	alignment := s.styleAlignment(ctx, t, req)
	total += float64(alignment) * styleWeight

	return ScoredTemplate{
		Template:            t,
		CompatibilityScore:  clamp(total, 0, 100),
		StyleAlignment:      alignment,
		ExpectedPerformance: expectedPerformance(t),
		Adaptations:         adaptations(t, req, alignment),
		Reasoning:           reasoning(matched, alignment),
	}
}

func (s *Scorer) styleAlignment(ctx context.Context, t templates.Template, req Request) int {
	resp, err := s.judge.Judge(ctx, stylePrompt(t, req))
	if err != nil {
		s.logger.WarnContext(ctx, "style judgment unavailable, using default",
			"template_id", t.ID,
			"error", err,
		)
		return DefaultStyleAlignment
	}

	n, ok := formatting.FirstInt(resp)
	if !ok {
		s.logger.WarnContext(ctx, "style judgment unparseable, using default",
			"template_id", t.ID,
		)
		return DefaultStyleAlignment
	}
	return n
}

func stylePrompt(t templates.Template, req Request) string {
	var sb strings.Builder
	sb.WriteString("Rate from 0 to 100 how well this caption template fits the campaign on tone, visual style, industry, and platform. Reply with a single integer.\n\n")
	fmt.Fprintf(&sb, "Template: %s\n", t.Name)
	fmt.Fprintf(&sb, "Tone: %s\n", t.CaptionStructure.ToneStyle)
	fmt.Fprintf(&sb, "Emotional appeal: %s\n", t.CaptionStructure.EmotionalAppeal)
	fmt.Fprintf(&sb, "Layout: %s, %s, text %s\n",
		t.LayoutPreferences.Format, t.LayoutPreferences.Layout, t.LayoutPreferences.TextPlacement)
	if len(t.CaptionStructure.WordChoicePatterns) > 0 {
		fmt.Fprintf(&sb, "Recurring terms: %s\n", strings.Join(t.CaptionStructure.WordChoicePatterns, ", "))
	}
	fmt.Fprintf(&sb, "\nCampaign objective: %s\n", req.Brief.Objective)
	fmt.Fprintf(&sb, "Funnel stage: %s\n", req.Brief.FunnelStage)
	fmt.Fprintf(&sb, "Industry: %s\n", req.Brief.Industry)
	fmt.Fprintf(&sb, "Platform: %s\n", req.Platform)
	if req.Style != nil {
		fmt.Fprintf(&sb, "Brand colors: %s\n", strings.Join(req.Style.Colors.Palette, ", "))
		fmt.Fprintf(&sb, "Brand fonts: %s\n", strings.Join(req.Style.Typography.Families, ", "))
		fmt.Fprintf(&sb, "Brand layout: %s\n", req.Style.Layout.Composition)
	}
	return sb.String()
}

// expectedPerformance projects historical quality onto a 0-100 scale.
func expectedPerformance(t templates.Template) float64 {
	p := t.PerformanceMetrics
	return clamp(p.AverageScore*10*p.ApprovalRate, 0, 100)
}

func adaptations(t templates.Template, req Request, alignment int) []Adaptation {
	out := make([]Adaptation, 0)
	cfg := t.Configuration

	if !cfg.HasPlatform(req.Platform) {
		out = append(out, Adaptation{
			Element: "format",
			Recommendation: fmt.Sprintf("Reformat for %s using a %s aspect ratio.",
				req.Platform, campaigns.AspectRatio(req.Platform)),
			Confidence: 0.7,
		})
	}

	if limit := campaigns.CharacterLimit(req.Platform); t.CaptionStructure.LengthPreferences.Ideal > limit {
		out = append(out, Adaptation{
			Element:        "length",
			Recommendation: fmt.Sprintf("Shorten the caption to %d characters or fewer for %s.", limit, req.Platform),
			Confidence:     0.9,
		})
	}

	if !cfg.HasObjective(req.Brief.Objective) {
		ctas := campaigns.CTAOptions(req.Brief.Objective)
		out = append(out, Adaptation{
			Element: "call_to_action",
			Recommendation: fmt.Sprintf("Use a %s call to action such as %q.",
				req.Brief.Objective, ctas[0]),
			Confidence: 0.75,
		})
	}

	if alignment < 60 {
		out = append(out, Adaptation{
			Element: "tone",
			Recommendation: fmt.Sprintf("Adjust the %s tone toward the brand voice for the %s industry.",
				t.CaptionStructure.ToneStyle, req.Brief.Industry),
			Confidence: 0.6,
		})
	}

	return out
}

func reasoning(matched []string, alignment int) string {
	if len(matched) == 0 {
		return fmt.Sprintf("No targeting criteria matched; style alignment %d/100.", alignment)
	}
	return fmt.Sprintf("Matches %s; style alignment %d/100.", strings.Join(matched, ", "), alignment)
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
