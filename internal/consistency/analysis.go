// Package consistency scores a finished creative against a brand style
// profile. Three depths trade cost for precision: quick uses local heuristics
// only, standard asks the judge once per dimension, and comprehensive asks
// for one structured judgment of all dimensions.
package consistency

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/palette/internal/campaigns"
)

// Depth selects an analysis tier.
type Depth string

const (
	DepthQuick         Depth = "quick"
	DepthStandard      Depth = "standard"
	DepthComprehensive Depth = "comprehensive"
)

// ParseDepth validates s. An empty string selects DepthStandard.
func ParseDepth(s string) (Depth, error) {
	switch d := Depth(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DepthStandard, nil
	case DepthQuick, DepthStandard, DepthComprehensive:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDepth, s)
}

// Creative is the finished output being checked.
type Creative struct {
	Text         string              `json:"text"`
	Platform     campaigns.Platform  `json:"platform"`
	Objective    campaigns.Objective `json:"objective"`
	Keywords     []string            `json:"keywords,omitempty"`
	Colors       []string            `json:"colors,omitempty"`
	FontFamilies []string            `json:"font_families,omitempty"`
	Layout       string              `json:"layout,omitempty"`
}

// Visual measures agreement with the profile's colors, fonts, and layout.
type Visual struct {
	Score             float64 `json:"score"`
	ColorAlignment    float64 `json:"color_alignment"`
	TypographyMatch   float64 `json:"typography_match"`
	LayoutConsistency float64 `json:"layout_consistency"`
}

type Content struct {
	Score            float64 `json:"score"`
	ToneMatch        float64 `json:"tone_match"`
	KeywordUsage     float64 `json:"keyword_usage"`
	MessageAlignment float64 `json:"message_alignment"`
}

type Platform struct {
	Score                    float64 `json:"score"`
	CharacterLimitCompliance float64 `json:"character_limit_compliance"`
	CTAPresence              float64 `json:"cta_presence"`
	FormatFit                float64 `json:"format_fit"`
}

// Analysis is the result of one consistency check. All scores are within [0,100].
type Analysis struct {
	Visual          Visual   `json:"visual_consistency"`
	Content         Content  `json:"content_consistency"`
	Platform        Platform `json:"platform_alignment"`
	OverallScore    float64  `json:"overall_score"`
	Recommendations []string `json:"recommendations"`
	Depth           Depth    `json:"depth"`
}

// Weights combine the three dimension scores into the overall score.
type Weights struct {
	Visual   float64
	Content  float64
	Platform float64
}

// DefaultWeights returns the standard dimension weights.
func DefaultWeights() Weights {
	return Weights{Visual: 0.40, Content: 0.35, Platform: 0.25}
}

// Validate requires non-negative weights summing to 1.
func (w Weights) Validate() error {
	if w.Visual < 0 || w.Content < 0 || w.Platform < 0 {
		return fmt.Errorf("%w: negative weight", ErrInvalidWeights)
	}
	if sum := w.Visual + w.Content + w.Platform; sum < 1-1e-6 || sum > 1+1e-6 {
		return fmt.Errorf("%w: sum %v", ErrInvalidWeights, sum)
	}
	return nil
}

func (w Weights) overall(a *Analysis) float64 {
	return clamp(a.Visual.Score*w.Visual + a.Content.Score*w.Content + a.Platform.Score*w.Platform)
}

func clamp(v float64) float64 {
	return max(0, min(100, v))
}
