// Package templates stores reusable caption templates, both learned from
// approved captions and seeded from the built-in catalogue.
package templates

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/palette/internal/campaigns"
)

// MaxWordPatterns caps the stored vocabulary of a template.
const MaxWordPatterns = 10

// Template origins.
const (
	SourceLearned = "learned"
	SourceBuiltin = "builtin"
)

// Template is a reusable caption pattern with targeting and performance data.
type Template struct {
	ID                 uuid.UUID          `json:"id"`
	WorkspaceID        uuid.UUID          `json:"workspace_id"`
	CampaignID         *uuid.UUID         `json:"campaign_id,omitempty"`
	Name               string             `json:"name"`
	CaptionStructure   CaptionStructure   `json:"caption_structure"`
	LayoutPreferences  LayoutPreferences  `json:"layout_preferences"`
	Configuration      Configuration      `json:"configuration"`
	PerformanceMetrics PerformanceMetrics `json:"performance_metrics"`
	Source             string             `json:"source"`
	CreatedAt          time.Time          `json:"created_at"`
	LastUsedAt         *time.Time         `json:"last_used_at,omitempty"`
}

// LastActivity returns LastUsedAt when set, otherwise CreatedAt.
func (t Template) LastActivity() time.Time {
	if t.LastUsedAt != nil {
		return *t.LastUsedAt
	}
	return t.CreatedAt
}

// LengthPreferences bounds caption length in characters.
type LengthPreferences struct {
	Min   int `json:"min"`
	Max   int `json:"max"`
	Ideal int `json:"ideal"`
}

// CaptionStructure describes the textual shape of captions built from a template.
type CaptionStructure struct {
	LengthPreferences  LengthPreferences `json:"length_preferences"`
	WordChoicePatterns []string          `json:"word_choice_patterns"`
	ToneStyle          string            `json:"tone_style"`
	EmotionalAppeal    string            `json:"emotional_appeal"`
}

// LayoutPreferences describes visual placement for rendered creatives.
type LayoutPreferences struct {
	Format        string `json:"format"`
	Layout        string `json:"layout"`
	TextPlacement string `json:"text_placement"`
}

// DefaultLayout is assigned to learned templates; layout is not learned from text.
var DefaultLayout = LayoutPreferences{
	Format:        "square",
	Layout:        "centered",
	TextPlacement: "bottom",
}

// Configuration lists the campaign contexts a template targets.
type Configuration struct {
	Objectives   []campaigns.Objective   `json:"objectives"`
	FunnelStages []campaigns.FunnelStage `json:"funnel_stages"`
	Platforms    []campaigns.Platform    `json:"platforms"`
	Industries   []string                `json:"industries"`
}

// Permissive returns a configuration that targets every known objective,
// funnel stage, and platform, in the generic industry.
func Permissive() Configuration {
	return Configuration{
		Objectives:   campaigns.Objectives(),
		FunnelStages: campaigns.FunnelStages(),
		Platforms:    campaigns.Platforms(),
		Industries:   []string{campaigns.GenericIndustry},
	}
}

func (c Configuration) HasObjective(o campaigns.Objective) bool {
	return slices.Contains(c.Objectives, o)
}

func (c Configuration) HasFunnelStage(s campaigns.FunnelStage) bool {
	return slices.Contains(c.FunnelStages, s)
}

func (c Configuration) HasPlatform(p campaigns.Platform) bool {
	return slices.Contains(c.Platforms, p)
}

// CoversIndustry reports whether the template applies to industry, either
// directly or through a generic entry. A generic industry is covered by any template.
func (c Configuration) CoversIndustry(industry string) bool {
	if industry == campaigns.GenericIndustry {
		return true
	}
	return slices.Contains(c.Industries, industry) ||
		slices.Contains(c.Industries, campaigns.GenericIndustry)
}

// PerformanceMetrics tracks how a template has performed.
// ApprovalRate is within [0,1] and AverageScore within [0,10].
type PerformanceMetrics struct {
	ApprovalRate float64 `json:"approval_rate"`
	ReuseCount   int     `json:"reuse_count"`
	AverageScore float64 `json:"average_score"`
}

// Validate checks the bounds a stored template must satisfy.
func (t Template) Validate() error {
	switch {
	case t.Name == "":
		return fmt.Errorf("%w: name required", ErrInvalidTemplate)
	case t.WorkspaceID == uuid.Nil:
		return fmt.Errorf("%w: workspace_id required", ErrInvalidTemplate)
	}

	l := t.CaptionStructure.LengthPreferences
	if l.Min < 0 || l.Min > l.Ideal || l.Ideal > l.Max {
		return fmt.Errorf("%w: length preferences %d/%d/%d out of order", ErrInvalidTemplate, l.Min, l.Ideal, l.Max)
	}
	if n := len(t.CaptionStructure.WordChoicePatterns); n > MaxWordPatterns {
		return fmt.Errorf("%w: %d word patterns exceeds %d", ErrInvalidTemplate, n, MaxWordPatterns)
	}

	p := t.PerformanceMetrics
	if p.ApprovalRate < 0 || p.ApprovalRate > 1 {
		return fmt.Errorf("%w: approval_rate %v outside [0,1]", ErrInvalidTemplate, p.ApprovalRate)
	}
	if p.AverageScore < 0 || p.AverageScore > 10 {
		return fmt.Errorf("%w: average_score %v outside [0,10]", ErrInvalidTemplate, p.AverageScore)
	}
	if p.ReuseCount < 0 {
		return fmt.Errorf("%w: negative reuse_count", ErrInvalidTemplate)
	}
	return nil
}
