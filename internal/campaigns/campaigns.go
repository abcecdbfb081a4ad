// Package campaigns defines the campaign vocabulary shared by matching and
// consistency scoring: objectives, funnel stages, platforms, and the
// lookups derived from them.
package campaigns

import (
	"fmt"
	"slices"
	"strings"
)

// Objective is the marketing goal of a campaign.
type Objective string

const (
	ObjectiveAwareness    Objective = "awareness"
	ObjectiveTraffic      Objective = "traffic"
	ObjectiveEngagement   Objective = "engagement"
	ObjectiveLeads        Objective = "leads"
	ObjectiveAppPromotion Objective = "app_promotion"
	ObjectiveSales        Objective = "sales"
)

// FunnelStage is the buyer-journey position a campaign targets.
type FunnelStage string

const (
	StageAwareness     FunnelStage = "awareness"
	StageConsideration FunnelStage = "consideration"
	StageConversion    FunnelStage = "conversion"
	StageRetention     FunnelStage = "retention"
)

// Platform is a publishing destination.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTwitter   Platform = "twitter"
	PlatformTikTok    Platform = "tiktok"
)

// GenericIndustry matches every industry.
const GenericIndustry = "generic"

var (
	objectives   = []Objective{ObjectiveAwareness, ObjectiveTraffic, ObjectiveEngagement, ObjectiveLeads, ObjectiveAppPromotion, ObjectiveSales}
	funnelStages = []FunnelStage{StageAwareness, StageConsideration, StageConversion, StageRetention}
	platforms    = []Platform{PlatformInstagram, PlatformFacebook, PlatformLinkedIn, PlatformTwitter, PlatformTikTok}
)

// Objectives returns every known objective.
func Objectives() []Objective { return slices.Clone(objectives) }

// FunnelStages returns every known funnel stage.
func FunnelStages() []FunnelStage { return slices.Clone(funnelStages) }

// Platforms returns every known platform.
func Platforms() []Platform { return slices.Clone(platforms) }

// ParseObjective normalizes and validates s.
func ParseObjective(s string) (Objective, error) {
	v := Objective(normalize(s))
	if !slices.Contains(objectives, v) {
		return "", fmt.Errorf("%w: %q", ErrUnknownObjective, s)
	}
	return v, nil
}

// ParseFunnelStage normalizes and validates s.
func ParseFunnelStage(s string) (FunnelStage, error) {
	v := FunnelStage(normalize(s))
	if !slices.Contains(funnelStages, v) {
		return "", fmt.Errorf("%w: %q", ErrUnknownFunnelStage, s)
	}
	return v, nil
}

// ParsePlatform normalizes and validates s.
func ParsePlatform(s string) (Platform, error) {
	v := Platform(normalize(s))
	if !slices.Contains(platforms, v) {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
	}
	return v, nil
}

// Brief is the part of a campaign that template matching needs.
type Brief struct {
	Objective   Objective   `json:"objective"`
	FunnelStage FunnelStage `json:"funnel_stage"`
	Industry    string      `json:"industry"`
}

// Validate reports unknown objectives or funnel stages. Industry is free-form.
func (b Brief) Validate() error {
	if _, err := ParseObjective(string(b.Objective)); err != nil {
		return err
	}
	if _, err := ParseFunnelStage(string(b.FunnelStage)); err != nil {
		return err
	}
	return nil
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, "-", "_")
}
