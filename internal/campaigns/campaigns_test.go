package campaigns_test

import (
	"errors"
	"testing"

	"github.com/JaimeStill/palette/internal/campaigns"
)

func TestParseObjective(t *testing.T) {
	tests := []struct {
		input   string
		want    campaigns.Objective
		wantErr bool
	}{
		{"awareness", campaigns.ObjectiveAwareness, false},
		{" Sales ", campaigns.ObjectiveSales, false},
		{"app-promotion", campaigns.ObjectiveAppPromotion, false},
		{"APP_PROMOTION", campaigns.ObjectiveAppPromotion, false},
		{"virality", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := campaigns.ParseObjective(tt.input)
			if tt.wantErr {
				if !errors.Is(err, campaigns.ErrUnknownObjective) {
					t.Fatalf("ParseObjective(%q) error = %v, want ErrUnknownObjective", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseObjective(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseObjective(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFunnelStageAndPlatform(t *testing.T) {
	if got, err := campaigns.ParseFunnelStage("Consideration"); err != nil || got != campaigns.StageConsideration {
		t.Errorf("ParseFunnelStage = %q, %v", got, err)
	}
	if _, err := campaigns.ParseFunnelStage("loyalty"); !errors.Is(err, campaigns.ErrUnknownFunnelStage) {
		t.Errorf("ParseFunnelStage(loyalty) error = %v, want ErrUnknownFunnelStage", err)
	}
	if got, err := campaigns.ParsePlatform("LinkedIn"); err != nil || got != campaigns.PlatformLinkedIn {
		t.Errorf("ParsePlatform = %q, %v", got, err)
	}
	if _, err := campaigns.ParsePlatform("myspace"); !errors.Is(err, campaigns.ErrUnknownPlatform) {
		t.Errorf("ParsePlatform(myspace) error = %v, want ErrUnknownPlatform", err)
	}
}

func TestBriefValidate(t *testing.T) {
	tests := []struct {
		name  string
		brief campaigns.Brief
		want  error
	}{
		{"valid", campaigns.Brief{Objective: campaigns.ObjectiveLeads, FunnelStage: campaigns.StageConversion, Industry: "saas"}, nil},
		{"unknown objective", campaigns.Brief{Objective: "fame", FunnelStage: campaigns.StageConversion}, campaigns.ErrUnknownObjective},
		{"unknown stage", campaigns.Brief{Objective: campaigns.ObjectiveLeads, FunnelStage: "delight"}, campaigns.ErrUnknownFunnelStage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.brief.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCharacterLimit(t *testing.T) {
	tests := []struct {
		platform campaigns.Platform
		want     int
	}{
		{campaigns.PlatformTwitter, 280},
		{campaigns.PlatformLinkedIn, 3000},
		{campaigns.PlatformFacebook, 63206},
		{campaigns.PlatformInstagram, 2200},
		{campaigns.PlatformTikTok, 2200},
		{"unknown", 2200},
	}

	for _, tt := range tests {
		t.Run(string(tt.platform), func(t *testing.T) {
			if got := campaigns.CharacterLimit(tt.platform); got != tt.want {
				t.Errorf("CharacterLimit(%q) = %d, want %d", tt.platform, got, tt.want)
			}
		})
	}
}

func TestLookupsCoverEveryValue(t *testing.T) {
	for _, o := range campaigns.Objectives() {
		if len(campaigns.CTAOptions(o)) == 0 {
			t.Errorf("objective %q has no CTA options", o)
		}
	}
	for _, p := range campaigns.Platforms() {
		if campaigns.AspectRatio(p) == "" {
			t.Errorf("platform %q has no aspect ratio", p)
		}
	}
	if got := campaigns.AspectRatio("unknown"); got != "1:1" {
		t.Errorf("AspectRatio(unknown) = %q, want 1:1", got)
	}
	if got := campaigns.CTAOptions("unknown"); len(got) == 0 {
		t.Error("CTAOptions(unknown) should return fallback phrases")
	}
}

func TestEnumerationsReturnCopies(t *testing.T) {
	got := campaigns.Platforms()
	got[0] = "mutated"
	if campaigns.Platforms()[0] == "mutated" {
		t.Error("Platforms() exposes its backing slice")
	}
}
