package matching_test

import (
	"slices"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/JaimeStill/palette/internal/matching"
	"github.com/JaimeStill/palette/internal/templates"
)

func applyTemplate(ideal int, patterns ...string) templates.Template {
	t := newTemplate("Apply", 8)
	t.CaptionStructure.LengthPreferences = templates.LengthPreferences{Min: 0, Ideal: ideal, Max: ideal * 2}
	t.CaptionStructure.WordChoicePatterns = patterns
	return t
}

func TestAdapt(t *testing.T) {
	tests := []struct {
		name      string
		tmpl      templates.Template
		ctx       matching.ApplyContext
		want      string
		wantRules []string
	}{
		{
			name:      "short text untouched",
			tmpl:      applyTemplate(100),
			ctx:       matching.ApplyContext{SourceText: "Fresh arrivals are here"},
			want:      "Fresh arrivals are here",
			wantRules: []string{},
		},
		{
			name:      "truncated without backoff",
			tmpl:      applyTemplate(10),
			ctx:       matching.ApplyContext{SourceText: "abcdefghijklmnop"},
			want:      "abcdefghij",
			wantRules: []string{matching.RuleLengthAdaptation},
		},
		{
			name:      "truncated backing off to a space",
			tmpl:      applyTemplate(20),
			ctx:       matching.ApplyContext{SourceText: "Our spring sale has finally arrived"},
			want:      "Our spring sale has",
			wantRules: []string{matching.RuleLengthAdaptation},
		},
		{
			name:      "backoff skipped when it would discard too much",
			tmpl:      applyTemplate(20),
			ctx:       matching.ApplyContext{SourceText: "Big extraordinarilylongword"},
			want:      "Big extraordinarilyl",
			wantRules: []string{matching.RuleLengthAdaptation},
		},
		{
			name:      "explicit target overrides ideal",
			tmpl:      applyTemplate(100),
			ctx:       matching.ApplyContext{SourceText: "abcdefghijklmnop", TargetLength: 5},
			want:      "abcde",
			wantRules: []string{matching.RuleLengthAdaptation},
		},
		{
			name:      "missing terms appended in stored order",
			tmpl:      applyTemplate(100, "spring", "launch", "today"),
			ctx:       matching.ApplyContext{SourceText: "Spring styles land Today"},
			want:      "Spring styles land Today #launch",
			wantRules: []string{matching.RuleWordPatterns},
		},
		{
			name:      "both rules",
			tmpl:      applyTemplate(10, "sale"),
			ctx:       matching.ApplyContext{SourceText: "abcdefghijklmnop"},
			want:      "abcdefghij #sale",
			wantRules: []string{matching.RuleLengthAdaptation, matching.RuleWordPatterns},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matching.Adapt(tt.tmpl, tt.ctx)
			if got.ResultText != tt.want {
				t.Errorf("result = %q, want %q", got.ResultText, tt.want)
			}
			if !slices.Equal(got.AppliedRules, tt.wantRules) {
				t.Errorf("rules = %v, want %v", got.AppliedRules, tt.wantRules)
			}
			if want := float64(len(tt.wantRules)) / 5; got.Confidence != want {
				t.Errorf("confidence = %v, want %v", got.Confidence, want)
			}
			if got.TemplateID != tt.tmpl.ID {
				t.Errorf("template id = %v, want %v", got.TemplateID, tt.tmpl.ID)
			}
		})
	}
}

func TestAdaptDeterministic(t *testing.T) {
	tmpl := applyTemplate(25, "launch", "spring")
	ctx := matching.ApplyContext{SourceText: "Introducing the brightest collection we have ever made"}

	first := matching.Adapt(tmpl, ctx)
	second := matching.Adapt(tmpl, ctx)

	if first.ResultText != second.ResultText || first.Confidence != second.Confidence ||
		!slices.Equal(first.AppliedRules, second.AppliedRules) {
		t.Errorf("Adapt is not deterministic: %+v vs %+v", first, second)
	}
}

func TestAdaptTruncationSafety(t *testing.T) {
	source := "Discover how our team rebuilt the onboarding flow from scratch, cutting setup time in half for every new customer."
	tmpl := applyTemplate(0)

	for target := 1; target <= utf8.RuneCountInString(source)+5; target++ {
		got := matching.Adapt(tmpl, matching.ApplyContext{SourceText: source, TargetLength: target})

		if got.ResultText == "" {
			t.Fatalf("target %d: empty result from non-empty input", target)
		}
		if n := utf8.RuneCountInString(got.ResultText); n > target {
			t.Errorf("target %d: result has %d characters", target, n)
		}
		if !strings.HasPrefix(source, got.ResultText) {
			t.Errorf("target %d: %q is not a prefix of the source", target, got.ResultText)
		}
	}
}

func TestAdaptMultibyte(t *testing.T) {
	got := matching.Adapt(applyTemplate(4), matching.ApplyContext{SourceText: "ééééééé"})
	if got.ResultText != "éééé" {
		t.Errorf("result = %q, want éééé", got.ResultText)
	}
}
