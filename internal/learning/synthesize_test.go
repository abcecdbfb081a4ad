package learning_test

import (
	"errors"
	"math"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/palette/internal/assets"
	"github.com/JaimeStill/palette/internal/captions"
	"github.com/JaimeStill/palette/internal/learning"
	"github.com/JaimeStill/palette/internal/templates"
	"github.com/JaimeStill/palette/pkg/storage"
)

func scored(text string, score float64) captions.Caption {
	c := caption(text)
	c.QualityScore = &score
	return c
}

func TestSynthesizeScenario(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cluster := []captions.Caption{
		scored("Discover our new spring collection today", 8),
		scored("Discover our new spring line today", 9),
	}

	tmpl, err := learning.Synthesize(cluster, 1, now)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	lp := tmpl.CaptionStructure.LengthPreferences
	if lp.Min != 34 || lp.Max != 40 || lp.Ideal != 37 {
		t.Errorf("length = %+v, want {Min:34 Max:40 Ideal:37}", lp)
	}

	wantPatterns := []string{"discover", "spring", "today", "collection", "line"}
	if !slices.Equal(tmpl.CaptionStructure.WordChoicePatterns, wantPatterns) {
		t.Errorf("patterns = %v, want %v", tmpl.CaptionStructure.WordChoicePatterns, wantPatterns)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"name", tmpl.Name, "Learned Template 1"},
		{"tone", tmpl.CaptionStructure.ToneStyle, "professional"},
		{"appeal", tmpl.CaptionStructure.EmotionalAppeal, "balanced"},
		{"layout", tmpl.LayoutPreferences, templates.DefaultLayout},
		{"approval rate", tmpl.PerformanceMetrics.ApprovalRate, 1.0},
		{"reuse count", tmpl.PerformanceMetrics.ReuseCount, 0},
		{"average score", tmpl.PerformanceMetrics.AverageScore, 8.5},
		{"source", tmpl.Source, templates.SourceLearned},
		{"created", tmpl.CreatedAt, now},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, want %v", tt.got, tt.expected)
			}
		})
	}

	if tmpl.LastUsedAt != nil {
		t.Error("new template should not have LastUsedAt")
	}
	if !tmpl.Configuration.CoversIndustry("anything") {
		t.Error("learned template should use the permissive configuration")
	}
}

func TestSynthesizeRequiresEvidence(t *testing.T) {
	tests := []struct {
		name    string
		cluster []captions.Caption
	}{
		{"empty", nil},
		{"singleton", []captions.Caption{caption("Only one approved caption")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := learning.Synthesize(tt.cluster, 1, time.Now())
			if !errors.Is(err, learning.ErrInsufficientEvidence) {
				t.Errorf("error = %v, want ErrInsufficientEvidence", err)
			}
		})
	}
}

func TestSynthesizeLengthBounds(t *testing.T) {
	cluster := []captions.Caption{
		caption("aaaa"),
		caption("bbbbbbbbbb"),
		caption("cccccc"),
	}

	tmpl, err := learning.Synthesize(cluster, 2, time.Now())
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	lp := tmpl.CaptionStructure.LengthPreferences
	if lp.Min > lp.Ideal || lp.Ideal > lp.Max {
		t.Errorf("length %+v violates min <= ideal <= max", lp)
	}
	if lp.Min != 4 || lp.Max != 10 {
		t.Errorf("length = %+v, want min 4 max 10", lp)
	}
	if lp.Ideal != int(math.Round(20.0/3.0)) {
		t.Errorf("ideal = %d, want %d", lp.Ideal, int(math.Round(20.0/3.0)))
	}
	if tmpl.Name != "Learned Template 2" {
		t.Errorf("name = %q, want Learned Template 2", tmpl.Name)
	}
}

func TestSynthesizeLengthCountsCharacters(t *testing.T) {
	cluster := []captions.Caption{
		caption("café déjà vu"),
		caption("café déjà vu"),
	}

	tmpl, err := learning.Synthesize(cluster, 1, time.Now())
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if got := tmpl.CaptionStructure.LengthPreferences.Ideal; got != 12 {
		t.Errorf("ideal = %d, want 12 characters", got)
	}
}

func TestSynthesizeWordPatterns(t *testing.T) {
	t.Run("short words and punctuation", func(t *testing.T) {
		cluster := []captions.Caption{
			caption("Shop the sale, now!"),
			caption("Shop our sale today."),
		}
		tmpl, err := learning.Synthesize(cluster, 1, time.Now())
		if err != nil {
			t.Fatalf("Synthesize() error = %v", err)
		}

		want := []string{"shop", "sale", "today"}
		if got := tmpl.CaptionStructure.WordChoicePatterns; !slices.Equal(got, want) {
			t.Errorf("patterns = %v, want %v", got, want)
		}
	})

	t.Run("hashtags count as plain words", func(t *testing.T) {
		cluster := []captions.Caption{
			caption("Spring #sale starts today"),
			caption("Big spring sale! #today"),
		}
		tmpl, err := learning.Synthesize(cluster, 1, time.Now())
		if err != nil {
			t.Fatalf("Synthesize() error = %v", err)
		}

		want := []string{"spring", "sale", "today", "starts"}
		if got := tmpl.CaptionStructure.WordChoicePatterns; !slices.Equal(got, want) {
			t.Errorf("patterns = %v, want %v", got, want)
		}
	})

	t.Run("capped", func(t *testing.T) {
		long := "alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima mike november"
		tmpl, err := learning.Synthesize([]captions.Caption{caption(long), caption(long)}, 1, time.Now())
		if err != nil {
			t.Fatalf("Synthesize() error = %v", err)
		}
		if n := len(tmpl.CaptionStructure.WordChoicePatterns); n != templates.MaxWordPatterns {
			t.Errorf("patterns = %d, want %d", n, templates.MaxWordPatterns)
		}
	})
}

func TestSynthesizeAverageScoreCountsMissing(t *testing.T) {
	tests := []struct {
		name    string
		cluster []captions.Caption
		want    float64
	}{
		{"all scored", []captions.Caption{scored("a b c", 6), scored("a b c", 8)}, 7},
		{"one missing", []captions.Caption{scored("a b c", 8), caption("a b c")}, 4},
		{"none scored", []captions.Caption{caption("a b c"), caption("a b c")}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := learning.Synthesize(tt.cluster, 1, time.Now())
			if err != nil {
				t.Fatalf("Synthesize() error = %v", err)
			}
			if got := tmpl.PerformanceMetrics.AverageScore; got != tt.want {
				t.Errorf("average = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractStyleProfile(t *testing.T) {
	campaignID := uuid.New()
	asset := assets.GeneratedAsset{
		ID:          uuid.New(),
		WorkspaceID: uuid.New(),
		CampaignID:  &campaignID,
		StorageKey:  "workspace/renders/hero.png",
	}
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("with blob metadata", func(t *testing.T) {
		props := &storage.Properties{Key: asset.StorageKey, ContentType: "image/png", Size: 20480}
		p := learning.ExtractStyleProfile(asset, props, now)

		if p.AssetID != asset.ID || p.WorkspaceID != asset.WorkspaceID || *p.CampaignID != campaignID {
			t.Error("profile does not reference its asset")
		}
		if p.Source.StorageKey != asset.StorageKey || p.Source.ContentType != "image/png" || p.Source.Size != 20480 {
			t.Errorf("source = %+v", p.Source)
		}
		if p.BrandAlignment != learning.UnmeasuredBrandAlignment {
			t.Errorf("brand alignment = %+v", p.BrandAlignment)
		}
		if p.Colors.Dominant == "" || len(p.Colors.Palette) == 0 || len(p.Typography.Families) == 0 {
			t.Error("profile is missing visual attributes")
		}
		if !p.CreatedAt.Equal(now) {
			t.Errorf("created = %v, want %v", p.CreatedAt, now)
		}
	})

	t.Run("without blob metadata", func(t *testing.T) {
		p := learning.ExtractStyleProfile(asset, nil, now)
		if p.Source.StorageKey != asset.StorageKey || p.Source.ContentType != "" || p.Source.Size != 0 {
			t.Errorf("source = %+v", p.Source)
		}
	})

	t.Run("profiles do not share slices", func(t *testing.T) {
		a := learning.ExtractStyleProfile(asset, nil, now)
		b := learning.ExtractStyleProfile(asset, nil, now)
		a.Colors.Palette[0] = "#000000"
		if b.Colors.Palette[0] == "#000000" {
			t.Error("palette slice is shared between profiles")
		}
	})
}
