package matching_test

import (
	"testing"
	"time"

	"github.com/JaimeStill/palette/internal/matching"
	"github.com/JaimeStill/palette/internal/templates"
)

func TestRankScoreMonotonic(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	base := newTemplate("Base", 6)
	base.CreatedAt = now.Add(-30 * 24 * time.Hour)
	base.PerformanceMetrics.ApprovalRate = 0.5
	base.PerformanceMetrics.ReuseCount = 2

	baseline := matching.RankScore(base, now)

	tests := []struct {
		name   string
		mutate func(*templates.Template)
	}{
		{"higher average score", func(t *templates.Template) { t.PerformanceMetrics.AverageScore = 8 }},
		{"higher approval rate", func(t *templates.Template) { t.PerformanceMetrics.ApprovalRate = 0.9 }},
		{"more reuse", func(t *templates.Template) { t.PerformanceMetrics.ReuseCount = 5 }},
		{"more recent use", func(t *templates.Template) {
			used := now.Add(-time.Hour)
			t.LastUsedAt = &used
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			improved := base
			tt.mutate(&improved)
			if got := matching.RankScore(improved, now); got <= baseline {
				t.Errorf("score %v not above baseline %v", got, baseline)
			}
		})
	}
}

func TestRankScoreRecencyFactor(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	tmpl := newTemplate("T", 5)
	tmpl.PerformanceMetrics.ApprovalRate = 1
	tmpl.CreatedAt = now

	// Activity at now doubles the base score.
	if got := matching.RankScore(tmpl, now); got != 10 {
		t.Errorf("RankScore = %v, want 10", got)
	}
}

func TestRank(t *testing.T) {
	now := time.Now()
	a := newTemplate("A", 5)
	b := newTemplate("B", 9)
	c := newTemplate("C", 7)
	d := newTemplate("D", 7)
	d.CreatedAt = c.CreatedAt

	input := []templates.Template{a, b, c, d}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"limited", 2, []string{"B", "C"}},
		{"ties keep input order", 4, []string{"B", "C", "D", "A"}},
		{"limit beyond input", 10, []string{"B", "C", "D", "A"}},
		{"zero limit uses default", 0, []string{"B", "C", "D", "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(matching.Rank(input, now, tt.limit))
			if len(got) != len(tt.want) {
				t.Fatalf("Rank = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Rank = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}

	if input[0].Name != "A" || input[1].Name != "B" {
		t.Error("Rank modified its input")
	}
}

func TestRankEmpty(t *testing.T) {
	if got := matching.Rank(nil, time.Now(), 5); len(got) != 0 {
		t.Errorf("Rank(nil) = %v, want empty", got)
	}
}
