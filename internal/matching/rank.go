package matching

import (
	"slices"
	"time"

	"github.com/JaimeStill/palette/internal/templates"
)

// DefaultRecommendLimit caps Rank when no positive limit is given.
const DefaultRecommendLimit = 5

// RankScore is a template's recommendation score: average score × approval
// rate × (reuse count + 1), boosted by a recency factor of
// 1 + lastActivity/now measured in unix milliseconds. The factor is at least 1
// and grows as activity approaches now.
func RankScore(t templates.Template, now time.Time) float64 {
	p := t.PerformanceMetrics
	base := p.AverageScore * p.ApprovalRate * float64(p.ReuseCount+1)

	nowMs := now.UnixMilli()
	if nowMs <= 0 {
		return base
	}
	recency := 1 + float64(t.LastActivity().UnixMilli())/float64(nowMs)
	return base * recency
}

// Rank orders items by RankScore, highest first, and keeps at most limit.
// Equal scores keep input order. The input slice is not modified.
func Rank(items []templates.Template, now time.Time, limit int) []templates.Template {
	if limit <= 0 {
		limit = DefaultRecommendLimit
	}

	type scored struct {
		t     templates.Template
		score float64
	}

	ranked := make([]scored, len(items))
	for i, t := range items {
		ranked[i] = scored{t: t, score: RankScore(t, now)}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		}
		return 0
	})

	out := make([]templates.Template, 0, min(limit, len(ranked)))
	for _, r := range ranked[:min(limit, len(ranked))] {
		out = append(out, r.t)
	}
	return out
}
