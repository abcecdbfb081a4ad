package learning

import (
	"strings"
	"unicode/utf8"

	"github.com/JaimeStill/palette/internal/captions"
)

// Similarity holds the thresholds two captions must beat to share a cluster.
type Similarity struct {
	// MinJaccard is the exclusive lower bound on token-set overlap.
	MinJaccard float64
	// MaxLengthDiff is the exclusive upper bound on relative length difference.
	MaxLengthDiff float64
}

// DefaultSimilarity returns the standard clustering thresholds.
func DefaultSimilarity() Similarity {
	return Similarity{MinJaccard: 0.7, MaxLengthDiff: 0.3}
}

// Similar reports whether a and b are close enough to cluster together.
func (s Similarity) Similar(a, b string) bool {
	return jaccard(a, b) > s.MinJaccard && lengthDiff(a, b) < s.MaxLengthDiff
}

// Cluster groups captions in a single greedy pass. Each unassigned caption
// seeds a cluster and absorbs every later unassigned caption similar to the
// seed. Members are compared to the seed only, never to each other, so the
// grouping depends on input order. Every caption lands in exactly one cluster.
func Cluster(items []captions.Caption, sim Similarity) [][]captions.Caption {
	assigned := make([]bool, len(items))
	clusters := make([][]captions.Caption, 0)

	for i, seed := range items {
		if assigned[i] {
			continue
		}
		assigned[i] = true
		group := []captions.Caption{seed}

		for j := i + 1; j < len(items); j++ {
			if assigned[j] {
				continue
			}
			if sim.Similar(seed.Text, items[j].Text) {
				assigned[j] = true
				group = append(group, items[j])
			}
		}

		clusters = append(clusters, group)
	}

	return clusters
}

// jaccard is the token-set similarity of lower-cased, whitespace-split words.
// Two texts without tokens have similarity 0.
func jaccard(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	inter := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			inter++
		}
	}

	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func lengthDiff(a, b string) float64 {
	la := utf8.RuneCountInString(a)
	lb := utf8.RuneCountInString(b)

	longest := max(la, lb)
	if longest == 0 {
		return 0
	}

	d := la - lb
	if d < 0 {
		d = -d
	}
	return float64(d) / float64(longest)
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
