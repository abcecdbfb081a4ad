package learning

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/JaimeStill/palette/internal/captions"
	"github.com/JaimeStill/palette/internal/templates"
)

const (
	// MinClusterSize is the smallest cluster that counts as evidence for a template.
	MinClusterSize = 2

	minPatternLength = 4

	defaultToneStyle       = "professional"
	defaultEmotionalAppeal = "balanced"
)

// Synthesize builds a learned template from one cluster of approved
// captions. ordinal numbers the template within its learning run and
// appears in the derived name.
func Synthesize(cluster []captions.Caption, ordinal int, now time.Time) (templates.Template, error) {
	if len(cluster) < MinClusterSize {
		return templates.Template{}, fmt.Errorf(
			"%w: cluster of %d caption(s)", ErrInsufficientEvidence, len(cluster),
		)
	}

	return templates.Template{
		WorkspaceID: cluster[0].WorkspaceID,
		Name:        fmt.Sprintf("Learned Template %d", ordinal),
		CaptionStructure: templates.CaptionStructure{
			LengthPreferences:  lengthPreferences(cluster),
			WordChoicePatterns: wordPatterns(cluster),
			ToneStyle:          defaultToneStyle,
			EmotionalAppeal:    defaultEmotionalAppeal,
		},
		LayoutPreferences: templates.DefaultLayout,
		Configuration:     templates.Permissive(),
		PerformanceMetrics: templates.PerformanceMetrics{
			ApprovalRate: 1,
			ReuseCount:   0,
			AverageScore: averageScore(cluster),
		},
		Source:    templates.SourceLearned,
		CreatedAt: now,
	}, nil
}

func lengthPreferences(cluster []captions.Caption) templates.LengthPreferences {
	lp := templates.LengthPreferences{Min: math.MaxInt}
	total := 0

	for _, c := range cluster {
		n := utf8.RuneCountInString(c.Text)
		lp.Min = min(lp.Min, n)
		lp.Max = max(lp.Max, n)
		total += n
	}

	lp.Ideal = int(math.Round(float64(total) / float64(len(cluster))))
	return lp
}

// wordPatterns returns up to templates.MaxWordPatterns words longer than three
// characters, most frequent first. Equal counts keep first-seen order.
// Leading and trailing non-alphanumerics are trimmed before the length check,
// so "#sale" and "sale!" both count as "sale"; the clusterer does not trim.
func wordPatterns(cluster []captions.Caption) []string {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, c := range cluster {
		for _, field := range strings.Fields(strings.ToLower(c.Text)) {
			w := strings.TrimFunc(field, func(r rune) bool {
				return !unicode.IsLetter(r) && !unicode.IsDigit(r)
			})
			if utf8.RuneCountInString(w) < minPatternLength {
				continue
			}
			if _, seen := counts[w]; !seen {
				order = append(order, w)
			}
			counts[w]++
		}
	}

	slices.SortStableFunc(order, func(a, b string) int {
		return counts[b] - counts[a]
	})

	if len(order) > templates.MaxWordPatterns {
		order = order[:templates.MaxWordPatterns]
	}
	return order
}

// averageScore divides by the full cluster size, so captions without a
// quality score pull the average toward zero.
func averageScore(cluster []captions.Caption) float64 {
	var sum float64
	for _, c := range cluster {
		if c.QualityScore != nil {
			sum += *c.QualityScore
		}
	}
	return sum / float64(len(cluster))
}
