package consistency

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/JaimeStill/palette/internal/campaigns"
	"github.com/JaimeStill/palette/internal/styles"
)

// unknownScore is used when the creative gives nothing to compare.
const unknownScore = 50

var (
	reHashtag      = regexp.MustCompile(`#\w+`)
	reAllCaps      = regexp.MustCompile(`\b[A-Z]{4,}\b`)
	reExclamations = regexp.MustCompile(`!{2,}`)
)

// hashtag ranges per platform: [min, max]
var hashtagRange = map[campaigns.Platform][2]int{
	campaigns.PlatformInstagram: {1, 30},
	campaigns.PlatformTikTok:    {1, 10},
	campaigns.PlatformTwitter:   {0, 3},
	campaigns.PlatformLinkedIn:  {0, 5},
	campaigns.PlatformFacebook:  {0, 5},
}

// heuristics scores every sub-metric locally. Dimension scores are the mean
// of their sub-metrics.
func heuristics(c Creative, p styles.StyleProfile) Analysis {
	var a Analysis

	a.Visual.ColorAlignment = colorAlignment(c.Colors, p.Colors)
	a.Visual.TypographyMatch = overlap(c.FontFamilies, p.Typography.Families)
	a.Visual.LayoutConsistency = layoutConsistency(c.Layout, p.Layout)
	a.Visual.Score = mean(a.Visual.ColorAlignment, a.Visual.TypographyMatch, a.Visual.LayoutConsistency)

	a.Content.ToneMatch = toneMatch(c.Text)
	a.Content.KeywordUsage = keywordUsage(c.Text, c.Keywords)
	a.Content.MessageAlignment = messageAlignment(c.Text)
	a.Content.Score = mean(a.Content.ToneMatch, a.Content.KeywordUsage, a.Content.MessageAlignment)

	a.Platform.CharacterLimitCompliance = characterCompliance(c.Text, c.Platform)
	a.Platform.CTAPresence = ctaPresence(c.Text, c.Objective)
	a.Platform.FormatFit = formatFit(c.Text, c.Platform)
	a.Platform.Score = mean(a.Platform.CharacterLimitCompliance, a.Platform.CTAPresence, a.Platform.FormatFit)

	return a
}

func colorAlignment(colors []string, brand styles.Colors) float64 {
	palette := append([]string{brand.Dominant}, brand.Palette...)
	return overlap(colors, palette)
}

// overlap is the share of got found in want, case-insensitively, on a 0-100 scale.
func overlap(got, want []string) float64 {
	if len(got) == 0 {
		return unknownScore
	}

	norm := make([]string, 0, len(want))
	for _, w := range want {
		norm = append(norm, strings.ToLower(strings.TrimSpace(w)))
	}

	hits := 0
	for _, g := range got {
		if slices.Contains(norm, strings.ToLower(strings.TrimSpace(g))) {
			hits++
		}
	}
	return 100 * float64(hits) / float64(len(got))
}

func layoutConsistency(layout string, brand styles.Layout) float64 {
	switch {
	case layout == "":
		return unknownScore
	case strings.EqualFold(layout, brand.Composition):
		return 100
	default:
		return 40
	}
}

// toneMatch penalizes shouting: repeated exclamation marks and all-caps words.
func toneMatch(text string) float64 {
	score := 90.0
	score -= 15 * float64(min(len(reExclamations.FindAllString(text, -1)), 2))
	score -= 10 * float64(min(len(reAllCaps.FindAllString(text, -1)), 3))
	return clamp(score)
}

func keywordUsage(text string, keywords []string) float64 {
	if len(keywords) == 0 {
		return unknownScore
	}
	return 100 * float64(len(keywords)-len(missingKeywords(text, keywords))) / float64(len(keywords))
}

func missingKeywords(text string, keywords []string) []string {
	lower := strings.ToLower(text)
	missing := make([]string, 0)
	for _, k := range keywords {
		if !strings.Contains(lower, strings.ToLower(k)) {
			missing = append(missing, k)
		}
	}
	return missing
}

// messageAlignment favors captions long enough to carry a message and short
// enough to read at a glance.
func messageAlignment(text string) float64 {
	words := len(strings.Fields(reHashtag.ReplaceAllString(text, "")))
	switch {
	case words == 0:
		return 0
	case words < 5:
		return 60
	case words <= 60:
		return 100
	default:
		return 75
	}
}

func characterCompliance(text string, p campaigns.Platform) float64 {
	limit := campaigns.CharacterLimit(p)
	n := utf8.RuneCountInString(text)
	if n <= limit {
		return 100
	}
	over := float64(n-limit) / float64(limit)
	return clamp(100 - over*100)
}

func ctaPresence(text string, o campaigns.Objective) float64 {
	if findCTA(text, o) != "" {
		return 100
	}
	return 40
}

func findCTA(text string, o campaigns.Objective) string {
	lower := strings.ToLower(text)
	for _, cta := range campaigns.CTAOptions(o) {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(cta) + `\b`)
		if re.MatchString(lower) {
			return cta
		}
	}
	return ""
}

func formatFit(text string, p campaigns.Platform) float64 {
	r, ok := hashtagRange[p]
	if !ok {
		return unknownScore
	}
	n := len(reHashtag.FindAllString(text, -1))
	if n >= r[0] && n <= r[1] {
		return 100
	}
	return 70
}

// recommendations turns sub-metric threshold breaches into advice. The same
// thresholds apply at every depth.
func recommendations(a Analysis, c Creative, p styles.StyleProfile) []string {
	out := make([]string, 0)

	if a.Visual.ColorAlignment < 80 {
		out = append(out, fmt.Sprintf("Use colors from the brand palette (%s).", strings.Join(p.Colors.Palette, ", ")))
	}
	if a.Visual.TypographyMatch < 80 {
		out = append(out, fmt.Sprintf("Use the brand fonts (%s).", strings.Join(p.Typography.Families, ", ")))
	}
	if a.Visual.LayoutConsistency < 70 {
		out = append(out, fmt.Sprintf("Follow the brand's %s layout.", p.Layout.Composition))
	}
	if a.Content.ToneMatch < 70 {
		out = append(out, "Soften the tone: avoid repeated exclamation marks and all-caps words.")
	}
	if a.Content.KeywordUsage < 70 {
		if missing := missingKeywords(c.Text, c.Keywords); len(missing) > 0 {
			out = append(out, fmt.Sprintf("Work in the campaign keywords: %s.", strings.Join(missing, ", ")))
		} else {
			out = append(out, "Reinforce the campaign keywords in the caption.")
		}
	}
	if a.Content.MessageAlignment < 70 {
		out = append(out, "State the core message in a single clear sentence.")
	}
	if a.Platform.CharacterLimitCompliance < 100 {
		out = append(out, fmt.Sprintf("Shorten the caption to %d characters or fewer for %s.",
			campaigns.CharacterLimit(c.Platform), c.Platform))
	}
	if a.Platform.CTAPresence < 80 {
		out = append(out, fmt.Sprintf("Add a call to action such as %q.", campaigns.CTAOptions(c.Objective)[0]))
	}
	if a.Platform.FormatFit < 80 {
		out = append(out, fmt.Sprintf("Adjust hashtag usage to suit %s.", c.Platform))
	}

	return out
}

func mean(vs ...float64) float64 {
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}
