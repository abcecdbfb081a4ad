package matching

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/JaimeStill/palette/internal/templates"
)

// Rules an application can report.
const (
	RuleLengthAdaptation = "length_adaptation"
	RuleWordPatterns     = "word_patterns"

	// confidenceScale keeps confidence a coarse signal below 1.
	confidenceScale = 5

	// maxBackoff is the share of the truncated text a word-boundary backoff may discard.
	maxBackoff = 0.10
)

// ApplyContext is the input to a template application. A positive
// TargetLength overrides the template's ideal length.
type ApplyContext struct {
	SourceText   string `json:"source_text"`
	TargetLength int    `json:"target_length,omitempty"`
}

// Application is the deterministic result of adapting text to a template.
type Application struct {
	TemplateID   uuid.UUID `json:"template_id"`
	ResultText   string    `json:"result_text"`
	AppliedRules []string  `json:"applied_rules"`
	Confidence   float64   `json:"confidence"`
}

// Adapt applies t to ac without side effects. Text longer than the target is
// truncated, backing up to the previous space when that keeps at least 90% of
// the cut. Each stored term missing from the adapted text is then appended as
// " #term" in stored order, so hashtags may run past the target.
func Adapt(t templates.Template, ac ApplyContext) Application {
	result := ac.SourceText
	rules := make([]string, 0, 2)

	target := ac.TargetLength
	if target <= 0 {
		target = t.CaptionStructure.LengthPreferences.Ideal
	}

	if target > 0 && utf8.RuneCountInString(result) > target {
		result = truncate(result, target)
		rules = append(rules, RuleLengthAdaptation)
	}

	lower := strings.ToLower(result)
	var tags strings.Builder
	for _, term := range t.CaptionStructure.WordChoicePatterns {
		if term == "" || strings.Contains(lower, strings.ToLower(term)) {
			continue
		}
		tags.WriteString(" #")
		tags.WriteString(term)
	}
	if tags.Len() > 0 {
		result += tags.String()
		rules = append(rules, RuleWordPatterns)
	}

	return Application{
		TemplateID:   t.ID,
		ResultText:   result,
		AppliedRules: rules,
		Confidence:   float64(len(rules)) / confidenceScale,
	}
}

func truncate(s string, target int) string {
	runes := []rune(s)[:target]

	cut := -1
	for i := len(runes) - 1; i > 0; i-- {
		if runes[i] == ' ' {
			cut = i
			break
		}
	}

	if cut > 0 && float64(target-cut) <= maxBackoff*float64(target) {
		runes = runes[:cut]
	}
	return string(runes)
}
