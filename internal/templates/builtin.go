package templates

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/palette/internal/campaigns"
)

//go:embed builtin.yaml
var builtinYAML []byte

type builtinFile struct {
	Templates []builtinTemplate `yaml:"templates"`
}

type builtinTemplate struct {
	Name            string   `yaml:"name"`
	ToneStyle       string   `yaml:"tone_style"`
	EmotionalAppeal string   `yaml:"emotional_appeal"`
	Length          [3]int   `yaml:"length"`
	WordPatterns    []string `yaml:"word_patterns"`
	Layout          struct {
		Format        string `yaml:"format"`
		Layout        string `yaml:"layout"`
		TextPlacement string `yaml:"text_placement"`
	} `yaml:"layout"`
	Objectives   []string `yaml:"objectives"`
	FunnelStages []string `yaml:"funnel_stages"`
	Platforms    []string `yaml:"platforms"`
	Industries   []string `yaml:"industries"`
	AverageScore float64  `yaml:"average_score"`
}

// Builtins parses the embedded template catalogue. The returned templates
// have no ID or workspace; Seed assigns both.
func Builtins() ([]Template, error) {
	return parseBuiltins(builtinYAML)
}

func parseBuiltins(data []byte) ([]Template, error) {
	var f builtinFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse builtin templates: %w", err)
	}

	out := make([]Template, 0, len(f.Templates))
	for _, b := range f.Templates {
		t, err := b.template()
		if err != nil {
			return nil, fmt.Errorf("builtin %q: %w", b.Name, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func (b builtinTemplate) template() (Template, error) {
	cfg := Configuration{Industries: b.Industries}

	for _, s := range b.Objectives {
		o, err := campaigns.ParseObjective(s)
		if err != nil {
			return Template{}, err
		}
		cfg.Objectives = append(cfg.Objectives, o)
	}
	for _, s := range b.FunnelStages {
		f, err := campaigns.ParseFunnelStage(s)
		if err != nil {
			return Template{}, err
		}
		cfg.FunnelStages = append(cfg.FunnelStages, f)
	}
	for _, s := range b.Platforms {
		p, err := campaigns.ParsePlatform(s)
		if err != nil {
			return Template{}, err
		}
		cfg.Platforms = append(cfg.Platforms, p)
	}
	if len(cfg.Industries) == 0 {
		cfg.Industries = []string{campaigns.GenericIndustry}
	}

	return Template{
		Name: b.Name,
		CaptionStructure: CaptionStructure{
			LengthPreferences: LengthPreferences{
				Min:   b.Length[0],
				Ideal: b.Length[1],
				Max:   b.Length[2],
			},
			WordChoicePatterns: b.WordPatterns,
			ToneStyle:          b.ToneStyle,
			EmotionalAppeal:    b.EmotionalAppeal,
		},
		LayoutPreferences: LayoutPreferences{
			Format:        b.Layout.Format,
			Layout:        b.Layout.Layout,
			TextPlacement: b.Layout.TextPlacement,
		},
		Configuration: cfg,
		PerformanceMetrics: PerformanceMetrics{
			ApprovalRate: 1,
			AverageScore: b.AverageScore,
		},
		Source: SourceBuiltin,
	}, nil
}
