package learning

import (
	"time"

	"github.com/JaimeStill/palette/internal/assets"
	"github.com/JaimeStill/palette/internal/styles"
	"github.com/JaimeStill/palette/pkg/storage"
)

// Placeholder visual attributes. Pixel analysis is not performed, so every
// profile carries the same values until it is.
var (
	placeholderColors = styles.Colors{
		Dominant: "#0066CC",
		Palette:  []string{"#0066CC", "#FFFFFF", "#1A1A1A"},
	}
	placeholderTypography = styles.Typography{
		Families: []string{"Inter", "Georgia"},
		Weight:   "regular",
	}
	placeholderLayout = styles.Layout{
		Composition: "centered",
		Spacing:     "balanced",
	}
)

// UnmeasuredBrandAlignment is assigned to every extracted profile. The values
// are fixed estimates, not measurements.
var UnmeasuredBrandAlignment = styles.BrandAlignment{
	PersonalityMatch:              0.85,
	ValuePropositionIncorporation: 0.90,
	TargetAudienceResonance:       0.88,
}

// ExtractStyleProfile derives one style profile from one approved asset.
// props is the asset blob's stored metadata and may be nil.
func ExtractStyleProfile(asset assets.GeneratedAsset, props *storage.Properties, now time.Time) styles.StyleProfile {
	p := styles.StyleProfile{
		WorkspaceID: asset.WorkspaceID,
		CampaignID:  asset.CampaignID,
		AssetID:     asset.ID,
		Colors: styles.Colors{
			Dominant: placeholderColors.Dominant,
			Palette:  append([]string(nil), placeholderColors.Palette...),
		},
		Typography: styles.Typography{
			Families: append([]string(nil), placeholderTypography.Families...),
			Weight:   placeholderTypography.Weight,
		},
		Layout:         placeholderLayout,
		BrandAlignment: UnmeasuredBrandAlignment,
		Source:         styles.AssetMetadata{StorageKey: asset.StorageKey},
		CreatedAt:      now,
	}

	if props != nil {
		p.Source.ContentType = props.ContentType
		p.Source.Size = props.Size
	}
	return p
}
