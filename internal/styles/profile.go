// Package styles stores visual style profiles extracted from approved assets.
package styles

import (
	"time"

	"github.com/google/uuid"
)

// StyleProfile is the visual identity observed on one approved asset.
// Profiles are never merged; each asset yields its own.
type StyleProfile struct {
	ID             uuid.UUID      `json:"id"`
	WorkspaceID    uuid.UUID      `json:"workspace_id"`
	CampaignID     *uuid.UUID     `json:"campaign_id,omitempty"`
	AssetID        uuid.UUID      `json:"asset_id"`
	Colors         Colors         `json:"colors"`
	Typography     Typography     `json:"typography"`
	Layout         Layout         `json:"layout"`
	BrandAlignment BrandAlignment `json:"brand_alignment"`
	Source         AssetMetadata  `json:"source"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Colors holds hex color values.
type Colors struct {
	Dominant string   `json:"dominant"`
	Palette  []string `json:"palette"`
}

type Typography struct {
	Families []string `json:"families"`
	Weight   string   `json:"weight"`
}

type Layout struct {
	Composition string `json:"composition"`
	Spacing     string `json:"spacing"`
}

// BrandAlignment holds fixed estimates in [0,1]. They are not measured from
// the asset.
type BrandAlignment struct {
	PersonalityMatch              float64 `json:"personality_match"`
	ValuePropositionIncorporation float64 `json:"value_proposition_incorporation"`
	TargetAudienceResonance       float64 `json:"target_audience_resonance"`
}

// AssetMetadata describes the stored blob a profile was extracted from.
// ContentType and Size are empty when blob storage is not configured.
type AssetMetadata struct {
	StorageKey  string `json:"storage_key"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size,omitempty"`
}
