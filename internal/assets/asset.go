// Package assets reads rendered creative assets and their review outcome.
// Approved assets are the evidence style profiles are extracted from.
package assets

import (
	"time"

	"github.com/google/uuid"
)

// StatusApproved marks an asset accepted for publishing.
const StatusApproved = "approved"

// GeneratedAsset is a rendered creative stored in blob storage under StorageKey.
type GeneratedAsset struct {
	ID             uuid.UUID  `json:"id"`
	WorkspaceID    uuid.UUID  `json:"workspace_id"`
	CampaignID     *uuid.UUID `json:"campaign_id,omitempty"`
	CaptionID      *uuid.UUID `json:"caption_id,omitempty"`
	StorageKey     string     `json:"storage_key"`
	Platform       string     `json:"platform"`
	ApprovalStatus string     `json:"approval_status"`
	CreatedAt      time.Time  `json:"created_at"`
}
