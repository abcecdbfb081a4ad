// Package captions reads approved marketing captions, the raw evidence that
// template learning clusters over. The engine never writes captions.
package captions

import (
	"time"

	"github.com/google/uuid"
)

// Approval states a caption can be in.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Caption is a piece of caption text with its review outcome.
type Caption struct {
	ID             uuid.UUID  `json:"id"`
	WorkspaceID    uuid.UUID  `json:"workspace_id"`
	CampaignID     *uuid.UUID `json:"campaign_id,omitempty"`
	Text           string     `json:"text"`
	QualityScore   *float64   `json:"quality_score,omitempty"`
	ApprovalStatus string     `json:"approval_status"`
	CreatedAt      time.Time  `json:"created_at"`
}
