package captions

import (
	"context"

	"github.com/google/uuid"
)

// System defines read access to captions.
type System interface {
	Find(ctx context.Context, id uuid.UUID) (*Caption, error)
	ByCampaignAndStatus(ctx context.Context, campaignID uuid.UUID, status string) ([]Caption, error)
	ApprovedByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Caption, error)
}
