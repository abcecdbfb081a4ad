package assets

import (
	"context"

	"github.com/google/uuid"
)

// System defines read access to generated assets.
type System interface {
	Find(ctx context.Context, id uuid.UUID) (*GeneratedAsset, error)
	Approved(ctx context.Context, workspaceID uuid.UUID) ([]GeneratedAsset, error)
	ApprovedByCampaign(ctx context.Context, campaignID uuid.UUID) ([]GeneratedAsset, error)
}
