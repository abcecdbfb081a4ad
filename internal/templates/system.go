package templates

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for template storage.
type System interface {
	// Create validates and inserts t. A zero ID is replaced with a new one.
	Create(ctx context.Context, t Template) (*Template, error)
	Find(ctx context.Context, id uuid.UUID) (*Template, error)
	// ListByWorkspace returns templates in store order. A non-nil campaignID
	// restricts the list to that campaign.
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, campaignID *uuid.UUID) ([]Template, error)
	// RecordUsage atomically increments ReuseCount and stamps LastUsedAt.
	RecordUsage(ctx context.Context, id uuid.UUID) (*Template, error)
	// Seed stores the built-in catalogue for workspaceID.
	Seed(ctx context.Context, workspaceID uuid.UUID) ([]Template, error)
}
