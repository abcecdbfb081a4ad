package styles

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for style profile storage.
type System interface {
	Create(ctx context.Context, p StyleProfile) (*StyleProfile, error)
	Find(ctx context.Context, id uuid.UUID) (*StyleProfile, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]StyleProfile, error)
}
