package assets

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/palette/pkg/query"
	"github.com/JaimeStill/palette/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates an asset repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "assets"),
	}
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*GeneratedAsset, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAsset)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) Approved(ctx context.Context, workspaceID uuid.UUID) ([]GeneratedAsset, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("WorkspaceID", workspaceID).
		WhereEquals("ApprovalStatus", StatusApproved).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanAsset)
	if err != nil {
		return nil, fmt.Errorf("query approved assets: %w", err)
	}
	return items, nil
}

func (r *repo) ApprovedByCampaign(ctx context.Context, campaignID uuid.UUID) ([]GeneratedAsset, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("CampaignID", campaignID).
		WhereEquals("ApprovalStatus", StatusApproved).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanAsset)
	if err != nil {
		return nil, fmt.Errorf("query campaign assets: %w", err)
	}
	return items, nil
}
