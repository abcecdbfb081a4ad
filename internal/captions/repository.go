package captions

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

// New creates a caption repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "captions"),
	}
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Caption, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCaption)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) ByCampaignAndStatus(ctx context.Context, campaignID uuid.UUID, status string) ([]Caption, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("CampaignID", campaignID).
		WhereEquals("ApprovalStatus", status).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanCaption)
	if err != nil {
		return nil, fmt.Errorf("query campaign captions: %w", err)
	}
	return items, nil
}

func (r *repo) ApprovedByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Caption, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("WorkspaceID", workspaceID).
		WhereEquals("ApprovalStatus", StatusApproved).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanCaption)
	if err != nil {
		return nil, fmt.Errorf("query workspace captions: %w", err)
	}
	return items, nil
}
