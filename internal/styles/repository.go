package styles

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/palette/pkg/query"
	"github.com/JaimeStill/palette/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a style profile repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "styles"),
	}
}

func (r *repo) Create(ctx context.Context, p StyleProfile) (*StyleProfile, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	args := []any{p.ID, p.WorkspaceID, p.CampaignID, p.AssetID}
	for _, v := range []any{p.Colors, p.Typography, p.Layout, p.BrandAlignment, p.Source} {
		data, err := repository.JSON(v)
		if err != nil {
			return nil, err
		}
		args = append(args, data)
	}
	args = append(args, p.CreatedAt)

	q := fmt.Sprintf(`
		INSERT INTO style_profiles(id, workspace_id, campaign_id, asset_id, colors, typography,
			layout, brand_alignment, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s`, projection.Returning())

	created, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (StyleProfile, error) {
		return repository.QueryOne(ctx, tx, q, args, scanProfile)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.InfoContext(ctx, "style profile created",
		"id", created.ID,
		"asset_id", created.AssetID,
	)
	return &created, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*StyleProfile, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanProfile)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]StyleProfile, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("WorkspaceID", workspaceID).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanProfile)
	if err != nil {
		return nil, fmt.Errorf("query style profiles: %w", err)
	}
	return items, nil
}
