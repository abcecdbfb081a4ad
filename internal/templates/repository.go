package templates

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

// New creates a template repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "templates"),
	}
}

func (r *repo) Create(ctx context.Context, t Template) (*Template, error) {
	created, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Template, error) {
		return insert(ctx, tx, t)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.InfoContext(ctx, "template created",
		"id", created.ID,
		"workspace_id", created.WorkspaceID,
		"source", created.Source,
	)
	return &created, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Template, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	t, err := repository.QueryOne(ctx, r.db, q, args, scanTemplate)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &t, nil
}

func (r *repo) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, campaignID *uuid.UUID) ([]Template, error) {
	q, args := query.
		NewBuilder(projection, defaultSort...).
		WhereEquals("WorkspaceID", workspaceID).
		WhereEquals("CampaignID", campaignID).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanTemplate)
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}
	return items, nil
}

func (r *repo) RecordUsage(ctx context.Context, id uuid.UUID) (*Template, error) {
	q := fmt.Sprintf(`
		UPDATE templates
		SET reuse_count = reuse_count + 1, last_used_at = NOW()
		WHERE id = $1
		RETURNING %s`, projection.Returning())

	t, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanTemplate)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.InfoContext(ctx, "template usage recorded",
		"id", t.ID,
		"reuse_count", t.PerformanceMetrics.ReuseCount,
	)
	return &t, nil
}

func (r *repo) Seed(ctx context.Context, workspaceID uuid.UUID) ([]Template, error) {
	builtins, err := Builtins()
	if err != nil {
		return nil, err
	}

	seeded, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) ([]Template, error) {
		out := make([]Template, 0, len(builtins))
		for _, b := range builtins {
			b.WorkspaceID = workspaceID
			t, err := insert(ctx, tx, b)
			if err != nil {
				return nil, fmt.Errorf("seed %q: %w", b.Name, err)
			}
			out = append(out, t)
		}
		return out, nil
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.InfoContext(ctx, "built-in templates seeded",
		"workspace_id", workspaceID,
		"count", len(seeded),
	)
	return seeded, nil
}

func insert(ctx context.Context, q repository.Querier, t Template) (Template, error) {
	if err := t.Validate(); err != nil {
		return Template{}, err
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	structure, err := repository.JSON(t.CaptionStructure)
	if err != nil {
		return Template{}, err
	}
	layout, err := repository.JSON(t.LayoutPreferences)
	if err != nil {
		return Template{}, err
	}
	settings, err := repository.JSON(t.Configuration)
	if err != nil {
		return Template{}, err
	}

	stmt := fmt.Sprintf(`
		INSERT INTO templates(id, workspace_id, campaign_id, name, caption_structure, layout_preferences,
			configuration, approval_rate, reuse_count, average_score, source, created_at, last_used_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING %s`, projection.Returning())

	args := []any{
		t.ID,
		t.WorkspaceID,
		t.CampaignID,
		t.Name,
		structure,
		layout,
		settings,
		t.PerformanceMetrics.ApprovalRate,
		t.PerformanceMetrics.ReuseCount,
		t.PerformanceMetrics.AverageScore,
		t.Source,
		t.CreatedAt,
		t.LastUsedAt,
	}

	return repository.QueryOne(ctx, q, stmt, args, scanTemplate)
}
