// Package learning turns approved work into reusable templates and style
// profiles. Captions are clustered by similarity and each cluster with enough
// evidence becomes a template; each approved asset yields a style profile.
package learning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/palette/internal/assets"
	"github.com/JaimeStill/palette/internal/captions"
	"github.com/JaimeStill/palette/internal/styles"
	"github.com/JaimeStill/palette/internal/templates"
	"github.com/JaimeStill/palette/pkg/metrics"
	"github.com/JaimeStill/palette/pkg/storage"
)

// NoContentInsight is the only insight reported when nothing is approved yet.
const NoContentInsight = "No approved content found. Approve captions or generated assets to start learning templates."

// CaptionSource reads approved captions.
type CaptionSource interface {
	ByCampaignAndStatus(ctx context.Context, campaignID uuid.UUID, status string) ([]captions.Caption, error)
	ApprovedByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]captions.Caption, error)
}

// AssetSource reads approved generated assets.
type AssetSource interface {
	Approved(ctx context.Context, workspaceID uuid.UUID) ([]assets.GeneratedAsset, error)
	ApprovedByCampaign(ctx context.Context, campaignID uuid.UUID) ([]assets.GeneratedAsset, error)
}

// TemplateWriter persists synthesized templates.
type TemplateWriter interface {
	Create(ctx context.Context, t templates.Template) (*templates.Template, error)
}

// StyleWriter persists extracted style profiles.
type StyleWriter interface {
	Create(ctx context.Context, p styles.StyleProfile) (*styles.StyleProfile, error)
}

// BlobInspector reads stored asset metadata.
type BlobInspector interface {
	Properties(ctx context.Context, key string) (*storage.Properties, error)
}

// Deps wires a Learner. Blobs and Metrics are optional.
type Deps struct {
	Captions   CaptionSource
	Assets     AssetSource
	Templates  TemplateWriter
	Styles     StyleWriter
	Blobs      BlobInspector
	Similarity Similarity
	Metrics    metrics.Sink
	Logger     *slog.Logger
}

// Learner runs the learning pipeline.
type Learner struct {
	captions   CaptionSource
	assets     AssetSource
	templates  TemplateWriter
	styles     StyleWriter
	blobs      BlobInspector
	similarity Similarity
	metrics    metrics.Sink
	logger     *slog.Logger
	now        func() time.Time
}

// New creates a Learner. A zero Similarity uses DefaultSimilarity.
func New(deps Deps) *Learner {
	sim := deps.Similarity
	if sim == (Similarity{}) {
		sim = DefaultSimilarity()
	}
	sink := deps.Metrics
	if sink == nil {
		sink = metrics.Nop()
	}

	return &Learner{
		captions:   deps.Captions,
		assets:     deps.Assets,
		templates:  deps.Templates,
		styles:     deps.Styles,
		blobs:      deps.Blobs,
		similarity: sim,
		metrics:    sink,
		logger:     deps.Logger.With("system", "learning"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Request scopes a learning run to a workspace and, optionally, one campaign.
type Request struct {
	WorkspaceID uuid.UUID  `json:"workspace_id"`
	CampaignID  *uuid.UUID `json:"campaign_id,omitempty"`
}

// Result holds what one learning run persisted. Slices are never nil.
type Result struct {
	Templates     []templates.Template  `json:"templates"`
	StyleProfiles []styles.StyleProfile `json:"styles"`
	Insights      []string              `json:"insights"`
}

// Learn loads approved captions and assets for req, persists a template per
// qualifying cluster and a style profile per asset, and reports insights.
// With nothing approved it succeeds with an empty result and NoContentInsight.
// Store failures are wrapped in ErrLearningFailed.
func (l *Learner) Learn(ctx context.Context, req Request) (*Result, error) {
	result, err := l.execute(ctx, req)
	if err != nil {
		l.logger.ErrorContext(ctx, "learning failed",
			"workspace_id", req.WorkspaceID,
			"campaign_id", req.CampaignID,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %w", ErrLearningFailed, err)
	}

	l.logger.InfoContext(ctx, "learning complete",
		"workspace_id", req.WorkspaceID,
		"campaign_id", req.CampaignID,
		"templates", len(result.Templates),
		"styles", len(result.StyleProfiles),
	)
	return result, nil
}

func (l *Learner) loadCaptions(ctx context.Context, req Request) ([]captions.Caption, error) {
	if req.CampaignID != nil {
		return l.captions.ByCampaignAndStatus(ctx, *req.CampaignID, captions.StatusApproved)
	}
	return l.captions.ApprovedByWorkspace(ctx, req.WorkspaceID)
}

func (l *Learner) loadAssets(ctx context.Context, req Request) ([]assets.GeneratedAsset, error) {
	if req.CampaignID != nil {
		return l.assets.ApprovedByCampaign(ctx, *req.CampaignID)
	}
	return l.assets.Approved(ctx, req.WorkspaceID)
}

func (l *Learner) persistTemplates(ctx context.Context, req Request, clusters [][]captions.Caption, res *Result) error {
	skipped := 0
	for _, cluster := range clusters {
		t, err := Synthesize(cluster, len(res.Templates)+1, l.now())
		if err != nil {
			skipped += len(cluster)
			continue
		}
		t.WorkspaceID = req.WorkspaceID
		t.CampaignID = req.CampaignID

		created, err := l.templates.Create(ctx, t)
		if err != nil {
			return fmt.Errorf("create template: %w", err)
		}
		res.Templates = append(res.Templates, *created)
		l.metrics.TemplateLearned(ctx, req.WorkspaceID.String())
	}

	if n := len(res.Templates); n > 0 {
		res.Insights = append(res.Insights, fmt.Sprintf("Learned %d template(s) from recurring caption patterns.", n))
	}
	if skipped > 0 {
		res.Insights = append(res.Insights, fmt.Sprintf("%d caption(s) had no similar approved captions and were not used.", skipped))
	}
	return nil
}

func (l *Learner) persistProfiles(ctx context.Context, req Request, approved []assets.GeneratedAsset, res *Result) error {
	for _, a := range approved {
		var props *storage.Properties
		if l.blobs != nil {
			p, err := l.blobs.Properties(ctx, a.StorageKey)
			switch {
			case errors.Is(err, storage.ErrNotFound):
				l.logger.WarnContext(ctx, "asset blob missing, skipping",
					"asset_id", a.ID,
					"key", a.StorageKey,
				)
				res.Insights = append(res.Insights, fmt.Sprintf("Asset %s was skipped because its stored file is missing.", a.ID))
				continue
			case err != nil:
				return fmt.Errorf("asset %s properties: %w", a.ID, err)
			}
			props = p
		}

		created, err := l.styles.Create(ctx, ExtractStyleProfile(a, props, l.now()))
		if err != nil {
			return fmt.Errorf("create style profile: %w", err)
		}
		res.StyleProfiles = append(res.StyleProfiles, *created)
		l.metrics.StyleProfileCreated(ctx, req.WorkspaceID.String())
	}

	if n := len(res.StyleProfiles); n > 0 {
		res.Insights = append(res.Insights, fmt.Sprintf("Created %d style profile(s) from approved assets.", n))
	}
	return nil
}

func newResult() *Result {
	return &Result{
		Templates:     make([]templates.Template, 0),
		StyleProfiles: make([]styles.StyleProfile, 0),
		Insights:      make([]string, 0),
	}
}
