package templates

import (
	"github.com/JaimeStill/palette/pkg/query"
	"github.com/JaimeStill/palette/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "templates", "t").
	Project("id", "ID").
	Project("workspace_id", "WorkspaceID").
	Project("campaign_id", "CampaignID").
	Project("name", "Name").
	Project("caption_structure", "CaptionStructure").
	Project("layout_preferences", "LayoutPreferences").
	Project("configuration", "Configuration").
	Project("approval_rate", "ApprovalRate").
	Project("reuse_count", "ReuseCount").
	Project("average_score", "AverageScore").
	Project("source", "Source").
	Project("created_at", "CreatedAt").
	Project("last_used_at", "LastUsedAt")

// store order: oldest first, id as tiebreaker
var defaultSort = []query.SortField{
	{Field: "CreatedAt"},
	{Field: "ID"},
}

func scanTemplate(s repository.Scanner) (Template, error) {
	var (
		t                           Template
		structure, layout, settings []byte
	)
	err := s.Scan(
		&t.ID,
		&t.WorkspaceID,
		&t.CampaignID,
		&t.Name,
		&structure,
		&layout,
		&settings,
		&t.PerformanceMetrics.ApprovalRate,
		&t.PerformanceMetrics.ReuseCount,
		&t.PerformanceMetrics.AverageScore,
		&t.Source,
		&t.CreatedAt,
		&t.LastUsedAt,
	)
	if err != nil {
		return t, err
	}

	if err := repository.UnmarshalJSON(structure, "caption_structure", &t.CaptionStructure); err != nil {
		return t, err
	}
	if err := repository.UnmarshalJSON(layout, "layout_preferences", &t.LayoutPreferences); err != nil {
		return t, err
	}
	if err := repository.UnmarshalJSON(settings, "configuration", &t.Configuration); err != nil {
		return t, err
	}
	return t, nil
}
