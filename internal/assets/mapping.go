package assets

import (
	"github.com/JaimeStill/palette/pkg/query"
	"github.com/JaimeStill/palette/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "generated_assets", "a").
	Project("id", "ID").
	Project("workspace_id", "WorkspaceID").
	Project("campaign_id", "CampaignID").
	Project("caption_id", "CaptionID").
	Project("storage_key", "StorageKey").
	Project("platform", "Platform").
	Project("approval_status", "ApprovalStatus").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{Field: "CreatedAt"}

func scanAsset(s repository.Scanner) (GeneratedAsset, error) {
	var a GeneratedAsset
	err := s.Scan(
		&a.ID,
		&a.WorkspaceID,
		&a.CampaignID,
		&a.CaptionID,
		&a.StorageKey,
		&a.Platform,
		&a.ApprovalStatus,
		&a.CreatedAt,
	)
	return a, err
}
