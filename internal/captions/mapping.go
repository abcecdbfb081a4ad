package captions

import (
	"github.com/JaimeStill/palette/pkg/query"
	"github.com/JaimeStill/palette/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "captions", "c").
	Project("id", "ID").
	Project("workspace_id", "WorkspaceID").
	Project("campaign_id", "CampaignID").
	Project("text", "Text").
	Project("quality_score", "QualityScore").
	Project("approval_status", "ApprovalStatus").
	Project("created_at", "CreatedAt")

// oldest first, so clustering seeds follow approval history
var defaultSort = query.SortField{Field: "CreatedAt"}

func scanCaption(s repository.Scanner) (Caption, error) {
	var c Caption
	err := s.Scan(
		&c.ID,
		&c.WorkspaceID,
		&c.CampaignID,
		&c.Text,
		&c.QualityScore,
		&c.ApprovalStatus,
		&c.CreatedAt,
	)
	return c, err
}
