package styles

import (
	"github.com/JaimeStill/palette/pkg/query"
	"github.com/JaimeStill/palette/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "style_profiles", "s").
	Project("id", "ID").
	Project("workspace_id", "WorkspaceID").
	Project("campaign_id", "CampaignID").
	Project("asset_id", "AssetID").
	Project("colors", "Colors").
	Project("typography", "Typography").
	Project("layout", "Layout").
	Project("brand_alignment", "BrandAlignment").
	Project("source", "Source").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}

func scanProfile(s repository.Scanner) (StyleProfile, error) {
	var (
		p                                         StyleProfile
		colors, typography, layout, brand, source []byte
	)
	err := s.Scan(
		&p.ID,
		&p.WorkspaceID,
		&p.CampaignID,
		&p.AssetID,
		&colors,
		&typography,
		&layout,
		&brand,
		&source,
		&p.CreatedAt,
	)
	if err != nil {
		return p, err
	}

	columns := []struct {
		raw  []byte
		name string
		dst  any
	}{
		{colors, "colors", &p.Colors},
		{typography, "typography", &p.Typography},
		{layout, "layout", &p.Layout},
		{brand, "brand_alignment", &p.BrandAlignment},
		{source, "source", &p.Source},
	}
	for _, c := range columns {
		if err := repository.UnmarshalJSON(c.raw, c.name, c.dst); err != nil {
			return p, err
		}
	}
	return p, nil
}
