package metadomain

import "github.com/vfg2006/meta-health-agent/internal/domain"

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}

// CampaignInsightsPage é uma página da resposta de /act_<id>/insights
type CampaignInsightsPage struct {
	Data   []domain.CampaignDayRecord `json:"data"`
	Paging Paging                     `json:"paging"`
}

// CampaignInsightFields são os campos pedidos para cada linha de campanha por dia
var CampaignInsightFields = []string{
	"campaign_id",
	"campaign_name",
	"spend",
	"impressions",
	"clicks",
	"actions",
	"action_values",
	"frequency",
}
