package insighting

import (
	"context"

	"github.com/vfg2006/meta-health-agent/internal/domain"
)

// Upstream define a origem remota das linhas campanha×dia (a Graph API do Meta)
type Upstream interface {
	GetCampaignDayRecords(ctx context.Context, accountID string, filters *domain.InsightFilters) ([]domain.CampaignDayRecord, error)
}
