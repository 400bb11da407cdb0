package meta

import (
	"context"
	"time"

	"github.com/vfg2006/meta-health-agent/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-health-agent/internal/domain"
	"github.com/vfg2006/meta-health-agent/pkg/log"
)

// MetaIntegrator adapta o cliente da Graph API para a origem de linhas campanha×dia
type MetaIntegrator struct {
	Client metaclient.Client
}

func New(client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		Client: client,
	}
}

// GetCampaignDayRecords busca as linhas de campanha por dia da conta no período
func (s *MetaIntegrator) GetCampaignDayRecords(ctx context.Context, accountID string, filters *domain.InsightFilters) ([]domain.CampaignDayRecord, error) {
	logger := log.ForContext(ctx).WithField("account_id", accountID)

	records, err := s.Client.GetCampaignInsightsByAccountID(ctx, accountID, filters)
	if err != nil {
		logger.WithError(err).Error("insights: failed to get campaign insights from API")
		return nil, err
	}

	logger.WithFields(log.Fields{
		"start_date": filters.StartDate.Format(time.DateOnly),
		"end_date":   filters.EndDate.Format(time.DateOnly),
		"records":    len(records),
	}).Debug("insights: successfully retrieved campaign day records")

	return records, nil
}
