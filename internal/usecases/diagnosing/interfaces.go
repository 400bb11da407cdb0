package diagnosing

import (
	"context"

	"github.com/vfg2006/meta-health-agent/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// RecordSource define a origem das linhas diárias de campanha de uma conta
type RecordSource interface {
	// GetCampaignDayRecords obtém as linhas de campanha por dia no período informado
	GetCampaignDayRecords(ctx context.Context, accountID string, filters *domain.InsightFilters) ([]domain.CampaignDayRecord, error)
}

// HealthChecker gera o relatório de saúde de uma conta
type HealthChecker interface {
	// DailyHealthCheck busca as linhas do período e produz o relatório
	DailyHealthCheck(ctx context.Context, accountID string, filters *domain.InsightFilters) (*domain.HealthReport, error)
}
