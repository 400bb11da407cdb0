package diagnosing

import (
	"context"
	"time"

	"github.com/vfg2006/meta-health-agent/internal/domain"
	"github.com/vfg2006/meta-health-agent/internal/metrics"
	"github.com/vfg2006/meta-health-agent/pkg/log"
)

// Service implementa HealthChecker sobre uma RecordSource
type Service struct {
	source  RecordSource
	metrics *metrics.Metrics
}

// NewService cria uma nova instância do serviço de health check
func NewService(source RecordSource, m *metrics.Metrics) *Service {
	return &Service{
		source:  source,
		metrics: m,
	}
}

// DailyHealthCheck busca as linhas uma única vez e passa a mesma lista
// para o agregador e para o detector.
func (s *Service) DailyHealthCheck(ctx context.Context, accountID string, filters *domain.InsightFilters) (*domain.HealthReport, error) {
	logger := log.ForContext(ctx).WithField("account_id", accountID)

	if accountID == "" {
		s.metrics.RecordHealthCheck("invalid")
		return nil, NewHealthCheckError(ErrAccountIDRequired, accountID, "")
	}

	if !filters.Valid() {
		s.metrics.RecordHealthCheck("invalid")
		return nil, NewHealthCheckError(ErrInvalidDateRange, accountID, "")
	}

	logger.WithFields(log.Fields{
		"start_date": filters.StartDate.Format(time.DateOnly),
		"end_date":   filters.EndDate.Format(time.DateOnly),
	}).Debug("health: fetching campaign day records")

	started := time.Now()
	records, err := s.source.GetCampaignDayRecords(ctx, accountID, filters)
	if err != nil {
		s.metrics.ObserveFetch("error", started)
		s.metrics.RecordHealthCheck("error")
		logger.WithError(err).Error("health: failed to fetch campaign day records")
		return nil, NewHealthCheckError(ErrRecordFetch, accountID, err.Error())
	}
	s.metrics.ObserveFetch("ok", started)
	s.metrics.RecordsFetched.Add(float64(len(records)))

	if len(records) == 0 {
		s.metrics.RecordHealthCheck("not_found")
		logger.Info("health: no insights found for account")
		return nil, NewHealthCheckError(ErrNoInsights, accountID, "")
	}

	stats := Aggregate(records)
	issues := Detect(records)
	summary := Summarize(stats, issues)

	for _, issue := range issues {
		s.metrics.RecordIssue(issue.Level, issue.Metric)
	}
	s.metrics.RecordHealthCheck("ok")

	logger.WithFields(log.Fields{
		"records": len(records),
		"issues":  len(issues),
		"spend":   stats.Spend,
	}).Info("health: daily health check completed")

	return &domain.HealthReport{
		Summary:      summary,
		AccountStats: stats,
		Issues:       issues,
	}, nil
}
