package insighting

import (
	"context"
	"time"

	"github.com/vfg2006/meta-health-agent/infrastructure/repository"
	"github.com/vfg2006/meta-health-agent/internal/domain"
	"github.com/vfg2006/meta-health-agent/internal/metrics"
	"github.com/vfg2006/meta-health-agent/pkg/log"
	"github.com/vfg2006/meta-health-agent/pkg/utils"
)

// Service entrega as linhas campanha×dia de uma conta, usando o cache do banco quando habilitado
type Service struct {
	upstream              Upstream
	recordCacheRepository repository.RecordCacheRepository
	metrics               *metrics.Metrics
	useCache              bool
	attributionDays       int
	now                   func() time.Time
}

// NewService cria uma nova instância do serviço de insights
func NewService(upstream Upstream, m *metrics.Metrics) *Service {
	return &Service{
		upstream: upstream,
		metrics:  m,
		useCache: false, // Inicialmente não usa cache
		now:      time.Now,
	}
}

// WithCache habilita o uso de cache de linhas
func (s *Service) WithCache(recordCacheRepo repository.RecordCacheRepository) *Service {
	s.recordCacheRepository = recordCacheRepo
	s.useCache = recordCacheRepo != nil
	return s
}

// WithAttributionWindow define quantos dias antes de hoje ainda recebem conversões atrasadas.
// Esses dias sempre vêm da Meta e não são salvos no cache.
func (s *Service) WithAttributionWindow(days int) *Service {
	if days < 0 {
		days = 0
	}
	s.attributionDays = days
	return s
}

// GetCampaignDayRecords retorna as linhas do período.
// O cache só responde quando todos os dias estão salvos e o período termina antes da janela de atribuição.
func (s *Service) GetCampaignDayRecords(ctx context.Context, accountID string, filters *domain.InsightFilters) ([]domain.CampaignDayRecord, error) {
	if !s.useCache || !filters.Valid() {
		return s.upstream.GetCampaignDayRecords(ctx, accountID, filters)
	}

	logger := log.ForContext(ctx).WithField("account_id", accountID)
	settledBefore := s.settledBefore()
	allDates := utils.DateRange(*filters.StartDate, *filters.EndDate)

	if allDates[len(allDates)-1].Before(settledBefore) {
		if records, ok := s.fromCache(ctx, accountID, filters, allDates); ok {
			s.metrics.RecordCacheLookup("hit")
			logger.WithField("days", len(allDates)).Debug("insights: serving campaign day records from cache")
			return records, nil
		}
	}
	s.metrics.RecordCacheLookup("miss")

	records, err := s.upstream.GetCampaignDayRecords(ctx, accountID, filters)
	if err != nil {
		return nil, err
	}

	s.store(ctx, accountID, records, allDates, settledBefore)

	return records, nil
}

// fromCache monta a resposta a partir do banco; ok é falso se faltar algum dia ou o banco falhar
func (s *Service) fromCache(ctx context.Context, accountID string, filters *domain.InsightFilters, allDates []time.Time) ([]domain.CampaignDayRecord, bool) {
	entries, err := s.recordCacheRepository.GetByDateRange(ctx, accountID, *filters.StartDate, *filters.EndDate)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("account_id", accountID).
			Warn("insights: failed to read record cache, falling back to upstream")
		return nil, false
	}

	byDate := make(map[string]*domain.RecordCacheEntry, len(entries))
	for _, entry := range entries {
		byDate[entry.Date.Format(time.DateOnly)] = entry
	}

	records := make([]domain.CampaignDayRecord, 0)
	for _, date := range allDates {
		entry, found := byDate[date.Format(time.DateOnly)]
		if !found {
			return nil, false
		}
		records = append(records, entry.Records...)
	}

	return records, true
}

// settledBefore é o primeiro dia que ainda pode mudar: hoje menos a janela de atribuição
func (s *Service) settledBefore() time.Time {
	today := utils.DateRange(s.now(), s.now())[0]
	return today.AddDate(0, 0, -s.attributionDays)
}

// store salva cada dia do período anterior a settledBefore; os demais ainda podem mudar
func (s *Service) store(ctx context.Context, accountID string, records []domain.CampaignDayRecord, allDates []time.Time, settledBefore time.Time) {
	logger := log.ForContext(ctx).WithField("account_id", accountID)

	byDate := make(map[string][]domain.CampaignDayRecord, len(allDates))
	for _, date := range allDates {
		byDate[date.Format(time.DateOnly)] = make([]domain.CampaignDayRecord, 0)
	}

	for _, record := range records {
		if _, known := byDate[record.DateStart]; !known {
			logger.WithField("date_start", record.DateStart).
				Debug("insights: record without a day inside the range, skipping cache write")
			return
		}
		byDate[record.DateStart] = append(byDate[record.DateStart], record)
	}

	saved := 0
	for _, date := range allDates {
		if !date.Before(settledBefore) {
			continue
		}

		entry := &domain.RecordCacheEntry{
			AccountID: accountID,
			Date:      date,
			Records:   byDate[date.Format(time.DateOnly)],
		}
		if err := s.recordCacheRepository.SaveOrUpdate(ctx, entry); err != nil {
			logger.WithError(err).WithField("date", date.Format(time.DateOnly)).
				Warn("insights: failed to save campaign day records to cache")
			continue
		}
		saved++
	}

	logger.WithField("days", saved).Debug("insights: campaign day records cached")
}
