package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/meta-health-agent/internal/domain"
	"github.com/vfg2006/meta-health-agent/pkg/utils"
)

const recordCacheKeyPrefix = "record_cache"

// redisRecordCacheRepository guarda cada dia de uma conta em uma chave própria.
// A expiração da chave substitui a limpeza feita pelo job de retenção.
type redisRecordCacheRepository struct {
	client        redis.Cmdable
	retentionDays int
	now           func() time.Time
}

func NewRedisRecordCacheRepository(client redis.Cmdable, retentionDays int) RecordCacheRepository {
	return &redisRecordCacheRepository{
		client:        client,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

func (r *redisRecordCacheRepository) GetByDateRange(ctx context.Context, accountID string, startDate, endDate time.Time) ([]*domain.RecordCacheEntry, error) {
	dates := utils.DateRange(startDate, endDate)
	if len(dates) == 0 {
		return []*domain.RecordCacheEntry{}, nil
	}

	keys := make([]string, len(dates))
	for i, date := range dates {
		keys[i] = recordCacheKey(accountID, date)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "repository: reading cached records")
	}

	return decodeCachedEntries(values)
}

func (r *redisRecordCacheRepository) SaveOrUpdate(ctx context.Context, entry *domain.RecordCacheEntry) error {
	now := r.now()

	ttl := recordCacheTTL(now, entry.Date, r.retentionDays)
	if ttl < 0 {
		return nil
	}

	if entry.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return errors.Wrap(err, "repository: generating id")
		}
		entry.ID = id
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now
	if entry.Records == nil {
		entry.Records = []domain.CampaignDayRecord{}
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(err, "repository: encoding records")
	}

	if err := r.client.Set(ctx, recordCacheKey(entry.AccountID, entry.Date), payload, ttl).Err(); err != nil {
		return errors.Wrap(err, "repository: writing cached records")
	}

	return nil
}

// DeleteOlderThan não remove nada: as chaves expiram sozinhas
func (r *redisRecordCacheRepository) DeleteOlderThan(_ context.Context, _ int) (int64, error) {
	return 0, nil
}

func recordCacheKey(accountID string, date time.Time) string {
	return fmt.Sprintf("%s:%s:%s", recordCacheKeyPrefix, accountID, date.Format(time.DateOnly))
}

// recordCacheTTL mantém o dia enquanto a retenção em Postgres também o manteria.
// Zero significa sem expiração e um valor negativo indica um dia já fora da janela.
func recordCacheTTL(now, date time.Time, retentionDays int) time.Duration {
	if retentionDays <= 0 {
		return 0
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	ttl := day.AddDate(0, 0, retentionDays+1).Sub(now)
	if ttl <= 0 {
		return -1
	}

	return ttl
}

func decodeCachedEntries(values []interface{}) ([]*domain.RecordCacheEntry, error) {
	entries := make([]*domain.RecordCacheEntry, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}

		entry := &domain.RecordCacheEntry{}
		if err := json.Unmarshal([]byte(raw), entry); err != nil {
			return nil, errors.Wrap(err, "repository: decoding cached records")
		}
		if entry.Records == nil {
			entry.Records = make([]domain.CampaignDayRecord, 0)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
