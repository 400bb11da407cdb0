package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/meta-health-agent/infrastructure/database/postgres"
	"github.com/vfg2006/meta-health-agent/internal/domain"
	"github.com/vfg2006/meta-health-agent/pkg/utils"
)

//go:generate mockgen -source=record_cache.go -destination=mocks/mock_record_cache.go -package=mocks

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	recordCacheTable   = "campaign_day_records"
	recordCacheColumns = "id, account_id, date, records, created_at, updated_at"
)

type RecordCacheRepository interface {
	GetByDateRange(ctx context.Context, accountID string, startDate, endDate time.Time) ([]*domain.RecordCacheEntry, error)
	SaveOrUpdate(ctx context.Context, entry *domain.RecordCacheEntry) error
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type recordCacheRepository struct {
	conn postgres.Queryer
	now  func() time.Time
}

func NewRecordCacheRepository(conn postgres.Queryer) RecordCacheRepository {
	return &recordCacheRepository{
		conn: conn,
		now:  time.Now,
	}
}

func (r *recordCacheRepository) GetByDateRange(ctx context.Context, accountID string, startDate, endDate time.Time) ([]*domain.RecordCacheEntry, error) {
	query, args, err := selectByDateRange(accountID, startDate, endDate)
	if err != nil {
		return nil, errors.Wrap(err, "repository: building query")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "repository: executing query")
	}
	defer rows.Close()

	entries := make([]*domain.RecordCacheEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, errors.Wrap(err, "repository: scanning cached records")
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "repository: iterating rows")
	}

	return entries, nil
}

func (r *recordCacheRepository) SaveOrUpdate(ctx context.Context, entry *domain.RecordCacheEntry) error {
	if entry.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return errors.Wrap(err, "repository: generating id")
		}
		entry.ID = id
	}

	query, args, err := upsertEntry(entry)
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return errors.Wrapf(pqErr, "repository: database error (code: %s)", pqErr.Code)
		}
		return errors.Wrap(err, "repository: executing query")
	}

	return nil
}

func (r *recordCacheRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	query, args, err := deleteOlderThan(r.now(), days)
	if err != nil {
		return 0, errors.Wrap(err, "repository: building query")
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "repository: executing query")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "repository: reading affected rows")
	}

	return rowsAffected, nil
}

func selectByDateRange(accountID string, startDate, endDate time.Time) (string, []interface{}, error) {
	return squirrel.
		Select(recordCacheColumns).
		From(recordCacheTable).
		Where(squirrel.Eq{"account_id": accountID}).
		Where(squirrel.GtOrEq{"date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"date": endDate.Format(time.DateOnly)}).
		OrderBy("date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func upsertEntry(entry *domain.RecordCacheEntry) (string, []interface{}, error) {
	records := entry.Records
	if records == nil {
		records = []domain.CampaignDayRecord{}
	}

	recordsJSON, err := json.Marshal(records)
	if err != nil {
		return "", nil, errors.Wrap(err, "repository: encoding records")
	}

	query, args, err := squirrel.
		Insert(recordCacheTable).
		Columns("id", "account_id", "date", "records").
		Values(entry.ID, entry.AccountID, entry.Date.Format(time.DateOnly), recordsJSON).
		Suffix(`ON CONFLICT (account_id, date) DO UPDATE SET
				records = EXCLUDED.records,
				updated_at = NOW()`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", nil, errors.Wrap(err, "repository: building query")
	}

	return query, args, nil
}

func deleteOlderThan(now time.Time, days int) (string, []interface{}, error) {
	cutoffDate := now.AddDate(0, 0, -days).Format(time.DateOnly)

	return squirrel.
		Delete(recordCacheTable).
		Where(squirrel.Lt{"date": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func scanEntry(rows *sql.Rows) (*domain.RecordCacheEntry, error) {
	entry := &domain.RecordCacheEntry{}
	var recordsJSON []byte

	err := rows.Scan(
		&entry.ID,
		&entry.AccountID,
		&entry.Date,
		&recordsJSON,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Records = make([]domain.CampaignDayRecord, 0)
	if len(recordsJSON) > 0 {
		if err := json.Unmarshal(recordsJSON, &entry.Records); err != nil {
			return nil, errors.Wrap(err, "decoding records json")
		}
	}

	return entry, nil
}
