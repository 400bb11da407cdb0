package postgres

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// migrations são aplicadas em ordem e precisam ser idempotentes
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS campaign_day_records
(
	id          VARCHAR(21) PRIMARY KEY,
	account_id  TEXT        NOT NULL,
	date        DATE        NOT NULL,
	records     JSONB       NOT NULL DEFAULT '[]',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (account_id, date)
)`,
	`CREATE INDEX IF NOT EXISTS campaign_day_records_date_idx ON campaign_day_records (date)`,
}

// RunMigrations garante que as tabelas do cache existam
func RunMigrations(ctx context.Context, conn Conn) error {
	err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for i, statement := range migrations {
			if _, err := tx.ExecContext(ctx, statement); err != nil {
				return errors.Wrapf(err, "migration %d", i+1)
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "postgres: applying migrations")
	}

	return nil
}
