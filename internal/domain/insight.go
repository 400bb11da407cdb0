package domain

import (
	"time"
)

type InsightFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// Valid indica se o período tem início e fim e está em ordem
func (f *InsightFilters) Valid() bool {
	if f == nil || f.StartDate == nil || f.EndDate == nil {
		return false
	}

	return !f.StartDate.After(*f.EndDate)
}

// RecordCacheEntry representa as linhas de uma conta em um dia, armazenadas no banco
type RecordCacheEntry struct {
	ID        string              `json:"id"`
	AccountID string              `json:"account_id"`
	Date      time.Time           `json:"date"`
	Records   []CampaignDayRecord `json:"records"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}
