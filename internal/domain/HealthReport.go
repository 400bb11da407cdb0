package domain

const (
	LevelHigh   = "high"
	LevelMedium = "medium"
)

// AccountStats agrega as métricas de todas as linhas da conta no período
type AccountStats struct {
	Spend       float64  `json:"spend"`
	Impressions int      `json:"impressions"`
	Clicks      int      `json:"clicks"`
	CTR         float64  `json:"ctr"`
	CPC         float64  `json:"cpc"`
	Results     *float64 `json:"results"`
	CPR         *float64 `json:"cpr"`
}

// Issue é um problema encontrado por uma regra em uma linha de campanha
type Issue struct {
	Level        string   `json:"level"`
	CampaignID   string   `json:"campaign_id"`
	CampaignName string   `json:"campaign_name"`
	Metric       string   `json:"metric"`
	Value        float64  `json:"value"`
	Benchmark    *float64 `json:"benchmark"`
	Reason       string   `json:"reason"`
	Suggestion   string   `json:"suggestion"`
}

type HealthReport struct {
	Summary      string       `json:"summary"`
	AccountStats AccountStats `json:"account_stats"`
	Issues       []Issue      `json:"issues"`
}

type HealthCheckRequest struct {
	AccountID string `json:"account_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}
