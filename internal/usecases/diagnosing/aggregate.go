package diagnosing

import (
	"github.com/vfg2006/meta-health-agent/internal/domain"
	"github.com/vfg2006/meta-health-agent/pkg/utils"
)

// Tipos de ação contados como resultado (conversão)
var conversionActionTypes = map[string]bool{
	"purchase":              true,
	"lead":                  true,
	"complete_registration": true,
}

// Aggregate soma as linhas da conta e calcula as taxas derivadas.
// Nunca falha: valores inválidos contam como zero.
func Aggregate(records []domain.CampaignDayRecord) domain.AccountStats {
	var (
		spend       float64
		impressions int
		clicks      int
		results     float64
	)

	for _, r := range records {
		spend += r.Spend.Float()
		impressions += r.Impressions.Int()
		clicks += r.Clicks.Int()

		for _, a := range r.Actions {
			if conversionActionTypes[a.ActionType] {
				results += a.Value.Float()
			}
		}
	}

	stats := domain.AccountStats{
		Spend:       utils.RoundWithPrecision(spend, 2),
		Impressions: impressions,
		Clicks:      clicks,
	}

	if impressions > 0 {
		stats.CTR = float64(clicks) / float64(impressions)
	}

	if clicks > 0 {
		stats.CPC = utils.RoundWithPrecision(spend/float64(clicks), 4)
	}

	// results e cpr ficam nulos quando não há conversões
	if results != 0 {
		total := results
		stats.Results = &total
	}

	if results > 0 {
		cpr := utils.RoundWithPrecision(spend/results, 2)
		stats.CPR = &cpr
	}

	return stats
}
