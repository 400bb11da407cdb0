package diagnosing

import (
	"github.com/vfg2006/meta-health-agent/internal/domain"
	"github.com/vfg2006/meta-health-agent/pkg/utils"
)

// Limites fixos das regras de saúde
const (
	MinCTR          = 0.01
	MaxCPC          = 1.50
	MaxFrequency    = 5.0
	MinSpendToJudge = 20.0
)

// recordMetrics são as métricas de uma linha já convertidas
type recordMetrics struct {
	spend     float64
	ctr       float64
	cpc       float64
	frequency float64
}

// rule é uma linha da tabela de regras avaliada para cada registro
type rule struct {
	level      string
	metric     string
	precision  int
	benchmark  float64
	value      func(m recordMetrics) float64
	triggered  func(m recordMetrics) bool
	reason     string
	suggestion string
}

// A ordem da tabela define a ordem dos problemas emitidos por registro
var rules = []rule{
	{
		level:      domain.LevelHigh,
		metric:     "CTR (%)",
		precision:  2,
		benchmark:  MinCTR * 100,
		value:      func(m recordMetrics) float64 { return m.ctr * 100 },
		triggered:  func(m recordMetrics) bool { return m.ctr < MinCTR },
		reason:     "CTR is lower than the normal range.",
		suggestion: "Update primary text and test new visuals.",
	},
	{
		level:      domain.LevelMedium,
		metric:     "CPC",
		precision:  4,
		benchmark:  MaxCPC,
		value:      func(m recordMetrics) float64 { return m.cpc },
		triggered:  func(m recordMetrics) bool { return m.cpc > MaxCPC },
		reason:     "Cost per click is high.",
		suggestion: "Try broader audiences or cheaper placements.",
	},
	{
		level:      domain.LevelMedium,
		metric:     "Frequency",
		precision:  2,
		benchmark:  MaxFrequency,
		value:      func(m recordMetrics) float64 { return m.frequency },
		triggered:  func(m recordMetrics) bool { return m.frequency > MaxFrequency },
		reason:     "Ad is being shown too many times.",
		suggestion: "Rotate new creatives or reduce budget.",
	},
}

// Detect avalia as regras em cada linha, de forma independente.
// Linhas com gasto abaixo de MinSpendToJudge são ignoradas.
func Detect(records []domain.CampaignDayRecord) []domain.Issue {
	issues := make([]domain.Issue, 0)

	for _, r := range records {
		m := metricsFor(r)
		if m.spend < MinSpendToJudge {
			continue
		}

		for _, rl := range rules {
			if !rl.triggered(m) {
				continue
			}

			benchmark := rl.benchmark
			issues = append(issues, domain.Issue{
				Level:        rl.level,
				CampaignID:   r.CampaignID,
				CampaignName: r.DisplayName(),
				Metric:       rl.metric,
				Value:        utils.RoundWithPrecision(rl.value(m), rl.precision),
				Benchmark:    &benchmark,
				Reason:       rl.reason,
				Suggestion:   rl.suggestion,
			})
		}
	}

	return issues
}

func metricsFor(r domain.CampaignDayRecord) recordMetrics {
	spend := r.Spend.Float()
	impressions := r.Impressions.Int()
	clicks := r.Clicks.Int()

	m := recordMetrics{
		spend:     spend,
		frequency: r.Frequency.Float(),
	}

	if impressions > 0 {
		m.ctr = float64(clicks) / float64(impressions)
	}

	if clicks > 0 {
		m.cpc = spend / float64(clicks)
	}

	return m
}
