package diagnosing

import (
	"fmt"

	"github.com/vfg2006/meta-health-agent/internal/domain"
)

// Summarize monta o texto curto do relatório
func Summarize(stats domain.AccountStats, issues []domain.Issue) string {
	if len(issues) == 0 {
		return fmt.Sprintf(
			"Healthy account. Spend RM%.2f, %d impressions, %d clicks.",
			stats.Spend, stats.Impressions, stats.Clicks,
		)
	}

	high, medium := 0, 0
	for _, issue := range issues {
		switch issue.Level {
		case domain.LevelHigh:
			high++
		case domain.LevelMedium:
			medium++
		}
	}

	return fmt.Sprintf(
		"Found %d issues (%d high, %d medium). Total spend RM%.2f.",
		len(issues), high, medium, stats.Spend,
	)
}
