package diagnosing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-health-agent/internal/domain"
)

func TestDetect_ScenarioWithPurchase(t *testing.T) {
	issues := Detect([]domain.CampaignDayRecord{
		record("50", 1000, 5, 1.0, action("purchase", 20)),
	})

	require.Len(t, issues, 2)

	assert.Equal(t, domain.LevelHigh, issues[0].Level)
	assert.Equal(t, "CTR (%)", issues[0].Metric)
	assert.Equal(t, 0.5, issues[0].Value)
	require.NotNil(t, issues[0].Benchmark)
	assert.Equal(t, 1.0, *issues[0].Benchmark)
	assert.Equal(t, "1", issues[0].CampaignID)
	assert.Equal(t, "A", issues[0].CampaignName)
	assert.Equal(t, "CTR is lower than the normal range.", issues[0].Reason)
	assert.Equal(t, "Update primary text and test new visuals.", issues[0].Suggestion)

	assert.Equal(t, domain.LevelMedium, issues[1].Level)
	assert.Equal(t, "CPC", issues[1].Metric)
	assert.Equal(t, 10.0, issues[1].Value)
	require.NotNil(t, issues[1].Benchmark)
	assert.Equal(t, 1.5, *issues[1].Benchmark)
	assert.Equal(t, "Cost per click is high.", issues[1].Reason)
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		records  []domain.CampaignDayRecord
		expected []string
	}{
		{
			name:     "Sem linhas",
			records:  nil,
			expected: []string{},
		},
		{
			name: "Gasto abaixo do mínimo ignora valores extremos",
			records: []domain.CampaignDayRecord{
				record(5, 10, 0, 0),
				record("19.99", 100000, 0, 50),
				record("abc", 0, 1000, 99),
			},
			expected: []string{},
		},
		{
			name:     "Sem cliques não gera problema de CPC",
			records:  []domain.CampaignDayRecord{record(100, 100, 0, 10)},
			expected: []string{"CTR (%)", "Frequency"},
		},
		{
			name:     "Gasto exatamente no mínimo é avaliado",
			records:  []domain.CampaignDayRecord{record(20, 1000, 1, 0)},
			expected: []string{"CTR (%)", "CPC"},
		},
		{
			name:     "Campanha saudável",
			records:  []domain.CampaignDayRecord{record(30, 100, 30, 2)},
			expected: []string{},
		},
		{
			name:     "Frequência igual ao limite não dispara",
			records:  []domain.CampaignDayRecord{record(30, 100, 30, "5.0")},
			expected: []string{},
		},
		{
			name:     "Todas as regras na ordem fixa",
			records:  []domain.CampaignDayRecord{record(50, 1000, 3, "6.5")},
			expected: []string{"CTR (%)", "CPC", "Frequency"},
		},
		{
			name: "Ordem segue as linhas de entrada",
			records: []domain.CampaignDayRecord{
				record(30, 100, 30, 8),
				record(30, 10000, 30, 1),
			},
			expected: []string{"Frequency", "CTR (%)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := Detect(tt.records)
			require.NotNil(t, issues)

			metrics := make([]string, 0, len(issues))
			for _, issue := range issues {
				metrics = append(metrics, issue.Metric)
			}

			assert.Equal(t, tt.expected, metrics)
		})
	}
}

func TestDetect_Rounding(t *testing.T) {
	issues := Detect([]domain.CampaignDayRecord{
		record(50, 30, 3, "5.456"),
	})

	require.Len(t, issues, 2)
	assert.Equal(t, "CPC", issues[0].Metric)
	assert.Equal(t, 16.6667, issues[0].Value)
	assert.Equal(t, "Frequency", issues[1].Metric)
	assert.Equal(t, 5.46, issues[1].Value)
	require.NotNil(t, issues[1].Benchmark)
	assert.Equal(t, 5.0, *issues[1].Benchmark)
	assert.Equal(t, "Ad is being shown too many times.", issues[1].Reason)
	assert.Equal(t, "Rotate new creatives or reduce budget.", issues[1].Suggestion)
}

func TestDetect_RoundingTiesToEven(t *testing.T) {
	issues := Detect([]domain.CampaignDayRecord{
		record(30, 800, 1, "5.125"),
	})

	require.Len(t, issues, 3)
	assert.Equal(t, "CTR (%)", issues[0].Metric)
	assert.Equal(t, 0.12, issues[0].Value)
	assert.Equal(t, "CPC", issues[1].Metric)
	assert.Equal(t, 30.0, issues[1].Value)
	assert.Equal(t, "Frequency", issues[2].Metric)
	assert.Equal(t, 5.12, issues[2].Value)
}

func TestDetect_UnnamedCampaign(t *testing.T) {
	issues := Detect([]domain.CampaignDayRecord{
		{
			Spend:       domain.NewValue("40"),
			Impressions: domain.NewValue("1000"),
			Clicks:      domain.NewValue("1"),
		},
	})

	require.NotEmpty(t, issues)
	assert.Equal(t, "", issues[0].CampaignID)
	assert.Equal(t, domain.UnnamedCampaign, issues[0].CampaignName)
}
