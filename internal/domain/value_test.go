package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Float(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected float64
	}{
		{"string numérica", "12.34", 12.34},
		{"número", 7.5, 7.5},
		{"inteiro", 3, 3},
		{"nulo", nil, 0},
		{"texto inválido", "abc", 0},
		{"string vazia", "", 0},
		{"lista", []any{1}, 0},
		{"NaN", math.NaN(), 0},
		{"infinito", math.Inf(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewValue(tt.raw).Float())
		})
	}
}

func TestValue_Int(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected int
	}{
		{"string inteira", "1000", 1000},
		{"número JSON", float64(42), 42},
		{"nulo", nil, 0},
		{"texto inválido", "n/a", 0},
		{"objeto", map[string]any{"a": 1}, 0},
		{"zero à esquerda é base 10", "010", 10},
		{"zero à esquerda com 8", "08", 8},
		{"hexadecimal não é aceito", "0x10", 0},
		{"espaços ao redor", " 42 ", 42},
		{"decimal em string é truncado", "12.0", 12},
		{"decimal JSON é truncado", 12.7, 12},
		{"infinito em string", "Inf", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewValue(tt.raw).Int())
		})
	}
}

func TestCampaignDayRecord_UnmarshalLooseTypes(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		validate func(t *testing.T, r CampaignDayRecord)
	}{
		{
			name: "Campos numéricos como string, número ou inválidos",
			payload: `{
				"campaign_id": "120",
				"campaign_name": "Black Friday",
				"spend": "50.25",
				"impressions": 1000,
				"clicks": "bad",
				"actions": [{"action_type": "purchase", "value": "3"}, {"action_type": "lead"}],
				"date_start": "2025-11-01"
			}`,
			validate: func(t *testing.T, r CampaignDayRecord) {
				assert.Equal(t, "120", r.CampaignID)
				assert.Equal(t, "Black Friday", r.CampaignName)
				assert.Equal(t, 50.25, r.Spend.Float())
				assert.Equal(t, 1000, r.Impressions.Int())
				assert.Equal(t, 0, r.Clicks.Int())
				assert.Equal(t, 0.0, r.Frequency.Float())
				require.Len(t, r.Actions, 2)
				assert.Equal(t, "purchase", r.Actions[0].ActionType)
				assert.Equal(t, 3.0, r.Actions[0].Value.Float())
				assert.Equal(t, 0.0, r.Actions[1].Value.Float())
				assert.Nil(t, r.ActionValues)
				assert.Equal(t, "2025-11-01", r.DateStart)
			},
		},
		{
			name:    "campaign_id numérico mantém os dígitos",
			payload: `{"campaign_id": 120210000000000123, "campaign_name": 7, "spend": "50"}`,
			validate: func(t *testing.T, r CampaignDayRecord) {
				assert.Equal(t, "120210000000000123", r.CampaignID)
				assert.Equal(t, "7", r.CampaignName)
				assert.Equal(t, 50.0, r.Spend.Float())
			},
		},
		{
			name:    "Campos textuais com objeto ou lista viram vazio",
			payload: `{"campaign_id": {"id": 1}, "campaign_name": ["A"], "date_start": null, "spend": 30}`,
			validate: func(t *testing.T, r CampaignDayRecord) {
				assert.Equal(t, "", r.CampaignID)
				assert.Equal(t, UnnamedCampaign, r.DisplayName())
				assert.Equal(t, "", r.DateStart)
				assert.Equal(t, 30.0, r.Spend.Float())
			},
		},
		{
			name:    "actions que não é lista vira nil",
			payload: `{"campaign_id": "1", "spend": "50", "actions": "oops", "action_values": {"a": 1}}`,
			validate: func(t *testing.T, r CampaignDayRecord) {
				assert.Nil(t, r.Actions)
				assert.Nil(t, r.ActionValues)
				assert.Equal(t, 50.0, r.Spend.Float())
			},
		},
		{
			name:    "Itens de actions malformados não derrubam a lista",
			payload: `{"actions": [{"action_type": 5, "value": "2"}, "purchase", null, {"action_type": "lead", "value": "4"}]}`,
			validate: func(t *testing.T, r CampaignDayRecord) {
				require.Len(t, r.Actions, 4)
				assert.Equal(t, "5", r.Actions[0].ActionType)
				assert.Equal(t, 2.0, r.Actions[0].Value.Float())
				assert.Equal(t, Action{}, r.Actions[1])
				assert.Equal(t, Action{}, r.Actions[2])
				assert.Equal(t, "lead", r.Actions[3].ActionType)
				assert.Equal(t, 4.0, r.Actions[3].Value.Float())
			},
		},
		{
			name:    "Linha que não é objeto vira registro vazio",
			payload: `"not a record"`,
			validate: func(t *testing.T, r CampaignDayRecord) {
				assert.Equal(t, CampaignDayRecord{}, r)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r CampaignDayRecord
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &r))
			tt.validate(t, r)
		})
	}
}

func TestCampaignDayRecord_UnmarshalPageWithBadRow(t *testing.T) {
	payload := `[
		{"campaign_id": 1, "spend": "50", "actions": "oops"},
		{"campaign_id": "2", "spend": "30", "impressions": "100", "actions": [{"action_type": "purchase", "value": "1"}]}
	]`

	var records []CampaignDayRecord
	require.NoError(t, json.Unmarshal([]byte(payload), &records))

	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0].CampaignID)
	assert.Equal(t, "2", records[1].CampaignID)
	assert.Equal(t, 100, records[1].Impressions.Int())
	require.Len(t, records[1].Actions, 1)
}

func TestCampaignDayRecord_DisplayName(t *testing.T) {
	assert.Equal(t, UnnamedCampaign, CampaignDayRecord{}.DisplayName())
	assert.Equal(t, "A", CampaignDayRecord{CampaignName: "A"}.DisplayName())

	tests := []struct {
		name     string
		payload  string
		expected string
	}{
		{"Chave ausente usa o nome padrão", `{"campaign_id": "1"}`, UnnamedCampaign},
		{"Nome nulo usa o nome padrão", `{"campaign_name": null}`, UnnamedCampaign},
		{"Nome vazio informado é mantido", `{"campaign_name": ""}`, ""},
		{"Nome informado", `{"campaign_name": "Leads"}`, "Leads"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r CampaignDayRecord
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &r))
			assert.Equal(t, tt.expected, r.DisplayName())
		})
	}
}

func TestCampaignDayRecord_MarshalKeepsNamePresence(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected string
	}{
		{"Sem nome", `{"campaign_id": "1", "spend": "10"}`, UnnamedCampaign},
		{"Nome vazio", `{"campaign_id": "1", "campaign_name": ""}`, ""},
		{"Com nome", `{"campaign_id": "1", "campaign_name": "A"}`, "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var first CampaignDayRecord
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &first))

			data, err := json.Marshal(first)
			require.NoError(t, err)

			var second CampaignDayRecord
			require.NoError(t, json.Unmarshal(data, &second))

			assert.Equal(t, tt.expected, second.DisplayName())
			assert.Equal(t, "1", second.CampaignID)
		})
	}
}

func TestValue_MarshalRoundTripKeepsRaw(t *testing.T) {
	data, err := json.Marshal(CampaignDayRecord{Spend: NewValue("9.99")})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"spend":"9.99"`)
}

func TestClaims_CanAccess(t *testing.T) {
	assert.True(t, (&Claims{}).CanAccess("act_1"))
	assert.True(t, (&Claims{AccountIDs: []string{"act_1"}}).CanAccess("act_1"))
	assert.False(t, (&Claims{AccountIDs: []string{"act_1"}}).CanAccess("act_2"))
}

func TestInsightFilters_Valid(t *testing.T) {
	var nilFilters *InsightFilters
	assert.False(t, nilFilters.Valid())
	assert.False(t, (&InsightFilters{}).Valid())
}
