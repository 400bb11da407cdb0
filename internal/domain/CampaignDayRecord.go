package domain

// UnnamedCampaign é o nome exibido quando a Meta não informa o nome da campanha
const UnnamedCampaign = "Unnamed campaign"

// Action é uma entrada de "actions" ou "action_values" de um insight
type Action struct {
	ActionType string `json:"action_type"`
	Value      Value  `json:"value"`
}

// CampaignDayRecord é uma linha de insight de uma campanha em um único dia
type CampaignDayRecord struct {
	CampaignID   string   `json:"campaign_id"`
	CampaignName string   `json:"campaign_name"`
	Spend        Value    `json:"spend"`
	Impressions  Value    `json:"impressions"`
	Clicks       Value    `json:"clicks"`
	Frequency    Value    `json:"frequency"`
	Actions      []Action `json:"actions"`
	ActionValues []Action `json:"action_values"`
	DateStart    string   `json:"date_start"`
	DateStop     string   `json:"date_stop"`

	namePresent bool
}

// DisplayName usa o nome padrão só quando campaign_name não veio na linha.
// Um nome vazio informado pela Meta é mantido.
func (r CampaignDayRecord) DisplayName() string {
	if r.CampaignName == "" && !r.namePresent {
		return UnnamedCampaign
	}

	return r.CampaignName
}
