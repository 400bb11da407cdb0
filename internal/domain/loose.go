package domain

import (
	"bytes"
	"encoding/json"

	"github.com/spf13/cast"
)

// looseText aceita qualquer JSON em um campo textual. Números mantêm os dígitos
// originais; objetos, listas e nulos viram "" e não contam como presentes.
type looseText struct {
	text    string
	present bool
}

func (t *looseText) UnmarshalJSON(data []byte) error {
	*t = looseText{}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var raw any
	if err := decoder.Decode(&raw); err != nil || raw == nil {
		return nil
	}

	s, err := cast.ToStringE(raw)
	if err != nil {
		return nil
	}

	*t = looseText{text: s, present: true}
	return nil
}

// looseActions aceita uma lista de ações; qualquer outro valor vira nil
type looseActions []Action

func (a *looseActions) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil || items == nil {
		*a = nil
		return nil
	}

	actions := make(looseActions, 0, len(items))
	for _, item := range items {
		var action Action
		_ = json.Unmarshal(item, &action)
		actions = append(actions, action)
	}

	*a = actions
	return nil
}

// UnmarshalJSON nunca falha: um item que não é objeto vira uma ação vazia
func (a *Action) UnmarshalJSON(data []byte) error {
	var raw struct {
		ActionType looseText `json:"action_type"`
		Value      Value     `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		*a = Action{}
		return nil
	}

	*a = Action{ActionType: raw.ActionType.text, Value: raw.Value}
	return nil
}

// UnmarshalJSON nunca falha, para que uma linha malformada não derrube a página inteira.
// Uma linha que não é objeto vira um registro vazio, sem gasto.
func (r *CampaignDayRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		CampaignID   looseText    `json:"campaign_id"`
		CampaignName looseText    `json:"campaign_name"`
		Spend        Value        `json:"spend"`
		Impressions  Value        `json:"impressions"`
		Clicks       Value        `json:"clicks"`
		Frequency    Value        `json:"frequency"`
		Actions      looseActions `json:"actions"`
		ActionValues looseActions `json:"action_values"`
		DateStart    looseText    `json:"date_start"`
		DateStop     looseText    `json:"date_stop"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		*r = CampaignDayRecord{}
		return nil
	}

	*r = CampaignDayRecord{
		CampaignID:   raw.CampaignID.text,
		CampaignName: raw.CampaignName.text,
		namePresent:  raw.CampaignName.present,
		Spend:        raw.Spend,
		Impressions:  raw.Impressions,
		Clicks:       raw.Clicks,
		Frequency:    raw.Frequency,
		Actions:      []Action(raw.Actions),
		ActionValues: []Action(raw.ActionValues),
		DateStart:    raw.DateStart.text,
		DateStop:     raw.DateStop.text,
	}
	return nil
}

// MarshalJSON omite campaign_name quando o nome nunca foi informado, para que a
// linha lida de volta do cache continue usando o nome padrão.
func (r CampaignDayRecord) MarshalJSON() ([]byte, error) {
	type plain CampaignDayRecord

	out := struct {
		plain
		CampaignName *string `json:"campaign_name,omitempty"`
	}{plain: plain(r)}

	if r.namePresent || r.CampaignName != "" {
		name := r.CampaignName
		out.CampaignName = &name
	}

	return json.Marshal(out)
}
