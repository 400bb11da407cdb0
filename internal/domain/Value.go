package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Value guarda um campo numérico vindo da Meta sem tipo definido.
// A API devolve números como string ("12.34"), mas o campo pode vir como
// número, nulo ou simplesmente não existir.
type Value struct {
	raw any
}

// NewValue cria um Value a partir de qualquer valor bruto
func NewValue(raw any) Value {
	return Value{raw: raw}
}

// UnmarshalJSON aceita qualquer JSON válido e nunca falha
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		v.raw = nil
		return nil
	}

	v.raw = raw
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.raw)
}

// Raw retorna o valor original
func (v Value) Raw() any {
	return v.raw
}

// Float converte para float64, devolvendo 0 em qualquer falha
func (v Value) Float() float64 {
	if v.raw == nil {
		return 0
	}

	f, err := cast.ToFloat64E(v.raw)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return f
}

// Int converte para int, devolvendo 0 em qualquer falha
func (v Value) Int() int {
	if v.raw == nil {
		return 0
	}

	if s, ok := v.raw.(string); ok {
		return parseIntText(s)
	}

	i, err := cast.ToIntE(v.raw)
	if err != nil {
		return 0
	}

	return i
}

// parseIntText lê inteiros sempre na base 10; "12.0" é truncado para 12
func parseIntText(s string) int {
	s = strings.TrimSpace(s)

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return int(i)
	}

	f, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return int(f)
}
