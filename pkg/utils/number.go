package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	return RoundWithPrecision(f, 2)
}

// RoundWithPrecision arredonda f para o número de casas decimais informado.
// Empates exatos vão para o dígito par (5.125 -> 5.12).
func RoundWithPrecision(f float64, places int) float64 {
	if f == 0 {
		return 0
	}

	scale := math.Pow(10, float64(places))
	return math.RoundToEven(f*scale) / scale
}
