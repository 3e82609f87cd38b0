// Package formulation implementa la regla de equilibrio de fórmulas
// (servicio de dominio): los ingredientes de una fórmula deben totalizar
// 100 kg con una tolerancia de 0.01 kg.
package formulation

import (
	"github.com/shopspring/decimal"

	"github.com/aromalab/aromalab-api/internal/domain/entity"
)

var (
	// TargetWeight masa objetivo del lote unitario, en kg.
	TargetWeight = decimal.NewFromInt(100)
	// Tolerance desviación admitida sobre TargetWeight (0.01 kg).
	Tolerance = decimal.New(1, -2)
)

// TotalWeight suma las cantidades de los ingredientes.
func TotalWeight(ingredients []entity.FormulaIngredient) decimal.Decimal {
	total := decimal.Zero
	for _, ing := range ingredients {
		total = total.Add(ing.Quantity)
	}
	return total
}

// IsBalanced indica si |total - 100| < 0.01. Las fórmulas desequilibradas
// siguen siendo almacenables; esto solo las clasifica en lectura.
func IsBalanced(total decimal.Decimal) bool {
	return total.Sub(TargetWeight).Abs().LessThan(Tolerance)
}
