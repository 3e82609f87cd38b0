package formulation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/aromalab/aromalab-api/internal/domain/entity"
	"github.com/aromalab/aromalab-api/internal/domain/formulation"
)

func ingredients(quantities ...string) []entity.FormulaIngredient {
	list := make([]entity.FormulaIngredient, 0, len(quantities))
	for i, q := range quantities {
		list = append(list, entity.FormulaIngredient{
			MaterialID: string(rune('a' + i)),
			Quantity:   decimal.RequireFromString(q),
		})
	}
	return list
}

func TestTotalWeight_SumaCantidades(t *testing.T) {
	total := formulation.TotalWeight(ingredients("40", "35.5", "24.5"))
	assert.True(t, total.Equal(decimal.NewFromInt(100)), "40 + 35.5 + 24.5 = 100")

	assert.True(t, formulation.TotalWeight(nil).IsZero(), "sin ingredientes el total es 0")
}

// El equilibrio es |total - 100| < 0.01, estricto en el borde.
func TestIsBalanced_Tolerancia(t *testing.T) {
	cases := []struct {
		total    string
		balanced bool
	}{
		{"100", true},
		{"99.995", true},
		{"100.005", true},
		{"99.99", false}, // desviación exactamente 0.01: fuera
		{"100.01", false},
		{"99.5", false},
		{"101", false},
		{"0", false},
	}
	for _, tc := range cases {
		got := formulation.IsBalanced(decimal.RequireFromString(tc.total))
		assert.Equal(t, tc.balanced, got, "total %s", tc.total)
	}
}

// Los decimales evitan el falso desequilibrio de la suma flotante:
// diez ingredientes de 10 kg totalizan exactamente 100.
func TestIsBalanced_SinErrorFlotante(t *testing.T) {
	ings := ingredients("10", "10", "10", "10", "10", "10", "10", "10", "10", "10")
	assert.True(t, formulation.IsBalanced(formulation.TotalWeight(ings)))

	// 3 × 33.33 + 0.01 = 100.00
	ings = ingredients("33.33", "33.33", "33.33", "0.01")
	assert.True(t, formulation.IsBalanced(formulation.TotalWeight(ings)))
}
