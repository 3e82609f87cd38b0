package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FormulaIngredient referencia (no propietaria) a una materia prima con su
// cantidad en kg dentro del lote unitario de 100 kg.
type FormulaIngredient struct {
	MaterialID string
	Quantity   decimal.Decimal // kg, > 0 para ser válida
}

// Formula representa una receta: cantidades de materias primas que deberían
// totalizar 100 kg. Una fórmula desequilibrada sigue siendo almacenable; el
// flag de validez se deriva en lectura (ver domain/formulation).
// Las referencias a materias primas borradas se toleran (se muestran como
// "Inconnu"); la integridad se exige solo al borrar la materia prima.
type Formula struct {
	ID          string
	Code        string // solo el número; el prefijo F es presentación
	Name        string
	Description string
	Ingredients []FormulaIngredient
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// References indica si la fórmula referencia la materia prima dada.
func (f *Formula) References(materialID string) bool {
	for _, ing := range f.Ingredients {
		if ing.MaterialID == materialID {
			return true
		}
	}
	return false
}
