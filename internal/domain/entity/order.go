package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de fabricación. completed y cancelled son terminales:
// ninguna transición sale de ellos. in-progress existe como valor almacenable
// pero ningún flujo transiciona hacia él (reservado).
const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in-progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// ManufacturingOrder representa una orden de fabricación: producir
// Coefficient × 100 kg de una fórmula, consumiendo stock proporcional al
// completarse.
type ManufacturingOrder struct {
	ID          string
	OrderNumber string // "OF" + secuencia de 4 dígitos
	FormulaID   string
	Coefficient decimal.Decimal // factor de escala sobre el lote de 100 kg
	Status      string
	CreatedBy   string
	CreatedAt   time.Time
	CompletedAt *time.Time // nil hasta completarse
}

// BatchSize es la masa del lote unitario de una fórmula, en kg.
var BatchSize = decimal.NewFromInt(100)

// ProducedMass devuelve la masa total a producir (Coefficient × 100 kg).
func (o *ManufacturingOrder) ProducedMass() decimal.Decimal {
	return o.Coefficient.Mul(BatchSize)
}
