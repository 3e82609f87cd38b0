package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest alta de orden de fabricación.
type CreateOrderRequest struct {
	FormulaID   string          `json:"formula_id"`
	Coefficient decimal.Decimal `json:"coefficient"` // > 0
}

// OrderResponse orden para la API. FormulaCode/FormulaName resueltos en
// lectura (vacío / "Inconnue" si la fórmula fue borrada).
type OrderResponse struct {
	ID           string          `json:"id"`
	OrderNumber  string          `json:"order_number"`
	FormulaID    string          `json:"formula_id"`
	FormulaCode  string          `json:"formula_code"` // con prefijo F
	FormulaName  string          `json:"formula_name"`
	Coefficient  decimal.Decimal `json:"coefficient"`
	ProducedMass decimal.Decimal `json:"produced_mass"` // coefficient × 100 kg
	Status       string          `json:"status"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
}

// OrderListResponse listado de órdenes, más reciente primero.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Total int             `json:"total"`
}
