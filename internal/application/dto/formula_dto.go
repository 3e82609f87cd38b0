package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// IngredientInput ingrediente en alta/edición de fórmula.
type IngredientInput struct {
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"` // kg, > 0
}

// CreateFormulaRequest alta de fórmula. El código se asigna solo.
type CreateFormulaRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Ingredients []IngredientInput `json:"ingredients"`
}

// UpdateFormulaRequest merge-patch de fórmula. Ingredients nil no cambia la
// lista; no nil la reemplaza completa.
type UpdateFormulaRequest struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Ingredients *[]IngredientInput `json:"ingredients"`
}

// IngredientResponse ingrediente resuelto para lectura. Si la materia prima
// referenciada ya no existe, MaterialDesignation es "Inconnu".
type IngredientResponse struct {
	MaterialID          string          `json:"material_id"`
	MaterialCode        string          `json:"material_code"` // con prefijo MP; vacío si huérfano
	MaterialDesignation string          `json:"material_designation"`
	Quantity            decimal.Decimal `json:"quantity"`
}

// FormulaResponse fórmula para la API, con el peso total y el flag de
// equilibrio derivados en lectura (nunca persistidos).
type FormulaResponse struct {
	ID          string               `json:"id"`
	Code        string               `json:"code"`
	DisplayCode string               `json:"display_code"` // con prefijo F
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Ingredients []IngredientResponse `json:"ingredients"`
	TotalWeight decimal.Decimal      `json:"total_weight"`
	Balanced    bool                 `json:"balanced"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// FormulaListResponse listado de fórmulas.
type FormulaListResponse struct {
	Items []FormulaResponse `json:"items"`
	Total int               `json:"total"`
}
