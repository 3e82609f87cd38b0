package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest alta de materia prima. El código se asigna solo.
type CreateMaterialRequest struct {
	Designation string          `json:"designation"`
	CAS         string          `json:"cas"`
	Supplier    string          `json:"supplier"`
	Stock       decimal.Decimal `json:"stock"`
	Price       decimal.Decimal `json:"price"`
}

// UpdateMaterialRequest merge-patch de materia prima (campos nil no cambian).
// Stock editable directamente: reposiciones de inventario manuales.
type UpdateMaterialRequest struct {
	Designation *string          `json:"designation"`
	CAS         *string          `json:"cas"`
	Supplier    *string          `json:"supplier"`
	Stock       *decimal.Decimal `json:"stock"`
	Price       *decimal.Decimal `json:"price"`
}

// MaterialResponse materia prima para la API. Code es el número almacenado;
// DisplayCode lleva el prefijo MP.
type MaterialResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	DisplayCode string          `json:"display_code"`
	Designation string          `json:"designation"`
	CAS         string          `json:"cas"`
	Supplier    string          `json:"supplier"`
	Stock       decimal.Decimal `json:"stock"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MaterialListResponse listado de materias primas.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Total int                `json:"total"`
}
