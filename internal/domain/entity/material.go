package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawMaterial representa una materia prima del laboratorio.
// Code almacena solo el número secuencial ("1", "2", ...); el prefijo MP es
// presentación (ver domain/codes). Stock y Price en decimal para evitar
// errores de redondeo binario (kg y moneda/kg).
type RawMaterial struct {
	ID          string
	Code        string
	Designation string
	CAS         string // número de registro CAS, texto libre
	Supplier    string
	Stock       decimal.Decimal // kg
	Price       decimal.Decimal // por kg
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
