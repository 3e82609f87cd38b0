package repository

import (
	"github.com/shopspring/decimal"

	"github.com/aromalab/aromalab-api/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para RawMaterial (DIP).
type MaterialRepository interface {
	Create(material *entity.RawMaterial) error
	GetByID(id string) (*entity.RawMaterial, error)
	// GetForUpdate bloquea el registro para el resto de la transacción
	// (SELECT FOR UPDATE en el adaptador SQL).
	GetForUpdate(id string) (*entity.RawMaterial, error)
	Update(material *entity.RawMaterial) error
	// UpdateStock actualiza solo el stock (usado por el motor de completado).
	UpdateStock(id string, stock decimal.Decimal) error
	List() ([]*entity.RawMaterial, error)
	// ListCodes devuelve todos los códigos almacenados, para la generación
	// secuencial basada en el máximo.
	ListCodes() ([]string, error)
	Delete(id string) error
}
