package repository

import "github.com/aromalab/aromalab-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para ManufacturingOrder (DIP).
type OrderRepository interface {
	Create(order *entity.ManufacturingOrder) error
	GetByID(id string) (*entity.ManufacturingOrder, error)
	// GetForUpdate bloquea la orden para el resto de la transacción.
	GetForUpdate(id string) (*entity.ManufacturingOrder, error)
	Update(order *entity.ManufacturingOrder) error
	List() ([]*entity.ManufacturingOrder, error)
	// ListOrderNumbers devuelve todos los números de orden, para la
	// generación basada en el máximo.
	ListOrderNumbers() ([]string, error)
}
