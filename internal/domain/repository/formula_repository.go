package repository

import "github.com/aromalab/aromalab-api/internal/domain/entity"

// FormulaRepository define el puerto de persistencia para Formula (DIP).
// El repositorio almacena la lista de ingredientes tal cual se le entrega;
// la validación (cantidades > 0, material seleccionado) es del caller.
type FormulaRepository interface {
	Create(formula *entity.Formula) error
	GetByID(id string) (*entity.Formula, error)
	Update(formula *entity.Formula) error
	List() ([]*entity.Formula, error)
	ListCodes() ([]string, error)
	// ListReferencing devuelve las fórmulas cuyo ingrediente referencia la
	// materia prima dada (guardia de borrado).
	ListReferencing(materialID string) ([]*entity.Formula, error)
	Delete(id string) error
}
