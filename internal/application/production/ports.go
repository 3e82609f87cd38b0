package production

import (
	"context"

	"github.com/aromalab/aromalab-api/internal/domain/entity"
	"github.com/aromalab/aromalab-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// completado: o se aplican todas las deducciones de stock más el cambio de
// estado, o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		formulaRepo repository.FormulaRepository,
		materialRepo repository.MaterialRepository,
	) error) error
}

// SheetLine línea de la hoja de fabricación: un ingrediente con su cantidad
// escalada por el coeficiente de la orden.
type SheetLine struct {
	MaterialCode        string // con prefijo MP; vacío si huérfano
	MaterialDesignation string // "Inconnu" si la materia prima fue borrada
	UnitQuantity        string // kg por lote de 100
	ScaledQuantity      string // kg a pesar para esta orden
}

// OrderSheetGenerator genera el bon de fabrication en PDF.
type OrderSheetGenerator interface {
	Generate(ctx context.Context, order *entity.ManufacturingOrder, formula *entity.Formula, lines []SheetLine) ([]byte, error)
}
