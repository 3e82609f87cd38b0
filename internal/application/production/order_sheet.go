package production

import (
	"context"

	"github.com/aromalab/aromalab-api/internal/domain"
	"github.com/aromalab/aromalab-api/internal/domain/codes"
	"github.com/aromalab/aromalab-api/internal/domain/entity"
	"github.com/aromalab/aromalab-api/internal/domain/repository"
)

// OrderSheetUseCase genera el bon de fabrication de una orden: una línea por
// ingrediente con la cantidad a pesar (cantidad unitaria × coeficiente).
type OrderSheetUseCase struct {
	orderRepo    repository.OrderRepository
	formulaRepo  repository.FormulaRepository
	materialRepo repository.MaterialRepository
	generator    OrderSheetGenerator
}

// NewOrderSheetUseCase construye el caso de uso.
func NewOrderSheetUseCase(
	orderRepo repository.OrderRepository,
	formulaRepo repository.FormulaRepository,
	materialRepo repository.MaterialRepository,
	generator OrderSheetGenerator,
) *OrderSheetUseCase {
	return &OrderSheetUseCase{orderRepo: orderRepo, formulaRepo: formulaRepo, materialRepo: materialRepo, generator: generator}
}

// Generate devuelve los bytes del PDF. ErrNotFound si la orden o su fórmula
// no existen; las materias primas huérfanas salen como "Inconnu".
func (uc *OrderSheetUseCase) Generate(ctx context.Context, orderID string) ([]byte, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	formula, err := uc.formulaRepo.GetByID(order.FormulaID)
	if err != nil {
		return nil, err
	}
	if formula == nil {
		return nil, domain.ErrNotFound
	}
	materials, err := uc.materialRepo.List()
	if err != nil {
		return nil, err
	}
	index := make(map[string]*entity.RawMaterial, len(materials))
	for _, m := range materials {
		index[m.ID] = m
	}

	lines := make([]SheetLine, 0, len(formula.Ingredients))
	for _, ing := range formula.Ingredients {
		line := SheetLine{
			MaterialDesignation: "Inconnu",
			UnitQuantity:        ing.Quantity.StringFixed(2),
			ScaledQuantity:      ing.Quantity.Mul(order.Coefficient).StringFixed(2),
		}
		if m, ok := index[ing.MaterialID]; ok {
			line.MaterialCode = codes.FormatMaterialCode(m.Code)
			line.MaterialDesignation = m.Designation
		}
		lines = append(lines, line)
	}
	return uc.generator.Generate(ctx, order, formula, lines)
}
