package production

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/aromalab/aromalab-api/internal/application/dto"
	"github.com/aromalab/aromalab-api/internal/application/usecase"
	"github.com/aromalab/aromalab-api/internal/domain"
	"github.com/aromalab/aromalab-api/internal/domain/codes"
	"github.com/aromalab/aromalab-api/internal/domain/entity"
	"github.com/aromalab/aromalab-api/internal/domain/repository"
	"github.com/aromalab/aromalab-api/pkg/normalize"
)

// OrderUseCase órdenes de fabricación: creación, consulta, anulación y el
// motor transaccional de completado (deducción de stock + estado terminal).
type OrderUseCase struct {
	txRunner    TxRunner
	orderRepo   repository.OrderRepository
	formulaRepo repository.FormulaRepository
	activity    *usecase.ActivityUseCase
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	formulaRepo repository.FormulaRepository,
	activity *usecase.ActivityUseCase,
) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, orderRepo: orderRepo, formulaRepo: formulaRepo, activity: activity}
}

// Create crea una orden en estado pending con el siguiente número OF####.
// La secuencia se deriva del máximo visto, no del conteo, así el borrado de
// órdenes nunca reutiliza números.
func (uc *OrderUseCase) Create(actor dto.Actor, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.FormulaID == "" || !in.Coefficient.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	formula, err := uc.formulaRepo.GetByID(in.FormulaID)
	if err != nil {
		return nil, err
	}
	if formula == nil {
		return nil, domain.ErrNotFound
	}
	numbers, err := uc.orderRepo.ListOrderNumbers()
	if err != nil {
		return nil, err
	}
	order := &entity.ManufacturingOrder{
		ID:          uuid.New().String(),
		OrderNumber: codes.NextOrderNumber(numbers),
		FormulaID:   in.FormulaID,
		Coefficient: in.Coefficient,
		Status:      entity.OrderStatusPending,
		CreatedBy:   actor.ID,
		CreatedAt:   time.Now(),
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	uc.activity.Record(actor, "Création", entity.ActivityEntityOrder, order.ID,
		fmt.Sprintf("Ordre de fabrication %s créé", order.OrderNumber))
	return uc.toOrderResponse(order)
}

// GetByID obtiene una orden por ID.
func (uc *OrderUseCase) GetByID(id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return uc.toOrderResponse(order)
}

// List lista órdenes, más reciente primero, con filtro opcional sobre el
// número de orden y el nombre de la fórmula.
func (uc *OrderUseCase) List(query string) (*dto.OrderListResponse, error) {
	orders, err := uc.orderRepo.List()
	if err != nil {
		return nil, err
	}
	formulas, err := uc.formulaIndex()
	if err != nil {
		return nil, err
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp := buildOrderResponse(o, formulas[o.FormulaID])
		if query != "" &&
			!normalize.Contains(o.OrderNumber, query) &&
			!normalize.Contains(resp.FormulaName, query) {
			continue
		}
		items = append(items, *resp)
	}
	return &dto.OrderListResponse{Items: items, Total: len(items)}, nil
}

// Cancel anula una orden pendiente. Sin efecto sobre el stock. Una orden en
// estado terminal devuelve ErrOrderNotPending.
func (uc *OrderUseCase) Cancel(actor dto.Actor, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusPending {
		return nil, domain.ErrOrderNotPending
	}
	order.Status = entity.OrderStatusCancelled
	if err := uc.orderRepo.Update(order); err != nil {
		return nil, err
	}
	uc.activity.Record(actor, "Annulation", entity.ActivityEntityOrder, order.ID,
		fmt.Sprintf("Ordre de fabrication %s annulé", order.OrderNumber))
	return uc.toOrderResponse(order)
}

// Complete ejecuta la transición pending → completed en una sola transacción:
// bloquea la orden, verifica el estado, bloquea cada materia prima de la
// fórmula, valida que ningún stock resultante sea negativo y que toda
// referencia resuelva, aplica todas las deducciones (cantidad × coeficiente)
// y el estado terminal con CompletedAt. Cualquier fallo revierte todo; una
// orden ya completada o anulada nunca vuelve a deducir stock.
func (uc *OrderUseCase) Complete(ctx context.Context, actor dto.Actor, id string) (*dto.OrderResponse, error) {
	var completed *entity.ManufacturingOrder
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		formulaRepo repository.FormulaRepository,
		materialRepo repository.MaterialRepository,
	) error {
		order, err := orderRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusPending {
			return domain.ErrOrderNotPending
		}
		formula, err := formulaRepo.GetByID(order.FormulaID)
		if err != nil {
			return err
		}
		if formula == nil {
			return domain.ErrNotFound
		}
		for _, ing := range formula.Ingredients {
			material, err := materialRepo.GetForUpdate(ing.MaterialID)
			if err != nil {
				return err
			}
			if material == nil {
				// Referencia huérfana: tolerada en lectura, fatal al producir
				return domain.ErrNotFound
			}
			needed := ing.Quantity.Mul(order.Coefficient)
			if material.Stock.LessThan(needed) {
				return domain.ErrInsufficientStock
			}
			if err := materialRepo.UpdateStock(material.ID, material.Stock.Sub(needed)); err != nil {
				return err
			}
		}
		now := time.Now()
		order.Status = entity.OrderStatusCompleted
		order.CompletedAt = &now
		if err := orderRepo.Update(order); err != nil {
			return err
		}
		completed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.activity.Record(actor, "Complétion", entity.ActivityEntityOrder, completed.ID,
		fmt.Sprintf("Ordre de fabrication %s complété", completed.OrderNumber))
	return uc.toOrderResponse(completed)
}

func (uc *OrderUseCase) formulaIndex() (map[string]*entity.Formula, error) {
	formulas, err := uc.formulaRepo.List()
	if err != nil {
		return nil, err
	}
	index := make(map[string]*entity.Formula, len(formulas))
	for _, f := range formulas {
		index[f.ID] = f
	}
	return index, nil
}

func (uc *OrderUseCase) toOrderResponse(o *entity.ManufacturingOrder) (*dto.OrderResponse, error) {
	formula, err := uc.formulaRepo.GetByID(o.FormulaID)
	if err != nil {
		return nil, err
	}
	return buildOrderResponse(o, formula), nil
}

func buildOrderResponse(o *entity.ManufacturingOrder, formula *entity.Formula) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		FormulaID:    o.FormulaID,
		FormulaName:  "Inconnue",
		Coefficient:  o.Coefficient,
		ProducedMass: o.ProducedMass(),
		Status:       o.Status,
		CreatedBy:    o.CreatedBy,
		CreatedAt:    o.CreatedAt,
		CompletedAt:  o.CompletedAt,
	}
	if formula != nil {
		resp.FormulaCode = codes.FormatFormulaCode(formula.Code)
		resp.FormulaName = formula.Name
	}
	return resp
}
