package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aromalab/aromalab-api/internal/domain"
	"github.com/aromalab/aromalab-api/internal/domain/entity"
	"github.com/aromalab/aromalab-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, order_number, formula_id, coefficient, status, created_by, created_at, completed_at`

// Create persiste una orden nueva.
func (r *OrderRepo) Create(order *entity.ManufacturingOrder) error {
	query := `
		INSERT INTO manufacturing_orders (id, order_number, formula_id, coefficient, status, created_by, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.OrderNumber, order.FormulaID, order.Coefficient,
		order.Status, order.CreatedBy, order.CreatedAt, order.CompletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert manufacturing order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *OrderRepo) GetByID(id string) (*entity.ManufacturingOrder, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene la orden y bloquea la fila (SELECT FOR UPDATE).
func (r *OrderRepo) GetForUpdate(id string) (*entity.ManufacturingOrder, error) {
	return r.get(id, true)
}

func (r *OrderRepo) get(id string, forUpdate bool) (*entity.ManufacturingOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM manufacturing_orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var o entity.ManufacturingOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.OrderNumber, &o.FormulaID, &o.Coefficient, &o.Status, &o.CreatedBy, &o.CreatedAt, &o.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get manufacturing order: %w", err)
	}
	return &o, nil
}

// Update actualiza estado, coeficiente y CompletedAt de una orden.
func (r *OrderRepo) Update(order *entity.ManufacturingOrder) error {
	query := `
		UPDATE manufacturing_orders
		SET coefficient = $2, status = $3, completed_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Coefficient, order.Status, order.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update manufacturing order: %w", err)
	}
	return nil
}

// List lista las órdenes, más reciente primero.
func (r *OrderRepo) List() ([]*entity.ManufacturingOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM manufacturing_orders ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list manufacturing orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ManufacturingOrder
	for rows.Next() {
		var o entity.ManufacturingOrder
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.FormulaID, &o.Coefficient, &o.Status, &o.CreatedBy, &o.CreatedAt, &o.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan manufacturing order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// ListOrderNumbers devuelve todos los números de orden almacenados.
func (r *OrderRepo) ListOrderNumbers() ([]string, error) {
	rows, err := r.q.Query(context.Background(), `SELECT order_number FROM manufacturing_orders`)
	if err != nil {
		return nil, fmt.Errorf("list order numbers: %w", err)
	}
	defer rows.Close()
	var numbers []string
	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			return nil, fmt.Errorf("scan order number: %w", err)
		}
		numbers = append(numbers, number)
	}
	return numbers, rows.Err()
}
