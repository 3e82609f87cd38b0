package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/aromalab/aromalab-api/internal/domain"
	"github.com/aromalab/aromalab-api/internal/domain/entity"
	"github.com/aromalab/aromalab-api/internal/domain/repository"
)

var _ repository.FormulaRepository = (*FormulaRepo)(nil)

// FormulaRepo implementación de FormulaRepository sobre PostgreSQL (usable con pool o tx).
// La fórmula es propietaria de su lista de ingredientes: se guarda como JSONB
// en la misma fila, así la fila es la unidad atómica de upsert.
type FormulaRepo struct {
	q Querier
}

// NewFormulaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFormulaRepository(q Querier) *FormulaRepo {
	return &FormulaRepo{q: q}
}

// ingredientRecord forma persistida de un ingrediente en el JSONB.
type ingredientRecord struct {
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

func marshalIngredients(ingredients []entity.FormulaIngredient) ([]byte, error) {
	records := make([]ingredientRecord, 0, len(ingredients))
	for _, ing := range ingredients {
		records = append(records, ingredientRecord{MaterialID: ing.MaterialID, Quantity: ing.Quantity})
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal ingredients: %w", err)
	}
	return data, nil
}

func unmarshalIngredients(data []byte) ([]entity.FormulaIngredient, error) {
	var records []ingredientRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal ingredients: %w", err)
	}
	ingredients := make([]entity.FormulaIngredient, 0, len(records))
	for _, rec := range records {
		ingredients = append(ingredients, entity.FormulaIngredient{MaterialID: rec.MaterialID, Quantity: rec.Quantity})
	}
	return ingredients, nil
}

// Create persiste una fórmula nueva con sus ingredientes.
func (r *FormulaRepo) Create(formula *entity.Formula) error {
	ingredients, err := marshalIngredients(formula.Ingredients)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO formulas (id, code, name, description, ingredients, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.q.Exec(context.Background(), query,
		formula.ID, formula.Code, formula.Name, formula.Description,
		ingredients, formula.CreatedAt, formula.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert formula: %w", err)
	}
	return nil
}

// GetByID obtiene una fórmula por ID.
func (r *FormulaRepo) GetByID(id string) (*entity.Formula, error) {
	query := `
		SELECT id, code, name, description, ingredients, created_at, updated_at
		FROM formulas WHERE id = $1`
	var f entity.Formula
	var ingredients []byte
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&f.ID, &f.Code, &f.Name, &f.Description, &ingredients, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get formula: %w", err)
	}
	if f.Ingredients, err = unmarshalIngredients(ingredients); err != nil {
		return nil, err
	}
	return &f, nil
}

// Update reemplaza los campos de la fórmula, ingredientes incluidos.
func (r *FormulaRepo) Update(formula *entity.Formula) error {
	ingredients, err := marshalIngredients(formula.Ingredients)
	if err != nil {
		return err
	}
	query := `
		UPDATE formulas
		SET name = $2, description = $3, ingredients = $4, updated_at = $5
		WHERE id = $1`
	_, err = r.q.Exec(context.Background(), query,
		formula.ID, formula.Name, formula.Description, ingredients, formula.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update formula: %w", err)
	}
	return nil
}

// List lista las fórmulas ordenadas por código numérico.
func (r *FormulaRepo) List() ([]*entity.Formula, error) {
	query := `
		SELECT id, code, name, description, ingredients, created_at, updated_at
		FROM formulas
		ORDER BY NULLIF(regexp_replace(code, '\D', '', 'g'), '')::int NULLS LAST, code`
	return r.queryMany(query)
}

// ListCodes devuelve todos los códigos almacenados.
func (r *FormulaRepo) ListCodes() ([]string, error) {
	rows, err := r.q.Query(context.Background(), `SELECT code FROM formulas`)
	if err != nil {
		return nil, fmt.Errorf("list formula codes: %w", err)
	}
	defer rows.Close()
	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan formula code: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// ListReferencing devuelve las fórmulas que referencian la materia prima dada
// en alguno de sus ingredientes (guardia de borrado).
func (r *FormulaRepo) ListReferencing(materialID string) ([]*entity.Formula, error) {
	query := `
		SELECT id, code, name, description, ingredients, created_at, updated_at
		FROM formulas
		WHERE EXISTS (
			SELECT 1 FROM jsonb_array_elements(ingredients) AS ing
			WHERE ing->>'material_id' = $1
		)
		ORDER BY NULLIF(regexp_replace(code, '\D', '', 'g'), '')::int NULLS LAST, code`
	return r.queryMany(query, materialID)
}

// Delete elimina una fórmula por ID.
func (r *FormulaRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM formulas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete formula: %w", err)
	}
	return nil
}

func (r *FormulaRepo) queryMany(query string, args ...any) ([]*entity.Formula, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list formulas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Formula
	for rows.Next() {
		var f entity.Formula
		var ingredients []byte
		if err := rows.Scan(&f.ID, &f.Code, &f.Name, &f.Description, &ingredients, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan formula: %w", err)
		}
		if f.Ingredients, err = unmarshalIngredients(ingredients); err != nil {
			return nil, err
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}
