package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/aromalab/aromalab-api/internal/domain"
	"github.com/aromalab/aromalab-api/internal/domain/entity"
	"github.com/aromalab/aromalab-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `id, code, designation, cas, supplier, stock, price, created_at, updated_at`

// Create persiste una materia prima nueva.
func (r *MaterialRepo) Create(material *entity.RawMaterial) error {
	query := `
		INSERT INTO raw_materials (id, code, designation, cas, supplier, stock, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.Code, material.Designation, material.CAS,
		material.Supplier, material.Stock, material.Price, material.CreatedAt, material.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert raw material: %w", err)
	}
	return nil
}

// GetByID obtiene una materia prima por ID.
func (r *MaterialRepo) GetByID(id string) (*entity.RawMaterial, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene la materia prima y bloquea la fila (SELECT FOR UPDATE).
func (r *MaterialRepo) GetForUpdate(id string) (*entity.RawMaterial, error) {
	return r.get(id, true)
}

func (r *MaterialRepo) get(id string, forUpdate bool) (*entity.RawMaterial, error) {
	query := `SELECT ` + materialColumns + ` FROM raw_materials WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var m entity.RawMaterial
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Code, &m.Designation, &m.CAS, &m.Supplier, &m.Stock, &m.Price, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get raw material: %w", err)
	}
	return &m, nil
}

// Update actualiza todos los campos editables de la materia prima.
func (r *MaterialRepo) Update(material *entity.RawMaterial) error {
	query := `
		UPDATE raw_materials
		SET designation = $2, cas = $3, supplier = $4, stock = $5, price = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.Designation, material.CAS, material.Supplier,
		material.Stock, material.Price, material.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update raw material: %w", err)
	}
	return nil
}

// UpdateStock actualiza solo el stock (usado por el motor de completado dentro de la tx).
func (r *MaterialRepo) UpdateStock(id string, stock decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE raw_materials SET stock = $2, updated_at = now() WHERE id = $1`,
		id, stock,
	)
	if err != nil {
		return fmt.Errorf("update raw material stock: %w", err)
	}
	return nil
}

// List lista las materias primas ordenadas por código numérico.
func (r *MaterialRepo) List() ([]*entity.RawMaterial, error) {
	query := `
		SELECT ` + materialColumns + `
		FROM raw_materials
		ORDER BY NULLIF(regexp_replace(code, '\D', '', 'g'), '')::int NULLS LAST, code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list raw materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.RawMaterial
	for rows.Next() {
		var m entity.RawMaterial
		if err := rows.Scan(&m.ID, &m.Code, &m.Designation, &m.CAS, &m.Supplier, &m.Stock, &m.Price, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan raw material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListCodes devuelve todos los códigos almacenados.
func (r *MaterialRepo) ListCodes() ([]string, error) {
	rows, err := r.q.Query(context.Background(), `SELECT code FROM raw_materials`)
	if err != nil {
		return nil, fmt.Errorf("list raw material codes: %w", err)
	}
	defer rows.Close()
	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan raw material code: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// Delete elimina una materia prima por ID. La guardia de referencias vive en
// el caso de uso; aquí solo se borra el registro.
func (r *MaterialRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM raw_materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete raw material: %w", err)
	}
	return nil
}
