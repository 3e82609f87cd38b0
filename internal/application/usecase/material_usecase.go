package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aromalab/aromalab-api/internal/application/dto"
	"github.com/aromalab/aromalab-api/internal/domain"
	"github.com/aromalab/aromalab-api/internal/domain/codes"
	"github.com/aromalab/aromalab-api/internal/domain/entity"
	"github.com/aromalab/aromalab-api/internal/domain/repository"
	"github.com/aromalab/aromalab-api/pkg/normalize"
)

// MaterialUseCase casos de uso CRUD para materias primas, incluida la guardia
// de borrado por referencias de fórmulas.
type MaterialUseCase struct {
	repo        repository.MaterialRepository
	formulaRepo repository.FormulaRepository
	activity    *ActivityUseCase
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository, formulaRepo repository.FormulaRepository, activity *ActivityUseCase) *MaterialUseCase {
	return &MaterialUseCase{repo: repo, formulaRepo: formulaRepo, activity: activity}
}

// Create crea una materia prima con el siguiente código secuencial
// (max de los códigos existentes + 1, no el conteo).
func (uc *MaterialUseCase) Create(actor dto.Actor, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if in.Designation == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Stock.IsNegative() || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.ListCodes()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	material := &entity.RawMaterial{
		ID:          uuid.New().String(),
		Code:        codes.Next(existing),
		Designation: in.Designation,
		CAS:         in.CAS,
		Supplier:    in.Supplier,
		Stock:       in.Stock,
		Price:       in.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(material); err != nil {
		return nil, err
	}
	uc.activity.Record(actor, "Création", entity.ActivityEntityMaterial, material.ID,
		fmt.Sprintf("Matière première %s créée", codes.FormatMaterialCode(material.Code)))
	return toMaterialResponse(material), nil
}

// GetByID obtiene una materia prima por ID.
func (uc *MaterialUseCase) GetByID(id string) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, nil
	}
	return toMaterialResponse(material), nil
}

// Update aplica un merge-patch y actualiza UpdatedAt. Devuelve nil sin error
// si el ID no existe. Un cambio de stock registra actividad con el delta.
func (uc *MaterialUseCase) Update(actor dto.Actor, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, nil
	}
	previousStock := material.Stock
	if in.Designation != nil {
		material.Designation = *in.Designation
	}
	if in.CAS != nil {
		material.CAS = *in.CAS
	}
	if in.Supplier != nil {
		material.Supplier = *in.Supplier
	}
	if in.Stock != nil {
		material.Stock = *in.Stock
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		material.Price = *in.Price
	}
	material.UpdatedAt = time.Now()
	if err := uc.repo.Update(material); err != nil {
		return nil, err
	}
	if in.Stock != nil && !previousStock.Equal(material.Stock) {
		delta := material.Stock.Sub(previousStock)
		sign := "+"
		if delta.IsNegative() {
			sign = ""
		}
		uc.activity.Record(actor, "Ajout stock", entity.ActivityEntityMaterial, material.ID,
			fmt.Sprintf("%s%s kg ajoutés à %s (nouveau stock: %s kg)",
				sign, delta.StringFixed(2), codes.FormatMaterialCode(material.Code), material.Stock.StringFixed(2)))
	} else {
		uc.activity.Record(actor, "Modification", entity.ActivityEntityMaterial, material.ID,
			fmt.Sprintf("Matière première %s modifiée", codes.FormatMaterialCode(material.Code)))
	}
	return toMaterialResponse(material), nil
}

// List lista materias primas, con filtro opcional insensible a acentos sobre
// designación, CAS y proveedor.
func (uc *MaterialUseCase) List(query string) (*dto.MaterialListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		if query != "" &&
			!normalize.Contains(m.Designation, query) &&
			!normalize.Contains(m.CAS, query) &&
			!normalize.Contains(m.Supplier, query) &&
			!normalize.Contains(codes.FormatMaterialCode(m.Code), query) {
			continue
		}
		items = append(items, *toMaterialResponse(m))
	}
	return &dto.MaterialListResponse{Items: items, Total: len(items)}, nil
}

// ListEntities devuelve las entidades crudas (export XLSX, hoja de orden).
func (uc *MaterialUseCase) ListEntities() ([]*entity.RawMaterial, error) {
	return uc.repo.List()
}

// Delete borra una materia prima. Precondición dura: ninguna fórmula puede
// referenciarla; si alguna lo hace, devuelve MaterialInUseError con las
// fórmulas bloqueantes y no muta nada.
func (uc *MaterialUseCase) Delete(actor dto.Actor, id string) error {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if material == nil {
		return domain.ErrNotFound
	}
	referencing, err := uc.formulaRepo.ListReferencing(id)
	if err != nil {
		return err
	}
	if len(referencing) > 0 {
		blocked := &domain.MaterialInUseError{MaterialID: id}
		for _, f := range referencing {
			blocked.Formulas = append(blocked.Formulas, domain.FormulaRef{ID: f.ID, Code: codes.FormatFormulaCode(f.Code), Name: f.Name})
		}
		return blocked
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.activity.Record(actor, "Suppression", entity.ActivityEntityMaterial, id,
		fmt.Sprintf("Matière première %s supprimée", codes.FormatMaterialCode(material.Code)))
	return nil
}

func toMaterialResponse(m *entity.RawMaterial) *dto.MaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.MaterialResponse{
		ID:          m.ID,
		Code:        m.Code,
		DisplayCode: codes.FormatMaterialCode(m.Code),
		Designation: m.Designation,
		CAS:         m.CAS,
		Supplier:    m.Supplier,
		Stock:       m.Stock,
		Price:       m.Price,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
