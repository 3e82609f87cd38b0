package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aromalab/aromalab-api/internal/application/dto"
	"github.com/aromalab/aromalab-api/internal/domain"
	"github.com/aromalab/aromalab-api/internal/domain/codes"
	"github.com/aromalab/aromalab-api/internal/domain/entity"
	"github.com/aromalab/aromalab-api/internal/domain/formulation"
	"github.com/aromalab/aromalab-api/internal/domain/repository"
	"github.com/aromalab/aromalab-api/pkg/normalize"
)

// UnknownMaterialLabel designación mostrada cuando un ingrediente referencia
// una materia prima ya borrada (referencia huérfana tolerada).
const UnknownMaterialLabel = "Inconnu"

// FormulaUseCase casos de uso CRUD para fórmulas. El equilibrio (100 kg) se
// deriva en lectura; una fórmula desequilibrada sigue siendo almacenable.
type FormulaUseCase struct {
	repo         repository.FormulaRepository
	materialRepo repository.MaterialRepository
	activity     *ActivityUseCase
}

// NewFormulaUseCase construye el caso de uso.
func NewFormulaUseCase(repo repository.FormulaRepository, materialRepo repository.MaterialRepository, activity *ActivityUseCase) *FormulaUseCase {
	return &FormulaUseCase{repo: repo, materialRepo: materialRepo, activity: activity}
}

// Create crea una fórmula con el siguiente código secuencial. Requiere al
// menos un ingrediente con materia prima y cantidad positiva; no verifica que
// las materias primas existan (la integridad se exige al borrarlas).
func (uc *FormulaUseCase) Create(actor dto.Actor, in dto.CreateFormulaRequest) (*dto.FormulaResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	ingredients, err := toIngredients(in.Ingredients)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.ListCodes()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	formula := &entity.Formula{
		ID:          uuid.New().String(),
		Code:        codes.Next(existing),
		Name:        in.Name,
		Description: in.Description,
		Ingredients: ingredients,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(formula); err != nil {
		return nil, err
	}
	uc.activity.Record(actor, "Création", entity.ActivityEntityFormula, formula.ID,
		fmt.Sprintf("Formule %s créée", codes.FormatFormulaCode(formula.Code)))
	return uc.toFormulaResponse(formula)
}

// GetByID obtiene una fórmula por ID con los ingredientes resueltos.
func (uc *FormulaUseCase) GetByID(id string) (*dto.FormulaResponse, error) {
	formula, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if formula == nil {
		return nil, nil
	}
	return uc.toFormulaResponse(formula)
}

// Update aplica un merge-patch; Ingredients no nil reemplaza la lista entera.
func (uc *FormulaUseCase) Update(actor dto.Actor, id string, in dto.UpdateFormulaRequest) (*dto.FormulaResponse, error) {
	formula, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if formula == nil {
		return nil, nil
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		formula.Name = *in.Name
	}
	if in.Description != nil {
		formula.Description = *in.Description
	}
	if in.Ingredients != nil {
		ingredients, err := toIngredients(*in.Ingredients)
		if err != nil {
			return nil, err
		}
		formula.Ingredients = ingredients
	}
	formula.UpdatedAt = time.Now()
	if err := uc.repo.Update(formula); err != nil {
		return nil, err
	}
	uc.activity.Record(actor, "Modification", entity.ActivityEntityFormula, formula.ID,
		fmt.Sprintf("Formule %s modifiée", codes.FormatFormulaCode(formula.Code)))
	return uc.toFormulaResponse(formula)
}

// List lista fórmulas, con filtro opcional insensible a acentos sobre nombre
// y código.
func (uc *FormulaUseCase) List(query string) (*dto.FormulaListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	materials, err := uc.materialIndex()
	if err != nil {
		return nil, err
	}
	items := make([]dto.FormulaResponse, 0, len(list))
	for _, f := range list {
		if query != "" &&
			!normalize.Contains(f.Name, query) &&
			!normalize.Contains(codes.FormatFormulaCode(f.Code), query) {
			continue
		}
		items = append(items, *buildFormulaResponse(f, materials))
	}
	return &dto.FormulaListResponse{Items: items, Total: len(items)}, nil
}

// Delete borra una fórmula por ID.
func (uc *FormulaUseCase) Delete(actor dto.Actor, id string) error {
	formula, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if formula == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.activity.Record(actor, "Suppression", entity.ActivityEntityFormula, id,
		fmt.Sprintf("Formule %s supprimée", codes.FormatFormulaCode(formula.Code)))
	return nil
}

// toIngredients valida y convierte los ingredientes de entrada: al menos uno,
// todos con materia prima y cantidad > 0.
func toIngredients(in []dto.IngredientInput) ([]entity.FormulaIngredient, error) {
	if len(in) == 0 {
		return nil, domain.ErrInvalidInput
	}
	ingredients := make([]entity.FormulaIngredient, 0, len(in))
	for _, ing := range in {
		if ing.MaterialID == "" || !ing.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		ingredients = append(ingredients, entity.FormulaIngredient{
			MaterialID: ing.MaterialID,
			Quantity:   ing.Quantity,
		})
	}
	return ingredients, nil
}

func (uc *FormulaUseCase) materialIndex() (map[string]*entity.RawMaterial, error) {
	materials, err := uc.materialRepo.List()
	if err != nil {
		return nil, err
	}
	index := make(map[string]*entity.RawMaterial, len(materials))
	for _, m := range materials {
		index[m.ID] = m
	}
	return index, nil
}

func (uc *FormulaUseCase) toFormulaResponse(f *entity.Formula) (*dto.FormulaResponse, error) {
	materials, err := uc.materialIndex()
	if err != nil {
		return nil, err
	}
	return buildFormulaResponse(f, materials), nil
}

func buildFormulaResponse(f *entity.Formula, materials map[string]*entity.RawMaterial) *dto.FormulaResponse {
	ingredients := make([]dto.IngredientResponse, 0, len(f.Ingredients))
	for _, ing := range f.Ingredients {
		resolved := dto.IngredientResponse{
			MaterialID:          ing.MaterialID,
			MaterialDesignation: UnknownMaterialLabel,
			Quantity:            ing.Quantity,
		}
		if m, ok := materials[ing.MaterialID]; ok {
			resolved.MaterialCode = codes.FormatMaterialCode(m.Code)
			resolved.MaterialDesignation = m.Designation
		}
		ingredients = append(ingredients, resolved)
	}
	total := formulation.TotalWeight(f.Ingredients)
	return &dto.FormulaResponse{
		ID:          f.ID,
		Code:        f.Code,
		DisplayCode: codes.FormatFormulaCode(f.Code),
		Name:        f.Name,
		Description: f.Description,
		Ingredients: ingredients,
		TotalWeight: total,
		Balanced:    formulation.IsBalanced(total),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}
