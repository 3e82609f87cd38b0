package usecase_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aromalab/aromalab-api/internal/application/dto"
	"github.com/aromalab/aromalab-api/internal/application/usecase"
	"github.com/aromalab/aromalab-api/internal/domain"
	"github.com/aromalab/aromalab-api/internal/infrastructure/memory"
)

var testActor = dto.Actor{ID: "u-1", Name: "Marie"}

func newMaterialUC(t *testing.T) (*usecase.MaterialUseCase, *usecase.FormulaUseCase, *usecase.ActivityUseCase) {
	t.Helper()
	store := memory.NewStore()
	activityUC := usecase.NewActivityUseCase(store.Activity(), zerolog.Nop())
	materialUC := usecase.NewMaterialUseCase(store.Materials(), store.Formulas(), activityUC)
	formulaUC := usecase.NewFormulaUseCase(store.Formulas(), store.Materials(), activityUC)
	return materialUC, formulaUC, activityUC
}

func createMaterial(t *testing.T, uc *usecase.MaterialUseCase, designation, stock string) *dto.MaterialResponse {
	t.Helper()
	out, err := uc.Create(testActor, dto.CreateMaterialRequest{
		Designation: designation,
		Stock:       decimal.RequireFromString(stock),
		Price:       decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación y códigos secuenciales
// ──────────────────────────────────────────────────────────────────────────────

func TestMaterialCreate_CodigosSecuenciales(t *testing.T) {
	uc, _, _ := newMaterialUC(t)

	first := createMaterial(t, uc, "Vanilline", "100")
	second := createMaterial(t, uc, "Menthol", "50")

	assert.Equal(t, "1", first.Code)
	assert.Equal(t, "MP1", first.DisplayCode)
	assert.Equal(t, "2", second.Code)
	assert.Equal(t, "MP2", second.DisplayCode)
}

// Borrar una materia prima no hace que su código se reutilice.
func TestMaterialCreate_CodigoNoSeReutilizaTrasBorrado(t *testing.T) {
	uc, _, _ := newMaterialUC(t)

	createMaterial(t, uc, "Vanilline", "100")
	second := createMaterial(t, uc, "Menthol", "50")
	third := createMaterial(t, uc, "Linalol", "30")

	require.NoError(t, uc.Delete(testActor, third.ID))
	require.NoError(t, uc.Delete(testActor, second.ID))

	fourth := createMaterial(t, uc, "Citral", "20")
	assert.Equal(t, "4", fourth.Code, "max visto es 3 aunque queden solo 1")
}

func TestMaterialCreate_Validacion(t *testing.T) {
	uc, _, _ := newMaterialUC(t)

	_, err := uc.Create(testActor, dto.CreateMaterialRequest{Designation: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "designación requerida")

	_, err = uc.Create(testActor, dto.CreateMaterialRequest{
		Designation: "Vanilline",
		Stock:       decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "stock negativo rechazado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Actualización
// ──────────────────────────────────────────────────────────────────────────────

// El merge-patch solo toca los campos presentes.
func TestMaterialUpdate_MergePatch(t *testing.T) {
	uc, _, _ := newMaterialUC(t)
	m := createMaterial(t, uc, "Vanilline", "100")

	supplier := "Givaudan"
	out, err := uc.Update(testActor, m.ID, dto.UpdateMaterialRequest{Supplier: &supplier})
	require.NoError(t, err)

	assert.Equal(t, "Givaudan", out.Supplier)
	assert.Equal(t, "Vanilline", out.Designation, "campos ausentes intactos")
	assert.True(t, out.Stock.Equal(decimal.NewFromInt(100)))
}

// Un cambio de stock queda estampado como "Ajout stock" con el delta.
func TestMaterialUpdate_CambioDeStockRegistraActividad(t *testing.T) {
	uc, _, activityUC := newMaterialUC(t)
	m := createMaterial(t, uc, "Vanilline", "100")

	stock := decimal.RequireFromString("125.5")
	_, err := uc.Update(testActor, m.ID, dto.UpdateMaterialRequest{Stock: &stock})
	require.NoError(t, err)

	log, err := activityUC.List()
	require.NoError(t, err)
	require.NotEmpty(t, log.Items)
	latest := log.Items[0]
	assert.Equal(t, "Ajout stock", latest.Action)
	assert.Equal(t, "Marie", latest.UserName)
	assert.Contains(t, latest.Details, "+25.50 kg")
	assert.Contains(t, latest.Details, "MP1")
}

func TestMaterialUpdate_IDInexistente(t *testing.T) {
	uc, _, _ := newMaterialUC(t)
	out, err := uc.Update(testActor, "no-such-id", dto.UpdateMaterialRequest{})
	require.NoError(t, err)
	assert.Nil(t, out)
}

// ──────────────────────────────────────────────────────────────────────────────
// Búsqueda
// ──────────────────────────────────────────────────────────────────────────────

// La búsqueda ignora acentos y mayúsculas.
func TestMaterialList_BusquedaInsensibleAAcentos(t *testing.T) {
	uc, _, _ := newMaterialUC(t)
	createMaterial(t, uc, "Éthyl Maltol", "10")
	createMaterial(t, uc, "Menthol", "10")

	out, err := uc.List("ethyl")
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "Éthyl Maltol", out.Items[0].Designation)

	// por código con prefijo
	out, err = uc.List("mp2")
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "Menthol", out.Items[0].Designation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Guardia de borrado
// ──────────────────────────────────────────────────────────────────────────────

// Una materia prima referenciada por una fórmula no puede borrarse; el error
// lista las fórmulas bloqueantes y nada muta.
func TestMaterialDelete_BloqueadoPorFormula(t *testing.T) {
	materialUC, formulaUC, _ := newMaterialUC(t)
	m := createMaterial(t, materialUC, "Vanilline", "100")

	f, err := formulaUC.Create(testActor, dto.CreateFormulaRequest{
		Name: "Accord Vanille",
		Ingredients: []dto.IngredientInput{
			{MaterialID: m.ID, Quantity: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)

	err = materialUC.Delete(testActor, m.ID)
	var inUse *domain.MaterialInUseError
	require.ErrorAs(t, err, &inUse)
	require.Len(t, inUse.Formulas, 1)
	assert.Equal(t, f.ID, inUse.Formulas[0].ID)
	assert.Equal(t, "F1", inUse.Formulas[0].Code)
	assert.Equal(t, "Accord Vanille", inUse.Formulas[0].Name)

	// la materia prima sigue ahí
	still, err := materialUC.GetByID(m.ID)
	require.NoError(t, err)
	assert.NotNil(t, still)
}

// Tras borrar la fórmula bloqueante, el borrado procede.
func TestMaterialDelete_DesbloqueadoTrasBorrarFormula(t *testing.T) {
	materialUC, formulaUC, _ := newMaterialUC(t)
	m := createMaterial(t, materialUC, "Vanilline", "100")

	f, err := formulaUC.Create(testActor, dto.CreateFormulaRequest{
		Name: "Accord Vanille",
		Ingredients: []dto.IngredientInput{
			{MaterialID: m.ID, Quantity: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)

	require.NoError(t, formulaUC.Delete(testActor, f.ID))
	require.NoError(t, materialUC.Delete(testActor, m.ID))

	gone, err := materialUC.GetByID(m.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestMaterialDelete_Inexistente(t *testing.T) {
	uc, _, _ := newMaterialUC(t)
	assert.ErrorIs(t, uc.Delete(testActor, "no-such-id"), domain.ErrNotFound)
}
