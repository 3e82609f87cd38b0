package production_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aromalab/aromalab-api/internal/application/dto"
	"github.com/aromalab/aromalab-api/internal/application/production"
	"github.com/aromalab/aromalab-api/internal/application/usecase"
	"github.com/aromalab/aromalab-api/internal/domain"
	"github.com/aromalab/aromalab-api/internal/domain/entity"
	"github.com/aromalab/aromalab-api/internal/infrastructure/memory"
)

var testActor = dto.Actor{ID: "u-1", Name: "Marie"}

// fixture almacén + casos de uso cableados como en main.
type fixture struct {
	store      *memory.Store
	materialUC *usecase.MaterialUseCase
	formulaUC  *usecase.FormulaUseCase
	orderUC    *production.OrderUseCase
	activityUC *usecase.ActivityUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	activityUC := usecase.NewActivityUseCase(store.Activity(), zerolog.Nop())
	return &fixture{
		store:      store,
		materialUC: usecase.NewMaterialUseCase(store.Materials(), store.Formulas(), activityUC),
		formulaUC:  usecase.NewFormulaUseCase(store.Formulas(), store.Materials(), activityUC),
		orderUC: production.NewOrderUseCase(
			memory.NewTxRunner(store), store.Orders(), store.Formulas(), activityUC),
		activityUC: activityUC,
	}
}

func (fx *fixture) material(t *testing.T, designation, stock string) *dto.MaterialResponse {
	t.Helper()
	out, err := fx.materialUC.Create(testActor, dto.CreateMaterialRequest{
		Designation: designation,
		Stock:       decimal.RequireFromString(stock),
		Price:       decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	return out
}

func (fx *fixture) formula(t *testing.T, name string, ings ...dto.IngredientInput) *dto.FormulaResponse {
	t.Helper()
	out, err := fx.formulaUC.Create(testActor, dto.CreateFormulaRequest{Name: name, Ingredients: ings})
	require.NoError(t, err)
	return out
}

func (fx *fixture) order(t *testing.T, formulaID, coefficient string) *dto.OrderResponse {
	t.Helper()
	out, err := fx.orderUC.Create(testActor, dto.CreateOrderRequest{
		FormulaID:   formulaID,
		Coefficient: decimal.RequireFromString(coefficient),
	})
	require.NoError(t, err)
	return out
}

func (fx *fixture) stockOf(t *testing.T, materialID string) decimal.Decimal {
	t.Helper()
	m, err := fx.materialUC.GetByID(materialID)
	require.NoError(t, err)
	require.NotNil(t, m)
	return m.Stock
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderCreate_NumeracionSecuencial(t *testing.T) {
	fx := newFixture(t)
	m := fx.material(t, "Vanilline", "100")
	f := fx.formula(t, "Accord", dto.IngredientInput{MaterialID: m.ID, Quantity: decimal.NewFromInt(100)})

	first := fx.order(t, f.ID, "1")
	second := fx.order(t, f.ID, "2")

	assert.Equal(t, "OF0001", first.OrderNumber)
	assert.Equal(t, "OF0002", second.OrderNumber)
	assert.Equal(t, entity.OrderStatusPending, first.Status)
	assert.True(t, second.ProducedMass.Equal(decimal.NewFromInt(200)), "coeficiente 2 × lote de 100 kg")
	assert.Equal(t, "Accord", first.FormulaName)
	assert.Equal(t, "F1", first.FormulaCode)
}

func TestOrderCreate_Validacion(t *testing.T) {
	fx := newFixture(t)
	m := fx.material(t, "Vanilline", "100")
	f := fx.formula(t, "Accord", dto.IngredientInput{MaterialID: m.ID, Quantity: decimal.NewFromInt(100)})

	_, err := fx.orderUC.Create(testActor, dto.CreateOrderRequest{FormulaID: f.ID, Coefficient: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "coeficiente debe ser positivo")

	_, err = fx.orderUC.Create(testActor, dto.CreateOrderRequest{FormulaID: "no-such", Coefficient: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound, "la fórmula debe existir al crear")
}

// ──────────────────────────────────────────────────────────────────────────────
// Completado
// ──────────────────────────────────────────────────────────────────────────────

// Caso nominal: stock 100, ingrediente de 10 kg, coeficiente 2 →
// deducción de 20, stock final 80, orden terminada con CompletedAt.
func TestOrderComplete_DeduceStockYTermina(t *testing.T) {
	fx := newFixture(t)
	m := fx.material(t, "Vanilline", "100")
	f := fx.formula(t, "Accord", dto.IngredientInput{MaterialID: m.ID, Quantity: decimal.NewFromInt(10)})
	o := fx.order(t, f.ID, "2")

	out, err := fx.orderUC.Complete(context.Background(), testActor, o.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCompleted, out.Status)
	require.NotNil(t, out.CompletedAt)
	assert.True(t, fx.stockOf(t, m.ID).Equal(decimal.NewFromInt(80)), "100 - 10×2 = 80")

	log, err := fx.activityUC.List()
	require.NoError(t, err)
	require.NotEmpty(t, log.Items)
	assert.Equal(t, "Complétion", log.Items[0].Action)
	assert.Contains(t, log.Items[0].Details, "OF0001")
}

// Completar dos veces no deduce dos veces: la segunda devuelve
// ErrOrderNotPending y el stock queda intacto.
func TestOrderComplete_SegundaVezRechazada(t *testing.T) {
	fx := newFixture(t)
	m := fx.material(t, "Vanilline", "100")
	f := fx.formula(t, "Accord", dto.IngredientInput{MaterialID: m.ID, Quantity: decimal.NewFromInt(10)})
	o := fx.order(t, f.ID, "2")

	_, err := fx.orderUC.Complete(context.Background(), testActor, o.ID)
	require.NoError(t, err)

	_, err = fx.orderUC.Complete(context.Background(), testActor, o.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotPending)
	assert.True(t, fx.stockOf(t, m.ID).Equal(decimal.NewFromInt(80)), "sin segunda deducción")
}

// Atomicidad: si el segundo ingrediente no tiene stock, la deducción ya
// aplicada al primero se revierte y la orden sigue pendiente.
func TestOrderComplete_FalloRevierteTodo(t *testing.T) {
	fx := newFixture(t)
	a := fx.material(t, "Vanilline", "100")
	b := fx.material(t, "Menthol", "5")
	f := fx.formula(t, "Accord",
		dto.IngredientInput{MaterialID: a.ID, Quantity: decimal.NewFromInt(10)},
		dto.IngredientInput{MaterialID: b.ID, Quantity: decimal.NewFromInt(10)},
	)
	o := fx.order(t, f.ID, "1")

	_, err := fx.orderUC.Complete(context.Background(), testActor, o.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, fx.stockOf(t, a.ID).Equal(decimal.NewFromInt(100)), "deducción del primero revertida")
	assert.True(t, fx.stockOf(t, b.ID).Equal(decimal.NewFromInt(5)))

	still, err := fx.orderUC.GetByID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, still.Status, "la orden puede reintentarse")
}

// El stock exacto alcanza: deducir hasta 0 es válido.
func TestOrderComplete_StockExacto(t *testing.T) {
	fx := newFixture(t)
	m := fx.material(t, "Vanilline", "20")
	f := fx.formula(t, "Accord", dto.IngredientInput{MaterialID: m.ID, Quantity: decimal.NewFromInt(10)})
	o := fx.order(t, f.ID, "2")

	_, err := fx.orderUC.Complete(context.Background(), testActor, o.ID)
	require.NoError(t, err)
	assert.True(t, fx.stockOf(t, m.ID).IsZero())
}

// Una referencia huérfana se tolera en lectura pero es fatal al producir.
func TestOrderComplete_MateriaPrimaBorradaEsFatal(t *testing.T) {
	fx := newFixture(t)
	f := fx.formula(t, "Orpheline",
		dto.IngredientInput{MaterialID: "deleted-material", Quantity: decimal.NewFromInt(10)})
	o := fx.order(t, f.ID, "1")

	_, err := fx.orderUC.Complete(context.Background(), testActor, o.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	still, err := fx.orderUC.GetByID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, still.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Anulación y listado
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderCancel_SoloPendiente(t *testing.T) {
	fx := newFixture(t)
	m := fx.material(t, "Vanilline", "100")
	f := fx.formula(t, "Accord", dto.IngredientInput{MaterialID: m.ID, Quantity: decimal.NewFromInt(10)})
	o := fx.order(t, f.ID, "1")

	out, err := fx.orderUC.Cancel(testActor, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, out.Status)
	assert.True(t, fx.stockOf(t, m.ID).Equal(decimal.NewFromInt(100)), "anular no toca stock")

	_, err = fx.orderUC.Cancel(testActor, o.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotPending, "estado terminal")

	_, err = fx.orderUC.Complete(context.Background(), testActor, o.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotPending, "una orden anulada no se completa")
}

// El listado resuelve la fórmula y filtra por número o nombre; una orden cuya
// fórmula fue borrada se lista con "Inconnue".
func TestOrderList_FiltroYFormulaBorrada(t *testing.T) {
	fx := newFixture(t)
	m := fx.material(t, "Vanilline", "100")
	f := fx.formula(t, "Accord Vanille", dto.IngredientInput{MaterialID: m.ID, Quantity: decimal.NewFromInt(10)})
	g := fx.formula(t, "Eau Fraîche", dto.IngredientInput{MaterialID: m.ID, Quantity: decimal.NewFromInt(10)})
	fx.order(t, f.ID, "1")
	fx.order(t, g.ID, "1")

	out, err := fx.orderUC.List("vanille")
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "OF0001", out.Items[0].OrderNumber)

	out, err = fx.orderUC.List("of0002")
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "Eau Fraîche", out.Items[0].FormulaName)

	require.NoError(t, fx.formulaUC.Delete(testActor, g.ID))
	out, err = fx.orderUC.List("")
	require.NoError(t, err)
	require.Equal(t, 2, out.Total)
	for _, item := range out.Items {
		if item.OrderNumber == "OF0002" {
			assert.Equal(t, "Inconnue", item.FormulaName)
			assert.Empty(t, item.FormulaCode)
		}
	}
}
