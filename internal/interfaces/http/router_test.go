package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aromalab/aromalab-api/internal/application/auth"
	"github.com/aromalab/aromalab-api/internal/application/dto"
	"github.com/aromalab/aromalab-api/internal/application/production"
	"github.com/aromalab/aromalab-api/internal/application/usecase"
	"github.com/aromalab/aromalab-api/internal/domain/entity"
	"github.com/aromalab/aromalab-api/internal/infrastructure/excel"
	"github.com/aromalab/aromalab-api/internal/infrastructure/memory"
	apphttp "github.com/aromalab/aromalab-api/internal/interfaces/http"
)

// buildAPI levanta la API completa sobre el almacén en memoria, igual que main
// pero sin PostgreSQL ni PDF real.
func buildAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	activityUC := usecase.NewActivityUseCase(store.Activity(), zerolog.Nop())
	materialUC := usecase.NewMaterialUseCase(store.Materials(), store.Formulas(), activityUC)
	formulaUC := usecase.NewFormulaUseCase(store.Formulas(), store.Materials(), activityUC)
	orderUC := production.NewOrderUseCase(memory.NewTxRunner(store), store.Orders(), store.Formulas(), activityUC)
	sheetUC := production.NewOrderSheetUseCase(store.Orders(), store.Formulas(), store.Materials(), fakeSheetGenerator{})
	userUC := usecase.NewUserUseCase(store.Users(), activityUC)
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		MaterialUC:   materialUC,
		FormulaUC:    formulaUC,
		OrderUC:      orderUC,
		OrderSheetUC: sheetUC,
		ActivityUC:   activityUC,
		UserUC:       userUC,
		AuthUC:       authUC,
		Exporter:     excel.NewMaterialsExporter(),
		JWTSecret:    testJWTSecret,
	})
	return app
}

type fakeSheetGenerator struct{}

func (fakeSheetGenerator) Generate(_ context.Context, _ *entity.ManufacturingOrder, _ *entity.Formula, _ []production.SheetLine) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

func do(t *testing.T, app *fiber.App, method, path, token string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo sobre HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_FlujoCompletoDeFabricacion(t *testing.T) {
	app := buildAPI(t)
	admin := tokenForRole(t, "admin")

	// materia prima
	resp := do(t, app, http.MethodPost, "/api/materials", admin, dto.CreateMaterialRequest{
		Designation: "Vanilline",
		Stock:       decimal.NewFromInt(100),
		Price:       decimal.RequireFromString("45.5"),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	material := decode[dto.MaterialResponse](t, resp)
	assert.Equal(t, "MP1", material.DisplayCode)

	// fórmula que la referencia
	resp = do(t, app, http.MethodPost, "/api/formulas", admin, dto.CreateFormulaRequest{
		Name: "Accord Vanille",
		Ingredients: []dto.IngredientInput{
			{MaterialID: material.ID, Quantity: decimal.NewFromInt(10)},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	formula := decode[dto.FormulaResponse](t, resp)

	// borrar la materia prima está bloqueado: 409 con la fórmula bloqueante
	resp = do(t, app, http.MethodDelete, "/api/materials/"+material.ID, admin, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	blocked := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "DELETE_BLOCKED", blocked.Code)
	require.Len(t, blocked.Blocking, 1)
	assert.Equal(t, "F1", blocked.Blocking[0].Code)

	// orden de fabricación con coeficiente 2
	resp = do(t, app, http.MethodPost, "/api/orders", admin, dto.CreateOrderRequest{
		FormulaID:   formula.ID,
		Coefficient: decimal.NewFromInt(2),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	order := decode[dto.OrderResponse](t, resp)
	assert.Equal(t, "OF0001", order.OrderNumber)

	// completar deduce 10×2 del stock
	resp = do(t, app, http.MethodPost, fmt.Sprintf("/api/orders/%s/complete", order.ID), admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	completed := decode[dto.OrderResponse](t, resp)
	assert.Equal(t, entity.OrderStatusCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)

	resp = do(t, app, http.MethodGet, "/api/materials/"+material.ID, admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	after := decode[dto.MaterialResponse](t, resp)
	assert.True(t, after.Stock.Equal(decimal.NewFromInt(80)))

	// segunda completación: 409
	resp = do(t, app, http.MethodPost, fmt.Sprintf("/api/orders/%s/complete", order.ID), admin, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// la hoja de fabricación responde PDF
	resp = do(t, app, http.MethodGet, fmt.Sprintf("/api/orders/%s/sheet", order.ID), admin, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	// el registro de actividad acumuló las operaciones
	resp = do(t, app, http.MethodGet, "/api/activity", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	log := decode[dto.ActivityListResponse](t, resp)
	require.NotEmpty(t, log.Items)
	assert.Equal(t, "Complétion", log.Items[0].Action)
}

// Stock insuficiente al completar: 422 y nada cambia.
func TestAPI_CompletarSinStock(t *testing.T) {
	app := buildAPI(t)
	admin := tokenForRole(t, "admin")

	resp := do(t, app, http.MethodPost, "/api/materials", admin, dto.CreateMaterialRequest{
		Designation: "Menthol",
		Stock:       decimal.NewFromInt(5),
		Price:       decimal.NewFromInt(10),
	})
	material := decode[dto.MaterialResponse](t, resp)

	resp = do(t, app, http.MethodPost, "/api/formulas", admin, dto.CreateFormulaRequest{
		Name: "Frais",
		Ingredients: []dto.IngredientInput{
			{MaterialID: material.ID, Quantity: decimal.NewFromInt(10)},
		},
	})
	formula := decode[dto.FormulaResponse](t, resp)

	resp = do(t, app, http.MethodPost, "/api/orders", admin, dto.CreateOrderRequest{
		FormulaID:   formula.ID,
		Coefficient: decimal.NewFromInt(1),
	})
	order := decode[dto.OrderResponse](t, resp)

	resp = do(t, app, http.MethodPost, fmt.Sprintf("/api/orders/%s/complete", order.ID), admin, nil)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)

	resp = do(t, app, http.MethodGet, "/api/orders/"+order.ID, admin, nil)
	still := decode[dto.OrderResponse](t, resp)
	assert.Equal(t, entity.OrderStatusPending, still.Status)
}

// Actualizar un id inexistente responde 404 en las tres entidades editables.
func TestAPI_UpdateIDInexistente(t *testing.T) {
	app := buildAPI(t)
	admin := tokenForRole(t, "admin")
	nombre := "Nuevo nombre"

	resp := do(t, app, http.MethodPut, "/api/materials/no-existe", admin, dto.UpdateMaterialRequest{Designation: &nombre})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NOT_FOUND", body.Code)

	resp = do(t, app, http.MethodPut, "/api/formulas/no-existe", admin, dto.UpdateFormulaRequest{Name: &nombre})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, app, http.MethodPut, "/api/users/no-existe", admin, dto.UpdateUserRequest{Name: &nombre})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// Los borrados y la gestión de usuarios exigen rol admin.
func TestAPI_RBACEnRutasAdmin(t *testing.T) {
	app := buildAPI(t)
	admin := tokenForRole(t, "admin")
	user := tokenForRole(t, "user")

	resp := do(t, app, http.MethodPost, "/api/materials", user, dto.CreateMaterialRequest{
		Designation: "Vanilline",
		Stock:       decimal.NewFromInt(10),
		Price:       decimal.NewFromInt(10),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "user puede crear")
	material := decode[dto.MaterialResponse](t, resp)

	resp = do(t, app, http.MethodDelete, "/api/materials/"+material.ID, user, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "user no puede borrar")

	resp = do(t, app, http.MethodGet, "/api/users", user, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "gestión de usuarios solo admin")

	resp = do(t, app, http.MethodDelete, "/api/materials/"+material.ID, admin, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

// Registro y login sobre HTTP: el token emitido abre las rutas protegidas.
func TestAPI_RegisterLogin(t *testing.T) {
	app := buildAPI(t)

	resp := do(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email:    "marie@aromalab.local",
		Password: "secret123",
		Name:     "Marie",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email:    "marie@aromalab.local",
		Password: "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, login.Token)

	resp = do(t, app, http.MethodGet, "/api/materials", "Bearer "+login.Token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// credenciales malas: 401
	resp = do(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email:    "marie@aromalab.local",
		Password: "wrong",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// email no registrado: también 401, sin revelar si la cuenta existe
	resp = do(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email:    "nadie@aromalab.local",
		Password: "secret123",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	unknown := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "UNAUTHORIZED", unknown.Code)

	// sin token: 401
	resp = do(t, app, http.MethodGet, "/api/materials", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
