package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aromalab/aromalab-api/internal/application/auth"
	"github.com/aromalab/aromalab-api/internal/application/production"
	"github.com/aromalab/aromalab-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MaterialUC   *usecase.MaterialUseCase
	FormulaUC    *usecase.FormulaUseCase
	OrderUC      *production.OrderUseCase
	OrderSheetUC *production.OrderSheetUseCase
	ActivityUC   *usecase.ActivityUseCase
	UserUC       *usecase.UserUseCase
	AuthUC       *auth.AuthUseCase
	Exporter     MaterialsExporter
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Materials (protegido; DELETE solo admin)
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC, deps.Exporter)
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/export", materialHandler.Export)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", materialHandler.Update)
	materials.Delete("/:id", RequireAdmin(), materialHandler.Delete)

	// Formulas (protegido; DELETE solo admin)
	formulas := protected.Group("/formulas")
	formulaHandler := NewFormulaHandler(deps.FormulaUC)
	formulas.Post("/", formulaHandler.Create)
	formulas.Get("/", formulaHandler.List)
	formulas.Get("/:id", formulaHandler.GetByID)
	formulas.Put("/:id", formulaHandler.Update)
	formulas.Delete("/:id", RequireAdmin(), formulaHandler.Delete)

	// Orders (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.OrderSheetUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/complete", orderHandler.Complete)
	orders.Post("/:id/cancel", orderHandler.Cancel)
	orders.Get("/:id/sheet", orderHandler.Sheet)

	// Activity log (protegido, solo lectura)
	activityHandler := NewActivityHandler(deps.ActivityUC)
	protected.Get("/activity", activityHandler.List)

	// Users (solo admin)
	users := protected.Group("/users", RequireAdmin())
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
