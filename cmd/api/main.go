package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/aromalab/aromalab-api/internal/application/auth"
	"github.com/aromalab/aromalab-api/internal/application/production"
	"github.com/aromalab/aromalab-api/internal/application/usecase"
	"github.com/aromalab/aromalab-api/internal/infrastructure/excel"
	infrapdf "github.com/aromalab/aromalab-api/internal/infrastructure/pdf"
	"github.com/aromalab/aromalab-api/internal/infrastructure/postgres"
	httpRouter "github.com/aromalab/aromalab-api/internal/interfaces/http"
	"github.com/aromalab/aromalab-api/pkg/config"
	"github.com/aromalab/aromalab-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	materialRepo := postgres.NewMaterialRepository(pool)
	formulaRepo := postgres.NewFormulaRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	activityUC := usecase.NewActivityUseCase(activityRepo, log.Zerolog())
	materialUC := usecase.NewMaterialUseCase(materialRepo, formulaRepo, activityUC)
	formulaUC := usecase.NewFormulaUseCase(formulaRepo, materialRepo, activityUC)
	orderUC := production.NewOrderUseCase(txRunner, orderRepo, formulaRepo, activityUC)
	userUC := usecase.NewUserUseCase(userRepo, activityUC)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Bon de fabrication en PDF
	sheetGenerator := infrapdf.NewMarotoSheetGenerator()
	orderSheetUC := production.NewOrderSheetUseCase(orderRepo, formulaRepo, materialRepo, sheetGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "AromaLab API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MaterialUC:   materialUC,
		FormulaUC:    formulaUC,
		OrderUC:      orderUC,
		OrderSheetUC: orderSheetUC,
		ActivityUC:   activityUC,
		UserUC:       userUC,
		AuthUC:       authUC,
		Exporter:     excel.NewMaterialsExporter(),
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
