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
	"github.com/supplychain/mysupply-api/internal/application/auth"
	"github.com/supplychain/mysupply-api/internal/application/catalog"
	appdelivery "github.com/supplychain/mysupply-api/internal/application/delivery"
	"github.com/supplychain/mysupply-api/internal/application/production"
	"github.com/supplychain/mysupply-api/internal/application/sales"
	"github.com/supplychain/mysupply-api/internal/application/supply"
	"github.com/supplychain/mysupply-api/internal/infrastructure/postgres"
	httpRouter "github.com/supplychain/mysupply-api/internal/interfaces/http"
	"github.com/supplychain/mysupply-api/pkg/config"
	"github.com/supplychain/mysupply-api/pkg/logger"
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

	materialRepo := postgres.NewRawMaterialRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	bomRepo := postgres.NewBillOfMaterialRepository(pool)
	supplyOrderRepo := postgres.NewSupplyOrderRepository(pool)
	productionOrderRepo := postgres.NewProductionOrderRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	customerOrderRepo := postgres.NewCustomerOrderRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	materialUC := catalog.NewRawMaterialUseCase(materialRepo)
	supplierUC := catalog.NewSupplierUseCase(supplierRepo, materialRepo)
	productUC := catalog.NewProductUseCase(productRepo, bomRepo, materialRepo)
	supplyOrderUC := supply.NewSupplyOrderUseCase(txRunner, supplyOrderRepo, supplierRepo, materialRepo)
	productionOrderUC := production.NewProductionOrderUseCase(txRunner, productionOrderRepo, productRepo, bomRepo)
	customerUC := sales.NewCustomerUseCase(customerRepo)
	customerOrderUC := sales.NewCustomerOrderUseCase(txRunner, customerOrderRepo, customerRepo, deliveryRepo)
	deliveryUC := appdelivery.NewDeliveryUseCase(txRunner, deliveryRepo, customerOrderRepo, customerRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "MySupply API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RawMaterialUC:     materialUC,
		SupplierUC:        supplierUC,
		ProductUC:         productUC,
		SupplyOrderUC:     supplyOrderUC,
		ProductionOrderUC: productionOrderUC,
		CustomerUC:        customerUC,
		CustomerOrderUC:   customerOrderUC,
		DeliveryUC:        deliveryUC,
		AuthUC:            authUC,
		JWTSecret:         cfg.JWT.Secret,
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
