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
	appanalytics "github.com/reinierstore/store-api/internal/application/analytics"
	"github.com/reinierstore/store-api/internal/application/auth"
	"github.com/reinierstore/store-api/internal/application/catalog"
	"github.com/reinierstore/store-api/internal/application/history"
	"github.com/reinierstore/store-api/internal/application/inventory"
	"github.com/reinierstore/store-api/internal/application/sales"
	"github.com/reinierstore/store-api/internal/infrastructure/exchange"
	infrapdf "github.com/reinierstore/store-api/internal/infrastructure/pdf"
	"github.com/reinierstore/store-api/internal/infrastructure/postgres"
	"github.com/reinierstore/store-api/internal/infrastructure/scheduler"
	httpRouter "github.com/reinierstore/store-api/internal/interfaces/http"
	"github.com/reinierstore/store-api/pkg/config"
	"github.com/reinierstore/store-api/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	tokenRepo := postgres.NewTokenRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	returnRepo := postgres.NewReturnRepository(pool)
	historyRepo := postgres.NewHistoryRepository(pool)
	offerRepo := postgres.NewOfferRepository(pool)
	currencyRepo := postgres.NewCurrencyRepository(pool)
	registerRepo := postgres.NewCashRegisterRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, tokenRepo, auth.JWTConfig{
		Secret:  cfg.JWT.Secret,
		ExpDays: cfg.JWT.ExpDays,
		Issuer:  cfg.JWT.Issuer,
	})
	transferUC := inventory.NewTransferUseCase(txRunner, productRepo, historyRepo)
	receiptGen := infrapdf.NewMarotoReceiptGenerator()
	saleUC := sales.NewSaleUseCase(txRunner, saleRepo, historyRepo, receiptGen, cfg.App.Name)
	returnUC := sales.NewReturnUseCase(txRunner, returnRepo, saleRepo, historyRepo)
	registerUC := sales.NewRegisterUseCase(saleRepo, registerRepo)
	historyUC := history.NewHistoryUseCase(historyRepo)
	rateClient := exchange.NewClient(cfg.Exchange)
	catalogUC := catalog.NewCatalogUseCase(productRepo, offerRepo, currencyRepo, rateClient)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

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
		Title:    "Reinier Store API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		TransferUC:    transferUC,
		SaleUC:        saleUC,
		ReturnUC:      returnUC,
		RegisterUC:    registerUC,
		HistoryUC:     historyUC,
		CatalogUC:     catalogUC,
		DashboardUC:   dashboardUC,
		SessionDays:   cfg.JWT.ExpDays,
		SecureCookies: cfg.App.IsProduction(),
	})

	// Trabajos programados: cierre de caja 23:59 y refresco horario de tasas
	jobs := scheduler.New(cfg.Jobs, registerUC, catalogUC, authUC, log)
	jobs.Start()

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	jobs.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
