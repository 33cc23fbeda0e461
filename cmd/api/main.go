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

	"github.com/jhoicas/pines-admin-api/docs"
	"github.com/jhoicas/pines-admin-api/internal/application/auth"
	"github.com/jhoicas/pines-admin-api/internal/application/events"
	"github.com/jhoicas/pines-admin-api/internal/application/pins"
	"github.com/jhoicas/pines-admin-api/internal/application/sales"
	"github.com/jhoicas/pines-admin-api/internal/application/session"
	"github.com/jhoicas/pines-admin-api/internal/application/usecase"
	"github.com/jhoicas/pines-admin-api/internal/infrastructure/backend"
	"github.com/jhoicas/pines-admin-api/internal/infrastructure/excel"
	"github.com/jhoicas/pines-admin-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/pines-admin-api/internal/infrastructure/pdf"
	"github.com/jhoicas/pines-admin-api/internal/infrastructure/pinprovider"
	"github.com/jhoicas/pines-admin-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pines-admin-api/internal/interfaces/http"
	"github.com/jhoicas/pines-admin-api/pkg/config"
	"github.com/jhoicas/pines-admin-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("fault_policy", cfg.PinAPI.FaultPolicy).
		Msg("iniciando aplicación")

	policy, err := pins.ParseFaultPolicy(cfg.PinAPI.FaultPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("política de fallos")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	m := metrics.New("pines")
	backendClient := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, m, log)
	provider := pinprovider.NewClient(cfg.PinAPI.BaseURL, log, pinprovider.WithMetrics(m))

	sessions := session.NewStore(cfg.JWT.Secret, time.Duration(cfg.JWT.Expiration)*time.Minute)
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go sessions.RunSweeper(sweepCtx, time.Minute)
	hub := events.NewHub(16)
	loc := cfg.App.Location()

	pinRepo := postgres.NewPinRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	flow := pins.NewAuthorizeCaptureFlow(provider, pins.FlowConfig{
		ChunkTimeout: cfg.PinAPI.ChunkTimeout,
		Policy:       policy,
	}, log)
	recorder := sales.NewRecorder(backendClient, log)
	purchaseUC := pins.NewPurchaseUseCase(provider, backendClient, flow, txRunner, pinRepo, recorder, hub, log)
	inventoryUC := pins.NewInventoryUseCase(pinRepo)

	authUC := auth.NewAuthUseCase(backendClient, sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(backendClient, hub)
	productUC := usecase.NewProductUseCase(backendClient)
	limitUC := usecase.NewLimitUseCase(backendClient)
	ledgerUC := usecase.NewLedgerUseCase(backendClient, backendClient)
	reportUC := sales.NewReportUseCase(backendClient, loc)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60, // una compra de 100 pines son 10 lotes secuenciales
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(m.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Pines Admin API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "sessions": sessions.Len()})
	})
	app.Get("/metrics", m.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		Auth:      httpRouter.NewAuthHandler(authUC),
		Users:     httpRouter.NewUserHandler(userUC),
		Products:  httpRouter.NewProductHandler(productUC),
		Limits:    httpRouter.NewLimitHandler(limitUC),
		Pins:      httpRouter.NewPinHandler(purchaseUC, inventoryUC, sessions),
		Ledger:    httpRouter.NewLedgerHandler(ledgerUC, loc),
		Reports:   httpRouter.NewReportHandler(reportUC, infrapdf.NewSalesReportPDF(cfg.App.Name), excel.NewSalesReportXLSX()),
		Events:    httpRouter.NewEventsHandler(hub, 25*time.Second, log),
		Sessions:  sessions,
		JWTSecret: cfg.JWT.Secret,
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
