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

	"github.com/siteproc/siteproc-api/internal/application/auth"
	appbilling "github.com/siteproc/siteproc-api/internal/application/billing"
	appdelivery "github.com/siteproc/siteproc-api/internal/application/delivery"
	"github.com/siteproc/siteproc-api/internal/application/usecase"
	"github.com/siteproc/siteproc-api/internal/infrastructure/accounting"
	"github.com/siteproc/siteproc-api/internal/infrastructure/audit"
	"github.com/siteproc/siteproc-api/internal/infrastructure/payments"
	infrapdf "github.com/siteproc/siteproc-api/internal/infrastructure/pdf"
	"github.com/siteproc/siteproc-api/internal/infrastructure/postgres"
	"github.com/siteproc/siteproc-api/internal/infrastructure/realtime"
	httpRouter "github.com/siteproc/siteproc-api/internal/interfaces/http"
	"github.com/siteproc/siteproc-api/pkg/config"
	"github.com/siteproc/siteproc-api/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	activityRepo := postgres.NewActivityLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Realtime: si Redis no está disponible la API opera sin broadcasts.
	var broadcaster appdelivery.Broadcaster = realtime.NopBroadcaster{}
	rdb, err := realtime.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, realtime deshabilitado")
	} else {
		defer rdb.Close()
		broadcaster = realtime.NewRedisBroadcaster(rdb, log)
	}

	auditor := audit.NewRecorder(activityRepo, log)
	metrics := httpRouter.NewMetrics()

	rollupUC := appdelivery.NewRollupUseCase(
		deliveryRepo, orderRepo, projectRepo, expenseRepo,
		auditor, broadcaster, metrics.RollupFailures, log,
	)
	updateStatusUC := appdelivery.NewUpdateStatusUseCase(
		txRunner, deliveryRepo, rollupUC, auditor, broadcaster, log,
	)
	archiveUC := appdelivery.NewArchiveUseCase(deliveryRepo, rollupUC, auditor, broadcaster, log)
	deliveryUC := appdelivery.NewDeliveryUseCase(deliveryRepo, orderRepo, projectRepo, auditor)

	gateway := payments.NewNoopGateway(log)
	billingUC := appbilling.NewBillingUseCase(
		companyRepo, profileRepo, subscriptionRepo, gateway, cfg.Billing.MinSeats, log,
	)

	projectUC := usecase.NewProjectUseCase(projectRepo, companyRepo, rollupUC, auditor)
	orderUC := usecase.NewOrderUseCase(orderRepo, projectRepo, auditor)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, projectRepo, rollupUC, auditor, log)
	profileUC := usecase.NewProfileUseCase(profileRepo, companyRepo, billingUC, auditor, log)
	activityUC := usecase.NewActivityUseCase(activityRepo)

	authUC := auth.NewAuthUseCase(profileRepo, companyRepo, subscriptionRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SiteProc API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProjectUC:    projectUC,
		OrderUC:      orderUC,
		ExpenseUC:    expenseUC,
		ProfileUC:    profileUC,
		ActivityUC:   activityUC,
		DeliveryUC:   deliveryUC,
		UpdateStatus: updateStatusUC,
		Archive:      archiveUC,
		BillingUC:    billingUC,

		DeliveryRepo: deliveryRepo,
		CompanyRepo:  companyRepo,
		OrderRepo:    orderRepo,
		ProjectRepo:  projectRepo,
		ExpenseRepo:  expenseRepo,

		NoteGenerator: infrapdf.NewDeliveryNoteGenerator(),
		Ledger:        accounting.NewLedgerExporter(),
		Metrics:       metrics,
		JWTSecret:     cfg.JWT.Secret,
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
