package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/Jamxon/Korxona/docs"
	"github.com/Jamxon/Korxona/internal/application/production"
	"github.com/Jamxon/Korxona/internal/application/usecase"
	"github.com/Jamxon/Korxona/internal/infrastructure/cache"
	"github.com/Jamxon/Korxona/internal/infrastructure/events"
	"github.com/Jamxon/Korxona/internal/infrastructure/metrics"
	infrapdf "github.com/Jamxon/Korxona/internal/infrastructure/pdf"
	"github.com/Jamxon/Korxona/internal/infrastructure/postgres"
	"github.com/Jamxon/Korxona/internal/infrastructure/spreadsheet"
	"github.com/Jamxon/Korxona/internal/infrastructure/tracing"
	httpRouter "github.com/Jamxon/Korxona/internal/interfaces/http"
	"github.com/Jamxon/Korxona/pkg/config"
	"github.com/Jamxon/Korxona/pkg/logger"
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

	shutdownTracing, err := tracing.Setup(ctx, cfg.App.Name, cfg.App.Env, cfg.Tracing)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar tracing")
	}

	if cfg.DB.MigrateOnStart {
		if err := postgres.Migrate(ctx, cfg.DB.ConnectionString(), "up"); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	stockCache, err := cache.NewStockCache(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer stockCache.Close()
	if !stockCache.Enabled() {
		log.Warn().Msg("REDIS_ADDR vacío: listado de almacén sin caché")
	}

	// Eventos: Kafka si hay brokers, si no solo log.
	var publisher production.EventPublisher = events.NewLogPublisher(log.Component("events"))
	if len(cfg.Kafka.Brokers) > 0 {
		kp, err := events.NewKafkaPublisher(cfg.Kafka)
		if err != nil {
			log.Fatal().Err(err).Msg("kafka")
		}
		defer kp.Close()
		publisher = kp
	}

	m := metrics.New()
	obs := production.Observers{Publisher: publisher, Metrics: m, Cache: stockCache}

	productRepo := postgres.NewProductRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	entryRepo := postgres.NewWarehouseEntryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	prodLog := log.Component("production")
	reserveUC := production.NewReserveMaterialsUseCase(txRunner, productRepo, bomRepo, prodLog, obs)
	consumeUC := production.NewConsumeMaterialsUseCase(txRunner, productRepo, bomRepo, prodLog, obs)
	releaseUC := production.NewReleaseReservationUseCase(txRunner, productRepo, bomRepo, prodLog, obs)

	plan := make([]production.PlanItem, 0, len(cfg.Production.Plan))
	for _, p := range cfg.Production.Plan {
		plan = append(plan, production.PlanItem{Name: p.Name, Quantity: p.Quantity})
	}
	infoUC := production.NewProductionInfoUseCase(reserveUC, plan, prodLog)
	reportUC := usecase.NewProductionReportUseCase(infoUC, infrapdf.NewProductionReport(cfg.App.Name), spreadsheet.NewProductionWorkbook())
	warehouseUC := usecase.NewWarehouseUseCase(entryRepo, txRunner, stockCache, spreadsheet.NewStockWorkbook(), log.Component("warehouse"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    10 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(m.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FilePath:    "./docs/swagger.json",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "Korxona API",
	}))

	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Production: httpRouter.NewProductionHandler(reportUC, reserveUC, log.Component("http")),
		Warehouse:  httpRouter.NewWarehouseHandler(consumeUC, releaseUC, warehouseUC, log.Component("http")),
		DB:         pool,
		JWTSecret:  cfg.JWT.Secret,
	})
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: autenticación deshabilitada")
	}

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
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de tracing")
	}

	log.Info().Msg("aplicación detenida")
}
