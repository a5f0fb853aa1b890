// @title                       Repuestos API
// @version                     1.0
// @description                 Ledger de entradas y salidas de repuestos con conciliación de stock.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/Repuestos-api/docs"
	"github.com/jhoicas/Repuestos-api/internal/application/analytics"
	"github.com/jhoicas/Repuestos-api/internal/application/auth"
	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/application/report"
	"github.com/jhoicas/Repuestos-api/internal/application/usecase"
	"github.com/jhoicas/Repuestos-api/internal/domain/ledger"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/cache"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/postgres"
	infrareport "github.com/jhoicas/Repuestos-api/internal/infrastructure/report"
	httpRouter "github.com/jhoicas/Repuestos-api/internal/interfaces/http"
	"github.com/jhoicas/Repuestos-api/pkg/config"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
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

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	loc, err := cfg.Ledger.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria del ledger")
	}
	policy, err := ledger.NewPolicy(
		cfg.Ledger.ExportMergePeriod, cfg.Ledger.ImportMergePeriod,
		cfg.Ledger.FOCReason, cfg.Ledger.FOCInExportTotals, loc,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("política del ledger")
	}
	log.Info().
		Str("export_merge", string(policy.ExportPeriod)).
		Str("import_merge", string(policy.ImportPeriod)).
		Str("foc_reason", policy.FOCReason).
		Bool("foc_in_totals", policy.FOCInExportTotals).
		Str("tz", loc.String()).
		Msg("política del ledger")

	ctx := context.Background()
	if err := postgres.Migrate(cfg.DB.ConnectionString(), log.Component("migrate")); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	partRepo := postgres.NewPartRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	machineRepo := postgres.NewMachineRepository(pool)
	projectionRepo := postgres.NewProjectionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Métricas: registro propio + colectores de proceso y runtime
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	observers := []inventory.MovementObserver{
		inventory.NewLogObserver(log),
		appMetrics,
	}
	projectionOpts := []analytics.Option{analytics.WithLogger(log.Component("projections"))}
	var invalidator usecase.Invalidator

	if cfg.Redis.Enabled() {
		client, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, tablero sin caché")
		} else {
			defer client.Close()
			projCache := cache.NewProjectionCache(client, cfg.Redis.TTL, log)
			observers = append(observers, projCache)
			projectionOpts = append(projectionOpts, analytics.WithCache(projCache))
			invalidator = projCache
		}
	}

	registerMovementUC := inventory.NewRegisterMovementUseCase(
		txRunner, employeeRepo, machineRepo, policy, inventory.WithObservers(observers...),
	)
	createPartUC := inventory.NewCreatePartUseCase(txRunner, employeeRepo, machineRepo, policy, observers...)
	replenishmentUC := inventory.NewReplenishmentUseCase(projectionRepo)
	verifyUC := inventory.NewVerifyStockUseCase(txRunner, policy)
	projectionUC := analytics.NewProjectionUseCase(projectionRepo, policy, projectionOpts...)
	reportUC := report.NewReportUseCase(projectionUC, map[report.Format]report.Renderer{
		report.FormatXLSX: infrareport.NewExcelRenderer(),
		report.FormatPDF:  infrareport.NewMarotoPDFRenderer(),
	}, loc)

	partUC := usecase.NewPartUseCase(partRepo, machineRepo, invalidator, log)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo)
	machineUC := usecase.NewMachineUseCase(machineRepo)

	authUC, err := auth.NewAuthUseCase(employeeRepo, cfg.Admin.PIN, cfg.Admin.PINHash, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configurar autenticación")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("access")))
	app.Use(appMetrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Title = cfg.App.Name
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Repuestos API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		RegisterMovement: registerMovementUC,
		CreatePart:       createPartUC,
		Replenishment:    replenishmentUC,
		VerifyStock:      verifyUC,
		Projections:      projectionUC,
		Reports:          reportUC,
		PartUC:           partUC,
		EmployeeUC:       employeeUC,
		MachineUC:        machineUC,
		Gatherer:         registry,
		JWTSecret:        cfg.JWT.Secret,
		Log:              log.Component("http"),
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
