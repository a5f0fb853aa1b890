package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Repuestos-api/internal/application/analytics"
	"github.com/jhoicas/Repuestos-api/internal/application/auth"
	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/application/report"
	"github.com/jhoicas/Repuestos-api/internal/application/usecase"
	"github.com/jhoicas/Repuestos-api/pkg/jwt"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	CreatePart       *inventory.CreatePartUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	VerifyStock      *inventory.VerifyStockUseCase
	Projections      *analytics.ProjectionUseCase
	Reports          *report.ReportUseCase
	PartUC           *usecase.PartUseCase
	EmployeeUC       *usecase.EmployeeUseCase
	MachineUC        *usecase.MachineUseCase
	Gatherer         prometheus.Gatherer // nil = sin /metrics
	JWTSecret        string
	Log              *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	app.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup.Post("/pin", authHandler.LoginPIN)
	authGroup.Post("/operator", authHandler.LoginOperator)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(jwt.RoleAdmin, jwt.RoleOperator))
	adminOnly := RequireRole(jwt.RoleAdmin)

	// Repuestos
	parts := protected.Group("/parts")
	partHandler := NewPartHandler(deps.CreatePart, deps.PartUC, deps.Projections, log)
	parts.Get("/", partHandler.List)
	parts.Get("/:id", partHandler.GetByID)
	parts.Post("/", adminOnly, partHandler.Create)
	parts.Put("/:id", adminOnly, partHandler.Update)

	// Movimientos e inventario
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.Replenishment, deps.VerifyStock, deps.Projections, log)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/replenishment-list", inventoryHandler.GetReplenishmentList)
	invGroup.Get("/verify", adminOnly, inventoryHandler.VerifyStock)

	// Tablero y reportes
	dashboardHandler := NewDashboardHandler(deps.Projections, log)
	protected.Get("/dashboard", dashboardHandler.GetSummary)

	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.Reports, log)
	reports.Get("/movements", reportHandler.ExportMovements)
	reports.Get("/stock", reportHandler.ExportStock)

	// Datos maestros: lectura para todos, escritura solo admin
	master := NewMasterHandler(deps.EmployeeUC, deps.MachineUC, log)

	employees := protected.Group("/employees")
	employees.Get("/", master.ListEmployees)
	employees.Get("/:id", master.GetEmployee)
	employees.Post("/", adminOnly, master.CreateEmployee)
	employees.Put("/:id", adminOnly, master.UpdateEmployee)

	types := protected.Group("/machine-types")
	types.Get("/", master.ListMachineTypes)
	types.Post("/", adminOnly, master.CreateMachineType)

	machines := protected.Group("/machines")
	machines.Get("/", master.ListMachines)
	machines.Get("/:id", master.GetMachine)
	machines.Post("/", adminOnly, master.CreateMachine)

	positions := protected.Group("/machine-positions")
	positions.Get("/", master.ListPositions)
	positions.Post("/", adminOnly, master.CreatePosition)
}
