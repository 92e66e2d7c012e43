package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger        *inventory.LedgerUseCase
	Replenishment *inventory.ReplenishmentUseCase
	// Ping verifica el almacenamiento para /health; nil = siempre ok.
	Ping func(ctx context.Context) error
	Log  *logger.Logger
	// DocsFile swagger.json a servir en /docs; vacío = sin Swagger UI.
	DocsFile string
}

// NewApp crea la aplicación Fiber con recover, log de peticiones y las rutas registradas.
func NewApp(appName string, deps RouterDeps) *fiber.App {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		},
	})
	app.Use(recover.New())
	app.Use(RequestLogger(deps.Log.Named("http")))

	// Swagger UI: http://localhost:<port>/docs
	if deps.DocsFile != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: deps.DocsFile,
			Path:     "docs",
			Title:    "Inventario Ledger API",
		}))
	}
	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps.Ping))

	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Ledger)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	// HEAD explícito antes de GET: Fiber registra HEAD junto con cada GET.
	products.Head("/:id", productHandler.Exists)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/history", productHandler.History)
	products.Get("/:id/statistics", productHandler.Statistics)

	// Inventory
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Replenishment)
	invGroup.Post("/movements", inventoryHandler.RecordMovement)
	invGroup.Post("/operations", inventoryHandler.ApplyOperation)
	invGroup.Get("/history", inventoryHandler.History)
	invGroup.Get("/replenishment", inventoryHandler.GetReplenishmentList)
}

func healthHandler(ping func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{Status: "degraded", Database: err.Error()})
			}
		}
		return c.JSON(dto.HealthResponse{Status: "ok", Database: "ok"})
	}
}
