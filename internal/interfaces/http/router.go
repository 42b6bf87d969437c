package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Jamxon/Korxona/pkg/jwt"
)

// Pinger verificación de dependencias para /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Production *ProductionHandler
	Warehouse  *WarehouseHandler
	DB         Pinger
	JWTSecret  string
}

// Router registra las rutas de la API.
// Lectura: cualquier token válido. Mutaciones de almacén: admin u omborchi.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps.DB))

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	writer := RequireRole(jwt.RoleAdmin, jwt.RoleOmborchi)

	prod := api.Group("/production")
	prod.Get("/info", writer, deps.Production.Info)
	prod.Get("/info.pdf", writer, deps.Production.InfoPDF)
	prod.Get("/info.xlsx", writer, deps.Production.InfoXLSX)
	prod.Post("/reserve", writer, deps.Production.Reserve)

	wh := api.Group("/warehouse")
	wh.Get("/", deps.Warehouse.List)
	wh.Get("/export.xlsx", deps.Warehouse.Export)
	wh.Post("/update", writer, deps.Warehouse.Update)
	wh.Post("/reservations/release", writer, deps.Warehouse.ReleaseReservations)
	wh.Post("/import", writer, deps.Warehouse.Import)
}

func healthHandler(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "db": err.Error()})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
