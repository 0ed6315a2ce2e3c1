package api

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"go.uber.org/zap"

	"ofertasprj/internal/config"
	"ofertasprj/internal/observability"
)

// RegisterRoutes registers all HTTP routes on the Fiber app.
func RegisterRoutes(app *fiber.App, logger *zap.Logger, cfg *config.Config, deals *DealsHandler) {
	app.Use(RequestLogger(logger))

	app.Get("/metrics", adaptor.HTTPHandler(observability.Handler()))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(HealthResponse{
			Status:    "OK",
			Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		})
	})

	app.Get("/analytics", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"analytics_id": cfg.AnalyticsID})
	})

	v1 := app.Group("/api", DomainGuard(logger, cfg.AllowedDomains, cfg.LocalHosts()))
	v1.Get("/products", deals.Products)
	v1.Get("/product", deals.Product)

	if cfg.StaticDir != "" {
		if st, err := os.Stat(cfg.StaticDir); err == nil && st.IsDir() {
			app.Static("/", cfg.StaticDir)
		}
	}
}
