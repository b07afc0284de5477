package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	database "sirumah_backend/internals/databases"
)

// BaseRoutes: endpoint tanpa auth (health + metrics).
func BaseRoutes(app *fiber.App, db *gorm.DB, log *zap.Logger) {
	app.Get("/health-check", func(c *fiber.Ctx) error {
		now := time.Now().Format(time.RFC3339)
		if err := database.Ping(db); err != nil {
			log.Warn("health check: database down", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":    "error",
				"database":  "Database connection error",
				"timestamp": now,
			})
		}
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": now,
			"uptime":    time.Since(startTime).Seconds(),
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
