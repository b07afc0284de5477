// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsMiddleware: origins dari CORS_ORIGINS. Tanpa origin eksplisit,
// wildcard tanpa credentials (fiber menolak kombinasi * + credentials).
func CorsMiddleware(origins []string) fiber.Handler {
	allow, creds := strings.Join(origins, ", "), true
	if allow == "" {
		allow, creds = "*", false
	}
	return cors.New(cors.Config{
		AllowOrigins:     allow,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders:    "Location, X-Request-ID, X-Total-Rows, Content-Disposition",
		AllowCredentials: creds,
	})
}
