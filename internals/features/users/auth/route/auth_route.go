// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"sirumah_backend/internals/features/users/auth/controller"
	"sirumah_backend/internals/features/users/auth/service"
	userService "sirumah_backend/internals/features/users/user/service"
	rateLimiter "sirumah_backend/internals/middlewares"
)

// AuthPublicRoutes: /api/auth/login (tanpa JWT)
func AuthPublicRoutes(r fiber.Router, auth *service.Service, users *userService.Service, log *zap.Logger) {
	ctl := controller.NewAuthController(auth, users, log)
	r.Post("/auth/login", rateLimiter.LoginRateLimiter(), ctl.Login)
}

// AuthPrivateRoutes: /api/auth/me (di belakang AuthJWT)
func AuthPrivateRoutes(r fiber.Router, auth *service.Service, users *userService.Service, log *zap.Logger) {
	ctl := controller.NewAuthController(auth, users, log)
	r.Get("/auth/me", ctl.Me)
}
