package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	userController "sirumah_backend/internals/features/users/user/controller"
	"sirumah_backend/internals/features/users/user/service"
	authMiddleware "sirumah_backend/internals/middlewares/auth"
	"sirumah_backend/internals/policy"
)

// UserAdminRoutes: /api/users khusus administrator.
func UserAdminRoutes(r fiber.Router, svc *service.Service, log *zap.Logger) {
	ctl := userController.NewUserController(svc, log)
	onlyAdmin := authMiddleware.OnlyRoles("Hanya administrator yang dapat mengelola user.", policy.Administrator)

	r.Get("/users", onlyAdmin, ctl.List)
	r.Delete("/users/:id", onlyAdmin, ctl.Delete)
}
