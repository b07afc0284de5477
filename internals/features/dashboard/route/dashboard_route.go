package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"sirumah_backend/internals/features/dashboard/controller"
	"sirumah_backend/internals/features/dashboard/service"
)

func DashboardRoutes(r fiber.Router, svc *service.Service, log *zap.Logger) {
	ctl := controller.NewDashboardController(svc, log)
	r.Get("/dashboard", ctl.Show)
}
