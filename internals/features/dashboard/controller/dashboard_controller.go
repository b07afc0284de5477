package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"sirumah_backend/internals/features/dashboard/service"
	helper "sirumah_backend/internals/helpers"
	helperAuth "sirumah_backend/internals/helpers/auth"
)

type DashboardController struct {
	Svc *service.Service
	Log *zap.Logger
}

func NewDashboardController(svc *service.Service, log *zap.Logger) *DashboardController {
	return &DashboardController{Svc: svc, Log: log}
}

// GET /api/dashboard
func (ctl *DashboardController) Show(c *fiber.Ctx) error {
	a, err := helperAuth.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, ctl.Log, err)
	}
	d, err := ctl.Svc.Build(c.UserContext(), a)
	if err != nil {
		return helper.JsonFromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, "", d)
}
