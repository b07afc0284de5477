// file: internals/features/housing/route/housing_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"sirumah_backend/internals/features/housing/controller"
	"sirumah_backend/internals/features/housing/service"
)

// resource: handler standar satu entitas (index/create/store/show/edit/update/destroy).
type resource interface {
	List(*fiber.Ctx) error
	CreateForm(*fiber.Ctx) error
	Create(*fiber.Ctx) error
	Show(*fiber.Ctx) error
	EditForm(*fiber.Ctx) error
	Update(*fiber.Ctx) error
	Delete(*fiber.Ctx) error
}

func mount(g fiber.Router, ctl resource) {
	g.Get("/", ctl.List)
	g.Get("/create", ctl.CreateForm)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.Show)
	g.Get("/:id/edit", ctl.EditForm)
	g.Put("/:id", ctl.Update)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}

// HousingRoutes dipasang di group /api yang sudah lewat AuthJWT.
func HousingRoutes(r fiber.Router, svc *service.Service, log *zap.Logger) {
	mount(r.Group("/houses"), controller.NewHouseController(svc, log))
	mount(r.Group("/residents"), controller.NewResidentController(svc, log))

	payments := controller.NewPaymentController(svc, log)
	pg := r.Group("/payments")
	pg.Get("/export", payments.Export) // sebelum /:id
	mount(pg, payments)

	mount(r.Group("/complaints"), controller.NewComplaintController(svc, log))
}
