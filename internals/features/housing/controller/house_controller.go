// file: internals/features/housing/controller/house_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"sirumah_backend/internals/constants"
	"sirumah_backend/internals/features/housing/dto"
	"sirumah_backend/internals/features/housing/query"
	"sirumah_backend/internals/features/housing/service"
	helper "sirumah_backend/internals/helpers"
	helperAuth "sirumah_backend/internals/helpers/auth"
	"sirumah_backend/internals/policy"
)

type HouseController struct{ base }

func NewHouseController(svc *service.Service, log *zap.Logger) *HouseController {
	return &HouseController{base{Svc: svc, Log: log}}
}

// GET /api/houses
func (ctl *HouseController) List(c *fiber.Ctx) error {
	a, err := helperAuth.GetActor(c)
	if err != nil {
		return ctl.fail(c, err)
	}
	f := filtersFrom(c, query.Houses)
	p := paging(c, query.Houses)

	rows, total, err := ctl.Svc.ListHouses(c.UserContext(), a, f, p)
	if err != nil {
		return ctl.fail(c, err)
	}
	stats, err := ctl.Svc.HouseStats(c.UserContext(), a, f)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonPage(c, "", dto.FromHouseModels(rows), helper.BuildPageMeta(total, p, len(rows)), fiber.Map{
		"stats":   stats,
		"filters": f.Echo(),
	})
}

// GET /api/houses/create
func (ctl *HouseController) CreateForm(c *fiber.Ctx) error {
	a, err := helperAuth.GetActor(c)
	if err != nil {
		return ctl.fail(c, err)
	}
	fd, err := ctl.Svc.HouseForm(c.UserContext(), a, policy.ActionCreate)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "", fd)
}

// POST /api/houses
func (ctl *HouseController) Create(c *fiber.Ctx) error {
	a, err := helperAuth.GetActor(c)
	if err != nil {
		return ctl.fail(c, err)
	}
	var in dto.HouseInput
	fields, err := dto.DecodeCreate(c.Body(), &in)
	if err != nil {
		return ctl.fail(c, err)
	}
	h, err := ctl.Svc.CreateHouse(c.UserContext(), a, in, fields)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonCreated(c, constants.MsgHouseCreated, location("houses", h.ID), dto.FromHouseModel(h))
}

// GET /api/houses/:id
func (ctl *HouseController) Show(c *fiber.Ctx) error {
	a, id, err := actorAndID(c, "rumah")
	if err != nil {
		return ctl.fail(c, err)
	}
	d, err := ctl.Svc.GetHouse(c.UserContext(), a, id)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "", fiber.Map{
		"house":             dto.FromHouseModel(d.House),
		"recent_payments":   dto.FromPaymentModels(d.RecentPayments),
		"recent_complaints": dto.FromComplaintModels(d.RecentComplaints),
	})
}

// GET /api/houses/:id/edit
func (ctl *HouseController) EditForm(c *fiber.Ctx) error {
	a, id, err := actorAndID(c, "rumah")
	if err != nil {
		return ctl.fail(c, err)
	}
	fd, err := ctl.Svc.HouseForm(c.UserContext(), a, policy.ActionUpdate)
	if err != nil {
		return ctl.fail(c, err)
	}
	d, err := ctl.Svc.GetHouse(c.UserContext(), a, id)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "", fiber.Map{"house": dto.FromHouseModel(d.House), "form": fd})
}

// PUT|PATCH /api/houses/:id
func (ctl *HouseController) Update(c *fiber.Ctx) error {
	a, id, err := actorAndID(c, "rumah")
	if err != nil {
		return ctl.fail(c, err)
	}
	var patch dto.HousePatch
	fields, err := dto.DecodePatch(c.Body(), &patch)
	if err != nil {
		return ctl.fail(c, err)
	}
	h, err := ctl.Svc.UpdateHouse(c.UserContext(), a, id, patch, fields)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonUpdated(c, constants.MsgHouseUpdated, dto.FromHouseModel(h))
}

// DELETE /api/houses/:id
func (ctl *HouseController) Delete(c *fiber.Ctx) error {
	a, id, err := actorAndID(c, "rumah")
	if err != nil {
		return ctl.fail(c, err)
	}
	if err := ctl.Svc.DeleteHouse(c.UserContext(), a, id); err != nil {
		return ctl.fail(c, err)
	}
	c.Location("/api/houses")
	return helper.JsonDeleted(c, constants.MsgHouseDeleted, fiber.Map{"id": id})
}
