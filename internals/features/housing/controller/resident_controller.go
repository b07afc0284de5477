// file: internals/features/housing/controller/resident_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"sirumah_backend/internals/constants"
	"sirumah_backend/internals/features/housing/dto"
	"sirumah_backend/internals/features/housing/query"
	"sirumah_backend/internals/features/housing/service"
	helper "sirumah_backend/internals/helpers"
	helperAuth "sirumah_backend/internals/helpers/auth"
	"sirumah_backend/internals/policy"
)

type ResidentController struct{ base }

func NewResidentController(svc *service.Service, log *zap.Logger) *ResidentController {
	return &ResidentController{base{Svc: svc, Log: log}}
}

// GET /api/residents
func (ctl *ResidentController) List(c *fiber.Ctx) error {
	a, err := helperAuth.GetActor(c)
	if err != nil {
		return ctl.fail(c, err)
	}
	f := filtersFrom(c, query.Residents)
	p := paging(c, query.Residents)

	rows, total, err := ctl.Svc.ListResidents(c.UserContext(), a, f, p)
	if err != nil {
		return ctl.fail(c, err)
	}
	stats, err := ctl.Svc.ResidentStats(c.UserContext(), a, f)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonPage(c, "", dto.FromResidentModels(rows), helper.BuildPageMeta(total, p, len(rows)), fiber.Map{
		"stats":   stats,
		"filters": f.Echo(),
	})
}

// GET /api/residents/create?house_id=
func (ctl *ResidentController) CreateForm(c *fiber.Ctx) error {
	a, err := helperAuth.GetActor(c)
	if err != nil {
		return ctl.fail(c, err)
	}
	var selected *uuid.UUID
	if id, err := uuid.Parse(strings.TrimSpace(c.Query("house_id"))); err == nil {
		selected = &id
	}
	fd, err := ctl.Svc.ResidentForm(c.UserContext(), a, policy.ActionCreate, selected)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "", fd)
}

// POST /api/residents
func (ctl *ResidentController) Create(c *fiber.Ctx) error {
	a, err := helperAuth.GetActor(c)
	if err != nil {
		return ctl.fail(c, err)
	}
	var in dto.ResidentInput
	fields, err := dto.DecodeCreate(c.Body(), &in)
	if err != nil {
		return ctl.fail(c, err)
	}
	r, err := ctl.Svc.CreateResident(c.UserContext(), a, in, fields)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonCreated(c, constants.MsgResidentCreated, location("residents", r.ID), dto.FromResidentModel(r))
}

// GET /api/residents/:id
func (ctl *ResidentController) Show(c *fiber.Ctx) error {
	a, id, err := actorAndID(c, "penghuni")
	if err != nil {
		return ctl.fail(c, err)
	}
	r, err := ctl.Svc.GetResident(c.UserContext(), a, id)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "", dto.FromResidentModel(r))
}

// GET /api/residents/:id/edit
func (ctl *ResidentController) EditForm(c *fiber.Ctx) error {
	a, id, err := actorAndID(c, "penghuni")
	if err != nil {
		return ctl.fail(c, err)
	}
	r, err := ctl.Svc.GetResident(c.UserContext(), a, id)
	if err != nil {
		return ctl.fail(c, err)
	}
	fd, err := ctl.Svc.ResidentForm(c.UserContext(), a, policy.ActionUpdate, &r.HouseID)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "", fiber.Map{"resident": dto.FromResidentModel(r), "form": fd})
}

// PUT|PATCH /api/residents/:id
func (ctl *ResidentController) Update(c *fiber.Ctx) error {
	a, id, err := actorAndID(c, "penghuni")
	if err != nil {
		return ctl.fail(c, err)
	}
	var patch dto.ResidentPatch
	fields, err := dto.DecodePatch(c.Body(), &patch)
	if err != nil {
		return ctl.fail(c, err)
	}
	r, err := ctl.Svc.UpdateResident(c.UserContext(), a, id, patch, fields)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonUpdated(c, constants.MsgResidentUpdated, dto.FromResidentModel(r))
}

// DELETE /api/residents/:id
func (ctl *ResidentController) Delete(c *fiber.Ctx) error {
	a, id, err := actorAndID(c, "penghuni")
	if err != nil {
		return ctl.fail(c, err)
	}
	if err := ctl.Svc.DeleteResident(c.UserContext(), a, id); err != nil {
		return ctl.fail(c, err)
	}
	c.Location("/api/residents")
	return helper.JsonDeleted(c, constants.MsgResidentDeleted, fiber.Map{"id": id})
}
