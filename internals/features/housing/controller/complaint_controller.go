// file: internals/features/housing/controller/complaint_controller.go
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

type ComplaintController struct{ base }

func NewComplaintController(svc *service.Service, log *zap.Logger) *ComplaintController {
	return &ComplaintController{base{Svc: svc, Log: log}}
}

// GET /api/complaints
func (ctl *ComplaintController) List(c *fiber.Ctx) error {
	a, err := helperAuth.GetActor(c)
	if err != nil {
		return ctl.fail(c, err)
	}
	f := filtersFrom(c, query.Complaints)
	p := paging(c, query.Complaints)

	rows, total, err := ctl.Svc.ListComplaints(c.UserContext(), a, f, p)
	if err != nil {
		return ctl.fail(c, err)
	}
	stats, err := ctl.Svc.ComplaintStats(c.UserContext(), a, f)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonPage(c, "", dto.FromComplaintModels(rows), helper.BuildPageMeta(total, p, len(rows)), fiber.Map{
		"stats":   stats,
		"filters": f.Echo(),
	})
}

// GET /api/complaints/create
func (ctl *ComplaintController) CreateForm(c *fiber.Ctx) error {
	a, err := helperAuth.GetActor(c)
	if err != nil {
		return ctl.fail(c, err)
	}
	fd, err := ctl.Svc.ComplaintForm(c.UserContext(), a, policy.ActionCreate)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "", fd)
}

// POST /api/complaints (reported_by = actor)
func (ctl *ComplaintController) Create(c *fiber.Ctx) error {
	a, err := helperAuth.GetActor(c)
	if err != nil {
		return ctl.fail(c, err)
	}
	var in dto.ComplaintInput
	fields, err := dto.DecodeCreate(c.Body(), &in)
	if err != nil {
		return ctl.fail(c, err)
	}
	cm, err := ctl.Svc.CreateComplaint(c.UserContext(), a, in, fields)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonCreated(c, constants.MsgComplaintCreated, location("complaints", cm.ID), dto.FromComplaintModel(cm))
}

// GET /api/complaints/:id
func (ctl *ComplaintController) Show(c *fiber.Ctx) error {
	a, id, err := actorAndID(c, "keluhan")
	if err != nil {
		return ctl.fail(c, err)
	}
	cm, err := ctl.Svc.GetComplaint(c.UserContext(), a, id)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "", dto.FromComplaintModel(cm))
}

// GET /api/complaints/:id/edit
func (ctl *ComplaintController) EditForm(c *fiber.Ctx) error {
	a, id, err := actorAndID(c, "keluhan")
	if err != nil {
		return ctl.fail(c, err)
	}
	cm, fd, err := ctl.Svc.ComplaintForEdit(c.UserContext(), a, id)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "", fiber.Map{"complaint": dto.FromComplaintModel(cm), "form": fd})
}

// PUT|PATCH /api/complaints/:id
func (ctl *ComplaintController) Update(c *fiber.Ctx) error {
	a, id, err := actorAndID(c, "keluhan")
	if err != nil {
		return ctl.fail(c, err)
	}
	var patch dto.ComplaintPatch
	fields, err := dto.DecodePatch(c.Body(), &patch)
	if err != nil {
		return ctl.fail(c, err)
	}
	cm, err := ctl.Svc.UpdateComplaint(c.UserContext(), a, id, patch, fields)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonUpdated(c, constants.MsgComplaintUpdated, dto.FromComplaintModel(cm))
}

// DELETE /api/complaints/:id
func (ctl *ComplaintController) Delete(c *fiber.Ctx) error {
	a, id, err := actorAndID(c, "keluhan")
	if err != nil {
		return ctl.fail(c, err)
	}
	if err := ctl.Svc.DeleteComplaint(c.UserContext(), a, id); err != nil {
		return ctl.fail(c, err)
	}
	c.Location("/api/complaints")
	return helper.JsonDeleted(c, constants.MsgComplaintDeleted, fiber.Map{"id": id})
}
