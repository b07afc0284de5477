// file: internals/features/housing/controller/payment_controller.go
package controller

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"sirumah_backend/internals/constants"
	"sirumah_backend/internals/features/housing/dto"
	"sirumah_backend/internals/features/housing/query"
	"sirumah_backend/internals/features/housing/service"
	helper "sirumah_backend/internals/helpers"
	helperAuth "sirumah_backend/internals/helpers/auth"
	"sirumah_backend/internals/helpers/dbtime"
	"sirumah_backend/internals/policy"
)

const xlsxMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PaymentController struct{ base }

func NewPaymentController(svc *service.Service, log *zap.Logger) *PaymentController {
	return &PaymentController{base{Svc: svc, Log: log}}
}

// GET /api/payments
func (ctl *PaymentController) List(c *fiber.Ctx) error {
	a, err := helperAuth.GetActor(c)
	if err != nil {
		return ctl.fail(c, err)
	}
	f := filtersFrom(c, query.Payments)
	p := paging(c, query.Payments)

	rows, total, err := ctl.Svc.ListPayments(c.UserContext(), a, f, p)
	if err != nil {
		return ctl.fail(c, err)
	}
	stats, err := ctl.Svc.PaymentStats(c.UserContext(), a, f)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonPage(c, "", dto.FromPaymentModels(rows), helper.BuildPageMeta(total, p, len(rows)), fiber.Map{
		"stats":   stats,
		"filters": f.Echo(),
	})
}

// GET /api/payments/export (filter sama dengan list)
func (ctl *PaymentController) Export(c *fiber.Ctx) error {
	a, err := helperAuth.GetActor(c)
	if err != nil {
		return ctl.fail(c, err)
	}
	var buf bytes.Buffer
	n, err := ctl.Svc.ExportPayments(c.UserContext(), a, filtersFrom(c, query.Payments), &buf)
	if err != nil {
		return ctl.fail(c, err)
	}
	name := fmt.Sprintf("pembayaran-%s.xlsx", dbtime.Today(ctl.Svc.Clock).Format(dbtime.DateLayout))
	c.Set(fiber.HeaderContentType, xlsxMime)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Set("X-Total-Rows", fmt.Sprint(n))
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}

// GET /api/payments/create
func (ctl *PaymentController) CreateForm(c *fiber.Ctx) error {
	a, err := helperAuth.GetActor(c)
	if err != nil {
		return ctl.fail(c, err)
	}
	fd, err := ctl.Svc.PaymentForm(c.UserContext(), a, policy.ActionCreate)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "", fd)
}

// POST /api/payments
func (ctl *PaymentController) Create(c *fiber.Ctx) error {
	a, err := helperAuth.GetActor(c)
	if err != nil {
		return ctl.fail(c, err)
	}
	var in dto.PaymentInput
	fields, err := dto.DecodeCreate(c.Body(), &in)
	if err != nil {
		return ctl.fail(c, err)
	}
	p, err := ctl.Svc.CreatePayment(c.UserContext(), a, in, fields)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonCreated(c, constants.MsgPaymentCreated, location("payments", p.ID), dto.FromPaymentModel(p))
}

// GET /api/payments/:id
func (ctl *PaymentController) Show(c *fiber.Ctx) error {
	a, id, err := actorAndID(c, "pembayaran")
	if err != nil {
		return ctl.fail(c, err)
	}
	p, err := ctl.Svc.GetPayment(c.UserContext(), a, id)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "", dto.FromPaymentModel(p))
}

// GET /api/payments/:id/edit
func (ctl *PaymentController) EditForm(c *fiber.Ctx) error {
	a, id, err := actorAndID(c, "pembayaran")
	if err != nil {
		return ctl.fail(c, err)
	}
	fd, err := ctl.Svc.PaymentForm(c.UserContext(), a, policy.ActionUpdate)
	if err != nil {
		return ctl.fail(c, err)
	}
	p, err := ctl.Svc.GetPayment(c.UserContext(), a, id)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "", fiber.Map{"payment": dto.FromPaymentModel(p), "form": fd})
}

// PUT|PATCH /api/payments/:id
func (ctl *PaymentController) Update(c *fiber.Ctx) error {
	a, id, err := actorAndID(c, "pembayaran")
	if err != nil {
		return ctl.fail(c, err)
	}
	var patch dto.PaymentPatch
	fields, err := dto.DecodePatch(c.Body(), &patch)
	if err != nil {
		return ctl.fail(c, err)
	}
	p, err := ctl.Svc.UpdatePayment(c.UserContext(), a, id, patch, fields)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonUpdated(c, constants.MsgPaymentUpdated, dto.FromPaymentModel(p))
}

// DELETE /api/payments/:id
func (ctl *PaymentController) Delete(c *fiber.Ctx) error {
	a, id, err := actorAndID(c, "pembayaran")
	if err != nil {
		return ctl.fail(c, err)
	}
	if err := ctl.Svc.DeletePayment(c.UserContext(), a, id); err != nil {
		return ctl.fail(c, err)
	}
	c.Location("/api/payments")
	return helper.JsonDeleted(c, constants.MsgPaymentDeleted, fiber.Map{"id": id})
}
