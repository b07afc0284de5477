package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"sirumah_backend/internals/constants"
	"sirumah_backend/internals/features/users/user/dto"
	"sirumah_backend/internals/features/users/user/service"
	helper "sirumah_backend/internals/helpers"
	"sirumah_backend/internals/helpers/apperror"
	helperAuth "sirumah_backend/internals/helpers/auth"
)

const usersPerPage = 15

type UserController struct {
	Svc *service.Service
	Log *zap.Logger
}

func NewUserController(svc *service.Service, log *zap.Logger) *UserController {
	return &UserController{Svc: svc, Log: log}
}

// GET /api/users?search=&role=
func (uc *UserController) List(c *fiber.Ctx) error {
	a, err := helperAuth.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, uc.Log, err)
	}
	p := helper.ResolvePaging(c, usersPerPage, constants.MaxPerPage)
	rows, total, err := uc.Svc.ListUsers(c.UserContext(), a, c.Query("search"), c.Query("role"), p)
	if err != nil {
		return helper.JsonFromError(c, uc.Log, err)
	}
	return helper.JsonPage(c, "", dto.FromUserModels(rows), helper.BuildPageMeta(total, p, len(rows)), fiber.Map{
		"filters": fiber.Map{"search": c.Query("search"), "role": c.Query("role")},
	})
}

// DELETE /api/users/:id
func (uc *UserController) Delete(c *fiber.Ctx) error {
	a, err := helperAuth.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, uc.Log, err)
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonFromError(c, uc.Log, apperror.NewValidation("id", constants.InvalidID("user")))
	}
	if err := uc.Svc.DeleteUser(c.UserContext(), a, id); err != nil {
		return helper.JsonFromError(c, uc.Log, err)
	}
	c.Location("/api/users")
	return helper.JsonDeleted(c, constants.MsgUserDeleted, fiber.Map{"id": id})
}
