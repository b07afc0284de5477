package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"sirumah_backend/internals/constants"
	"sirumah_backend/internals/features/users/auth/service"
	"sirumah_backend/internals/features/users/user/dto"
	userService "sirumah_backend/internals/features/users/user/service"
	helper "sirumah_backend/internals/helpers"
	helperAuth "sirumah_backend/internals/helpers/auth"
)

type AuthController struct {
	Auth  *service.Service
	Users *userService.Service
	Log   *zap.Logger
}

func NewAuthController(auth *service.Service, users *userService.Service, log *zap.Logger) *AuthController {
	return &AuthController{Auth: auth, Users: users, Log: log}
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format input tidak valid.")
	}
	res, err := ac.Auth.Login(c.UserContext(), req)
	if err != nil {
		return helper.JsonFromError(c, ac.Log, err)
	}
	setAuthCookie(c, res.AccessToken, res.ExpiresAt)
	return helper.JsonOK(c, constants.MsgLoginOK, res)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	a, err := helperAuth.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, ac.Log, err)
	}
	u, err := ac.Users.Me(c.UserContext(), a)
	if err != nil {
		return helper.JsonFromError(c, ac.Log, err)
	}
	return helper.JsonOK(c, "", dto.FromUserModel(u))
}
