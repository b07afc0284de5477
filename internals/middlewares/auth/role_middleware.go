package auth

import (
	"github.com/gofiber/fiber/v2"

	helperAuth "sirumah_backend/internals/helpers/auth"
	"sirumah_backend/internals/policy"
)

// OnlyRoles menolak (403) actor di luar roles. Dipasang setelah AuthJWT.
func OnlyRoles(customForbiddenMessage string, roles ...policy.Role) fiber.Handler {
	if customForbiddenMessage == "" {
		customForbiddenMessage = "Anda tidak memiliki akses untuk tindakan ini."
	}
	return func(c *fiber.Ctx) error {
		a, err := helperAuth.GetActor(c)
		if err != nil {
			return err
		}
		for _, allowed := range roles {
			if a.Role == allowed {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, customForbiddenMessage)
	}
}
