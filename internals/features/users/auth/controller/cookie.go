package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// cookie fallback untuk frontend yang tidak menyimpan bearer token
func setAuthCookie(c *fiber.Ctx, accessToken string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  expires,
	})
}
