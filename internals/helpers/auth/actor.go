// file: internals/helpers/auth/actor.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sirumah_backend/internals/policy"
)

// Nama locals yang diisi middleware AuthJWT
const (
	LocUserID   = "user_id"
	LocUserRole = "userRole"
	LocActor    = "actor"
)

// SetActor menyimpan identitas hasil verifikasi JWT ke locals.
func SetActor(c *fiber.Ctx, a policy.Actor) {
	c.Locals(LocActor, a)
	c.Locals(LocUserID, a.ID.String())
	c.Locals(LocUserRole, a.Role.String())
}

// GetActor: 401 kalau belum login atau locals rusak.
func GetActor(c *fiber.Ctx) (policy.Actor, error) {
	if a, ok := c.Locals(LocActor).(policy.Actor); ok && a.ID != uuid.Nil && a.Role.Valid() {
		return a, nil
	}

	// fallback: locals terpisah (mis. diisi middleware lain)
	idStr, _ := c.Locals(LocUserID).(string)
	roleStr, _ := c.Locals(LocUserRole).(string)
	id, err := uuid.Parse(strings.TrimSpace(idStr))
	if err != nil || id == uuid.Nil {
		return policy.Actor{}, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}
	role, err := policy.ParseRole(roleStr)
	if err != nil {
		return policy.Actor{}, fiber.NewError(fiber.StatusUnauthorized, "Role tidak dikenal")
	}
	return policy.Actor{ID: id, Role: role}, nil
}
