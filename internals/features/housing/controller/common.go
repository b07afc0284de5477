// file: internals/features/housing/controller/common.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"sirumah_backend/internals/constants"
	"sirumah_backend/internals/features/housing/query"
	"sirumah_backend/internals/features/housing/service"
	helper "sirumah_backend/internals/helpers"
	"sirumah_backend/internals/helpers/apperror"
	helperAuth "sirumah_backend/internals/helpers/auth"
	"sirumah_backend/internals/policy"
)

// base: dependensi bersama semua controller perumahan.
type base struct {
	Svc *service.Service
	Log *zap.Logger
}

func (b base) fail(c *fiber.Ctx, err error) error {
	return helper.JsonFromError(c, b.Log, err)
}

// actorAndID: actor dari JWT + :id dari path.
func actorAndID(c *fiber.Ctx, resource string) (policy.Actor, uuid.UUID, error) {
	a, err := helperAuth.GetActor(c)
	if err != nil {
		return a, uuid.Nil, err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return a, uuid.Nil, apperror.NewValidation("id", constants.InvalidID(resource))
	}
	return a, id, nil
}

// filtersFrom membaca query string sesuai filter yang didukung target.
func filtersFrom(c *fiber.Ctx, t query.Target) query.Filters {
	f := query.Filters{
		Equals: map[string]string{},
		Bools:  map[string]string{},
		Search: c.Query("search"),
	}
	for _, k := range t.EqualFilters {
		f.Equals[k] = c.Query(k)
	}
	for _, k := range t.BoolFilters {
		f.Bools[k] = c.Query(k)
	}
	if t.DateColumn != "" {
		f.DateFrom = c.Query("date_from")
		f.DateTo = c.Query("date_to")
	}
	return f
}

func paging(c *fiber.Ctx, t query.Target) helper.Paging {
	return helper.ResolvePaging(c, t.PerPage, constants.MaxPerPage)
}

func location(entity string, id uuid.UUID) string {
	return "/api/" + entity + "/" + id.String()
}
