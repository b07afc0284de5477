// file: internals/helpers/json_response.go
package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"sirumah_backend/internals/helpers/apperror"
)

/* ===============================
   Error helpers (standard shape)
=================================*/

type ErrorResponse struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	ErrorCode string              `json:"error_code,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
}

func statusToErrorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	default:
		if status >= 500 {
			return "INTERNAL_ERROR"
		}
		return "ERROR"
	}
}

// JsonError: error generic (bukan validasi)
func JsonError(c *fiber.Ctx, status int, message string) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if strings.TrimSpace(message) == "" {
		message = defaultMessage(status)
	}
	return c.Status(status).JSON(ErrorResponse{
		Success:   false,
		Message:   message,
		ErrorCode: statusToErrorCode(status),
	})
}

// JsonValidationError: khusus error validasi (422)
func JsonValidationError(c *fiber.Ctx, fieldErrors map[string][]string) error {
	if fieldErrors == nil {
		fieldErrors = map[string][]string{}
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
		Success:   false,
		Message:   "Data yang diberikan tidak valid.",
		ErrorCode: "VALIDATION_ERROR",
		Errors:    fieldErrors,
	})
}

// JsonFromError memetakan error service ke response. Error yang tidak
// dikenal dicatat dan dijawab 500 tanpa membocorkan detail.
func JsonFromError(c *fiber.Ctx, log *zap.Logger, err error) error {
	var (
		ve *apperror.ValidationError
		ae *apperror.AuthorizationError
		ce *apperror.ConflictError
		fe *fiber.Error
	)
	switch {
	case errors.As(err, &ve):
		return JsonValidationError(c, ve.Fields)
	case errors.As(err, &ae):
		if len(ae.Fields) > 0 {
			resp := ErrorResponse{
				Success:   false,
				Message:   "Anda tidak berwenang mengubah field tersebut.",
				ErrorCode: "FORBIDDEN",
				Errors:    map[string][]string{},
			}
			for _, f := range ae.Fields {
				resp.Errors[f] = []string{"Field ini tidak boleh diubah."}
			}
			return c.Status(fiber.StatusForbidden).JSON(resp)
		}
		return JsonError(c, fiber.StatusForbidden, "Anda tidak memiliki akses untuk tindakan ini.")
	case apperror.IsNotFound(err):
		return JsonError(c, fiber.StatusNotFound, "Data tidak ditemukan.")
	case errors.As(err, &ce):
		return JsonError(c, fiber.StatusConflict, ce.Message)
	case errors.As(err, &fe):
		return JsonError(c, fe.Code, fe.Message)
	}
	if log != nil {
		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Any("request_id", c.Locals("reqid")),
			zap.Error(err),
		)
	}
	return JsonError(c, fiber.StatusInternalServerError, "")
}

func defaultMessage(status int) string {
	switch status {
	case fiber.StatusUnauthorized:
		return "Silakan login terlebih dahulu."
	case fiber.StatusForbidden:
		return "Anda tidak memiliki akses untuk tindakan ini."
	case fiber.StatusNotFound:
		return "Data tidak ditemukan."
	}
	if status >= 500 {
		return "Terjadi kesalahan pada server."
	}
	return "Permintaan tidak valid."
}

/* ===============================
   JSON responses (standard success)
=================================*/

// JsonPage: list ala paginator (data + meta halaman + stats + filters)
func JsonPage(c *fiber.Ctx, message string, data any, meta PageMeta, extras fiber.Map) error {
	if strings.TrimSpace(message) == "" {
		message = "ok"
	}
	body := fiber.Map{
		"success":      true,
		"message":      message,
		"data":         data,
		"current_page": meta.CurrentPage,
		"last_page":    meta.LastPage,
		"per_page":     meta.PerPage,
		"total":        meta.Total,
		"from":         meta.From,
		"to":           meta.To,
	}
	for k, v := range extras {
		body[k] = v
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

// JsonOK: response sukses generic (GET detail, dsb)
func JsonOK(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "ok"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// JsonCreated: response sukses create (POST). location boleh kosong.
func JsonCreated(c *fiber.Ctx, message, location string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "created"
	}
	if location != "" {
		c.Location(location)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// JsonUpdated: response sukses update (PATCH/PUT)
func JsonUpdated(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "updated"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// JsonDeleted: response sukses delete (DELETE)
func JsonDeleted(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "deleted"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}
