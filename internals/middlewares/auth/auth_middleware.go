// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	helperAuth "sirumah_backend/internals/helpers/auth"
	"sirumah_backend/internals/policy"
)

type AuthJWTOpts struct {
	Secret              string
	DB                  *gorm.DB
	Log                 *zap.Logger
	AllowCookieFallback bool // pakai cookie access_token jika tidak ada Bearer
}

// AuthJWT memverifikasi token lalu mengisi Actor di locals. Role diambil dari
// tabel users supaya perubahan role/nonaktif berlaku tanpa menunggu token kedaluwarsa.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}
	log := o.Log
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *fiber.Ctx) error {
		// 1) Ambil Authorization (atau cookie)
		tokenString, err := extractBearerToken(c, o.AllowCookieFallback)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Silakan login terlebih dahulu.")
		}

		// 2) Parse & verifikasi algoritma
		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid signing method")
			}
			return []byte(secret), nil
		}); err != nil {
			log.Debug("token parse failed", zap.Error(err))
			return fiber.NewError(fiber.StatusUnauthorized, "Token tidak valid.")
		}

		// 3) Validasi exp
		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Token kedaluwarsa.")
		}

		// 4) user_id & user aktif
		userID, err := extractUserID(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Token tidak valid.")
		}
		role, err := loadActiveUser(c, o.DB, userID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return fiber.NewError(fiber.StatusUnauthorized, "User tidak ditemukan.")
		case errors.Is(err, errUserInactive):
			return fiber.NewError(fiber.StatusForbidden, "Akun Anda telah dinonaktifkan.")
		case err != nil:
			log.Error("load user failed", zap.String("user_id", userID.String()), zap.Error(err))
			return err
		}

		// 5) Simpan actor ke locals
		helperAuth.SetActor(c, policy.Actor{ID: userID, Role: role})
		storeBasicClaimsToLocals(c, claims)
		return c.Next()
	}
}
