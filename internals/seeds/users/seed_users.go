package users

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authService "sirumah_backend/internals/features/users/auth/service"
	"sirumah_backend/internals/features/users/user/model"
	"sirumah_backend/internals/policy"
)

//go:embed data_users.json
var DataUsers []byte

type UserSeed struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
}

// SeedUsersFromJSON: user yang email-nya sudah ada dilewati. Mengembalikan
// semua user dari data (baru maupun lama).
func SeedUsersFromJSON(db *gorm.DB, data []byte, log *zap.Logger) ([]model.UserModel, error) {
	var inputs []UserSeed
	if err := sonic.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("decode data user: %w", err)
	}

	out := make([]model.UserModel, 0, len(inputs))
	for _, in := range inputs {
		var existing model.UserModel
		err := db.Where("email = ?", in.Email).Take(&existing).Error
		if err == nil {
			log.Info("user sudah ada, dilewati", zap.String("email", in.Email))
			out = append(out, existing)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		role, err := policy.ParseRole(in.Role)
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", in.Email, err)
		}
		hashed, err := authService.HashPassword(in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password %s: %w", in.Email, err)
		}
		phone := in.Phone
		u := model.UserModel{
			Name:     in.Name,
			Email:    in.Email,
			Password: hashed,
			Role:     role,
			Phone:    &phone,
			IsActive: true,
		}
		if err := db.Create(&u).Error; err != nil {
			return nil, fmt.Errorf("insert user %s: %w", in.Email, err)
		}
		log.Info("user dibuat", zap.String("email", in.Email), zap.String("role", in.Role))
		out = append(out, u)
	}
	return out, nil
}
