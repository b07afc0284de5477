// file: internals/features/users/auth/service/auth_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sirumah_backend/internals/constants"
	"sirumah_backend/internals/features/users/user/dto"
	userModel "sirumah_backend/internals/features/users/user/model"
	"sirumah_backend/internals/helpers/dbtime"
)

type Service struct {
	DB     *gorm.DB
	Secret []byte
	TTL    time.Duration
	Clock  dbtime.Clock
	Log    *zap.Logger
}

func New(db *gorm.DB, secret string, ttl time.Duration, clock dbtime.Clock, log *zap.Logger) *Service {
	if clock == nil {
		clock = dbtime.SystemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{DB: db, Secret: []byte(secret), TTL: ttl, Clock: clock, Log: log}
}

/* ==========================
   LOGIN (email + password)
========================== */

func (s *Service) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return dto.LoginResponse{}, err
	}

	var u userModel.UserModel
	err := s.DB.WithContext(ctx).Where("email = ?", req.Email).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.LoginResponse{}, fiber.NewError(fiber.StatusUnauthorized, constants.ErrInvalidLogin)
	}
	if err != nil {
		return dto.LoginResponse{}, err
	}
	if err := CheckPasswordHash(u.Password, req.Password); err != nil {
		s.Log.Info("login failed", zap.String("email", req.Email))
		return dto.LoginResponse{}, fiber.NewError(fiber.StatusUnauthorized, constants.ErrInvalidLogin)
	}
	if !u.IsActive {
		return dto.LoginResponse{}, fiber.NewError(fiber.StatusForbidden, constants.ErrUserInactive)
	}

	tok, exp, err := s.IssueToken(u)
	if err != nil {
		return dto.LoginResponse{}, err
	}
	s.Log.Info("login ok", zap.String("user_id", u.ID.String()), zap.String("role", u.Role.String()))
	return dto.LoginResponse{
		AccessToken: tok,
		TokenType:   "Bearer",
		ExpiresAt:   exp,
		User:        dto.FromUserModel(u),
	}, nil
}
