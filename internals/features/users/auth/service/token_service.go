// file: internals/features/users/auth/service/token_service.go
package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	userModel "sirumah_backend/internals/features/users/user/model"
)

var ErrMissingSecret = errors.New("JWT_SECRET kosong")

/* ==========================
   ACCESS TOKEN
========================== */

// buildAccessClaims: id + role cukup untuk membentuk Actor di middleware.
func buildAccessClaims(u userModel.UserModel, now time.Time, ttl time.Duration) jwt.MapClaims {
	return jwt.MapClaims{
		"typ":       "access",
		"sub":       u.ID.String(),
		"id":        u.ID.String(),
		"role":      u.Role.String(),
		"user_name": u.Name,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}
}

// IssueToken menandatangani access token HS256.
func (s *Service) IssueToken(u userModel.UserModel) (string, time.Time, error) {
	if len(s.Secret) == 0 {
		return "", time.Time{}, ErrMissingSecret
	}
	now := s.Clock.Now().UTC()
	claims := buildAccessClaims(u, now, s.TTL)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, now.Add(s.TTL), nil
}

/* ==========================
   PASSWORD
========================== */

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPasswordHash(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
