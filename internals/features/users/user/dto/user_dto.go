package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	uModel "sirumah_backend/internals/features/users/user/model"
	"sirumah_backend/internals/helpers/validation"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// LoginRequest: email + password
type LoginRequest struct {
	Email    string `json:"email" validate:"notblank,email,max=255"`
	Password string `json:"password" validate:"notblank"`
}

var loginMessages = validation.Messages{
	"email.notblank":    "Email harus diisi.",
	"email.email":       "Format email tidak valid.",
	"password.notblank": "Password harus diisi.",
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r LoginRequest) Validate() error {
	return validation.Struct(r, loginMessages)
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Phone     *string   `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromUserModel(u uModel.UserModel) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.String(),
		Phone:     u.Phone,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func FromUserModels(rows []uModel.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(rows))
	for _, u := range rows {
		out = append(out, FromUserModel(u))
	}
	return out
}

// LoginResponse: token + user
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}
