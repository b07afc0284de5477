package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sirumah_backend/internals/policy"
)

// UserModel merepresentasikan tabel users di database
type UserModel struct {
	ID       uuid.UUID   `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name     string      `gorm:"column:name;size:255;not null" json:"name"`
	Email    string      `gorm:"column:email;size:255;not null;uniqueIndex:uq_users_email" json:"email"`
	Password string      `gorm:"column:password;not null" json:"-"`
	Role     policy.Role `gorm:"column:role;type:varchar(20);not null;index" json:"role"`
	Phone    *string     `gorm:"column:phone;size:50" json:"phone,omitempty"`
	IsActive bool        `gorm:"column:is_active;not null" json:"is_active"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}

// Actor identitas user untuk policy.
func (u UserModel) Actor() policy.Actor {
	return policy.Actor{ID: u.ID, Role: u.Role}
}

/* =========================
   Scopes
   ========================= */

func ScopeRoles(roles ...policy.Role) func(*gorm.DB) *gorm.DB {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.String())
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("users.role IN ?", names)
	}
}

func ScopeActiveUsers(db *gorm.DB) *gorm.DB {
	return db.Where("users.is_active = ?", true)
}

// ScopeAssignable: user yang boleh jadi petugas keluhan.
func ScopeAssignable(db *gorm.DB) *gorm.DB {
	return db.Scopes(ScopeRoles(policy.Administrator, policy.HousingManager))
}
