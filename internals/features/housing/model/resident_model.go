// file: internals/features/housing/model/resident_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "sirumah_backend/internals/features/users/user/model"
)

const (
	RelationshipOwner        = "owner"
	RelationshipTenant       = "tenant"
	RelationshipFamilyMember = "family_member"
)

var Relationships = []string{RelationshipOwner, RelationshipTenant, RelationshipFamilyMember}

/* =========================
   Model: residents
   =========================
   Lebih dari satu penghuni aktif per rumah diperbolehkan (co-resident).
*/

type Resident struct {
	ID uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey"`

	HouseID uuid.UUID  `json:"house_id" gorm:"column:house_id;type:uuid;not null;index;index:idx_residents_house_active,priority:1"`
	UserID  *uuid.UUID `json:"user_id"  gorm:"column:user_id;type:uuid;index"`

	Name         string     `json:"name"          gorm:"column:name;type:varchar(255);not null"`
	Email        *string    `json:"email"         gorm:"column:email;type:varchar(255)"`
	Phone        string     `json:"phone"         gorm:"column:phone;type:varchar(255);not null"`
	IDNumber     *string    `json:"id_number"     gorm:"column:id_number;type:varchar(255)"`
	Relationship string     `json:"relationship"  gorm:"column:relationship;type:varchar(20);not null;default:'owner';index"`
	MoveInDate   *time.Time `json:"move_in_date"  gorm:"column:move_in_date;type:date"`
	MoveOutDate  *time.Time `json:"move_out_date" gorm:"column:move_out_date;type:date"`
	IsActive     bool       `json:"is_active"     gorm:"column:is_active;not null;index:idx_residents_house_active,priority:2"`
	Notes        *string    `json:"notes"         gorm:"column:notes;type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;not null;autoCreateTime;index"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;not null;autoUpdateTime"`

	House *House               `json:"house,omitempty" gorm:"foreignKey:HouseID"`
	User  *userModel.UserModel `json:"user,omitempty"  gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (Resident) TableName() string { return "residents" }

func (r *Resident) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Relationship == "" {
		r.Relationship = RelationshipOwner
	}
	return nil
}

func ScopeActiveResidents(db *gorm.DB) *gorm.DB {
	return db.Where("residents.is_active = ?", true)
}
