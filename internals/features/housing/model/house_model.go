// file: internals/features/housing/model/house_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/* =========================
   Enum: status rumah
   ========================= */

const (
	HouseAvailable   = "available"
	HouseSold        = "sold"
	HouseReserved    = "reserved"
	HouseMaintenance = "maintenance"
)

var HouseStatuses = []string{HouseAvailable, HouseSold, HouseReserved, HouseMaintenance}

/* =========================
   Model: houses
   ========================= */

type House struct {
	ID uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey"`

	BlockNumber  string          `json:"block_number"  gorm:"column:block_number;type:varchar(255);not null"`
	Address      string          `json:"address"       gorm:"column:address;type:text;not null"`
	HouseType    string          `json:"house_type"    gorm:"column:house_type;type:varchar(255);not null;index"`
	LandArea     decimal.Decimal `json:"land_area"     gorm:"column:land_area;type:numeric(8,2);not null"`
	BuildingArea decimal.Decimal `json:"building_area" gorm:"column:building_area;type:numeric(8,2);not null"`
	Status       string          `json:"status"        gorm:"column:status;type:varchar(20);not null;default:'available';index"`

	OwnerName    *string          `json:"owner_name"    gorm:"column:owner_name;type:varchar(255)"`
	OwnerPhone   *string          `json:"owner_phone"   gorm:"column:owner_phone;type:varchar(255)"`
	HandoverDate *time.Time       `json:"handover_date" gorm:"column:handover_date;type:date"`
	SellingPrice *decimal.Decimal `json:"selling_price" gorm:"column:selling_price;type:numeric(15,2)"`
	Bedrooms     int              `json:"bedrooms"      gorm:"column:bedrooms;not null"`
	Bathrooms    int              `json:"bathrooms"     gorm:"column:bathrooms;not null"`
	Notes        *string          `json:"notes"         gorm:"column:notes;type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;not null;autoCreateTime;index"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;not null;autoUpdateTime"`

	// relasi (ON DELETE CASCADE dari sisi rumah)
	Residents  []Resident  `json:"residents,omitempty"  gorm:"foreignKey:HouseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Payments   []Payment   `json:"payments,omitempty"   gorm:"foreignKey:HouseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Complaints []Complaint `json:"complaints,omitempty" gorm:"foreignKey:HouseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (House) TableName() string { return "houses" }

/* =========================
   Hooks
   ========================= */

func (h *House) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if h.Status == "" {
		h.Status = HouseAvailable
	}
	return nil
}

/* =========================
   Snapshot (disimpan di payments/complaints)
   ========================= */

type HouseSnapshot struct {
	ID          uuid.UUID `json:"id"`
	BlockNumber string    `json:"block_number"`
	Address     string    `json:"address,omitempty"`
	OwnerName   string    `json:"owner_name,omitempty"`
}

func (h House) Snapshot() HouseSnapshot {
	s := HouseSnapshot{ID: h.ID, BlockNumber: h.BlockNumber, Address: h.Address}
	if h.OwnerName != nil {
		s.OwnerName = *h.OwnerName
	}
	return s
}
