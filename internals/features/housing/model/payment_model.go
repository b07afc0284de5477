// file: internals/features/housing/model/payment_model.go
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	userModel "sirumah_backend/internals/features/users/user/model"
)

const (
	PaymentPending   = "pending"
	PaymentPaid      = "paid"
	PaymentOverdue   = "overdue"
	PaymentCancelled = "cancelled"
)

var PaymentStatuses = []string{PaymentPending, PaymentPaid, PaymentOverdue, PaymentCancelled}

/* =========================
   Model: payments
   ========================= */

type Payment struct {
	ID uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey"`

	HouseID uuid.UUID `json:"house_id" gorm:"column:house_id;type:uuid;not null;index;index:idx_payments_house_status,priority:1"`

	PaymentType   string          `json:"payment_type"   gorm:"column:payment_type;type:varchar(255);not null;index"`
	Amount        decimal.Decimal `json:"amount"         gorm:"column:amount;type:numeric(15,2);not null"`
	DueDate       time.Time       `json:"due_date"       gorm:"column:due_date;type:date;not null;index"`
	PaidDate      *time.Time      `json:"paid_date"      gorm:"column:paid_date;type:date"`
	Status        string          `json:"status"         gorm:"column:status;type:varchar(20);not null;default:'pending';index;index:idx_payments_house_status,priority:2"`
	ReceiptNumber *string         `json:"receipt_number" gorm:"column:receipt_number;type:varchar(255)"`
	Description   *string         `json:"description"    gorm:"column:description;type:text"`
	Notes         *string         `json:"notes"          gorm:"column:notes;type:text"`

	CreatedBy uuid.UUID  `json:"created_by" gorm:"column:created_by;type:uuid;not null"`
	PaidBy    *uuid.UUID `json:"paid_by"    gorm:"column:paid_by;type:uuid"`

	// snapshot rumah saat tagihan dibuat
	HouseSnapshot datatypes.JSON `json:"house_snapshot,omitempty" gorm:"column:house_snapshot"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;not null;autoCreateTime;index"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;not null;autoUpdateTime"`

	House   *House               `json:"house,omitempty"   gorm:"foreignKey:HouseID"`
	Creator *userModel.UserModel `json:"creator,omitempty" gorm:"foreignKey:CreatedBy;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Payer   *userModel.UserModel `json:"payer,omitempty"   gorm:"foreignKey:PaidBy;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = PaymentPending
	}
	return nil
}

func (p *Payment) SetHouseSnapshot(h House) error {
	b, err := json.Marshal(h.Snapshot())
	if err != nil {
		return err
	}
	p.HouseSnapshot = datatypes.JSON(b)
	return nil
}
