// file: internals/features/housing/model/complaint_model.go
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
	ComplaintOpen       = "open"
	ComplaintInProgress = "in_progress"
	ComplaintResolved   = "resolved"
	ComplaintClosed     = "closed"
	ComplaintCancelled  = "cancelled"
)

var ComplaintStatuses = []string{ComplaintOpen, ComplaintInProgress, ComplaintResolved, ComplaintClosed, ComplaintCancelled}

var ComplaintCategories = []string{"maintenance", "security", "facility", "neighbor", "other"}

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

var ComplaintPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

/* =========================
   Model: complaints
   ========================= */

type Complaint struct {
	ID uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey"`

	HouseID    uuid.UUID  `json:"house_id"    gorm:"column:house_id;type:uuid;not null;index"`
	ReportedBy uuid.UUID  `json:"reported_by" gorm:"column:reported_by;type:uuid;not null;index"`
	AssignedTo *uuid.UUID `json:"assigned_to" gorm:"column:assigned_to;type:uuid;index"`

	Title       string `json:"title"       gorm:"column:title;type:varchar(255);not null"`
	Description string `json:"description" gorm:"column:description;type:text;not null"`
	Category    string `json:"category"    gorm:"column:category;type:varchar(20);not null;index"`
	Priority    string `json:"priority"    gorm:"column:priority;type:varchar(20);not null;default:'medium';index;index:idx_complaints_status_priority,priority:2"`
	Status      string `json:"status"      gorm:"column:status;type:varchar(20);not null;default:'open';index;index:idx_complaints_status_priority,priority:1"`

	Response             *string          `json:"response"               gorm:"column:response;type:text"`
	TargetResolutionDate *time.Time       `json:"target_resolution_date" gorm:"column:target_resolution_date;type:date"`
	ResolvedDate         *time.Time       `json:"resolved_date"          gorm:"column:resolved_date;type:date"`
	EstimatedCost        *decimal.Decimal `json:"estimated_cost"         gorm:"column:estimated_cost;type:numeric(15,2)"`
	Notes                *string          `json:"notes"                  gorm:"column:notes;type:text"`

	HouseSnapshot datatypes.JSON `json:"house_snapshot,omitempty" gorm:"column:house_snapshot"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;not null;autoCreateTime;index"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;not null;autoUpdateTime"`

	House    *House               `json:"house,omitempty"    gorm:"foreignKey:HouseID"`
	Reporter *userModel.UserModel `json:"reporter,omitempty" gorm:"foreignKey:ReportedBy;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Assignee *userModel.UserModel `json:"assignee,omitempty" gorm:"foreignKey:AssignedTo;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (Complaint) TableName() string { return "complaints" }

func (c *Complaint) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = ComplaintOpen
	}
	if c.Priority == "" {
		c.Priority = PriorityMedium
	}
	return nil
}

func (c *Complaint) SetHouseSnapshot(h House) error {
	b, err := json.Marshal(h.Snapshot())
	if err != nil {
		return err
	}
	c.HouseSnapshot = datatypes.JSON(b)
	return nil
}

// IsHighPriority: high atau urgent (dipakai stats).
func IsHighPriority(p string) bool { return p == PriorityHigh || p == PriorityUrgent }
