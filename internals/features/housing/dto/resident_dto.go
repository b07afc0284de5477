package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "sirumah_backend/internals/features/housing/model"
	"sirumah_backend/internals/helpers/apperror"
	"sirumah_backend/internals/helpers/validation"
)

type ResidentInput struct {
	HouseID      *uuid.UUID `json:"house_id"      validate:"required"`
	UserID       *uuid.UUID `json:"user_id"`
	Name         string     `json:"name"          validate:"notblank,max=255"`
	Email        *string    `json:"email"         validate:"omitempty,email,max=255"`
	Phone        string     `json:"phone"         validate:"notblank,max=20"`
	IDNumber     *string    `json:"id_number"     validate:"omitempty,max=255"`
	Relationship string     `json:"relationship"  validate:"required,oneof=owner tenant family_member"`
	MoveInDate   *string    `json:"move_in_date"  validate:"omitempty,datetime=2006-01-02"`
	MoveOutDate  *string    `json:"move_out_date" validate:"omitempty,datetime=2006-01-02"`
	IsActive     *bool      `json:"is_active"`
	Notes        *string    `json:"notes"`
}

var residentMessages = validation.Messages{
	"house_id.required":      "Rumah harus dipilih.",
	"name.notblank":          "Nama penghuni harus diisi.",
	"phone.notblank":         "Nomor telepon harus diisi.",
	"phone.max":              "Nomor telepon maksimal 20 karakter.",
	"email.email":            "Format email tidak valid.",
	"relationship":           "Hubungan dengan rumah harus dipilih.",
	"move_in_date.datetime":  "Format tanggal pindah masuk tidak valid.",
	"move_out_date.datetime": "Format tanggal pindah keluar tidak valid.",
}

func (in *ResidentInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Relationship = strings.TrimSpace(in.Relationship)
	trimPtr(&in.Email)
	trimPtr(&in.IDNumber)
	trimPtr(&in.MoveInDate)
	trimPtr(&in.MoveOutDate)
	trimPtr(&in.Notes)
	if in.Email != nil {
		e := strings.ToLower(*in.Email)
		in.Email = &e
	}
	if in.IsActive == nil {
		t := true
		in.IsActive = &t
	}
}

// Validate: move_out_date boleh sama dengan move_in_date.
func (in ResidentInput) Validate() error {
	return validation.Check(in, residentMessages, func(v *apperror.ValidationError) {
		if _, bad := v.Fields["move_out_date"]; bad {
			return
		}
		moveIn, moveOut := parseDatePtr(in.MoveInDate), parseDatePtr(in.MoveOutDate)
		if moveIn != nil && moveOut != nil && moveOut.Before(*moveIn) {
			v.Add("move_out_date", "Tanggal pindah keluar tidak boleh sebelum tanggal pindah masuk.")
		}
	})
}

func (in ResidentInput) ToModel() m.Resident {
	r := m.Resident{
		UserID:       in.UserID,
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		IDNumber:     in.IDNumber,
		Relationship: in.Relationship,
		MoveInDate:   parseDatePtr(in.MoveInDate),
		MoveOutDate:  parseDatePtr(in.MoveOutDate),
		IsActive:     in.IsActive == nil || *in.IsActive,
		Notes:        in.Notes,
	}
	if in.HouseID != nil {
		r.HouseID = *in.HouseID
	}
	return r
}

func (in ResidentInput) Columns(fields []string) map[string]any {
	r := in.ToModel()
	all := map[string]any{
		"house_id":      r.HouseID,
		"user_id":       r.UserID,
		"name":          r.Name,
		"email":         r.Email,
		"phone":         r.Phone,
		"id_number":     r.IDNumber,
		"relationship":  r.Relationship,
		"move_in_date":  r.MoveInDate,
		"move_out_date": r.MoveOutDate,
		"is_active":     r.IsActive,
		"notes":         r.Notes,
	}
	return pick(all, fields)
}

func ResidentInputFrom(r m.Resident) ResidentInput {
	houseID, active := r.HouseID, r.IsActive
	return ResidentInput{
		HouseID:      &houseID,
		UserID:       r.UserID,
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		IDNumber:     r.IDNumber,
		Relationship: r.Relationship,
		MoveInDate:   datePtr(r.MoveInDate),
		MoveOutDate:  datePtr(r.MoveOutDate),
		IsActive:     &active,
		Notes:        r.Notes,
	}
}

type ResidentPatch struct {
	HouseID      PatchField[uuid.UUID] `json:"house_id"`
	UserID       PatchField[uuid.UUID] `json:"user_id"`
	Name         PatchField[string]    `json:"name"`
	Email        PatchField[string]    `json:"email"`
	Phone        PatchField[string]    `json:"phone"`
	IDNumber     PatchField[string]    `json:"id_number"`
	Relationship PatchField[string]    `json:"relationship"`
	MoveInDate   PatchField[string]    `json:"move_in_date"`
	MoveOutDate  PatchField[string]    `json:"move_out_date"`
	IsActive     PatchField[bool]      `json:"is_active"`
	Notes        PatchField[string]    `json:"notes"`
}

func (p ResidentPatch) ApplyTo(in *ResidentInput) {
	applyPtr(&in.HouseID, p.HouseID)
	applyPtr(&in.UserID, p.UserID)
	applyVal(&in.Name, p.Name)
	applyPtr(&in.Email, p.Email)
	applyVal(&in.Phone, p.Phone)
	applyPtr(&in.IDNumber, p.IDNumber)
	applyVal(&in.Relationship, p.Relationship)
	applyPtr(&in.MoveInDate, p.MoveInDate)
	applyPtr(&in.MoveOutDate, p.MoveOutDate)
	applyPtr(&in.IsActive, p.IsActive)
	applyPtr(&in.Notes, p.Notes)
}

type ResidentResponse struct {
	ID           uuid.UUID  `json:"id"`
	HouseID      uuid.UUID  `json:"house_id"`
	UserID       *uuid.UUID `json:"user_id"`
	Name         string     `json:"name"`
	Email        *string    `json:"email"`
	Phone        string     `json:"phone"`
	IDNumber     *string    `json:"id_number"`
	Relationship string     `json:"relationship"`
	MoveInDate   *string    `json:"move_in_date"`
	MoveOutDate  *string    `json:"move_out_date"`
	IsActive     bool       `json:"is_active"`
	Notes        *string    `json:"notes"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	House *HouseOption `json:"house,omitempty"`
	User  *UserBrief   `json:"user,omitempty"`
}

func FromResidentModel(r m.Resident) ResidentResponse {
	out := ResidentResponse{
		ID:           r.ID,
		HouseID:      r.HouseID,
		UserID:       r.UserID,
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		IDNumber:     r.IDNumber,
		Relationship: r.Relationship,
		MoveInDate:   datePtr(r.MoveInDate),
		MoveOutDate:  datePtr(r.MoveOutDate),
		IsActive:     r.IsActive,
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.House != nil {
		out.House = houseOption(*r.House)
	}
	if r.User != nil {
		out.User = userBrief(r.User)
	}
	return out
}

func FromResidentModels(rows []m.Resident) []ResidentResponse {
	out := make([]ResidentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromResidentModel(r))
	}
	return out
}
