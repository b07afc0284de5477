package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	m "sirumah_backend/internals/features/housing/model"
	"sirumah_backend/internals/helpers/apperror"
	"sirumah_backend/internals/helpers/validation"
)

/* =========================================================
   INPUT (create + hasil patch divalidasi dengan aturan sama)
   ========================================================= */

type HouseInput struct {
	BlockNumber  string           `json:"block_number"  validate:"notblank,max=255"`
	Address      string           `json:"address"       validate:"notblank"`
	HouseType    string           `json:"house_type"    validate:"notblank,max=255"`
	LandArea     *decimal.Decimal `json:"land_area"     validate:"omitempty,gte=0"`
	BuildingArea *decimal.Decimal `json:"building_area" validate:"omitempty,gte=0"`
	Status       string           `json:"status"        validate:"required,oneof=available sold reserved maintenance"`
	OwnerName    *string          `json:"owner_name"    validate:"omitempty,max=255"`
	OwnerPhone   *string          `json:"owner_phone"   validate:"omitempty,max=20"`
	HandoverDate *string          `json:"handover_date" validate:"omitempty,datetime=2006-01-02"`
	SellingPrice *decimal.Decimal `json:"selling_price" validate:"omitempty,gte=0"`
	Bedrooms     *int             `json:"bedrooms"      validate:"required,gte=1"`
	Bathrooms    *int             `json:"bathrooms"     validate:"required,gte=1"`
	Notes        *string          `json:"notes"`
}

var houseMessages = validation.Messages{
	"block_number.notblank":  "Nomor blok/unit harus diisi.",
	"address.notblank":       "Alamat rumah harus diisi.",
	"house_type.notblank":    "Tipe rumah harus diisi.",
	"land_area.gte":          "Luas tanah tidak boleh negatif.",
	"building_area.gte":      "Luas bangunan tidak boleh negatif.",
	"status":                 "Status rumah harus dipilih.",
	"handover_date.datetime": "Format tanggal serah terima tidak valid.",
	"selling_price.gte":      "Harga jual tidak boleh negatif.",
	"bedrooms.required":      "Jumlah kamar tidur harus diisi.",
	"bedrooms.gte":           "Jumlah kamar tidur minimal 1.",
	"bathrooms.required":     "Jumlah kamar mandi harus diisi.",
	"bathrooms.gte":          "Jumlah kamar mandi minimal 1.",
}

func (in *HouseInput) Normalize() {
	in.BlockNumber = strings.TrimSpace(in.BlockNumber)
	in.Address = strings.TrimSpace(in.Address)
	in.HouseType = strings.TrimSpace(in.HouseType)
	in.Status = strings.TrimSpace(in.Status)
	if in.Status == "" {
		in.Status = m.HouseAvailable
	}
	trimPtr(&in.OwnerName)
	trimPtr(&in.OwnerPhone)
	trimPtr(&in.HandoverDate)
	trimPtr(&in.Notes)
}

func (in HouseInput) Validate() error {
	return validation.Check(in, houseMessages, func(v *apperror.ValidationError) {
		if in.LandArea == nil {
			v.Add("land_area", "Luas tanah harus diisi.")
		}
		if in.BuildingArea == nil {
			v.Add("building_area", "Luas bangunan harus diisi.")
		}
	})
}

func (in HouseInput) ToModel() m.House {
	h := m.House{
		BlockNumber:  in.BlockNumber,
		Address:      in.Address,
		HouseType:    in.HouseType,
		Status:       in.Status,
		OwnerName:    in.OwnerName,
		OwnerPhone:   in.OwnerPhone,
		HandoverDate: parseDatePtr(in.HandoverDate),
		SellingPrice: in.SellingPrice,
		Notes:        in.Notes,
	}
	if in.LandArea != nil {
		h.LandArea = *in.LandArea
	}
	if in.BuildingArea != nil {
		h.BuildingArea = *in.BuildingArea
	}
	if in.Bedrooms != nil {
		h.Bedrooms = *in.Bedrooms
	}
	if in.Bathrooms != nil {
		h.Bathrooms = *in.Bathrooms
	}
	return h
}

// Columns: nilai kolom untuk UPDATE, dibatasi ke field yang dikirim.
func (in HouseInput) Columns(fields []string) map[string]any {
	h := in.ToModel()
	all := map[string]any{
		"block_number":  h.BlockNumber,
		"address":       h.Address,
		"house_type":    h.HouseType,
		"land_area":     h.LandArea,
		"building_area": h.BuildingArea,
		"status":        h.Status,
		"owner_name":    h.OwnerName,
		"owner_phone":   h.OwnerPhone,
		"handover_date": h.HandoverDate,
		"selling_price": h.SellingPrice,
		"bedrooms":      h.Bedrooms,
		"bathrooms":     h.Bathrooms,
		"notes":         h.Notes,
	}
	return pick(all, fields)
}

func HouseInputFrom(h m.House) HouseInput {
	land, building := h.LandArea, h.BuildingArea
	bed, bath := h.Bedrooms, h.Bathrooms
	return HouseInput{
		BlockNumber:  h.BlockNumber,
		Address:      h.Address,
		HouseType:    h.HouseType,
		LandArea:     &land,
		BuildingArea: &building,
		Status:       h.Status,
		OwnerName:    h.OwnerName,
		OwnerPhone:   h.OwnerPhone,
		HandoverDate: datePtr(h.HandoverDate),
		SellingPrice: h.SellingPrice,
		Bedrooms:     &bed,
		Bathrooms:    &bath,
		Notes:        h.Notes,
	}
}

/* =========================================================
   PATCH
   ========================================================= */

type HousePatch struct {
	BlockNumber  PatchField[string]          `json:"block_number"`
	Address      PatchField[string]          `json:"address"`
	HouseType    PatchField[string]          `json:"house_type"`
	LandArea     PatchField[decimal.Decimal] `json:"land_area"`
	BuildingArea PatchField[decimal.Decimal] `json:"building_area"`
	Status       PatchField[string]          `json:"status"`
	OwnerName    PatchField[string]          `json:"owner_name"`
	OwnerPhone   PatchField[string]          `json:"owner_phone"`
	HandoverDate PatchField[string]          `json:"handover_date"`
	SellingPrice PatchField[decimal.Decimal] `json:"selling_price"`
	Bedrooms     PatchField[int]             `json:"bedrooms"`
	Bathrooms    PatchField[int]             `json:"bathrooms"`
	Notes        PatchField[string]          `json:"notes"`
}

func (p HousePatch) ApplyTo(in *HouseInput) {
	applyVal(&in.BlockNumber, p.BlockNumber)
	applyVal(&in.Address, p.Address)
	applyVal(&in.HouseType, p.HouseType)
	applyPtr(&in.LandArea, p.LandArea)
	applyPtr(&in.BuildingArea, p.BuildingArea)
	applyVal(&in.Status, p.Status)
	applyPtr(&in.OwnerName, p.OwnerName)
	applyPtr(&in.OwnerPhone, p.OwnerPhone)
	applyPtr(&in.HandoverDate, p.HandoverDate)
	applyPtr(&in.SellingPrice, p.SellingPrice)
	applyPtr(&in.Bedrooms, p.Bedrooms)
	applyPtr(&in.Bathrooms, p.Bathrooms)
	applyPtr(&in.Notes, p.Notes)
}

/* =========================================================
   RESPONSE
   ========================================================= */

type HouseResponse struct {
	ID           uuid.UUID        `json:"id"`
	BlockNumber  string           `json:"block_number"`
	Address      string           `json:"address"`
	HouseType    string           `json:"house_type"`
	LandArea     decimal.Decimal  `json:"land_area"`
	BuildingArea decimal.Decimal  `json:"building_area"`
	Status       string           `json:"status"`
	OwnerName    *string          `json:"owner_name"`
	OwnerPhone   *string          `json:"owner_phone"`
	HandoverDate *string          `json:"handover_date"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
	Bedrooms     int              `json:"bedrooms"`
	Bathrooms    int              `json:"bathrooms"`
	Notes        *string          `json:"notes"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`

	ActiveResident *ResidentResponse   `json:"active_resident,omitempty"`
	Residents      []ResidentResponse  `json:"residents,omitempty"`
	Payments       []PaymentResponse   `json:"payments,omitempty"`
	Complaints     []ComplaintResponse `json:"complaints,omitempty"`
}

func FromHouseModel(h m.House) HouseResponse {
	out := HouseResponse{
		ID:           h.ID,
		BlockNumber:  h.BlockNumber,
		Address:      h.Address,
		HouseType:    h.HouseType,
		LandArea:     h.LandArea,
		BuildingArea: h.BuildingArea,
		Status:       h.Status,
		OwnerName:    h.OwnerName,
		OwnerPhone:   h.OwnerPhone,
		HandoverDate: datePtr(h.HandoverDate),
		SellingPrice: h.SellingPrice,
		Bedrooms:     h.Bedrooms,
		Bathrooms:    h.Bathrooms,
		Notes:        h.Notes,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}
	for _, r := range h.Residents {
		rr := FromResidentModel(r)
		out.Residents = append(out.Residents, rr)
		if r.IsActive && out.ActiveResident == nil {
			cp := rr
			out.ActiveResident = &cp
		}
	}
	for _, p := range h.Payments {
		out.Payments = append(out.Payments, FromPaymentModel(p))
	}
	for _, c := range h.Complaints {
		out.Complaints = append(out.Complaints, FromComplaintModel(c))
	}
	return out
}

func FromHouseModels(rows []m.House) []HouseResponse {
	out := make([]HouseResponse, 0, len(rows))
	for _, h := range rows {
		out = append(out, FromHouseModel(h))
	}
	return out
}

// HouseOption: item dropdown rumah di form.
type HouseOption struct {
	ID          uuid.UUID `json:"id"`
	BlockNumber string    `json:"block_number"`
	Address     string    `json:"address"`
	OwnerName   *string   `json:"owner_name,omitempty"`
}

func pick(all map[string]any, fields []string) map[string]any {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if v, ok := all[f]; ok {
			out[f] = v
		}
	}
	return out
}
