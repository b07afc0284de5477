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

type PaymentInput struct {
	HouseID       *uuid.UUID       `json:"house_id"       validate:"required"`
	PaymentType   string           `json:"payment_type"   validate:"notblank,max=255"`
	Amount        *decimal.Decimal `json:"amount"         validate:"omitempty,gte=0"`
	DueDate       string           `json:"due_date"       validate:"notblank,datetime=2006-01-02"`
	Status        string           `json:"status"         validate:"required,oneof=pending paid overdue cancelled"`
	ReceiptNumber *string          `json:"receipt_number" validate:"omitempty,max=255"`
	Description   *string          `json:"description"`
	Notes         *string          `json:"notes"`
}

var paymentMessages = validation.Messages{
	"house_id.required":     "Rumah harus dipilih.",
	"payment_type.notblank": "Jenis pembayaran harus diisi.",
	"amount.gte":            "Jumlah pembayaran tidak boleh negatif.",
	"due_date.notblank":     "Tanggal jatuh tempo harus diisi.",
	"due_date.datetime":     "Format tanggal jatuh tempo tidak valid.",
	"status":                "Status pembayaran harus dipilih.",
}

func (in *PaymentInput) Normalize() {
	in.PaymentType = strings.TrimSpace(in.PaymentType)
	in.DueDate = strings.TrimSpace(in.DueDate)
	in.Status = strings.TrimSpace(in.Status)
	if in.Status == "" {
		in.Status = m.PaymentPending
	}
	trimPtr(&in.ReceiptNumber)
	trimPtr(&in.Description)
	trimPtr(&in.Notes)
}

func (in PaymentInput) Validate() error {
	return validation.Check(in, paymentMessages, func(v *apperror.ValidationError) {
		if in.Amount == nil {
			v.Add("amount", "Jumlah pembayaran harus diisi.")
		}
	})
}

func (in PaymentInput) ToModel() m.Payment {
	p := m.Payment{
		PaymentType:   in.PaymentType,
		Status:        in.Status,
		ReceiptNumber: in.ReceiptNumber,
		Description:   in.Description,
		Notes:         in.Notes,
	}
	if in.HouseID != nil {
		p.HouseID = *in.HouseID
	}
	if in.Amount != nil {
		p.Amount = *in.Amount
	}
	if d := parseDatePtr(&in.DueDate); d != nil {
		p.DueDate = *d
	}
	return p
}

// Columns: paid_date/paid_by tidak pernah berasal dari payload.
func (in PaymentInput) Columns(fields []string) map[string]any {
	p := in.ToModel()
	all := map[string]any{
		"house_id":       p.HouseID,
		"payment_type":   p.PaymentType,
		"amount":         p.Amount,
		"due_date":       p.DueDate,
		"status":         p.Status,
		"receipt_number": p.ReceiptNumber,
		"description":    p.Description,
		"notes":          p.Notes,
	}
	return pick(all, fields)
}

func PaymentInputFrom(p m.Payment) PaymentInput {
	houseID, amount := p.HouseID, p.Amount
	return PaymentInput{
		HouseID:       &houseID,
		PaymentType:   p.PaymentType,
		Amount:        &amount,
		DueDate:       dateStr(p.DueDate),
		Status:        p.Status,
		ReceiptNumber: p.ReceiptNumber,
		Description:   p.Description,
		Notes:         p.Notes,
	}
}

type PaymentPatch struct {
	HouseID       PatchField[uuid.UUID]       `json:"house_id"`
	PaymentType   PatchField[string]          `json:"payment_type"`
	Amount        PatchField[decimal.Decimal] `json:"amount"`
	DueDate       PatchField[string]          `json:"due_date"`
	Status        PatchField[string]          `json:"status"`
	ReceiptNumber PatchField[string]          `json:"receipt_number"`
	Description   PatchField[string]          `json:"description"`
	Notes         PatchField[string]          `json:"notes"`
}

func (p PaymentPatch) ApplyTo(in *PaymentInput) {
	applyPtr(&in.HouseID, p.HouseID)
	applyVal(&in.PaymentType, p.PaymentType)
	applyPtr(&in.Amount, p.Amount)
	applyVal(&in.DueDate, p.DueDate)
	applyVal(&in.Status, p.Status)
	applyPtr(&in.ReceiptNumber, p.ReceiptNumber)
	applyPtr(&in.Description, p.Description)
	applyPtr(&in.Notes, p.Notes)
}

type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	HouseID       uuid.UUID       `json:"house_id"`
	PaymentType   string          `json:"payment_type"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       string          `json:"due_date"`
	PaidDate      *string         `json:"paid_date"`
	Status        string          `json:"status"`
	ReceiptNumber *string         `json:"receipt_number"`
	Description   *string         `json:"description"`
	Notes         *string         `json:"notes"`
	CreatedBy     uuid.UUID       `json:"created_by"`
	PaidBy        *uuid.UUID      `json:"paid_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	House   *HouseOption `json:"house,omitempty"`
	Creator *UserBrief   `json:"creator,omitempty"`
	Payer   *UserBrief   `json:"payer,omitempty"`
}

func FromPaymentModel(p m.Payment) PaymentResponse {
	out := PaymentResponse{
		ID:            p.ID,
		HouseID:       p.HouseID,
		PaymentType:   p.PaymentType,
		Amount:        p.Amount,
		DueDate:       dateStr(p.DueDate),
		PaidDate:      datePtr(p.PaidDate),
		Status:        p.Status,
		ReceiptNumber: p.ReceiptNumber,
		Description:   p.Description,
		Notes:         p.Notes,
		CreatedBy:     p.CreatedBy,
		PaidBy:        p.PaidBy,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Creator:       userBrief(p.Creator),
		Payer:         userBrief(p.Payer),
	}
	if p.House != nil {
		out.House = houseOption(*p.House)
	}
	return out
}

func FromPaymentModels(rows []m.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, FromPaymentModel(p))
	}
	return out
}
