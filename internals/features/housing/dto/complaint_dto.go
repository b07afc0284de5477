package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	m "sirumah_backend/internals/features/housing/model"
	"sirumah_backend/internals/helpers/validation"
)

/* =========================================================
   INPUT
   Field pelapor selalu ada; field petugas hanya lolos policy
   untuk administrator/housing_manager.
   ========================================================= */

type ComplaintInput struct {
	HouseID     *uuid.UUID `json:"house_id"    validate:"required"`
	Title       string     `json:"title"       validate:"notblank,max=255"`
	Description string     `json:"description" validate:"notblank"`
	Category    string     `json:"category"    validate:"required,oneof=maintenance security facility neighbor other"`
	Priority    string     `json:"priority"    validate:"required,oneof=low medium high urgent"`

	Status               string           `json:"status"                 validate:"required,oneof=open in_progress resolved closed cancelled"`
	AssignedTo           *uuid.UUID       `json:"assigned_to"`
	Response             *string          `json:"response"`
	TargetResolutionDate *string          `json:"target_resolution_date" validate:"omitempty,datetime=2006-01-02"`
	EstimatedCost        *decimal.Decimal `json:"estimated_cost"         validate:"omitempty,gte=0"`
	Notes                *string          `json:"notes"`
}

var complaintMessages = validation.Messages{
	"house_id.required":               "Rumah harus dipilih.",
	"title.notblank":                  "Judul keluhan harus diisi.",
	"description.notblank":            "Deskripsi keluhan harus diisi.",
	"category":                        "Kategori keluhan harus dipilih.",
	"priority":                        "Prioritas keluhan harus dipilih.",
	"status":                          "Status keluhan harus dipilih.",
	"target_resolution_date.datetime": "Format tanggal target penyelesaian tidak valid.",
	"estimated_cost.gte":              "Estimasi biaya tidak boleh negatif.",
}

func (in *ComplaintInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Priority = strings.TrimSpace(in.Priority)
	in.Status = strings.TrimSpace(in.Status)
	if in.Priority == "" {
		in.Priority = m.PriorityMedium
	}
	if in.Status == "" {
		in.Status = m.ComplaintOpen
	}
	trimPtr(&in.Response)
	trimPtr(&in.TargetResolutionDate)
	trimPtr(&in.Notes)
}

func (in ComplaintInput) Validate() error {
	return validation.Check(in, complaintMessages, nil)
}

func (in ComplaintInput) ToModel() m.Complaint {
	c := m.Complaint{
		AssignedTo:           in.AssignedTo,
		Title:                in.Title,
		Description:          in.Description,
		Category:             in.Category,
		Priority:             in.Priority,
		Status:               in.Status,
		Response:             in.Response,
		TargetResolutionDate: parseDatePtr(in.TargetResolutionDate),
		EstimatedCost:        in.EstimatedCost,
		Notes:                in.Notes,
	}
	if in.HouseID != nil {
		c.HouseID = *in.HouseID
	}
	return c
}

// Columns: reported_by dan resolved_date tidak pernah berasal dari payload.
func (in ComplaintInput) Columns(fields []string) map[string]any {
	c := in.ToModel()
	all := map[string]any{
		"house_id":               c.HouseID,
		"title":                  c.Title,
		"description":            c.Description,
		"category":               c.Category,
		"priority":               c.Priority,
		"status":                 c.Status,
		"assigned_to":            c.AssignedTo,
		"response":               c.Response,
		"target_resolution_date": c.TargetResolutionDate,
		"estimated_cost":         c.EstimatedCost,
		"notes":                  c.Notes,
	}
	return pick(all, fields)
}

func ComplaintInputFrom(c m.Complaint) ComplaintInput {
	houseID := c.HouseID
	return ComplaintInput{
		HouseID:              &houseID,
		Title:                c.Title,
		Description:          c.Description,
		Category:             c.Category,
		Priority:             c.Priority,
		Status:               c.Status,
		AssignedTo:           c.AssignedTo,
		Response:             c.Response,
		TargetResolutionDate: datePtr(c.TargetResolutionDate),
		EstimatedCost:        c.EstimatedCost,
		Notes:                c.Notes,
	}
}

/* =========================================================
   PATCH
   ========================================================= */

type ComplaintPatch struct {
	HouseID              PatchField[uuid.UUID]       `json:"house_id"`
	Title                PatchField[string]          `json:"title"`
	Description          PatchField[string]          `json:"description"`
	Category             PatchField[string]          `json:"category"`
	Priority             PatchField[string]          `json:"priority"`
	Status               PatchField[string]          `json:"status"`
	AssignedTo           PatchField[uuid.UUID]       `json:"assigned_to"`
	Response             PatchField[string]          `json:"response"`
	TargetResolutionDate PatchField[string]          `json:"target_resolution_date"`
	EstimatedCost        PatchField[decimal.Decimal] `json:"estimated_cost"`
	Notes                PatchField[string]          `json:"notes"`
}

func (p ComplaintPatch) ApplyTo(in *ComplaintInput) {
	applyPtr(&in.HouseID, p.HouseID)
	applyVal(&in.Title, p.Title)
	applyVal(&in.Description, p.Description)
	applyVal(&in.Category, p.Category)
	applyVal(&in.Priority, p.Priority)
	applyVal(&in.Status, p.Status)
	applyPtr(&in.AssignedTo, p.AssignedTo)
	applyPtr(&in.Response, p.Response)
	applyPtr(&in.TargetResolutionDate, p.TargetResolutionDate)
	applyPtr(&in.EstimatedCost, p.EstimatedCost)
	applyPtr(&in.Notes, p.Notes)
}

/* =========================================================
   RESPONSE
   ========================================================= */

type ComplaintResponse struct {
	ID                   uuid.UUID        `json:"id"`
	HouseID              uuid.UUID        `json:"house_id"`
	ReportedBy           uuid.UUID        `json:"reported_by"`
	AssignedTo           *uuid.UUID       `json:"assigned_to"`
	Title                string           `json:"title"`
	Description          string           `json:"description"`
	Category             string           `json:"category"`
	Priority             string           `json:"priority"`
	Status               string           `json:"status"`
	Response             *string          `json:"response"`
	TargetResolutionDate *string          `json:"target_resolution_date"`
	ResolvedDate         *string          `json:"resolved_date"`
	EstimatedCost        *decimal.Decimal `json:"estimated_cost"`
	Notes                *string          `json:"notes"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`

	House    *HouseOption `json:"house,omitempty"`
	Reporter *UserBrief   `json:"reporter,omitempty"`
	Assignee *UserBrief   `json:"assignee,omitempty"`
}

func FromComplaintModel(c m.Complaint) ComplaintResponse {
	out := ComplaintResponse{
		ID:                   c.ID,
		HouseID:              c.HouseID,
		ReportedBy:           c.ReportedBy,
		AssignedTo:           c.AssignedTo,
		Title:                c.Title,
		Description:          c.Description,
		Category:             c.Category,
		Priority:             c.Priority,
		Status:               c.Status,
		Response:             c.Response,
		TargetResolutionDate: datePtr(c.TargetResolutionDate),
		ResolvedDate:         datePtr(c.ResolvedDate),
		EstimatedCost:        c.EstimatedCost,
		Notes:                c.Notes,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
		Reporter:             userBrief(c.Reporter),
		Assignee:             userBrief(c.Assignee),
	}
	if c.House != nil {
		out.House = houseOption(*c.House)
	}
	return out
}

func FromComplaintModels(rows []m.Complaint) []ComplaintResponse {
	out := make([]ComplaintResponse, 0, len(rows))
	for _, c := range rows {
		out = append(out, FromComplaintModel(c))
	}
	return out
}
