package service

import (
	"context"

	"github.com/google/uuid"

	"sirumah_backend/internals/features/housing/dto"
	m "sirumah_backend/internals/features/housing/model"
	userModel "sirumah_backend/internals/features/users/user/model"
	"sirumah_backend/internals/policy"
)

// FormData: data pendukung form create/edit, dibatasi sesuai role.
type FormData struct {
	Houses          []dto.HouseOption   `json:"houses,omitempty"`
	Users           []dto.UserBrief     `json:"users,omitempty"`
	Staff           []dto.UserBrief     `json:"staff,omitempty"`
	Options         map[string][]string `json:"options"`
	SelectedHouseID *uuid.UUID          `json:"selected_house_id,omitempty"`
	MutableFields   []string            `json:"mutable_fields"`
}

func (s *Service) houseOptions(ctx context.Context, a policy.Actor, ownOnly bool) ([]dto.HouseOption, error) {
	q := s.DB.WithContext(ctx).Model(&m.House{}).Select("id", "block_number", "address", "owner_name")
	if ownOnly {
		q = q.Where("houses.id IN (SELECT house_id FROM residents WHERE user_id = ? AND is_active = ?)", a.ID, true)
	}
	var rows []m.House
	if err := q.Order("block_number").Find(&rows).Error; err != nil {
		return nil, err
	}
	return dto.HouseOptions(rows), nil
}

func (s *Service) HouseForm(ctx context.Context, a policy.Actor, action policy.Action) (FormData, error) {
	if err := policy.Authorize(a, action, policy.ResourceHouse); err != nil {
		return FormData{}, err
	}
	return FormData{
		Options:       map[string][]string{"status": m.HouseStatuses},
		MutableFields: policy.MutableFields(a.Role, policy.ResourceHouse),
	}, nil
}

// ResidentForm: rumah + user ber-role resident. selected = ?house_id= dari form.
func (s *Service) ResidentForm(ctx context.Context, a policy.Actor, action policy.Action, selected *uuid.UUID) (FormData, error) {
	if err := policy.Authorize(a, action, policy.ResourceResident); err != nil {
		return FormData{}, err
	}
	houses, err := s.houseOptions(ctx, a, false)
	if err != nil {
		return FormData{}, err
	}
	var users []userModel.UserModel
	if err := s.DB.WithContext(ctx).
		Scopes(userModel.ScopeRoles(policy.Resident)).
		Order("name").
		Find(&users).Error; err != nil {
		return FormData{}, err
	}
	return FormData{
		Houses:          houses,
		Users:           dto.UserBriefs(users),
		Options:         map[string][]string{"relationship": m.Relationships},
		SelectedHouseID: selected,
		MutableFields:   policy.MutableFields(a.Role, policy.ResourceResident),
	}, nil
}

func (s *Service) PaymentForm(ctx context.Context, a policy.Actor, action policy.Action) (FormData, error) {
	if err := policy.Authorize(a, action, policy.ResourcePayment); err != nil {
		return FormData{}, err
	}
	houses, err := s.houseOptions(ctx, a, false)
	if err != nil {
		return FormData{}, err
	}
	return FormData{
		Houses:        houses,
		Options:       map[string][]string{"status": m.PaymentStatuses},
		MutableFields: policy.MutableFields(a.Role, policy.ResourcePayment),
	}, nil
}

// ComplaintForm: penghuni hanya melihat rumah tempat dia penghuni aktif;
// daftar petugas hanya untuk role yang boleh mengisi assigned_to.
func (s *Service) ComplaintForm(ctx context.Context, a policy.Actor, action policy.Action) (FormData, error) {
	if err := policy.Authorize(a, action, policy.ResourceComplaint); err != nil {
		return FormData{}, err
	}
	ownOnly := policy.ScopeFor(a, policy.ResourceHouse).Kind == policy.ScopeOwnHouses
	houses, err := s.houseOptions(ctx, a, ownOnly)
	if err != nil {
		return FormData{}, err
	}
	fd := FormData{
		Houses: houses,
		Options: map[string][]string{
			"category": m.ComplaintCategories,
			"priority": m.ComplaintPriorities,
		},
		MutableFields: policy.MutableFields(a.Role, policy.ResourceComplaint),
	}
	if policy.CanSetField(a, policy.ResourceComplaint, "assigned_to") {
		var staff []userModel.UserModel
		if err := s.DB.WithContext(ctx).
			Scopes(userModel.ScopeAssignable, userModel.ScopeActiveUsers).
			Order("name").
			Find(&staff).Error; err != nil {
			return FormData{}, err
		}
		fd.Staff = dto.UserBriefs(staff)
		fd.Options["status"] = m.ComplaintStatuses
	}
	return fd, nil
}
