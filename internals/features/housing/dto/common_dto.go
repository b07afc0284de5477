package dto

import (
	"github.com/google/uuid"

	m "sirumah_backend/internals/features/housing/model"
	userModel "sirumah_backend/internals/features/users/user/model"
)

// UserBrief: user yang ditampilkan bersama record (pelapor, petugas, dst).
type UserBrief struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email,omitempty"`
	Role  string    `json:"role,omitempty"`
}

func userBrief(u *userModel.UserModel) *UserBrief {
	if u == nil {
		return nil
	}
	return &UserBrief{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role.String()}
}

func UserBriefs(rows []userModel.UserModel) []UserBrief {
	out := make([]UserBrief, 0, len(rows))
	for i := range rows {
		out = append(out, *userBrief(&rows[i]))
	}
	return out
}

func houseOption(h m.House) *HouseOption {
	return &HouseOption{ID: h.ID, BlockNumber: h.BlockNumber, Address: h.Address, OwnerName: h.OwnerName}
}

func HouseOptions(rows []m.House) []HouseOption {
	out := make([]HouseOption, 0, len(rows))
	for _, h := range rows {
		out = append(out, *houseOption(h))
	}
	return out
}
