// Package service menjalankan operasi perumahan: policy → query/mutasi →
// efek samping transisi status, semuanya dalam satu transaksi per operasi.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	m "sirumah_backend/internals/features/housing/model"
	"sirumah_backend/internals/features/housing/query"
	userModel "sirumah_backend/internals/features/users/user/model"
	"sirumah_backend/internals/helpers/apperror"
	"sirumah_backend/internals/helpers/dbtime"
	"sirumah_backend/internals/policy"
)

type Service struct {
	DB    *gorm.DB
	Clock dbtime.Clock
	Log   *zap.Logger
}

func New(db *gorm.DB, clock dbtime.Clock, log *zap.Logger) *Service {
	if clock == nil {
		clock = dbtime.SystemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{DB: db, Clock: clock, Log: log}
}

// Preload dipakai List/Get untuk relasi.
type Preload func(*gorm.DB) *gorm.DB

/* ===============================
   Load satu record
=================================*/

// loadVisible: 404 kalau id tidak ada sama sekali, 403 kalau ada tapi di
// luar row scope actor. dest = pointer ke model.
func (s *Service) loadVisible(ctx context.Context, a policy.Actor, t query.Target, id uuid.UUID, dest any, prepare Preload) error {
	if err := policy.Authorize(a, policy.ActionRead, t.Resource); err != nil {
		return err
	}
	if err := s.mustExist(ctx, s.DB, t, id); err != nil {
		return err
	}
	q := query.Base(ctx, s.DB, t, policy.ScopeFor(a, t.Resource)).Where(t.Table+".id = ?", id)
	if prepare != nil {
		q = prepare(q)
	}
	err := q.Take(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &apperror.AuthorizationError{Action: policy.ActionRead.String(), Resource: t.Resource.String()}
	}
	return err
}

func (s *Service) mustExist(ctx context.Context, db *gorm.DB, t query.Target, id uuid.UUID) error {
	var n int64
	if err := db.WithContext(ctx).Table(t.Table).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return &apperror.NotFoundError{Resource: t.Resource.String(), ID: id.String()}
	}
	return nil
}

// loadForWrite: record apa adanya (tanpa scope) untuk update/delete.
func loadForWrite(ctx context.Context, tx *gorm.DB, res policy.Resource, id uuid.UUID, dest any) error {
	err := tx.WithContext(ctx).Where("id = ?", id).Take(dest).Error
	return apperror.FromDB(err, res.String(), id.String())
}

/* ===============================
   Cek referensi
=================================*/

const (
	msgHouseRequired = "Rumah harus dipilih."
	msgHouseInvalid  = "Rumah yang dipilih tidak valid."
	msgStaffInvalid  = "Petugas yang dipilih tidak valid."
	msgUserInvalid   = "User yang dipilih tidak valid."
)

// houseRef memuat rumah untuk house_id payload; tidak ada → ValidationError.
func houseRef(ctx context.Context, tx *gorm.DB, id *uuid.UUID) (m.House, error) {
	var h m.House
	if id == nil || *id == uuid.Nil {
		return h, apperror.NewValidation("house_id", msgHouseRequired)
	}
	err := tx.WithContext(ctx).Where("id = ?", *id).Take(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return h, apperror.NewValidation("house_id", msgHouseInvalid)
	}
	return h, err
}

// ownsHouse: actor adalah penghuni aktif rumah tsb.
func ownsHouse(ctx context.Context, tx *gorm.DB, a policy.Actor, houseID uuid.UUID) (bool, error) {
	var n int64
	err := tx.WithContext(ctx).Model(&m.Resident{}).
		Scopes(m.ScopeActiveResidents).
		Where("residents.house_id = ? AND residents.user_id = ?", houseID, a.ID).
		Count(&n).Error
	return n > 0, err
}

// checkAssignee: assigned_to hanya administrator/housing_manager yang aktif,
// sama dengan pilihan di form keluhan.
func checkAssignee(ctx context.Context, tx *gorm.DB, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	var n int64
	if err := tx.WithContext(ctx).Model(&userModel.UserModel{}).
		Scopes(userModel.ScopeAssignable, userModel.ScopeActiveUsers).
		Where("users.id = ?", *id).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return apperror.NewValidation("assigned_to", msgStaffInvalid)
	}
	return nil
}

func checkUserRef(ctx context.Context, tx *gorm.DB, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	var n int64
	if err := tx.WithContext(ctx).Model(&userModel.UserModel{}).Where("id = ?", *id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return apperror.NewValidation("user_id", msgUserInvalid)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func hasAny(list []string, vs ...string) bool {
	for _, v := range vs {
		if contains(list, v) {
			return true
		}
	}
	return false
}

// byNewest: urutan relasi di detail.
func byNewest(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(strings.TrimSpace(table) + ".created_at DESC")
	}
}
