// file: internals/features/users/user/service/user_service.go
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sirumah_backend/internals/constants"
	"sirumah_backend/internals/features/users/user/model"
	helper "sirumah_backend/internals/helpers"
	"sirumah_backend/internals/helpers/apperror"
	"sirumah_backend/internals/policy"
)

type Service struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func New(db *gorm.DB, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{DB: db, Log: log}
}

// ListUsers: khusus administrator. search cocok ke nama/email, role opsional.
func (s *Service) ListUsers(ctx context.Context, a policy.Actor, search, role string, p helper.Paging) ([]model.UserModel, int64, error) {
	if err := policy.Authorize(a, policy.ActionList, policy.ResourceUser); err != nil {
		return nil, 0, err
	}
	q := s.DB.WithContext(ctx).Model(&model.UserModel{})
	if search = strings.TrimSpace(search); search != "" {
		like := helper.ContainsPattern(search)
		q = q.Where(`(LOWER(users.name) LIKE ? ESCAPE '\' OR LOWER(users.email) LIKE ? ESCAPE '\')`, like, like)
	}
	if role = strings.TrimSpace(role); role != "" {
		r, err := policy.ParseRole(role)
		if err != nil {
			return nil, 0, apperror.NewValidation("role", "Role tidak dikenal.")
		}
		q = q.Scopes(model.ScopeRoles(r))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.UserModel
	err := q.Order("users.name ASC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error
	return rows, total, err
}

// Me: profil actor yang sedang login.
func (s *Service) Me(ctx context.Context, a policy.Actor) (model.UserModel, error) {
	var u model.UserModel
	err := s.DB.WithContext(ctx).Take(&u, "id = ?", a.ID).Error
	return u, apperror.FromDB(err, "user", a.ID.String())
}

// referensi yang menahan penghapusan user
var blockingRefs = []struct{ table, column, label string }{
	{"complaints", "reported_by", "pelapor keluhan"},
	{"payments", "created_by", "pembuat pembayaran"},
}

// referensi opsional yang di-NULL-kan saat user dihapus
var nullableRefs = []struct{ table, column string }{
	{"residents", "user_id"},
	{"complaints", "assigned_to"},
	{"payments", "paid_by"},
}

// DeleteUser menghapus user dalam satu transaksi. Ditolak kalau user masih
// pelapor/pembuat record atau menghapus dirinya sendiri.
func (s *Service) DeleteUser(ctx context.Context, a policy.Actor, id uuid.UUID) error {
	if err := policy.Authorize(a, policy.ActionDelete, policy.ResourceUser); err != nil {
		return err
	}
	if id == a.ID {
		return &apperror.ConflictError{Message: constants.ErrCannotDeleteSelf}
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u model.UserModel
		if err := tx.Take(&u, "id = ?", id).Error; err != nil {
			return err
		}
		for _, ref := range blockingRefs {
			var n int64
			if err := tx.Table(ref.table).Where(ref.column+" = ?", id).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return &apperror.ConflictError{Message: fmt.Sprintf(constants.ErrUserReferenced, ref.label)}
			}
		}
		for _, ref := range nullableRefs {
			if err := tx.Table(ref.table).Where(ref.column+" = ?", id).Update(ref.column, nil).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.UserModel{}, "id = ?", id).Error
	})
	if err != nil {
		return apperror.FromDB(err, "user", id.String())
	}
	s.Log.Info("user deleted", zap.String("id", id.String()), zap.String("actor", a.ID.String()))
	return nil
}
