package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sirumah_backend/internals/features/housing/dto"
	m "sirumah_backend/internals/features/housing/model"
	"sirumah_backend/internals/features/housing/query"
	helper "sirumah_backend/internals/helpers"
	"sirumah_backend/internals/helpers/apperror"
	"sirumah_backend/internals/policy"
)

func residentRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("House").Preload("User")
}

func (s *Service) ListResidents(ctx context.Context, a policy.Actor, f query.Filters, p helper.Paging) ([]m.Resident, int64, error) {
	if err := policy.Authorize(a, policy.ActionList, policy.ResourceResident); err != nil {
		return nil, 0, err
	}
	var rows []m.Resident
	total, err := query.List(ctx, s.DB, query.Residents, policy.ScopeFor(a, policy.ResourceResident), f, p, &rows, residentRelations)
	return rows, total, err
}

func (s *Service) GetResident(ctx context.Context, a policy.Actor, id uuid.UUID) (m.Resident, error) {
	var r m.Resident
	err := s.loadVisible(ctx, a, query.Residents, id, &r, residentRelations)
	return r, err
}

func (s *Service) CreateResident(ctx context.Context, a policy.Actor, in dto.ResidentInput, fields []string) (m.Resident, error) {
	if err := policy.Authorize(a, policy.ActionCreate, policy.ResourceResident); err != nil {
		return m.Resident{}, err
	}
	if err := policy.CheckCreateFields(a, policy.ResourceResident, fields); err != nil {
		return m.Resident{}, err
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return m.Resident{}, err
	}

	r := in.ToModel()
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := houseRef(ctx, tx, in.HouseID); err != nil {
			return err
		}
		if err := checkUserRef(ctx, tx, in.UserID); err != nil {
			return err
		}
		return tx.Create(&r).Error
	})
	if err != nil {
		return m.Resident{}, apperror.FromDB(err, "resident", "")
	}
	s.Log.Info("resident created", zap.String("id", r.ID.String()), zap.String("house_id", r.HouseID.String()))
	return s.reloadResident(ctx, r.ID)
}

func (s *Service) UpdateResident(ctx context.Context, a policy.Actor, id uuid.UUID, patch dto.ResidentPatch, fields []string) (m.Resident, error) {
	if err := policy.Authorize(a, policy.ActionUpdate, policy.ResourceResident); err != nil {
		return m.Resident{}, err
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur m.Resident
		if err := loadForWrite(ctx, tx, policy.ResourceResident, id, &cur); err != nil {
			return err
		}
		if err := policy.AuthorizeRecord(a, policy.ActionUpdate, policy.ResourceResident, policy.Record{}); err != nil {
			return err
		}
		if err := policy.CheckFields(a, policy.ResourceResident, fields); err != nil {
			return err
		}

		in := dto.ResidentInputFrom(cur)
		patch.ApplyTo(&in)
		in.Normalize()
		if err := in.Validate(); err != nil {
			return err
		}
		if contains(fields, "house_id") {
			if _, err := houseRef(ctx, tx, in.HouseID); err != nil {
				return err
			}
		}
		if contains(fields, "user_id") {
			if err := checkUserRef(ctx, tx, in.UserID); err != nil {
				return err
			}
		}
		if cols := in.Columns(fields); len(cols) > 0 {
			return tx.Model(&m.Resident{}).Where("id = ?", id).Updates(cols).Error
		}
		return nil
	})
	if err != nil {
		return m.Resident{}, apperror.FromDB(err, "resident", id.String())
	}
	return s.reloadResident(ctx, id)
}

func (s *Service) DeleteResident(ctx context.Context, a policy.Actor, id uuid.UUID) error {
	if err := policy.Authorize(a, policy.ActionDelete, policy.ResourceResident); err != nil {
		return err
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur m.Resident
		if err := loadForWrite(ctx, tx, policy.ResourceResident, id, &cur); err != nil {
			return err
		}
		if err := policy.AuthorizeRecord(a, policy.ActionDelete, policy.ResourceResident, policy.Record{}); err != nil {
			return err
		}
		return tx.Delete(&m.Resident{}, "id = ?", id).Error
	})
	return apperror.FromDB(err, "resident", id.String())
}

func (s *Service) reloadResident(ctx context.Context, id uuid.UUID) (m.Resident, error) {
	var r m.Resident
	err := residentRelations(s.DB.WithContext(ctx)).Take(&r, "id = ?", id).Error
	return r, apperror.FromDB(err, "resident", id.String())
}
