package service

import (
	"context"
	"strings"

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

const msgBlockTaken = "Nomor blok/unit sudah digunakan."

// preload penghuni aktif untuk kartu list rumah
func activeResidents(db *gorm.DB) *gorm.DB {
	return db.Preload("Residents", m.ScopeActiveResidents)
}

func (s *Service) ListHouses(ctx context.Context, a policy.Actor, f query.Filters, p helper.Paging) ([]m.House, int64, error) {
	if err := policy.Authorize(a, policy.ActionList, policy.ResourceHouse); err != nil {
		return nil, 0, err
	}
	var rows []m.House
	total, err := query.List(ctx, s.DB, query.Houses, policy.ScopeFor(a, policy.ResourceHouse), f, p, &rows, activeResidents)
	return rows, total, err
}

// HouseDetail: rumah + relasi, masing-masing dibatasi row scope actor.
type HouseDetail struct {
	House            m.House
	RecentPayments   []m.Payment
	RecentComplaints []m.Complaint
}

const recentLimit = 5

func (s *Service) GetHouse(ctx context.Context, a policy.Actor, id uuid.UUID) (HouseDetail, error) {
	var h m.House
	err := s.loadVisible(ctx, a, query.Houses, id, &h, func(db *gorm.DB) *gorm.DB {
		return db.
			Preload("Residents", func(tx *gorm.DB) *gorm.DB {
				return byNewest("residents")(tx.Scopes(query.Scope(query.Residents, policy.ScopeFor(a, policy.ResourceResident))))
			}).
			Preload("Residents.User").
			Preload("Payments", func(tx *gorm.DB) *gorm.DB {
				return byNewest("payments")(tx.Scopes(query.Scope(query.Payments, policy.ScopeFor(a, policy.ResourcePayment))))
			}).
			Preload("Payments.Creator").
			Preload("Payments.Payer").
			Preload("Complaints", func(tx *gorm.DB) *gorm.DB {
				return byNewest("complaints")(tx.Scopes(query.Scope(query.Complaints, policy.ScopeFor(a, policy.ResourceComplaint))))
			}).
			Preload("Complaints.Reporter").
			Preload("Complaints.Assignee")
	})
	if err != nil {
		return HouseDetail{}, err
	}
	d := HouseDetail{House: h}
	d.RecentPayments = h.Payments[:min(len(h.Payments), recentLimit)]
	d.RecentComplaints = h.Complaints[:min(len(h.Complaints), recentLimit)]
	return d, nil
}

func (s *Service) CreateHouse(ctx context.Context, a policy.Actor, in dto.HouseInput, fields []string) (m.House, error) {
	if err := policy.Authorize(a, policy.ActionCreate, policy.ResourceHouse); err != nil {
		return m.House{}, err
	}
	if err := policy.CheckCreateFields(a, policy.ResourceHouse, fields); err != nil {
		return m.House{}, err
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return m.House{}, err
	}

	h := in.ToModel()
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.blockAvailable(ctx, tx, h.BlockNumber, uuid.Nil); err != nil {
			return err
		}
		return tx.Create(&h).Error
	})
	if err != nil {
		return m.House{}, apperror.FromDB(err, "house", "")
	}
	s.Log.Info("house created", zap.String("id", h.ID.String()), zap.String("block", h.BlockNumber), zap.String("actor", a.ID.String()))
	return h, nil
}

func (s *Service) UpdateHouse(ctx context.Context, a policy.Actor, id uuid.UUID, patch dto.HousePatch, fields []string) (m.House, error) {
	if err := policy.Authorize(a, policy.ActionUpdate, policy.ResourceHouse); err != nil {
		return m.House{}, err
	}
	var out m.House
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur m.House
		if err := loadForWrite(ctx, tx, policy.ResourceHouse, id, &cur); err != nil {
			return err
		}
		if err := policy.AuthorizeRecord(a, policy.ActionUpdate, policy.ResourceHouse, policy.Record{Status: cur.Status}); err != nil {
			return err
		}
		if err := policy.CheckFields(a, policy.ResourceHouse, fields); err != nil {
			return err
		}

		in := dto.HouseInputFrom(cur)
		patch.ApplyTo(&in)
		in.Normalize()
		if err := in.Validate(); err != nil {
			return err
		}
		if contains(fields, "block_number") {
			if err := s.blockAvailable(ctx, tx, in.BlockNumber, id); err != nil {
				return err
			}
		}
		if cols := in.Columns(fields); len(cols) > 0 {
			if err := tx.Model(&m.House{}).Where("id = ?", id).Updates(cols).Error; err != nil {
				return err
			}
		}
		return tx.Take(&out, "id = ?", id).Error
	})
	if err != nil {
		return m.House{}, apperror.FromDB(err, "house", id.String())
	}
	return out, nil
}

// DeleteHouse menghapus rumah beserta penghuni, pembayaran, dan keluhannya
// dalam satu transaksi (tidak bergantung pada ON DELETE CASCADE driver).
func (s *Service) DeleteHouse(ctx context.Context, a policy.Actor, id uuid.UUID) error {
	if err := policy.Authorize(a, policy.ActionDelete, policy.ResourceHouse); err != nil {
		return err
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur m.House
		if err := loadForWrite(ctx, tx, policy.ResourceHouse, id, &cur); err != nil {
			return err
		}
		if err := policy.AuthorizeRecord(a, policy.ActionDelete, policy.ResourceHouse, policy.Record{Status: cur.Status}); err != nil {
			return err
		}
		for _, child := range []any{&m.Resident{}, &m.Payment{}, &m.Complaint{}} {
			if err := tx.Where("house_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&m.House{}, "id = ?", id).Error
	})
	if err != nil {
		return apperror.FromDB(err, "house", id.String())
	}
	s.Log.Info("house deleted", zap.String("id", id.String()), zap.String("actor", a.ID.String()))
	return nil
}

// blockAvailable: block_number unik (case-insensitive), kecuali record itu sendiri.
func (s *Service) blockAvailable(ctx context.Context, tx *gorm.DB, block string, self uuid.UUID) error {
	q := tx.WithContext(ctx).Model(&m.House{}).Where("LOWER(block_number) = ?", strings.ToLower(block))
	if self != uuid.Nil {
		q = q.Where("id <> ?", self)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return apperror.NewValidation("block_number", msgBlockTaken)
	}
	return nil
}
