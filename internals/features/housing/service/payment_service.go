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
	"sirumah_backend/internals/helpers/dbtime"
	"sirumah_backend/internals/policy"
)

func paymentRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("House").Preload("Creator").Preload("Payer")
}

func (s *Service) ListPayments(ctx context.Context, a policy.Actor, f query.Filters, p helper.Paging) ([]m.Payment, int64, error) {
	if err := policy.Authorize(a, policy.ActionList, policy.ResourcePayment); err != nil {
		return nil, 0, err
	}
	var rows []m.Payment
	total, err := query.List(ctx, s.DB, query.Payments, policy.ScopeFor(a, policy.ResourcePayment), f, p, &rows, paymentRelations)
	return rows, total, err
}

func (s *Service) GetPayment(ctx context.Context, a policy.Actor, id uuid.UUID) (m.Payment, error) {
	var p m.Payment
	err := s.loadVisible(ctx, a, query.Payments, id, &p, paymentRelations)
	return p, err
}

// CreatePayment: created_by selalu actor. Dibuat langsung "paid" → paid_date
// hari ini dan paid_by actor.
func (s *Service) CreatePayment(ctx context.Context, a policy.Actor, in dto.PaymentInput, fields []string) (m.Payment, error) {
	if err := policy.Authorize(a, policy.ActionCreate, policy.ResourcePayment); err != nil {
		return m.Payment{}, err
	}
	if err := policy.CheckCreateFields(a, policy.ResourcePayment, fields); err != nil {
		return m.Payment{}, err
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return m.Payment{}, err
	}

	p := in.ToModel()
	p.CreatedBy = a.ID
	if p.Status == m.PaymentPaid {
		today, payer := dbtime.Today(s.Clock), a.ID
		p.PaidDate, p.PaidBy = &today, &payer
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		h, err := houseRef(ctx, tx, in.HouseID)
		if err != nil {
			return err
		}
		if err := p.SetHouseSnapshot(h); err != nil {
			return err
		}
		return tx.Create(&p).Error
	})
	if err != nil {
		return m.Payment{}, apperror.FromDB(err, "payment", "")
	}
	if p.Status == m.PaymentPaid {
		transitionsTotal.WithLabelValues("payment", m.PaymentPaid).Inc()
	}
	s.Log.Info("payment created", zap.String("id", p.ID.String()), zap.String("status", p.Status), zap.String("actor", a.ID.String()))
	return s.reloadPayment(ctx, p.ID)
}

func (s *Service) UpdatePayment(ctx context.Context, a policy.Actor, id uuid.UUID, patch dto.PaymentPatch, fields []string) (m.Payment, error) {
	if err := policy.Authorize(a, policy.ActionUpdate, policy.ResourcePayment); err != nil {
		return m.Payment{}, err
	}
	var transitioned bool
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur m.Payment
		if err := loadForWrite(ctx, tx, policy.ResourcePayment, id, &cur); err != nil {
			return err
		}
		if err := policy.AuthorizeRecord(a, policy.ActionUpdate, policy.ResourcePayment, policy.Record{OwnerID: cur.CreatedBy, Status: cur.Status}); err != nil {
			return err
		}
		if err := policy.CheckFields(a, policy.ResourcePayment, fields); err != nil {
			return err
		}

		in := dto.PaymentInputFrom(cur)
		patch.ApplyTo(&in)
		in.Normalize()
		if err := in.Validate(); err != nil {
			return err
		}
		cols := in.Columns(fields)
		if contains(fields, "house_id") && (in.HouseID == nil || *in.HouseID != cur.HouseID) {
			h, err := houseRef(ctx, tx, in.HouseID)
			if err != nil {
				return err
			}
			var snap m.Payment
			if err := snap.SetHouseSnapshot(h); err != nil {
				return err
			}
			cols["house_snapshot"] = snap.HouseSnapshot
		}
		if side := paymentTransition(cur.Status, in.Status, a.ID, dbtime.Today(s.Clock)); side != nil {
			merge(cols, side)
			transitioned = true
		}
		if len(cols) == 0 {
			return nil
		}
		return tx.Model(&m.Payment{}).Where("id = ?", id).Updates(cols).Error
	})
	if err != nil {
		return m.Payment{}, apperror.FromDB(err, "payment", id.String())
	}
	if transitioned {
		transitionsTotal.WithLabelValues("payment", m.PaymentPaid).Inc()
		s.Log.Info("payment marked paid", zap.String("id", id.String()), zap.String("actor", a.ID.String()))
	}
	return s.reloadPayment(ctx, id)
}

func (s *Service) DeletePayment(ctx context.Context, a policy.Actor, id uuid.UUID) error {
	if err := policy.Authorize(a, policy.ActionDelete, policy.ResourcePayment); err != nil {
		return err
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur m.Payment
		if err := loadForWrite(ctx, tx, policy.ResourcePayment, id, &cur); err != nil {
			return err
		}
		return tx.Delete(&m.Payment{}, "id = ?", id).Error
	})
	return apperror.FromDB(err, "payment", id.String())
}

func (s *Service) reloadPayment(ctx context.Context, id uuid.UUID) (m.Payment, error) {
	var p m.Payment
	err := paymentRelations(s.DB.WithContext(ctx)).Take(&p, "id = ?", id).Error
	return p, apperror.FromDB(err, "payment", id.String())
}
