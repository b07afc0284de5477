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

func complaintRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("House").Preload("Reporter").Preload("Assignee")
}

func (s *Service) ListComplaints(ctx context.Context, a policy.Actor, f query.Filters, p helper.Paging) ([]m.Complaint, int64, error) {
	if err := policy.Authorize(a, policy.ActionList, policy.ResourceComplaint); err != nil {
		return nil, 0, err
	}
	var rows []m.Complaint
	total, err := query.List(ctx, s.DB, query.Complaints, policy.ScopeFor(a, policy.ResourceComplaint), f, p, &rows, complaintRelations)
	return rows, total, err
}

func (s *Service) GetComplaint(ctx context.Context, a policy.Actor, id uuid.UUID) (m.Complaint, error) {
	var c m.Complaint
	err := s.loadVisible(ctx, a, query.Complaints, id, &c, complaintRelations)
	return c, err
}

// checkComplaintHouse: rumah harus ada; penghuni hanya boleh rumah tempat
// dia penghuni aktif.
func checkComplaintHouse(ctx context.Context, tx *gorm.DB, a policy.Actor, id *uuid.UUID) (m.House, error) {
	h, err := houseRef(ctx, tx, id)
	if err != nil {
		return h, err
	}
	if policy.ScopeFor(a, policy.ResourceHouse).Kind != policy.ScopeOwnHouses {
		return h, nil
	}
	ok, err := ownsHouse(ctx, tx, a, h.ID)
	if err != nil {
		return h, err
	}
	if !ok {
		return h, apperror.NewValidation("house_id", msgHouseInvalid)
	}
	return h, nil
}

// CreateComplaint: reported_by selalu actor, apa pun isi payload.
func (s *Service) CreateComplaint(ctx context.Context, a policy.Actor, in dto.ComplaintInput, fields []string) (m.Complaint, error) {
	if err := policy.Authorize(a, policy.ActionCreate, policy.ResourceComplaint); err != nil {
		return m.Complaint{}, err
	}
	if err := policy.CheckCreateFields(a, policy.ResourceComplaint, fields); err != nil {
		return m.Complaint{}, err
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return m.Complaint{}, err
	}

	c := in.ToModel()
	c.ReportedBy = a.ID
	if c.Status == m.ComplaintResolved {
		today := dbtime.Today(s.Clock)
		c.ResolvedDate = &today
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		h, err := checkComplaintHouse(ctx, tx, a, in.HouseID)
		if err != nil {
			return err
		}
		if err := checkAssignee(ctx, tx, in.AssignedTo); err != nil {
			return err
		}
		if err := c.SetHouseSnapshot(h); err != nil {
			return err
		}
		return tx.Create(&c).Error
	})
	if err != nil {
		return m.Complaint{}, apperror.FromDB(err, "complaint", "")
	}
	if c.Status == m.ComplaintResolved {
		transitionsTotal.WithLabelValues("complaint", m.ComplaintResolved).Inc()
	}
	s.Log.Info("complaint created", zap.String("id", c.ID.String()), zap.String("priority", c.Priority), zap.String("actor", a.ID.String()))
	return s.reloadComplaint(ctx, c.ID)
}

// UpdateComplaint: staf bebas; penghuni hanya keluhan miliknya yang belum
// resolved/closed dan hanya field pelapor.
func (s *Service) UpdateComplaint(ctx context.Context, a policy.Actor, id uuid.UUID, patch dto.ComplaintPatch, fields []string) (m.Complaint, error) {
	if err := policy.Authorize(a, policy.ActionUpdate, policy.ResourceComplaint); err != nil {
		return m.Complaint{}, err
	}
	var transitioned bool
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur m.Complaint
		if err := loadForWrite(ctx, tx, policy.ResourceComplaint, id, &cur); err != nil {
			return err
		}
		if err := policy.AuthorizeRecord(a, policy.ActionUpdate, policy.ResourceComplaint, policy.Record{OwnerID: cur.ReportedBy, Status: cur.Status}); err != nil {
			return err
		}
		if err := policy.CheckFields(a, policy.ResourceComplaint, fields); err != nil {
			return err
		}

		in := dto.ComplaintInputFrom(cur)
		patch.ApplyTo(&in)
		in.Normalize()
		if err := in.Validate(); err != nil {
			return err
		}
		cols := in.Columns(fields)
		if contains(fields, "house_id") && (in.HouseID == nil || *in.HouseID != cur.HouseID) {
			h, err := checkComplaintHouse(ctx, tx, a, in.HouseID)
			if err != nil {
				return err
			}
			var snap m.Complaint
			if err := snap.SetHouseSnapshot(h); err != nil {
				return err
			}
			cols["house_snapshot"] = snap.HouseSnapshot
		}
		if contains(fields, "assigned_to") {
			if err := checkAssignee(ctx, tx, in.AssignedTo); err != nil {
				return err
			}
		}
		if side := complaintTransition(cur.Status, in.Status, dbtime.Today(s.Clock)); side != nil {
			merge(cols, side)
			transitioned = true
		}
		if len(cols) == 0 {
			return nil
		}
		return tx.Model(&m.Complaint{}).Where("id = ?", id).Updates(cols).Error
	})
	if err != nil {
		return m.Complaint{}, apperror.FromDB(err, "complaint", id.String())
	}
	if transitioned {
		transitionsTotal.WithLabelValues("complaint", m.ComplaintResolved).Inc()
		s.Log.Info("complaint resolved", zap.String("id", id.String()), zap.String("actor", a.ID.String()))
	}
	return s.reloadComplaint(ctx, id)
}

func (s *Service) DeleteComplaint(ctx context.Context, a policy.Actor, id uuid.UUID) error {
	if err := policy.Authorize(a, policy.ActionDelete, policy.ResourceComplaint); err != nil {
		return err
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur m.Complaint
		if err := loadForWrite(ctx, tx, policy.ResourceComplaint, id, &cur); err != nil {
			return err
		}
		if err := policy.AuthorizeRecord(a, policy.ActionDelete, policy.ResourceComplaint, policy.Record{OwnerID: cur.ReportedBy, Status: cur.Status}); err != nil {
			return err
		}
		return tx.Delete(&m.Complaint{}, "id = ?", id).Error
	})
	return apperror.FromDB(err, "complaint", id.String())
}

func (s *Service) reloadComplaint(ctx context.Context, id uuid.UUID) (m.Complaint, error) {
	var c m.Complaint
	err := complaintRelations(s.DB.WithContext(ctx)).Take(&c, "id = ?", id).Error
	return c, apperror.FromDB(err, "complaint", id.String())
}

// ComplaintForEdit: 403 sebelum form dirender kalau actor tidak boleh mengubah.
func (s *Service) ComplaintForEdit(ctx context.Context, a policy.Actor, id uuid.UUID) (m.Complaint, FormData, error) {
	c, err := s.GetComplaint(ctx, a, id)
	if err != nil {
		return c, FormData{}, err
	}
	if err := policy.AuthorizeRecord(a, policy.ActionUpdate, policy.ResourceComplaint, policy.Record{OwnerID: c.ReportedBy, Status: c.Status}); err != nil {
		return c, FormData{}, err
	}
	fd, err := s.ComplaintForm(ctx, a, policy.ActionUpdate)
	return c, fd, err
}
