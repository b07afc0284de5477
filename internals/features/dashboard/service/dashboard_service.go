// Package service menyusun ringkasan dashboard per role: counter dengan row
// scope yang sama dengan list, plus 5 aktivitas terbaru per entitas.
package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sirumah_backend/internals/features/housing/dto"
	m "sirumah_backend/internals/features/housing/model"
	"sirumah_backend/internals/features/housing/query"
	housing "sirumah_backend/internals/features/housing/service"
	"sirumah_backend/internals/helpers/dbtime"
	"sirumah_backend/internals/policy"
)

const recentLimit = 5

type PaymentCounters struct {
	Total         int64 `json:"total"`
	Pending       int64 `json:"pending"`
	Overdue       int64 `json:"overdue"`
	PaidThisMonth int64 `json:"paid_this_month"`
}

type ComplaintCounters struct {
	Total             int64 `json:"total"`
	Open              int64 `json:"open"`
	HighPriority      int64 `json:"high_priority"`
	ResolvedThisMonth int64 `json:"resolved_this_month"`
}

type Recent struct {
	Houses     []dto.HouseResponse     `json:"recent_houses,omitempty"`
	Payments   []dto.PaymentResponse   `json:"recent_payments,omitempty"`
	Complaints []dto.ComplaintResponse `json:"recent_complaints,omitempty"`
}

// Dashboard: block yang actor tidak boleh list dibiarkan nil. Untuk penghuni
// counter pembayaran/keluhan otomatis "milik sendiri" karena row scope.
type Dashboard struct {
	Role       string                 `json:"role"`
	Houses     *housing.HouseStats    `json:"houses,omitempty"`
	Residents  *housing.ResidentStats `json:"residents,omitempty"`
	Payments   *PaymentCounters       `json:"payments,omitempty"`
	Complaints *ComplaintCounters     `json:"complaints,omitempty"`
	OwnScope   map[string]bool        `json:"own_scope"`
	Recent     Recent                 `json:"recent_activity"`
}

type Service struct {
	housing *housing.Service
}

func New(h *housing.Service) *Service { return &Service{housing: h} }

func (s *Service) db() *gorm.DB { return s.housing.DB }

func (s *Service) Build(ctx context.Context, a policy.Actor) (Dashboard, error) {
	d := Dashboard{Role: a.Role.String(), OwnScope: map[string]bool{}}
	none := query.Filters{}

	if policy.Can(a, policy.ActionList, policy.ResourceHouse) {
		hs, err := s.housing.HouseStats(ctx, a, none)
		if err != nil {
			return d, err
		}
		d.Houses = &hs
		d.OwnScope["houses"] = policy.ScopeFor(a, policy.ResourceHouse).Kind != policy.ScopeAll
	}
	if policy.Can(a, policy.ActionList, policy.ResourceResident) {
		rs, err := s.housing.ResidentStats(ctx, a, none)
		if err != nil {
			return d, err
		}
		d.Residents = &rs
		d.OwnScope["residents"] = policy.ScopeFor(a, policy.ResourceResident).Kind != policy.ScopeAll
	}
	if policy.Can(a, policy.ActionList, policy.ResourcePayment) {
		pc, err := s.paymentCounters(ctx, a)
		if err != nil {
			return d, err
		}
		d.Payments = &pc
		d.OwnScope["payments"] = policy.ScopeFor(a, policy.ResourcePayment).Kind != policy.ScopeAll
	}
	if policy.Can(a, policy.ActionList, policy.ResourceComplaint) {
		cc, err := s.complaintCounters(ctx, a)
		if err != nil {
			return d, err
		}
		d.Complaints = &cc
		d.OwnScope["complaints"] = policy.ScopeFor(a, policy.ResourceComplaint).Kind != policy.ScopeAll
	}

	recent, err := s.recent(ctx, a)
	if err != nil {
		return d, err
	}
	d.Recent = recent
	return d, nil
}

// thisMonth: [awal bulan, awal bulan berikutnya) sebagai tanggal kalender.
func (s *Service) thisMonth() (time.Time, time.Time) {
	start, end := dbtime.MonthRange(s.housing.Clock.Now())
	return dbtime.DateOf(start), dbtime.DateOf(end)
}

func (s *Service) paymentCounters(ctx context.Context, a policy.Actor) (PaymentCounters, error) {
	var pc PaymentCounters
	ps, err := s.housing.PaymentStats(ctx, a, query.Filters{})
	if err != nil {
		return pc, err
	}
	pc.Total, pc.Pending, pc.Overdue = ps.Total, ps.Pending, ps.Overdue

	from, to := s.thisMonth()
	err = query.Base(ctx, s.db(), query.Payments, policy.ScopeFor(a, policy.ResourcePayment)).
		Where("payments.status = ? AND payments.paid_date >= ? AND payments.paid_date < ?", m.PaymentPaid, from, to).
		Count(&pc.PaidThisMonth).Error
	return pc, err
}

func (s *Service) complaintCounters(ctx context.Context, a policy.Actor) (ComplaintCounters, error) {
	var cc ComplaintCounters
	cs, err := s.housing.ComplaintStats(ctx, a, query.Filters{})
	if err != nil {
		return cc, err
	}
	cc.Total, cc.Open, cc.HighPriority = cs.Total, cs.Open, cs.HighPriority

	from, to := s.thisMonth()
	err = query.Base(ctx, s.db(), query.Complaints, policy.ScopeFor(a, policy.ResourceComplaint)).
		Where("complaints.status = ? AND complaints.resolved_date >= ? AND complaints.resolved_date < ?", m.ComplaintResolved, from, to).
		Count(&cc.ResolvedThisMonth).Error
	return cc, err
}

func latest(q *gorm.DB, table string) *gorm.DB {
	return q.Order(table + ".created_at DESC").Limit(recentLimit)
}

func (s *Service) recent(ctx context.Context, a policy.Actor) (Recent, error) {
	var r Recent

	// rumah terbaru hanya untuk role yang mengelola rumah
	if policy.Can(a, policy.ActionCreate, policy.ResourceHouse) {
		var rows []m.House
		q := query.Base(ctx, s.db(), query.Houses, policy.ScopeFor(a, policy.ResourceHouse)).
			Preload("Residents", m.ScopeActiveResidents)
		if err := latest(q, "houses").Find(&rows).Error; err != nil {
			return r, err
		}
		r.Houses = dto.FromHouseModels(rows)
	}
	if policy.Can(a, policy.ActionList, policy.ResourcePayment) {
		var rows []m.Payment
		q := query.Base(ctx, s.db(), query.Payments, policy.ScopeFor(a, policy.ResourcePayment)).
			Preload("House").Preload("Creator")
		if err := latest(q, "payments").Find(&rows).Error; err != nil {
			return r, err
		}
		r.Payments = dto.FromPaymentModels(rows)
	}
	if policy.Can(a, policy.ActionList, policy.ResourceComplaint) {
		var rows []m.Complaint
		q := query.Base(ctx, s.db(), query.Complaints, policy.ScopeFor(a, policy.ResourceComplaint)).
			Preload("House").Preload("Reporter").Preload("Assignee")
		if err := latest(q, "complaints").Find(&rows).Error; err != nil {
			return r, err
		}
		r.Complaints = dto.FromComplaintModels(rows)
	}
	return r, nil
}
