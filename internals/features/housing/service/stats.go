package service

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	m "sirumah_backend/internals/features/housing/model"
	"sirumah_backend/internals/features/housing/query"
	"sirumah_backend/internals/policy"
)

/* ===============================
   Stats per entitas
   Dihitung dari query.Base + query.Apply yang sama dengan list, jadi
   total di sini selalu sama dengan total halaman list.
=================================*/

type HouseStats struct {
	Total       int64 `json:"total"`
	Available   int64 `json:"available"`
	Sold        int64 `json:"sold"`
	Reserved    int64 `json:"reserved"`
	Maintenance int64 `json:"maintenance"`
}

type ResidentStats struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
	Owners int64 `json:"owners"`
	Tenant int64 `json:"tenants"`
}

type PaymentStats struct {
	Total       int64           `json:"total"`
	Pending     int64           `json:"pending"`
	Paid        int64           `json:"paid"`
	Overdue     int64           `json:"overdue"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
}

type ComplaintStats struct {
	Total        int64 `json:"total"`
	Open         int64 `json:"open"`
	Resolved     int64 `json:"resolved"`
	HighPriority int64 `json:"high_priority"`
}

// scoped: query stats untuk actor; actor tanpa izin list dapat ScopeNone (0 semua).
func (s *Service) scoped(ctx context.Context, a policy.Actor, t query.Target, f query.Filters) (*gorm.DB, error) {
	return query.Apply(query.Base(ctx, s.DB, t, policy.ScopeFor(a, t.Resource)), t, f)
}

func (s *Service) HouseStats(ctx context.Context, a policy.Actor, f query.Filters) (HouseStats, error) {
	var st HouseStats
	q, err := s.scoped(ctx, a, query.Houses, f)
	if err != nil {
		return st, err
	}
	err = q.Select(
		"COUNT(*) AS total, "+
			sumIf("houses.status = ?")+" AS available, "+
			sumIf("houses.status = ?")+" AS sold, "+
			sumIf("houses.status = ?")+" AS reserved, "+
			sumIf("houses.status = ?")+" AS maintenance",
		m.HouseAvailable, m.HouseSold, m.HouseReserved, m.HouseMaintenance,
	).Scan(&st).Error
	return st, err
}

func (s *Service) ResidentStats(ctx context.Context, a policy.Actor, f query.Filters) (ResidentStats, error) {
	var st ResidentStats
	q, err := s.scoped(ctx, a, query.Residents, f)
	if err != nil {
		return st, err
	}
	err = q.Select(
		"COUNT(*) AS total, "+
			sumIf("residents.is_active = ?")+" AS active, "+
			sumIf("residents.relationship = ?")+" AS owners, "+
			sumIf("residents.relationship = ?")+" AS tenant",
		true, m.RelationshipOwner, m.RelationshipTenant,
	).Scan(&st).Error
	return st, err
}

func (s *Service) PaymentStats(ctx context.Context, a policy.Actor, f query.Filters) (PaymentStats, error) {
	var st PaymentStats
	q, err := s.scoped(ctx, a, query.Payments, f)
	if err != nil {
		return st, err
	}
	err = q.Select(
		"COUNT(*) AS total, "+
			sumIf("payments.status = ?")+" AS pending, "+
			sumIf("payments.status = ?")+" AS paid, "+
			sumIf("payments.status = ?")+" AS overdue, "+
			"COALESCE(SUM(payments.amount), 0) AS total_amount, "+
			"COALESCE(SUM(CASE WHEN payments.status = ? THEN payments.amount ELSE 0 END), 0) AS paid_amount",
		m.PaymentPending, m.PaymentPaid, m.PaymentOverdue, m.PaymentPaid,
	).Scan(&st).Error
	return st, err
}

func (s *Service) ComplaintStats(ctx context.Context, a policy.Actor, f query.Filters) (ComplaintStats, error) {
	var st ComplaintStats
	q, err := s.scoped(ctx, a, query.Complaints, f)
	if err != nil {
		return st, err
	}
	err = q.Select(
		"COUNT(*) AS total, "+
			sumIf("complaints.status IN ?")+" AS open, "+
			sumIf("complaints.status = ?")+" AS resolved, "+
			sumIf("complaints.priority IN ?")+" AS high_priority",
		[]string{m.ComplaintOpen, m.ComplaintInProgress}, m.ComplaintResolved,
		[]string{m.PriorityHigh, m.PriorityUrgent},
	).Scan(&st).Error
	return st, err
}

func sumIf(cond string) string {
	return "COALESCE(SUM(CASE WHEN " + cond + " THEN 1 ELSE 0 END), 0)"
}
