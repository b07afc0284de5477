package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"

	m "sirumah_backend/internals/features/housing/model"
)

var transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "sirumah",
	Name:      "status_transitions_total",
	Help:      "Perubahan status yang memicu kolom turunan (paid, resolved).",
}, []string{"entity", "status"})

/* ===============================
   Efek samping transisi status
   Kolom turunan ikut di UPDATE yang sama dengan status. COALESCE/CASE
   menjaga nilai pertama: sekali terisi tidak pernah diganti.
=================================*/

// paymentTransition: pending/overdue/cancelled → paid mengisi paid_date & paid_by.
func paymentTransition(oldStatus, newStatus string, actor uuid.UUID, today time.Time) map[string]any {
	if newStatus != m.PaymentPaid || oldStatus == m.PaymentPaid {
		return nil
	}
	return map[string]any{
		"paid_by":   gorm.Expr("CASE WHEN paid_date IS NULL THEN ? ELSE paid_by END", actor),
		"paid_date": gorm.Expr("COALESCE(paid_date, ?)", today),
	}
}

// complaintTransition: status apa pun → resolved mengisi resolved_date.
func complaintTransition(oldStatus, newStatus string, today time.Time) map[string]any {
	if newStatus != m.ComplaintResolved || oldStatus == m.ComplaintResolved {
		return nil
	}
	return map[string]any{
		"resolved_date": gorm.Expr("COALESCE(resolved_date, ?)", today),
	}
}

func merge(dst, src map[string]any) map[string]any {
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
