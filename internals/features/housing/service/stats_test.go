package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	m "sirumah_backend/internals/features/housing/model"
	"sirumah_backend/internals/features/housing/query"
	helper "sirumah_backend/internals/helpers"
	"sirumah_backend/internals/helpers/apperror"
	"sirumah_backend/internals/policy"
)

// seedMixed: dua rumah; resident penghuni aktif A1 saja.
func seedMixed(f *fixture) {
	a1, a2 := f.house("A1"), f.house("A2")
	f.residentOf(a1, &f.resident, true)
	f.residentOf(a2, &f.otherResident, true)
	f.residentOf(a2, nil, false)

	f.payment(a1, m.PaymentPending, 100)
	f.payment(a1, m.PaymentPaid, 250)
	f.payment(a2, m.PaymentOverdue, 300)
	f.payment(a2, m.PaymentPaid, 400)

	f.complaint(a1, f.resident, m.ComplaintOpen, m.PriorityHigh)
	f.complaint(a1, f.resident, m.ComplaintResolved, m.PriorityLow)
	f.complaint(a2, f.otherResident, m.ComplaintInProgress, m.PriorityUrgent)
}

func TestStatsMatchListTotals(t *testing.T) {
	f := newFixture(t)
	seedMixed(f)
	page := helper.NewPaging(1, 100, 15, 0)

	for _, a := range []policy.Actor{f.admin, f.manager, f.sales, f.resident, f.otherResident} {
		for _, flt := range []query.Filters{{}, {Search: "a1"}, {Equals: map[string]string{"status": "paid"}}} {
			if policy.Can(a, policy.ActionList, policy.ResourceHouse) {
				hs, err := f.svc.HouseStats(ctx, a, flt)
				require.NoError(t, err)
				_, total, err := f.svc.ListHouses(ctx, a, flt, page)
				require.NoError(t, err)
				assert.Equalf(t, total, hs.Total, "houses %s", a.Role)
			}
			if policy.Can(a, policy.ActionList, policy.ResourcePayment) {
				ps, err := f.svc.PaymentStats(ctx, a, flt)
				require.NoError(t, err)
				_, total, err := f.svc.ListPayments(ctx, a, flt, page)
				require.NoError(t, err)
				assert.Equalf(t, total, ps.Total, "payments %s", a.Role)
			}
			cs, err := f.svc.ComplaintStats(ctx, a, flt)
			require.NoError(t, err)
			_, total, err := f.svc.ListComplaints(ctx, a, flt, page)
			require.NoError(t, err)
			assert.Equalf(t, total, cs.Total, "complaints %s", a.Role)

			rs, err := f.svc.ResidentStats(ctx, a, flt)
			require.NoError(t, err)
			_, total, err = f.svc.ListResidents(ctx, a, flt, page)
			require.NoError(t, err)
			assert.Equalf(t, total, rs.Total, "residents %s", a.Role)
		}
	}
}

func TestStatsCounters(t *testing.T) {
	f := newFixture(t)
	seedMixed(f)

	ps, err := f.svc.PaymentStats(ctx, f.manager, query.Filters{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, ps.Total)
	assert.EqualValues(t, 1, ps.Pending)
	assert.EqualValues(t, 2, ps.Paid)
	assert.EqualValues(t, 1, ps.Overdue)
	assert.Equal(t, "1050", ps.TotalAmount.String())
	assert.Equal(t, "650", ps.PaidAmount.String())

	// penghuni: hanya rumah A1
	ps, err = f.svc.PaymentStats(ctx, f.resident, query.Filters{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, ps.Total)
	assert.Equal(t, "250", ps.PaidAmount.String())

	cs, err := f.svc.ComplaintStats(ctx, f.admin, query.Filters{})
	require.NoError(t, err)
	assert.Equal(t, ComplaintStats{Total: 3, Open: 2, Resolved: 1, HighPriority: 2}, cs)

	cs, err = f.svc.ComplaintStats(ctx, f.resident, query.Filters{})
	require.NoError(t, err)
	assert.Equal(t, ComplaintStats{Total: 2, Open: 1, Resolved: 1, HighPriority: 1}, cs)

	rs, err := f.svc.ResidentStats(ctx, f.sales, query.Filters{})
	require.NoError(t, err)
	assert.Equal(t, ResidentStats{Total: 3, Active: 2, Owners: 3, Tenant: 0}, rs)

	hs, err := f.svc.HouseStats(ctx, f.sales, query.Filters{})
	require.NoError(t, err)
	assert.Equal(t, HouseStats{Total: 2, Available: 2}, hs)

	// tanpa izin list → semua nol
	ps, err = f.svc.PaymentStats(ctx, f.sales, query.Filters{})
	require.NoError(t, err)
	assert.Zero(t, ps.Total)
}

func TestSalesStaffHasNoPaymentAccess(t *testing.T) {
	f := newFixture(t)
	seedMixed(f)
	_, _, err := f.svc.ListPayments(ctx, f.sales, query.Filters{}, helper.NewPaging(1, 15, 15, 0))
	assert.True(t, apperror.IsAuthorization(err))
	_, err = f.svc.PaymentForm(ctx, f.sales, policy.ActionCreate)
	assert.True(t, apperror.IsAuthorization(err))
	_, err = f.svc.ExportPayments(ctx, f.sales, query.Filters{}, &bytes.Buffer{})
	assert.True(t, apperror.IsAuthorization(err))
}

func TestExportPaymentsXLSX(t *testing.T) {
	f := newFixture(t)
	seedMixed(f)

	var buf bytes.Buffer
	n, err := f.svc.ExportPayments(ctx, f.manager, query.Filters{Equals: map[string]string{"status": "paid"}}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	x, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer x.Close()
	rows, err := x.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, "paid", rows[1][5])
}

func TestComplaintFormScopesHouses(t *testing.T) {
	f := newFixture(t)
	seedMixed(f)

	fd, err := f.svc.ComplaintForm(ctx, f.resident, policy.ActionCreate)
	require.NoError(t, err)
	require.Len(t, fd.Houses, 1)
	assert.Equal(t, "A1", fd.Houses[0].BlockNumber)
	assert.Empty(t, fd.Staff)

	fd, err = f.svc.ComplaintForm(ctx, f.manager, policy.ActionCreate)
	require.NoError(t, err)
	assert.Len(t, fd.Houses, 2)
	assert.Len(t, fd.Staff, 2)
	assert.Contains(t, fd.Options, "status")
}
