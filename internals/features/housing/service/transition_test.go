package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sirumah_backend/internals/features/housing/dto"
	m "sirumah_backend/internals/features/housing/model"
	"sirumah_backend/internals/helpers/apperror"
	"sirumah_backend/internals/helpers/dbtime"
)

func TestManagerMarksPaymentPaid(t *testing.T) {
	f := newFixture(t)
	h := f.house("A1")
	p := f.payment(h, m.PaymentPending, 150000)

	patch, fields := decodePatch[dto.PaymentPatch](t, `{"status":"paid"}`)
	got, err := f.svc.UpdatePayment(ctx, f.manager, p.ID, patch, fields)
	require.NoError(t, err)

	assert.Equal(t, m.PaymentPaid, got.Status)
	require.NotNil(t, got.PaidDate)
	assert.Equal(t, "2024-05-10", *dbtime.FormatDate(got.PaidDate))
	require.NotNil(t, got.PaidBy)
	assert.Equal(t, f.manager.ID, *got.PaidBy)
	require.NotNil(t, got.Payer)
	assert.Equal(t, f.manager.ID, got.Payer.ID)
}

func TestPaymentTransitionIsIdempotentAndMonotonic(t *testing.T) {
	f := newFixture(t)
	h := f.house("A1")
	p := f.payment(h, m.PaymentPending, 150000)

	toPaid, paidFields := decodePatch[dto.PaymentPatch](t, `{"status":"paid"}`)
	_, err := f.svc.UpdatePayment(ctx, f.manager, p.ID, toPaid, paidFields)
	require.NoError(t, err)

	// status sama, hari berbeda, actor berbeda
	f.clock.T = f.clock.T.AddDate(0, 0, 3)
	got, err := f.svc.UpdatePayment(ctx, f.admin, p.ID, toPaid, paidFields)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-10", *dbtime.FormatDate(got.PaidDate))
	assert.Equal(t, f.manager.ID, *got.PaidBy)

	// keluar lalu masuk lagi ke paid
	toPending, pendingFields := decodePatch[dto.PaymentPatch](t, `{"status":"pending"}`)
	got, err = f.svc.UpdatePayment(ctx, f.admin, p.ID, toPending, pendingFields)
	require.NoError(t, err)
	assert.Equal(t, m.PaymentPending, got.Status)
	require.NotNil(t, got.PaidDate, "paid_date is never cleared")

	f.clock.T = f.clock.T.AddDate(0, 1, 0)
	got, err = f.svc.UpdatePayment(ctx, f.admin, p.ID, toPaid, paidFields)
	require.NoError(t, err)
	assert.Equal(t, m.PaymentPaid, got.Status)
	assert.Equal(t, "2024-05-10", *dbtime.FormatDate(got.PaidDate))
	assert.Equal(t, f.manager.ID, *got.PaidBy)
}

func TestPaymentOtherTransitionsHaveNoSideEffects(t *testing.T) {
	f := newFixture(t)
	h := f.house("A1")
	for _, status := range []string{m.PaymentOverdue, m.PaymentCancelled, m.PaymentPending} {
		p := f.payment(h, m.PaymentPending, 100)
		patch, fields := decodePatch[dto.PaymentPatch](t, fmt.Sprintf(`{"status":%q}`, status))
		got, err := f.svc.UpdatePayment(ctx, f.manager, p.ID, patch, fields)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
		assert.Nil(t, got.PaidDate)
		assert.Nil(t, got.PaidBy)
	}
}

func TestPaymentCreatedPaidIsStamped(t *testing.T) {
	f := newFixture(t)
	h := f.house("A1")
	in, fields := decodeCreate[dto.PaymentInput](t, fmt.Sprintf(
		`{"house_id":%q,"payment_type":"IPL","amount":"250000","due_date":"2024-05-01","status":"paid","paid_by":%q,"created_by":%q}`,
		h.ID, f.admin.ID, f.admin.ID))

	got, err := f.svc.CreatePayment(ctx, f.manager, in, fields)
	require.NoError(t, err)
	assert.Equal(t, f.manager.ID, got.CreatedBy)
	assert.Equal(t, f.manager.ID, *got.PaidBy)
	assert.Equal(t, "2024-05-10", *dbtime.FormatDate(got.PaidDate))
	assert.JSONEq(t, fmt.Sprintf(`{"id":%q,"block_number":"A1","address":"Jl. Melati A1"}`, h.ID), string(got.HouseSnapshot))
}

func TestPaymentFieldsAreNotWritable(t *testing.T) {
	f := newFixture(t)
	h := f.house("A1")
	p := f.payment(h, m.PaymentPending, 100)

	patch, fields := decodePatch[dto.PaymentPatch](t, `{"status":"paid","paid_date":"2020-01-01"}`)
	_, err := f.svc.UpdatePayment(ctx, f.manager, p.ID, patch, fields)
	var ae *apperror.AuthorizationError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, []string{"paid_date"}, ae.Fields)

	var cur m.Payment
	require.NoError(t, f.db.Take(&cur, "id = ?", p.ID).Error)
	assert.Equal(t, m.PaymentPending, cur.Status)
}

func TestComplaintResolvedDate(t *testing.T) {
	f := newFixture(t)
	h := f.house("A1")
	c := f.complaint(h, f.resident, m.ComplaintInProgress, m.PriorityHigh)

	resolve, rf := decodePatch[dto.ComplaintPatch](t, `{"status":"resolved","response":"Sudah diperbaiki"}`)
	got, err := f.svc.UpdateComplaint(ctx, f.manager, c.ID, resolve, rf)
	require.NoError(t, err)
	assert.Equal(t, m.ComplaintResolved, got.Status)
	assert.Equal(t, "2024-05-10", *dbtime.FormatDate(got.ResolvedDate))
	assert.Equal(t, "Sudah diperbaiki", *got.Response)

	// closed lalu resolved lagi: tanggal pertama tetap
	f.clock.T = time.Date(2024, 6, 2, 3, 0, 0, 0, time.UTC)
	closeIt, cf := decodePatch[dto.ComplaintPatch](t, `{"status":"closed"}`)
	got, err = f.svc.UpdateComplaint(ctx, f.admin, c.ID, closeIt, cf)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-10", *dbtime.FormatDate(got.ResolvedDate))

	got, err = f.svc.UpdateComplaint(ctx, f.admin, c.ID, resolve, rf)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-10", *dbtime.FormatDate(got.ResolvedDate))
}

func TestComplaintNonResolvedTransitionsKeepResolvedDateEmpty(t *testing.T) {
	f := newFixture(t)
	h := f.house("A1")
	c := f.complaint(h, f.resident, m.ComplaintOpen, m.PriorityLow)
	for _, s := range []string{m.ComplaintInProgress, m.ComplaintClosed, m.ComplaintCancelled, m.ComplaintOpen} {
		patch, fields := decodePatch[dto.ComplaintPatch](t, fmt.Sprintf(`{"status":%q}`, s))
		got, err := f.svc.UpdateComplaint(ctx, f.manager, c.ID, patch, fields)
		require.NoError(t, err)
		assert.Equal(t, s, got.Status)
		assert.Nil(t, got.ResolvedDate)
	}
}

func TestTransitionColumnsOnlyOnEntry(t *testing.T) {
	today := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	assert.NotNil(t, paymentTransition(m.PaymentPending, m.PaymentPaid, uuid.New(), today))
	assert.Nil(t, paymentTransition(m.PaymentPaid, m.PaymentPaid, uuid.New(), today))
	assert.Nil(t, paymentTransition(m.PaymentPaid, m.PaymentCancelled, uuid.New(), today))
	assert.NotNil(t, complaintTransition(m.ComplaintClosed, m.ComplaintResolved, today))
	assert.Nil(t, complaintTransition(m.ComplaintResolved, m.ComplaintResolved, today))
	assert.Nil(t, complaintTransition(m.ComplaintOpen, m.ComplaintClosed, today))
}
