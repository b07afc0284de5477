package service

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	m "sirumah_backend/internals/features/housing/model"
	"sirumah_backend/internals/features/housing/query"
	userModel "sirumah_backend/internals/features/users/user/model"
	"sirumah_backend/internals/helpers/dbtime"
	"sirumah_backend/internals/policy"
)

const (
	exportSheet   = "Pembayaran"
	exportMaxRows = 10000
)

var exportHeaders = []string{
	"Blok/Unit", "Jenis", "Jumlah", "Jatuh Tempo", "Tanggal Bayar",
	"Status", "No. Kwitansi", "Keterangan", "Dibuat Oleh", "Dibayar Oleh",
}

// ExportPayments menulis pembayaran (filter + row scope sama dengan list)
// sebagai workbook XLSX ke w.
func (s *Service) ExportPayments(ctx context.Context, a policy.Actor, f query.Filters, w io.Writer) (int, error) {
	if err := policy.Authorize(a, policy.ActionList, policy.ResourcePayment); err != nil {
		return 0, err
	}
	q, err := s.scoped(ctx, a, query.Payments, f)
	if err != nil {
		return 0, err
	}
	var rows []m.Payment
	if err := paymentRelations(q).
		Order("payments.due_date DESC").
		Limit(exportMaxRows).
		Find(&rows).Error; err != nil {
		return 0, err
	}

	x := excelize.NewFile()
	defer func() {
		if err := x.Close(); err != nil {
			s.Log.Warn("close workbook", zap.Error(err))
		}
	}()
	if err := x.SetSheetName(x.GetSheetName(0), exportSheet); err != nil {
		return 0, err
	}

	style, err := x.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return 0, err
	}
	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := x.SetCellValue(exportSheet, cell, h); err != nil {
			return 0, err
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
	if err := x.SetCellStyle(exportSheet, "A1", lastCol+"1", style); err != nil {
		return 0, err
	}

	for i, p := range rows {
		if err := x.SetSheetRow(exportSheet, fmt.Sprintf("A%d", i+2), &[]any{
			blockOf(p), p.PaymentType, p.Amount.InexactFloat64(), p.DueDate.Format(dbtime.DateLayout),
			deref(dbtime.FormatDate(p.PaidDate)), p.Status, deref(p.ReceiptNumber), deref(p.Description),
			userName(p.Creator), userName(p.Payer),
		}); err != nil {
			return 0, err
		}
	}
	if err := x.SetColWidth(exportSheet, "A", lastCol, 18); err != nil {
		return 0, err
	}
	if err := x.Write(w); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func blockOf(p m.Payment) string {
	if p.House != nil {
		return p.House.BlockNumber
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func userName(u *userModel.UserModel) string {
	if u == nil {
		return ""
	}
	return u.Name
}
