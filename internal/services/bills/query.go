package bills

import (
	"context"
	"errors"

	"arthavidhi-backend/internal/apperr"
	"arthavidhi-backend/internal/auth"
	"arthavidhi-backend/internal/billing"
	"arthavidhi-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetBillDetails assembles the bill, the owner's company and totals
// recomputed from the stored discount amount. The percentage framing the user
// may have entered at create time is gone by design, so the label is the
// generic "Discount".
func (s *Service) GetBillDetails(ctx context.Context, sess auth.Session, billID uint) (*BillDetails, error) {
	bill, err := s.bills.GetWithItems(ctx, billID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Bill not found.")
	}
	if err != nil {
		s.logError("GetBillDetails", billID, err)
		return nil, apperr.Storage("Database Error: Failed to fetch bill details.", err)
	}

	return &BillDetails{
		Bill:    bill,
		Company: s.companyOrPlaceholder(ctx, sess.UserID),
		Totals:  billing.ComputeTotals(lineItems(bill.Items), billing.StoredDiscount(bill.Discount)),
	}, nil
}

// ListBills returns lightweight rows for the bill table, newest first, with
// each amount recomputed from the stored items and discount.
func (s *Service) ListBills(ctx context.Context) ([]BillRow, error) {
	billList, err := s.bills.ListWithItems(ctx)
	if err != nil {
		s.logError("ListBills", nil, err)
		return nil, apperr.Storage("Database Error: Failed to fetch bills.", err)
	}

	rows := make([]BillRow, len(billList))
	for i := range billList {
		rows[i] = rowOf(&billList[i])
	}
	return rows, nil
}

// GetDashboardSummary aggregates revenue and status counts over every bill
// and keeps the 5 most recent rows for display.
func (s *Service) GetDashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	billList, err := s.bills.ListWithItems(ctx)
	if err != nil {
		s.logError("GetDashboardSummary", nil, err)
		return nil, apperr.Storage("Database Error: Failed to fetch dashboard data.", err)
	}

	stats := DashboardStats{
		TotalRevenue: decimal.Zero,
		TotalBills:   len(billList),
	}
	rows := make([]BillRow, 0, len(billList))
	for i := range billList {
		row := rowOf(&billList[i])
		stats.TotalRevenue = stats.TotalRevenue.Add(row.Amount)
		if row.Status == models.BillStatusPaid {
			stats.PaidBills++
		}
		rows = append(rows, row)
	}
	stats.DueBills = stats.TotalBills - stats.PaidBills

	if len(rows) > 5 {
		rows = rows[:5]
	}
	return &DashboardSummary{Stats: stats, RecentBills: rows}, nil
}

func rowOf(bill *models.Bill) BillRow {
	totals := billing.ComputeTotals(lineItems(bill.Items), billing.StoredDiscount(bill.Discount))
	return BillRow{
		ID:            bill.ID,
		InvoiceNumber: bill.InvoiceNumber,
		ClientName:    bill.ClientName,
		ClientPhone:   bill.ClientPhone,
		BillDate:      bill.BillDate,
		Status:        bill.Status,
		Amount:        totals.Total,
	}
}
