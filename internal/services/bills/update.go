package bills

import (
	"context"
	"errors"

	"arthavidhi-backend/internal/apperr"
	"arthavidhi-backend/internal/auth"
	"arthavidhi-backend/internal/billing"
	"arthavidhi-backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UpdateBill revalidates the full bill form, re-resolves the discount to an
// absolute amount and replaces the line items in one transaction. The invoice
// number, status and owner keep their stored values.
func (s *Service) UpdateBill(ctx context.Context, sess auth.Session, billID uint, in UpdateBillInput) (*BillDetails, error) {
	if err := s.validateCreate(in); err != nil {
		return nil, err
	}

	existing, err := s.bills.GetWithItems(ctx, billID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Bill not found.")
	}
	if err != nil {
		s.logError("UpdateBill", billID, err)
		return nil, apperr.Storage("Database Error: Failed to update bill.", err)
	}

	totals := billing.ComputeTotals(in.lineItems(), in.discountSpec())

	existing.ClientName = in.ClientName
	existing.ClientAddress = in.ClientAddress
	existing.ClientPhone = in.ClientPhone
	existing.ClientPanNumber = in.PanNumber
	existing.BillDate = datatypes.Date(in.BillDate)
	existing.DueDate = datatypes.Date(in.DueDate)
	existing.Discount = totals.Discount
	existing.Items = make([]models.BillItem, len(in.Items))
	for i, it := range in.Items {
		existing.Items[i] = models.BillItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			Rate:        it.Rate,
		}
	}

	if err := s.bills.UpdateWithItems(ctx, existing); err != nil {
		s.logError("UpdateBill", billID, err)
		return nil, apperr.Storage("Database Error: Failed to update bill.", err)
	}

	persisted, err := s.bills.GetWithItems(ctx, billID)
	if err != nil {
		s.logError("UpdateBill", billID, err)
		return nil, apperr.Storage("Database Error: Failed to retrieve the updated bill after saving.", err)
	}

	return &BillDetails{
		Bill:    persisted,
		Company: s.companyOrPlaceholder(ctx, sess.UserID),
		Totals:  totals,
	}, nil
}

// UpdateBillStatus sets a new status. Any of the three recognised statuses
// may follow any other; there is no automatic transition logic. Pricing is
// untouched.
func (s *Service) UpdateBillStatus(ctx context.Context, billID uint, status models.BillStatus) error {
	if !status.Valid() {
		return apperr.Validation("Invalid status value.")
	}

	updated, err := s.bills.UpdateStatus(ctx, billID, status)
	if err != nil {
		s.logError("UpdateBillStatus", billID, err)
		return apperr.Storage("Database Error: Failed to update bill status.", err)
	}
	if !updated {
		return apperr.NotFound("Bill not found.")
	}
	return nil
}

// DeleteBill removes the bill and its items, both or neither.
func (s *Service) DeleteBill(ctx context.Context, billID uint) error {
	err := s.bills.DeleteWithItems(ctx, billID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Bill not found.")
	}
	if err != nil {
		s.logError("DeleteBill", billID, err)
		return apperr.Storage("Database Error: Failed to delete bill.", err)
	}
	return nil
}
