package bills

import (
	"context"

	"arthavidhi-backend/internal/apperr"
	"arthavidhi-backend/internal/auth"
	"arthavidhi-backend/internal/billing"
	"arthavidhi-backend/internal/models"

	"gorm.io/datatypes"
)

// CreateBill validates the input, assigns the next invoice number, resolves
// the discount to an absolute amount and persists the bill with its items in
// one transaction. A unique-constraint violation on the invoice number means
// a concurrent create won the number; the sequence-then-insert step is
// retried once against the fresh state.
func (s *Service) CreateBill(ctx context.Context, sess auth.Session, in CreateBillInput) (*BillDetails, error) {
	if err := s.validateCreate(in); err != nil {
		return nil, err
	}

	// Totals from the as-entered discount; only the resolved amount is stored.
	totals := billing.ComputeTotals(in.lineItems(), in.discountSpec())

	var created *models.Bill
	for attempt := 0; ; attempt++ {
		last, err := s.bills.LastCreated(ctx)
		if err != nil {
			s.logError("CreateBill", nil, err)
			return nil, apperr.Storage("Database Error: Failed to create bill.", err)
		}
		lastNumber := ""
		if last != nil {
			lastNumber = last.InvoiceNumber
		}

		bill := &models.Bill{
			InvoiceNumber:   billing.NextInvoiceNumber(lastNumber),
			ClientName:      in.ClientName,
			ClientAddress:   in.ClientAddress,
			ClientPhone:     in.ClientPhone,
			ClientPanNumber: in.PanNumber,
			BillDate:        datatypes.Date(in.BillDate),
			DueDate:         datatypes.Date(in.DueDate),
			Discount:        totals.Discount,
			Status:          models.BillStatusPending,
			UserID:          sess.UserID,
			Items:           make([]models.BillItem, len(in.Items)),
		}
		for i, it := range in.Items {
			bill.Items[i] = models.BillItem{
				Description: it.Description,
				Quantity:    it.Quantity,
				Unit:        it.Unit,
				Rate:        it.Rate,
			}
		}

		err = s.bills.CreateWithItems(ctx, bill)
		if err == nil {
			created = bill
			break
		}
		if isDuplicateKey(err) {
			if attempt == 0 {
				continue
			}
			return nil, apperr.Conflict("Invoice number was taken by a concurrent bill, please retry.")
		}
		s.logError("CreateBill", bill.InvoiceNumber, err)
		return nil, apperr.Storage("Database Error: Failed to create bill.", err)
	}

	persisted, err := s.bills.GetWithItems(ctx, created.ID)
	if err != nil {
		s.logError("CreateBill", created.ID, err)
		return nil, apperr.Storage("Database Error: Failed to retrieve the created bill after saving.", err)
	}

	return &BillDetails{
		Bill:    persisted,
		Company: s.companyOrPlaceholder(ctx, sess.UserID),
		Totals:  totals,
	}, nil
}

// companyOrPlaceholder is a best-effort read: the bill must always render,
// so a missing profile or a failed lookup falls back to the placeholder.
func (s *Service) companyOrPlaceholder(ctx context.Context, userID uint) *models.Company {
	company, err := s.companies.ByUserID(ctx, userID)
	if err != nil {
		s.logError("companyOrPlaceholder", userID, err)
		return models.PlaceholderCompany()
	}
	if company == nil {
		return models.PlaceholderCompany()
	}
	return company
}
