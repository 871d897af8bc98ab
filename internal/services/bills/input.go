package bills

import (
	"time"

	"arthavidhi-backend/internal/apperr"
	"arthavidhi-backend/internal/billing"

	"github.com/shopspring/decimal"
)

type ItemInput struct {
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit" validate:"required"`
	Rate        decimal.Decimal `json:"rate"`
}

type CreateBillInput struct {
	ClientName         string               `json:"clientName" validate:"required"`
	ClientAddress      string               `json:"clientAddress" validate:"required"`
	ClientPhone        string               `json:"clientPhone" validate:"required"`
	PanNumber          string               `json:"panNumber"`
	BillDate           time.Time            `json:"billDate" validate:"required"`
	DueDate            time.Time            `json:"dueDate" validate:"required"`
	Items              []ItemInput          `json:"items" validate:"min=1,dive"`
	DiscountType       billing.DiscountKind `json:"discountType" validate:"required,oneof=percentage amount"`
	DiscountPercentage decimal.Decimal      `json:"discountPercentage"`
	DiscountAmount     decimal.Decimal      `json:"discountAmount"`
}

// UpdateBillInput carries the same editable fields as a create; the invoice
// number, status and owner are not part of the form.
type UpdateBillInput = CreateBillInput

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// validateCreate runs the schema checks plus the numeric constraints the
// validator tags cannot express for decimals. Nothing touches storage until
// this passes.
func (s *Service) validateCreate(in CreateBillInput) error {
	if err := s.validate.Struct(in); err != nil {
		return apperr.Validation("Invalid fields!")
	}
	for _, item := range in.Items {
		if item.Quantity.LessThan(one) {
			return apperr.Validation("Quantity must be at least 1")
		}
		if item.Rate.Sign() < 0 {
			return apperr.Validation("Rate must be a positive number")
		}
	}
	if in.DiscountPercentage.Sign() < 0 || in.DiscountPercentage.GreaterThan(hundred) {
		return apperr.Validation("Discount percentage must be between 0 and 100")
	}
	if in.DiscountAmount.Sign() < 0 {
		return apperr.Validation("Discount amount must be a positive number")
	}
	return nil
}

// discountSpec picks out the tagged discount the user entered.
func (in CreateBillInput) discountSpec() billing.DiscountSpec {
	if in.DiscountType == billing.DiscountPercentage {
		return billing.DiscountSpec{Kind: billing.DiscountPercentage, Value: in.DiscountPercentage}
	}
	return billing.DiscountSpec{Kind: billing.DiscountAmount, Value: in.DiscountAmount}
}

func (in CreateBillInput) lineItems() []billing.LineItem {
	out := make([]billing.LineItem, len(in.Items))
	for i, it := range in.Items {
		out[i] = billing.LineItem{Quantity: it.Quantity, Rate: it.Rate}
	}
	return out
}
