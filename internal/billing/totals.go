// Package billing holds the pure pricing and invoice-numbering logic.
package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// vatRate is the fixed 13% VAT applied to the discounted subtotal.
var vatRate = decimal.New(13, -2)

type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountAmount     DiscountKind = "amount"
)

// DiscountSpec is either a percentage of the subtotal (value in [0,100]) or
// an absolute currency amount.
type DiscountSpec struct {
	Kind  DiscountKind
	Value decimal.Decimal
}

type LineItem struct {
	Quantity decimal.Decimal
	Rate     decimal.Decimal
}

type Totals struct {
	Subtotal              decimal.Decimal `json:"subtotal"`
	Discount              decimal.Decimal `json:"discount"`
	SubtotalAfterDiscount decimal.Decimal `json:"subtotalAfterDiscount"`
	VAT                   decimal.Decimal `json:"vat"`
	Total                 decimal.Decimal `json:"total"`
	AppliedDiscountLabel  string          `json:"appliedDiscountLabel"`
}

// ComputeTotals turns line items and a discount spec into a priced summary.
// The discounted subtotal is not clamped at zero: a discount larger than the
// subtotal produces a negative figure, which is accepted input-dependent
// behavior handled by upstream validation, not corrected here.
func ComputeTotals(items []LineItem, spec DiscountSpec) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Quantity.Mul(it.Rate))
	}

	discount := decimal.Zero
	label := "Discount"
	if spec.Kind == DiscountPercentage {
		discount = subtotal.Mul(spec.Value.Shift(-2))
		if spec.Value.Sign() > 0 {
			label = fmt.Sprintf("Discount (%s%%)", spec.Value.String())
		}
	} else {
		discount = spec.Value
	}

	afterDiscount := subtotal.Sub(discount)
	vat := afterDiscount.Mul(vatRate)

	return Totals{
		Subtotal:              subtotal,
		Discount:              discount,
		SubtotalAfterDiscount: afterDiscount,
		VAT:                   vat,
		Total:                 afterDiscount.Add(vat),
		AppliedDiscountLabel:  label,
	}
}

// StoredDiscount builds the spec used when recomputing totals for a persisted
// bill. Only the resolved amount survives storage, so the label is always the
// generic "Discount" even if the user originally entered a percentage.
func StoredDiscount(amount decimal.Decimal) DiscountSpec {
	return DiscountSpec{Kind: DiscountAmount, Value: amount}
}
