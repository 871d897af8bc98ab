package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func items(pairs ...string) []LineItem {
	out := make([]LineItem, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, LineItem{Quantity: d(pairs[i]), Rate: d(pairs[i+1])})
	}
	return out
}

func TestComputeTotals(t *testing.T) {
	testCases := []struct {
		name          string
		items         []LineItem
		spec          DiscountSpec
		subtotal      string
		discount      string
		afterDiscount string
		vat           string
		total         string
		label         string
	}{
		{
			name:          "percentage_discount",
			items:         items("2", "500", "1", "250"),
			spec:          DiscountSpec{Kind: DiscountPercentage, Value: d("10")},
			subtotal:      "1250",
			discount:      "125",
			afterDiscount: "1125",
			vat:           "146.25",
			total:         "1271.25",
			label:         "Discount (10%)",
		},
		{
			name:          "zero_amount_discount",
			items:         items("3", "100"),
			spec:          DiscountSpec{Kind: DiscountAmount, Value: decimal.Zero},
			subtotal:      "300",
			discount:      "0",
			afterDiscount: "300",
			vat:           "39",
			total:         "339",
			label:         "Discount",
		},
		{
			name:          "zero_percentage_keeps_generic_label",
			items:         items("1", "1000"),
			spec:          DiscountSpec{Kind: DiscountPercentage, Value: decimal.Zero},
			subtotal:      "1000",
			discount:      "0",
			afterDiscount: "1000",
			vat:           "130",
			total:         "1130",
			label:         "Discount",
		},
		{
			name:          "absolute_discount",
			items:         items("4", "250"),
			spec:          DiscountSpec{Kind: DiscountAmount, Value: d("200")},
			subtotal:      "1000",
			discount:      "200",
			afterDiscount: "800",
			vat:           "104",
			total:         "904",
			label:         "Discount",
		},
		{
			name:          "discount_exceeding_subtotal_goes_negative",
			items:         items("1", "100"),
			spec:          DiscountSpec{Kind: DiscountAmount, Value: d("150")},
			subtotal:      "100",
			discount:      "150",
			afterDiscount: "-50",
			vat:           "-6.5",
			total:         "-56.5",
			label:         "Discount",
		},
		{
			name:          "fractional_percentage_rendered_exactly",
			items:         items("1", "200"),
			spec:          DiscountSpec{Kind: DiscountPercentage, Value: d("12.5")},
			subtotal:      "200",
			discount:      "25",
			afterDiscount: "175",
			vat:           "22.75",
			total:         "197.75",
			label:         "Discount (12.5%)",
		},
		{
			name:          "no_items",
			items:         nil,
			spec:          DiscountSpec{Kind: DiscountAmount, Value: decimal.Zero},
			subtotal:      "0",
			discount:      "0",
			afterDiscount: "0",
			vat:           "0",
			total:         "0",
			label:         "Discount",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeTotals(tc.items, tc.spec)

			assert.True(t, got.Subtotal.Equal(d(tc.subtotal)), "subtotal = %s", got.Subtotal)
			assert.True(t, got.Discount.Equal(d(tc.discount)), "discount = %s", got.Discount)
			assert.True(t, got.SubtotalAfterDiscount.Equal(d(tc.afterDiscount)), "afterDiscount = %s", got.SubtotalAfterDiscount)
			assert.True(t, got.VAT.Equal(d(tc.vat)), "vat = %s", got.VAT)
			assert.True(t, got.Total.Equal(d(tc.total)), "total = %s", got.Total)
			assert.Equal(t, tc.label, got.AppliedDiscountLabel)
		})
	}
}

func TestComputeTotalsOrderIndependent(t *testing.T) {
	spec := DiscountSpec{Kind: DiscountPercentage, Value: d("7")}
	forward := ComputeTotals(items("2", "500", "1", "250", "5", "19.99"), spec)
	reversed := ComputeTotals(items("5", "19.99", "1", "250", "2", "500"), spec)

	assert.True(t, forward.Subtotal.Equal(reversed.Subtotal))
	assert.True(t, forward.Total.Equal(reversed.Total))
}

func TestComputeTotalsIdempotent(t *testing.T) {
	in := items("2", "500", "1", "250")
	spec := StoredDiscount(d("125"))

	first := ComputeTotals(in, spec)
	second := ComputeTotals(in, spec)

	assert.Equal(t, first, second)
	assert.Equal(t, "Discount", first.AppliedDiscountLabel)
}

func TestComputeTotalsVATIsThirteenPercent(t *testing.T) {
	got := ComputeTotals(items("1", "777.77"), DiscountSpec{Kind: DiscountAmount, Value: d("77.77")})
	assert.True(t, got.VAT.Equal(got.SubtotalAfterDiscount.Mul(d("0.13"))))
}
