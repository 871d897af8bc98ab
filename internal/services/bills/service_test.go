package bills

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"arthavidhi-backend/internal/apperr"
	"arthavidhi-backend/internal/auth"
	"arthavidhi-backend/internal/billing"
	"arthavidhi-backend/internal/models"
	"arthavidhi-backend/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "bills.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Bill{},
		&models.BillItem{},
	))
	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.User{
		Name:         "Owner",
		Email:        "owner@example.com",
		Phone:        "9800000000",
		PasswordHash: "x",
	}).Error)
	svc := NewService(repository.NewBillRepository(db), repository.NewCompanyRepository(db), nil)
	return svc, db
}

func testSession() auth.Session {
	return auth.Session{UserID: 1, Email: "owner@example.com"}
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func sampleInput() CreateBillInput {
	return CreateBillInput{
		ClientName:    "Acme Traders",
		ClientAddress: "New Road, Kathmandu",
		ClientPhone:   "9841000000",
		BillDate:      time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
		Items: []ItemInput{
			{Description: "Consulting", Quantity: d("2"), Unit: "hr", Rate: d("500")},
			{Description: "Materials", Quantity: d("1"), Unit: "pc", Rate: d("250")},
		},
		DiscountType:       billing.DiscountPercentage,
		DiscountPercentage: d("10"),
	}
}

func TestCreateBill(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	details, err := svc.CreateBill(ctx, testSession(), sampleInput())
	require.NoError(t, err)

	assert.Equal(t, "HG0100", details.Bill.InvoiceNumber)
	assert.Equal(t, models.BillStatusPending, details.Bill.Status)
	assert.Len(t, details.Bill.Items, 2)
	assert.True(t, details.Bill.Discount.Equal(d("125")))

	assert.True(t, details.Totals.Subtotal.Equal(d("1250")))
	assert.True(t, details.Totals.Discount.Equal(d("125")))
	assert.True(t, details.Totals.SubtotalAfterDiscount.Equal(d("1125")))
	assert.True(t, details.Totals.VAT.Equal(d("146.25")))
	assert.True(t, details.Totals.Total.Equal(d("1271.25")))
	assert.Equal(t, "Discount (10%)", details.Totals.AppliedDiscountLabel)

	// No company profile saved yet, so the placeholder must render.
	assert.Equal(t, "Your Company Name", details.Company.Name)

	var itemCount int64
	require.NoError(t, db.Model(&models.BillItem{}).Count(&itemCount).Error)
	assert.EqualValues(t, 2, itemCount)
}

func TestCreateBillSequencesInvoiceNumbers(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateBill(ctx, testSession(), sampleInput())
	require.NoError(t, err)
	second, err := svc.CreateBill(ctx, testSession(), sampleInput())
	require.NoError(t, err)

	assert.Equal(t, "HG0100", first.Bill.InvoiceNumber)
	assert.Equal(t, "HG0101", second.Bill.InvoiceNumber)
}

func TestCreateBillValidationLeavesStorageUntouched(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	testCases := []struct {
		name   string
		mutate func(*CreateBillInput)
	}{
		{name: "no_items", mutate: func(in *CreateBillInput) { in.Items = nil }},
		{name: "missing_client_name", mutate: func(in *CreateBillInput) { in.ClientName = "" }},
		{name: "zero_quantity", mutate: func(in *CreateBillInput) { in.Items[0].Quantity = decimal.Zero }},
		{name: "negative_rate", mutate: func(in *CreateBillInput) { in.Items[0].Rate = d("-1") }},
		{name: "percentage_above_100", mutate: func(in *CreateBillInput) { in.DiscountPercentage = d("101") }},
		{name: "negative_discount_amount", mutate: func(in *CreateBillInput) {
			in.DiscountType = billing.DiscountAmount
			in.DiscountAmount = d("-5")
		}},
		{name: "unknown_discount_type", mutate: func(in *CreateBillInput) { in.DiscountType = "half-off" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := sampleInput()
			tc.mutate(&in)

			_, err := svc.CreateBill(ctx, testSession(), in)
			assert.True(t, apperr.IsKind(err, apperr.KindValidation), "got %v", err)
		})
	}

	var billCount int64
	require.NoError(t, db.Model(&models.Bill{}).Count(&billCount).Error)
	assert.Zero(t, billCount)
}

func TestGetBillDetailsRecomputesFromStoredDiscount(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateBill(ctx, testSession(), sampleInput())
	require.NoError(t, err)
	// Create-time response keeps the percentage framing.
	assert.Equal(t, "Discount (10%)", created.Totals.AppliedDiscountLabel)

	got, err := svc.GetBillDetails(ctx, testSession(), created.Bill.ID)
	require.NoError(t, err)

	// Only the resolved amount survives storage, so the label is generic.
	assert.Equal(t, "Discount", got.Totals.AppliedDiscountLabel)
	assert.True(t, got.Totals.Discount.Equal(d("125")))
	assert.True(t, got.Totals.Total.Equal(d("1271.25")))
}

func TestGetBillDetailsNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetBillDetails(context.Background(), testSession(), 999)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestGetBillDetailsUsesSavedCompany(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Company{
		UserID: 1,
		Name:   "Himalayan Goods Pvt. Ltd.",
	}).Error)

	created, err := svc.CreateBill(ctx, testSession(), sampleInput())
	require.NoError(t, err)

	got, err := svc.GetBillDetails(ctx, testSession(), created.Bill.ID)
	require.NoError(t, err)
	assert.Equal(t, "Himalayan Goods Pvt. Ltd.", got.Company.Name)
}

func TestUpdateBillStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateBill(ctx, testSession(), sampleInput())
	require.NoError(t, err)

	require.NoError(t, svc.UpdateBillStatus(ctx, created.Bill.ID, models.BillStatusPaid))
	got, err := svc.GetBillDetails(ctx, testSession(), created.Bill.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BillStatusPaid, got.Bill.Status)

	// Any status may follow any other.
	require.NoError(t, svc.UpdateBillStatus(ctx, created.Bill.ID, models.BillStatusOverdue))
	require.NoError(t, svc.UpdateBillStatus(ctx, created.Bill.ID, models.BillStatusPending))
}

func TestUpdateBillStatusRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateBill(ctx, testSession(), sampleInput())
	require.NoError(t, err)

	err = svc.UpdateBillStatus(ctx, created.Bill.ID, models.BillStatus("Cancelled"))
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	got, err := svc.GetBillDetails(ctx, testSession(), created.Bill.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BillStatusPending, got.Bill.Status)
}

func TestUpdateBillStatusNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.UpdateBillStatus(context.Background(), 42, models.BillStatusPaid)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUpdateBillReplacesItemsAndKeepsInvoiceNumber(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateBill(ctx, testSession(), sampleInput())
	require.NoError(t, err)
	require.NoError(t, svc.UpdateBillStatus(ctx, created.Bill.ID, models.BillStatusPaid))

	in := UpdateBillInput{
		ClientName:    "Acme Traders Pvt. Ltd.",
		ClientAddress: "Patan, Lalitpur",
		ClientPhone:   "9841999999",
		PanNumber:     "600123456",
		BillDate:      time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC),
		Items: []ItemInput{
			{Description: "Site survey", Quantity: d("3"), Unit: "day", Rate: d("400")},
		},
		DiscountType:   billing.DiscountAmount,
		DiscountAmount: d("70"),
	}

	got, err := svc.UpdateBill(ctx, testSession(), created.Bill.ID, in)
	require.NoError(t, err)

	assert.Equal(t, "HG0100", got.Bill.InvoiceNumber)
	assert.Equal(t, models.BillStatusPaid, got.Bill.Status)
	assert.Equal(t, "Acme Traders Pvt. Ltd.", got.Bill.ClientName)
	require.Len(t, got.Bill.Items, 1)
	assert.Equal(t, "Site survey", got.Bill.Items[0].Description)
	assert.True(t, got.Bill.Discount.Equal(d("70")))

	assert.True(t, got.Totals.Subtotal.Equal(d("1200")))
	assert.True(t, got.Totals.SubtotalAfterDiscount.Equal(d("1130")))
	assert.True(t, got.Totals.VAT.Equal(d("146.9")))
	assert.True(t, got.Totals.Total.Equal(d("1276.9")))

	// The replaced line items are gone, not orphaned.
	var itemCount int64
	require.NoError(t, db.Model(&models.BillItem{}).Count(&itemCount).Error)
	assert.EqualValues(t, 1, itemCount)
}

func TestUpdateBillReResolvesPercentageDiscount(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateBill(ctx, testSession(), sampleInput())
	require.NoError(t, err)

	in := sampleInput()
	in.DiscountPercentage = d("20")
	got, err := svc.UpdateBill(ctx, testSession(), created.Bill.ID, in)
	require.NoError(t, err)

	assert.True(t, got.Bill.Discount.Equal(d("250")))
	assert.Equal(t, "Discount (20%)", got.Totals.AppliedDiscountLabel)
}

func TestUpdateBillValidationLeavesBillUnchanged(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateBill(ctx, testSession(), sampleInput())
	require.NoError(t, err)

	in := sampleInput()
	in.Items = nil
	_, err = svc.UpdateBill(ctx, testSession(), created.Bill.ID, in)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	got, err := svc.GetBillDetails(ctx, testSession(), created.Bill.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Traders", got.Bill.ClientName)
	assert.Len(t, got.Bill.Items, 2)
}

func TestUpdateBillNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateBill(context.Background(), testSession(), 42, sampleInput())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestDeleteBillRemovesItems(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	in := sampleInput()
	in.Items = append(in.Items, ItemInput{Description: "Delivery", Quantity: d("1"), Unit: "trip", Rate: d("100")})
	created, err := svc.CreateBill(ctx, testSession(), in)
	require.NoError(t, err)
	require.Len(t, created.Bill.Items, 3)

	require.NoError(t, svc.DeleteBill(ctx, created.Bill.ID))

	var itemCount int64
	require.NoError(t, db.Model(&models.BillItem{}).Where("bill_id = ?", created.Bill.ID).Count(&itemCount).Error)
	assert.Zero(t, itemCount)

	_, err = svc.GetBillDetails(ctx, testSession(), created.Bill.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestDeleteBillNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.DeleteBill(context.Background(), 404)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestListBills(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateBill(ctx, testSession(), sampleInput())
	require.NoError(t, err)
	in := sampleInput()
	in.ClientName = "Second Client"
	in.DiscountType = billing.DiscountAmount
	in.DiscountAmount = d("250")
	_, err = svc.CreateBill(ctx, testSession(), in)
	require.NoError(t, err)

	rows, err := svc.ListBills(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Newest first.
	assert.Equal(t, "HG0101", rows[0].InvoiceNumber)
	assert.Equal(t, "Second Client", rows[0].ClientName)
	// (1250 - 250) * 1.13
	assert.True(t, rows[0].Amount.Equal(d("1130")), "amount = %s", rows[0].Amount)
	assert.Equal(t, "HG0100", rows[1].InvoiceNumber)
	assert.True(t, rows[1].Amount.Equal(d("1271.25")))
}

func TestGetDashboardSummary(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	ids := make([]uint, 0, 7)
	for i := 0; i < 7; i++ {
		created, err := svc.CreateBill(ctx, testSession(), sampleInput())
		require.NoError(t, err)
		ids = append(ids, created.Bill.ID)
	}
	require.NoError(t, svc.UpdateBillStatus(ctx, ids[0], models.BillStatusPaid))
	require.NoError(t, svc.UpdateBillStatus(ctx, ids[1], models.BillStatusPaid))
	require.NoError(t, svc.UpdateBillStatus(ctx, ids[2], models.BillStatusOverdue))

	summary, err := svc.GetDashboardSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 7, summary.Stats.TotalBills)
	assert.Equal(t, 2, summary.Stats.PaidBills)
	assert.Equal(t, 5, summary.Stats.DueBills)
	assert.True(t, summary.Stats.TotalRevenue.Equal(d("1271.25").Mul(d("7"))))
	assert.Len(t, summary.RecentBills, 5)
	assert.Equal(t, "HG0106", summary.RecentBills[0].InvoiceNumber)
}

// Two creators sequencing from the same snapshot compute the same invoice
// number; the unique constraint rejects the loser at insert time. This pins
// down the hazard the create path's retry exists for.
func TestInvoiceNumberRaceIsCaughtByUniqueConstraint(t *testing.T) {
	_, db := newTestService(t)
	ctx := context.Background()
	repo := repository.NewBillRepository(db)

	readNext := func() string {
		last, err := repo.LastCreated(ctx)
		require.NoError(t, err)
		lastNumber := ""
		if last != nil {
			lastNumber = last.InvoiceNumber
		}
		return billing.NextInvoiceNumber(lastNumber)
	}

	// Both callers read before either inserts.
	numberA := readNext()
	numberB := readNext()
	require.Equal(t, numberA, numberB)

	billA := &models.Bill{InvoiceNumber: numberA, ClientName: "A", ClientAddress: "x", ClientPhone: "1", UserID: 1, Status: models.BillStatusPending}
	billB := &models.Bill{InvoiceNumber: numberB, ClientName: "B", ClientAddress: "y", ClientPhone: "2", UserID: 1, Status: models.BillStatusPending}

	require.NoError(t, repo.CreateWithItems(ctx, billA))
	err := repo.CreateWithItems(ctx, billB)
	require.Error(t, err)
	assert.True(t, isDuplicateKey(err))
}
