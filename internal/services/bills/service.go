// Package bills orchestrates validation, invoice sequencing, totals
// computation and persistence for the billing operations.
package bills

import (
	"context"
	"errors"

	"arthavidhi-backend/internal/billing"
	"arthavidhi-backend/internal/config"
	"arthavidhi-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BillStore is the persistence surface the service needs for bills.
// *repository.BillRepository implements it.
type BillStore interface {
	LastCreated(ctx context.Context) (*models.Bill, error)
	CreateWithItems(ctx context.Context, bill *models.Bill) error
	GetWithItems(ctx context.Context, id uint) (*models.Bill, error)
	ListWithItems(ctx context.Context) ([]models.Bill, error)
	UpdateWithItems(ctx context.Context, bill *models.Bill) error
	UpdateStatus(ctx context.Context, id uint, status models.BillStatus) (bool, error)
	DeleteWithItems(ctx context.Context, id uint) error
}

// CompanyStore fetches the owner's company profile for view models.
type CompanyStore interface {
	ByUserID(ctx context.Context, userID uint) (*models.Company, error)
}

type Service struct {
	bills     BillStore
	companies CompanyStore
	validate  *validator.Validate
	logg      *logrus.Logger
}

func NewService(bills BillStore, companies CompanyStore, logg *logrus.Logger) *Service {
	return &Service{
		bills:     bills,
		companies: companies,
		validate:  validator.New(),
		logg:      logg,
	}
}

// BillDetails is the denormalized view model the presentation layer renders
// and exports.
type BillDetails struct {
	Bill    *models.Bill    `json:"bill"`
	Company *models.Company `json:"company"`
	Totals  billing.Totals  `json:"totals"`
}

// BillRow is the lightweight listing shape.
type BillRow struct {
	ID            uint              `json:"id"`
	InvoiceNumber string            `json:"invoiceNumber"`
	ClientName    string            `json:"clientName"`
	ClientPhone   string            `json:"clientPhone"`
	BillDate      datatypes.Date    `json:"billDate"`
	Status        models.BillStatus `json:"status"`
	Amount        decimal.Decimal   `json:"amount"`
}

type DashboardStats struct {
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalBills   int             `json:"totalBills"`
	PaidBills    int             `json:"paidBills"`
	DueBills     int             `json:"dueBills"`
}

type DashboardSummary struct {
	Stats       DashboardStats `json:"stats"`
	RecentBills []BillRow      `json:"recentBills"`
}

func (s *Service) logError(funcName string, data any, err error) {
	if s.logg != nil {
		config.LogError(s.logg, "services/bills", funcName, data, err)
	}
}

// isDuplicateKey classifies unique-constraint violations so the invoice
// sequencing race surfaces as a conflict instead of a generic failure.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func lineItems(items []models.BillItem) []billing.LineItem {
	out := make([]billing.LineItem, len(items))
	for i, it := range items {
		out[i] = billing.LineItem{Quantity: it.Quantity, Rate: it.Rate}
	}
	return out
}
