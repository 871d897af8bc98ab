package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type BillStatus string

const (
	BillStatusPending BillStatus = "Pending"
	BillStatusPaid    BillStatus = "Paid"
	BillStatusOverdue BillStatus = "Overdue"
)

// Valid reports whether s is one of the three recognised bill statuses.
func (s BillStatus) Valid() bool {
	switch s {
	case BillStatusPending, BillStatusPaid, BillStatusOverdue:
		return true
	}
	return false
}

// Bill is a billing document issued to a client. Discount is always the
// resolved absolute amount; the percentage framing the user may have entered
// is not persisted.
type Bill struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	InvoiceNumber   string          `gorm:"size:32;uniqueIndex;not null" json:"invoiceNumber"`
	ClientName      string          `gorm:"size:255;index;not null" json:"clientName"`
	ClientAddress   string          `gorm:"size:255;not null" json:"clientAddress"`
	ClientPhone     string          `gorm:"size:32;not null" json:"clientPhone"`
	ClientPanNumber string          `gorm:"size:64" json:"clientPanNumber"`
	BillDate        datatypes.Date  `gorm:"not null" json:"billDate"`
	DueDate         datatypes.Date  `gorm:"not null" json:"dueDate"`
	Discount        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount"`
	Status          BillStatus      `gorm:"size:16;index;default:Pending" json:"status"`
	UserID          uint            `gorm:"index;not null" json:"userId"`
	Items           []BillItem      `gorm:"foreignKey:BillID" json:"items"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type BillItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	BillID      uint            `gorm:"index;not null" json:"billId"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	Unit        string          `gorm:"size:32;not null" json:"unit"`
	Rate        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"rate"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
