package models

import "time"

type Company struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"userId"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Address   string    `gorm:"size:255" json:"address"`
	Phone     string    `gorm:"size:32" json:"phone"`
	Email     string    `gorm:"size:255" json:"email"`
	PanNumber string    `gorm:"size:64" json:"panNumber"`
	VatNumber string    `gorm:"size:64" json:"vatNumber"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PlaceholderCompany is returned whenever the owner has not saved a company
// profile yet. Bills must always render, so reads fall back to this instead
// of failing.
func PlaceholderCompany() *Company {
	return &Company{
		Name:      "Your Company Name",
		Address:   "123 Business Rd, Kathmandu",
		Phone:     "9876543210",
		Email:     "contact@company.com",
		PanNumber: "123456789",
		VatNumber: "987654321",
	}
}
