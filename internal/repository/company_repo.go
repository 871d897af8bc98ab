package repository

import (
	"context"
	"errors"

	"arthavidhi-backend/internal/models"

	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// ByUserID returns the user's company, or nil without error when none has
// been saved yet.
func (r *CompanyRepository) ByUserID(ctx context.Context, userID uint) (*models.Company, error) {
	var company models.Company
	err := r.db.WithContext(ctx).First(&company, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// Upsert creates the company on first save and updates it in place after
// that, keyed by the unique user id.
func (r *CompanyRepository) Upsert(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Company
		err := tx.First(&existing, "user_id = ?", company.UserID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(company).Error
		}
		if err != nil {
			return err
		}

		company.ID = existing.ID
		company.CreatedAt = existing.CreatedAt
		return tx.Model(&existing).Updates(map[string]any{
			"name":       company.Name,
			"address":    company.Address,
			"phone":      company.Phone,
			"email":      company.Email,
			"pan_number": company.PanNumber,
			"vat_number": company.VatNumber,
		}).Error
	})
}
