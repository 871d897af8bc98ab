package account

import (
	"context"

	"arthavidhi-backend/internal/apperr"
	"arthavidhi-backend/internal/auth"
	"arthavidhi-backend/internal/models"
)

// GetCompanyDetails never fails the caller: a missing profile or a failed
// lookup yields the placeholder record so dependent screens keep rendering.
func (s *Service) GetCompanyDetails(ctx context.Context, sess auth.Session) *models.Company {
	company, err := s.companies.ByUserID(ctx, sess.UserID)
	if err != nil {
		s.logError("GetCompanyDetails", sess.UserID, err)
		return models.PlaceholderCompany()
	}
	if company == nil {
		return models.PlaceholderCompany()
	}
	return company
}

type CompanyInput struct {
	Name      string `json:"name" validate:"required,min=2"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email" validate:"omitempty,email"`
	PanNumber string `json:"panNumber"`
	VatNumber string `json:"vatNumber"`
}

// UpsertCompany creates the profile on first save and updates it in place
// afterwards.
func (s *Service) UpsertCompany(ctx context.Context, sess auth.Session, in CompanyInput) error {
	if err := s.validate.Struct(in); err != nil {
		return apperr.Validation("Invalid company details!")
	}

	company := &models.Company{
		UserID:    sess.UserID,
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		PanNumber: in.PanNumber,
		VatNumber: in.VatNumber,
	}
	if err := s.companies.Upsert(ctx, company); err != nil {
		s.logError("UpsertCompany", sess.UserID, err)
		return apperr.Storage("Database Error: Failed to save company details.", err)
	}
	return nil
}
