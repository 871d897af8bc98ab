// Package account covers registration, login, profile and company-profile
// management.
package account

import (
	"context"

	"arthavidhi-backend/internal/auth"
	"arthavidhi-backend/internal/config"
	"arthavidhi-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// UserStore is implemented by *repository.UserRepository.
type UserStore interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
	Create(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, id uint, name, email, phone string) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

// CompanyStore is implemented by *repository.CompanyRepository.
type CompanyStore interface {
	ByUserID(ctx context.Context, userID uint) (*models.Company, error)
	Upsert(ctx context.Context, company *models.Company) error
}

type Service struct {
	users     UserStore
	companies CompanyStore
	tokens    *auth.JWTManager
	validate  *validator.Validate
	logg      *logrus.Logger
}

func NewService(users UserStore, companies CompanyStore, tokens *auth.JWTManager, logg *logrus.Logger) *Service {
	return &Service{
		users:     users,
		companies: companies,
		tokens:    tokens,
		validate:  validator.New(),
		logg:      logg,
	}
}

// AccountDetails pairs the user with their (possibly absent) company.
type AccountDetails struct {
	User    *models.User    `json:"user"`
	Company *models.Company `json:"company"`
}

func (s *Service) logError(funcName string, data any, err error) {
	if s.logg != nil {
		config.LogError(s.logg, "services/account", funcName, data, err)
	}
}
