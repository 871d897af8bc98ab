package account

import (
	"context"

	"arthavidhi-backend/internal/apperr"
	"arthavidhi-backend/internal/auth"
	"arthavidhi-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Phone    string `json:"phone" validate:"required,min=10"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Register creates a user account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, apperr.Validation("Invalid fields!")
	}

	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		s.logError("Register", nil, err)
		return nil, apperr.Storage("Database Error: Could not register user.", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("Email is already in use.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, apperr.Storage("Could not register user.", err)
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.logError("Register", in.Email, err)
		return nil, apperr.Storage("Database Error: Could not register user.", err)
	}
	return user, nil
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies the credentials and issues a session token.
func (s *Service) Login(ctx context.Context, in LoginInput) (string, *models.User, error) {
	if err := s.validate.Struct(in); err != nil {
		return "", nil, apperr.Validation("Invalid fields!")
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		s.logError("Login", nil, err)
		return "", nil, apperr.Storage("Database Error: Could not log in.", err)
	}
	if user == nil {
		return "", nil, apperr.Unauthorized("Invalid credentials!")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return "", nil, apperr.Unauthorized("Invalid credentials!")
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		s.logError("Login", user.ID, err)
		return "", nil, apperr.Storage("Could not log in.", err)
	}
	return token, user, nil
}

// GetAccountDetails returns the user together with their company, which may
// be nil when no profile has been saved.
func (s *Service) GetAccountDetails(ctx context.Context, sess auth.Session) (*AccountDetails, error) {
	user, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		s.logError("GetAccountDetails", sess.UserID, err)
		return nil, apperr.Storage("Database Error: Failed to fetch account details.", err)
	}
	company, err := s.companies.ByUserID(ctx, sess.UserID)
	if err != nil {
		s.logError("GetAccountDetails", sess.UserID, err)
		return nil, apperr.Storage("Database Error: Failed to fetch account details.", err)
	}
	return &AccountDetails{User: user, Company: company}, nil
}

type ProfileInput struct {
	Name  string `json:"name" validate:"required,min=2"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,min=10"`
}

// UpdateProfile changes name/email/phone after checking the address is not
// used by another account.
func (s *Service) UpdateProfile(ctx context.Context, sess auth.Session, in ProfileInput) error {
	if err := s.validate.Struct(in); err != nil {
		return apperr.Validation("Invalid fields!")
	}

	taken, err := s.users.EmailTaken(ctx, in.Email, sess.UserID)
	if err != nil {
		s.logError("UpdateProfile", sess.UserID, err)
		return apperr.Storage("Database Error: Failed to update profile.", err)
	}
	if taken {
		return apperr.Conflict("Email is already in use by another account.")
	}

	if err := s.users.UpdateProfile(ctx, sess.UserID, in.Name, in.Email, in.Phone); err != nil {
		s.logError("UpdateProfile", sess.UserID, err)
		return apperr.Storage("Database Error: Failed to update profile.", err)
	}
	return nil
}

type PasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// UpdatePassword verifies the current password before storing the new hash.
func (s *Service) UpdatePassword(ctx context.Context, sess auth.Session, in PasswordInput) error {
	if err := s.validate.Struct(in); err != nil {
		return apperr.Validation("Invalid fields!")
	}

	user, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		s.logError("UpdatePassword", sess.UserID, err)
		return apperr.Storage("Database Error: Failed to update password.", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return apperr.Validation("Current password does not match.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcryptCost)
	if err != nil {
		return apperr.Storage("Failed to update password.", err)
	}
	if err := s.users.UpdatePassword(ctx, sess.UserID, string(hash)); err != nil {
		s.logError("UpdatePassword", sess.UserID, err)
		return apperr.Storage("Database Error: Failed to update password.", err)
	}
	return nil
}
