package services

import (
	"fmt"
	"strings"

	"party-package-store/internal/models"
	"party-package-store/internal/utils"
)

// AuthService handles account registration and credential checks
type AuthService struct {
	userRepo UserRepository
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register creates a new user account with a hashed password
func (s *AuthService) Register(req *models.UserRegisterRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, models.ErrInvalidInput)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.Create(email, hash, req.FullName, req.Phone)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and returns the account. Banned accounts
// cannot sign in.
func (s *AuthService) Login(req *models.UserLoginRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, models.ErrInvalidInput)
	}

	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		// Same failure as a wrong password so login does not leak which
		// emails have accounts.
		return nil, models.ErrUnauthorized
	}

	ok, err := utils.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		return nil, models.ErrUnauthorized
	}

	if user.IsBanned {
		return nil, models.ErrForbidden
	}

	return user, nil
}

// GetUser loads an account by id
func (s *AuthService) GetUser(id int) (*models.User, error) {
	return s.userRepo.GetByID(id)
}
