package services

import (
	"fmt"

	"party-package-store/internal/models"
)

// UserService handles the admin-side account management
type UserService struct {
	userRepo UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns accounts for the admin back office
func (s *UserService) ListUsers(limit, offset int) ([]*models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.List(limit, offset)
}

// ApplyAdminAction flips an account's admin or banned flag. Actions are
// idempotent: promoting an admin or banning a banned account succeeds
// without change. An admin cannot act on their own account.
func (s *UserService) ApplyAdminAction(actor *models.User, req *models.UserAdminActionRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, models.ErrInvalidInput)
	}

	if req.UserID == actor.ID {
		return nil, fmt.Errorf("cannot modify own account: %w", models.ErrForbidden)
	}

	switch req.Action {
	case models.ActionPromote:
		return s.userRepo.SetAdmin(req.UserID, true)
	case models.ActionDemote:
		return s.userRepo.SetAdmin(req.UserID, false)
	case models.ActionBan:
		return s.userRepo.SetBanned(req.UserID, true)
	case models.ActionUnban:
		return s.userRepo.SetBanned(req.UserID, false)
	default:
		return nil, models.ErrInvalidInput
	}
}
