package services

import (
	"party-package-store/internal/models"
)

// WishlistRepository defines the wishlist persistence operations
type WishlistRepository interface {
	Create(eventID, userID int) (*models.WishlistEntry, error)
	Delete(eventID, userID int) error
	ListByUser(userID int) ([]*models.WishlistEntry, error)
}

// WishlistService handles per-user package wishlists
type WishlistService struct {
	wishlistRepo WishlistRepository
	eventRepo    EventRepository
}

// NewWishlistService creates a new wishlist service
func NewWishlistService(wishlistRepo WishlistRepository, eventRepo EventRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		eventRepo:    eventRepo,
	}
}

// Add puts a package on the user's wishlist; adding the same package
// twice is a conflict
func (s *WishlistService) Add(userID, eventID int) (*models.WishlistEntry, error) {
	if _, err := s.eventRepo.GetByID(eventID); err != nil {
		return nil, err
	}
	return s.wishlistRepo.Create(eventID, userID)
}

// Remove takes a package off the user's wishlist
func (s *WishlistService) Remove(userID, eventID int) error {
	return s.wishlistRepo.Delete(eventID, userID)
}

// List returns the user's wishlist entries with joined package details
func (s *WishlistService) List(userID int) ([]*models.WishlistEntry, error) {
	return s.wishlistRepo.ListByUser(userID)
}
