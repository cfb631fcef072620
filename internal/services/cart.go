package services

import (
	"fmt"

	"party-package-store/internal/models"
)

// CartService manages the per-user shopping cart
type CartService struct {
	cartRepo  CartRepository
	eventRepo EventRepository
}

// NewCartService creates a new cart service
func NewCartService(cartRepo CartRepository, eventRepo EventRepository) *CartService {
	return &CartService{
		cartRepo:  cartRepo,
		eventRepo: eventRepo,
	}
}

// GetCart returns the user's cart, creating an empty one on first access
func (s *CartService) GetCart(userID int) (*models.Cart, error) {
	return s.cartRepo.GetByUser(userID)
}

// AddItem puts a package into the user's cart. The effective price is
// snapshotted onto the cart line at add time; adding a package already in
// the cart increments the existing line's quantity instead of creating a
// duplicate row.
func (s *CartService) AddItem(userID, eventID, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", models.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetOrCreate(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	if _, err := s.cartRepo.UpsertItem(cart.ID, event.ID, quantity, event.EffectivePrice()); err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	return s.cartRepo.GetByUser(userID)
}

// UpdateQuantity sets the quantity on a cart line. A quantity of zero or
// less removes the line.
func (s *CartService) UpdateQuantity(userID, itemID, quantity int) (*models.Cart, error) {
	cart, err := s.cartRepo.GetOrCreate(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	if quantity <= 0 {
		if err := s.cartRepo.RemoveItem(itemID, cart.ID); err != nil {
			return nil, err
		}
	} else {
		if _, err := s.cartRepo.UpdateItemQuantity(itemID, cart.ID, quantity); err != nil {
			return nil, err
		}
	}

	return s.cartRepo.GetByUser(userID)
}

// RemoveItem deletes a cart line owned by the user
func (s *CartService) RemoveItem(userID, itemID int) (*models.Cart, error) {
	cart, err := s.cartRepo.GetOrCreate(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	if err := s.cartRepo.RemoveItem(itemID, cart.ID); err != nil {
		return nil, err
	}

	return s.cartRepo.GetByUser(userID)
}
