package services

import (
	"context"
	"io"
	"time"

	"party-package-store/internal/models"
	"party-package-store/internal/repositories"
)

// PaymentGateway defines the operations the checkout workflow needs from
// the payment provider
type PaymentGateway interface {
	CreateOrder(amount int, currency, receipt string) (*GatewayOrder, error)
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool
	KeyID() string
	Currency() string
}

// EmailService defines the interface for transactional email
type EmailService interface {
	SendOrderConfirmation(order *models.Order) error
	SendContactInquiry(adminEmail string, form *ContactForm) error
}

// StorageService defines the interface for object storage operations
type StorageService interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, key string) error
	GetURL(key string) string
}

// OrderRepository defines the order persistence operations used by services
type OrderRepository interface {
	CreateVerifiedOrder(userID int, gatewayOrderID, gatewayPaymentID, gatewaySignature string,
		shipping models.ShippingInfo, cart *models.Cart) (*models.Order, error)
	GetByID(id int) (*models.Order, error)
	GetByUser(userID int) ([]*models.Order, error)
	List(limit, offset int) ([]*models.Order, error)
	UpdateDeliveryStatus(id int, status models.DeliveryStatus) (*models.Order, error)
}

// CheckoutIntentRepository defines the intent persistence operations
type CheckoutIntentRepository interface {
	Create(intent *models.CheckoutIntent) error
	Get(gatewayOrderID string) (*models.CheckoutIntent, error)
	DeleteExpired(olderThan time.Duration) (int64, error)
}

// CartRepository defines the cart persistence operations used by services
type CartRepository interface {
	GetOrCreate(userID int) (*models.Cart, error)
	GetByUser(userID int) (*models.Cart, error)
	UpsertItem(cartID, eventID, quantity, unitPrice int) (*models.CartItem, error)
	UpdateItemQuantity(itemID, cartID, quantity int) (*models.CartItem, error)
	RemoveItem(itemID, cartID int) error
}

// EventRepository defines the catalog persistence operations used by services
type EventRepository interface {
	Create(req *models.EventCreateRequest) (*models.Event, error)
	Update(id int, req *models.EventUpdateRequest) (*models.Event, error)
	GetByID(id int) (*models.Event, error)
	Search(filters repositories.EventSearchFilters) ([]*models.Event, error)
	ApplyReviewStats(eventID, stars int) error
}

// UserRepository defines the user persistence operations used by services
type UserRepository interface {
	Create(email, passwordHash, fullName, phone string) (*models.User, error)
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	SetAdmin(id int, isAdmin bool) (*models.User, error)
	SetBanned(id int, isBanned bool) (*models.User, error)
	List(limit, offset int) ([]*models.User, error)
}
