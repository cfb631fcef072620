package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"party-package-store/internal/models"
)

// CheckoutService converts a priced cart into a durable, payment-verified
// order, exactly once per checkout attempt.
type CheckoutService struct {
	cartRepo   CartRepository
	orderRepo  OrderRepository
	intentRepo CheckoutIntentRepository
	gateway    PaymentGateway
	email      EmailService
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	cartRepo CartRepository,
	orderRepo OrderRepository,
	intentRepo CheckoutIntentRepository,
	gateway PaymentGateway,
	email EmailService,
) *CheckoutService {
	return &CheckoutService{
		cartRepo:   cartRepo,
		orderRepo:  orderRepo,
		intentRepo: intentRepo,
		gateway:    gateway,
		email:      email,
	}
}

// CheckoutSession is returned to the client so it can open the gateway's
// hosted checkout UI
type CheckoutSession struct {
	GatewayOrderID string       `json:"razorpayOrderId"`
	GatewayKeyID   string       `json:"razorpayKeyId"`
	Amount         int          `json:"amount"` // minor currency units
	Currency       string       `json:"currency"`
	Cart           *models.Cart `json:"cartData"`
}

// Begin starts a checkout attempt: prices the current cart, creates the
// gateway payment order, and records a checkout intent binding the gateway
// order to the exact cart snapshot it was priced from.
func (s *CheckoutService) Begin(userID int) (*CheckoutSession, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	if cart.IsEmpty() {
		return nil, models.ErrEmptyCart
	}

	total := cart.Total()

	order, err := s.gateway.CreateOrder(total, s.gateway.Currency(), newReceipt(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}

	intent := &models.CheckoutIntent{
		GatewayOrderID: order.ID,
		UserID:         userID,
		CartHash:       cart.ContentHash(),
		Amount:         total,
	}
	if err := s.intentRepo.Create(intent); err != nil {
		return nil, fmt.Errorf("failed to record checkout intent: %w", err)
	}

	return &CheckoutSession{
		GatewayOrderID: order.ID,
		GatewayKeyID:   s.gateway.KeyID(),
		Amount:         total,
		Currency:       order.Currency,
		Cart:           cart,
	}, nil
}

// Verify completes a checkout attempt. The signature is checked before any
// state changes; the cart is re-read and its hash compared against the
// intent recorded at Begin, so a cart edited mid-payment is rejected rather
// than silently recorded against the gateway-quoted amount. Persistence and
// cart clearing happen in a single transaction inside the order repository.
func (s *CheckoutService) Verify(userID int, req *models.PaymentVerification) (*models.Order, error) {
	if req.GatewayOrderID == "" || req.GatewayPaymentID == "" || req.GatewaySignature == "" {
		return nil, fmt.Errorf("missing payment fields: %w", models.ErrInvalidInput)
	}

	if err := req.ShippingInfo.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, models.ErrInvalidInput)
	}

	if !s.gateway.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature) {
		return nil, models.ErrBadSignature
	}

	intent, err := s.intentRepo.Get(req.GatewayOrderID)
	if err != nil {
		return nil, fmt.Errorf("unknown gateway order: %w", err)
	}
	if intent.UserID != userID {
		return nil, models.ErrForbidden
	}

	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, models.ErrEmptyCart
	}

	if cart.ContentHash() != intent.CartHash {
		return nil, models.ErrCartChanged
	}

	order, err := s.orderRepo.CreateVerifiedOrder(
		userID,
		req.GatewayOrderID,
		req.GatewayPaymentID,
		req.GatewaySignature,
		req.ShippingInfo,
		cart,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	return order, nil
}

// SendConfirmation dispatches the order confirmation email. Callers treat
// it as fire-and-forget: a failed send is logged, never rolled back into
// the order.
func (s *CheckoutService) SendConfirmation(order *models.Order) {
	if s.email == nil {
		return
	}

	if err := s.email.SendOrderConfirmation(order); err != nil {
		log.Printf("Warning: failed to send order confirmation for order %d: %v", order.ID, err)
	}
}

// GetUserOrders retrieves the user's orders with nested items
func (s *CheckoutService) GetUserOrders(userID int) ([]*models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// GetOrder retrieves an order, admins see all, users only their own
func (s *CheckoutService) GetOrder(orderID int, requester *models.User) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	if !requester.IsAdmin && order.UserID != requester.ID {
		return nil, models.ErrForbidden
	}

	return order, nil
}

// CleanupExpiredIntents removes checkout intents from abandoned attempts
func (s *CheckoutService) CleanupExpiredIntents(olderThan time.Duration) {
	n, err := s.intentRepo.DeleteExpired(olderThan)
	if err != nil {
		log.Printf("Warning: failed to clean up checkout intents: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Removed %d expired checkout intents", n)
	}
}

// newReceipt builds an opaque receipt reference for the gateway order.
// Razorpay caps receipts at 40 characters.
func newReceipt(userID int) string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	receipt := fmt.Sprintf("rcpt_%d_%d_%s", time.Now().Unix(), userID, id)
	if len(receipt) > 40 {
		receipt = receipt[:40]
	}
	return receipt
}
