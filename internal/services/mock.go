package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"sync/atomic"

	"party-package-store/internal/models"
)

// MockPaymentGateway is a stand-in gateway for development and tests. It
// issues deterministic order ids and signs with the same HMAC scheme as
// the real gateway, so verification code paths behave identically.
type MockPaymentGateway struct {
	keyID   string
	secret  string
	counter int64
}

// NewMockPaymentGateway creates a mock gateway with the given credentials
func NewMockPaymentGateway(keyID, secret string) *MockPaymentGateway {
	if keyID == "" {
		keyID = "rzp_test_mock"
	}
	if secret == "" {
		secret = "mock_secret"
	}
	return &MockPaymentGateway{keyID: keyID, secret: secret}
}

// CreateOrder returns a fabricated gateway order without any network call
func (m *MockPaymentGateway) CreateOrder(amount int, currency, receipt string) (*GatewayOrder, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", models.ErrInvalidInput)
	}

	n := atomic.AddInt64(&m.counter, 1)
	return &GatewayOrder{
		ID:       fmt.Sprintf("order_mock%06d", n),
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}, nil
}

// VerifySignature checks the payment signature the same way the real
// gateway client does
func (m *MockPaymentGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	return hmac.Equal([]byte(signature), []byte(m.Sign(gatewayOrderID, gatewayPaymentID)))
}

// Sign produces the signature a successful payment would carry. Tests use
// it to simulate the gateway's callback payload.
func (m *MockPaymentGateway) Sign(gatewayOrderID, gatewayPaymentID string) string {
	mac := hmac.New(sha256.New, []byte(m.secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// KeyID returns the mock public key id
func (m *MockPaymentGateway) KeyID() string {
	return m.keyID
}

// Currency returns the mock currency
func (m *MockPaymentGateway) Currency() string {
	return "INR"
}

// MockEmailService logs emails instead of sending them
type MockEmailService struct{}

// NewMockEmailService creates a logging email service
func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

// SendOrderConfirmation logs the confirmation instead of sending it
func (m *MockEmailService) SendOrderConfirmation(order *models.Order) error {
	log.Printf("Mock email: order confirmation #%d to %s", order.ID, order.Email)
	return nil
}

// SendContactInquiry logs the inquiry instead of sending it
func (m *MockEmailService) SendContactInquiry(adminEmail string, form *ContactForm) error {
	log.Printf("Mock email: contact inquiry from %s to %s", form.Email, adminEmail)
	return nil
}
