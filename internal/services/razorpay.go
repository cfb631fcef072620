package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RazorpayConfig represents Razorpay payment service configuration
type RazorpayConfig struct {
	KeyID     string
	KeySecret string
	Currency  string // ISO code, amounts are always in minor units
}

// RazorpayService handles payments via the Razorpay Orders API
type RazorpayService struct {
	config  RazorpayConfig
	client  *http.Client
	baseURL string
}

// NewRazorpayService creates a new Razorpay payment service
func NewRazorpayService(config RazorpayConfig) *RazorpayService {
	if config.Currency == "" {
		config.Currency = "INR"
	}

	return &RazorpayService{
		config:  config,
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: "https://api.razorpay.com/v1",
	}
}

// GatewayOrder represents a provider-side record of an intended charge,
// created before the user completes payment
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int    `json:"amount"` // minor currency units
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type razorpayOrderRequest struct {
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type razorpayErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder creates a payment order with Razorpay. Amount is in minor
// currency units; receipt must be at most 40 characters per the API.
func (s *RazorpayService) CreateOrder(amount int, currency, receipt string) (*GatewayOrder, error) {
	if len(receipt) > 40 {
		receipt = receipt[:40]
	}

	body, err := json.Marshal(razorpayOrderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}

	httpReq, err := http.NewRequest("POST", s.baseURL+"/orders", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create order request: %w", err)
	}

	httpReq.SetBasicAuth(s.config.KeyID, s.config.KeySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send order request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read order response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, s.handleAPIError(resp.StatusCode, bodyBytes)
	}

	var order GatewayOrder
	if err := json.Unmarshal(bodyBytes, &order); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}

	return &order, nil
}

// VerifySignature checks that a payment confirmation originated from
// Razorpay: the expected signature is HMAC-SHA256 over
// "<order_id>|<payment_id>" keyed with the secret, hex encoded, and the
// comparison is constant time.
func (s *RazorpayService) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.config.KeySecret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}

// KeyID returns the public key id the client-side checkout needs
func (s *RazorpayService) KeyID() string {
	return s.config.KeyID
}

// Currency returns the configured settlement currency
func (s *RazorpayService) Currency() string {
	return s.config.Currency
}

func (s *RazorpayService) handleAPIError(statusCode int, body []byte) error {
	var apiErr razorpayErrorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Error.Description == "" {
		return fmt.Errorf("razorpay API error (status %d): %s", statusCode, string(body))
	}

	switch statusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("razorpay rejected request: %s", apiErr.Error.Description)
	case http.StatusUnauthorized:
		return fmt.Errorf("razorpay unauthorized: check API keys - %s", apiErr.Error.Description)
	default:
		return fmt.Errorf("razorpay error %s: %s", apiErr.Error.Code, apiErr.Error.Description)
	}
}
