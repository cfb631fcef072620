package models

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// OrderStatus represents the payment status of an order
type OrderStatus string

const (
	OrderPending OrderStatus = "pending"
	OrderPaid    OrderStatus = "paid"
	OrderFailed  OrderStatus = "failed"
)

// DeliveryStatus is the admin-controlled fulfillment stage, independent of
// payment status. Admins may set any value in any order.
type DeliveryStatus string

const (
	DeliveryReceived       DeliveryStatus = "order_received"
	DeliveryProcessing     DeliveryStatus = "processing"
	DeliveryOutForDelivery DeliveryStatus = "out_for_delivery"
	DeliveryDelivered      DeliveryStatus = "delivered"
)

// Order represents a payment-verified purchase
type Order struct {
	ID               int            `json:"id" db:"id"`
	UserID           int            `json:"user_id" db:"user_id"`
	GatewayOrderID   string         `json:"gateway_order_id" db:"gateway_order_id"`
	GatewayPaymentID string         `json:"gateway_payment_id" db:"gateway_payment_id"`
	GatewaySignature string         `json:"-" db:"gateway_signature"`
	TotalAmount      int            `json:"total_amount" db:"total_amount"` // minor currency units
	Status           OrderStatus    `json:"status" db:"status"`
	DeliveryStatus   DeliveryStatus `json:"delivery_status" db:"delivery_status"`
	ShippingInfo
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Items []*OrderItem `json:"items"`
}

// OrderItem is an immutable order line. EventTitle and UnitPrice are
// denormalized snapshots taken at purchase time.
type OrderItem struct {
	ID         int    `json:"id" db:"id"`
	OrderID    int    `json:"order_id" db:"order_id"`
	EventID    int    `json:"event_id" db:"event_id"`
	EventTitle string `json:"event_title" db:"event_title"`
	Quantity   int    `json:"quantity" db:"quantity"`
	UnitPrice  int    `json:"unit_price" db:"unit_price"`
	TotalPrice int    `json:"total_price" db:"total_price"`
}

// ShippingInfo holds the shipping form fields collected at checkout
type ShippingInfo struct {
	FullName string `json:"fullName" db:"full_name"`
	Email    string `json:"email" db:"email"`
	Phone    string `json:"phone" db:"phone"`
	Address  string `json:"address" db:"address"`
	City     string `json:"city" db:"city"`
	ZipCode  string `json:"zipCode" db:"zip_code"`
}

// Validate checks that all required shipping fields are present. Presence is
// the only requirement: verification runs after the gateway has collected
// payment, so rejecting an unusual-looking value here would leave the buyer
// charged with no order recorded.
func (s *ShippingInfo) Validate() error {
	fields := map[string]string{
		"fullName": s.FullName,
		"email":    s.Email,
		"phone":    s.Phone,
		"address":  s.Address,
		"city":     s.City,
		"zipCode":  s.ZipCode,
	}

	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return errors.New("missing required fields: " + strings.Join(missing, ", "))
	}

	return nil
}

// ValidDeliveryStatus reports whether the value is a known fulfillment stage
func ValidDeliveryStatus(status DeliveryStatus) bool {
	switch status {
	case DeliveryReceived, DeliveryProcessing, DeliveryOutForDelivery, DeliveryDelivered:
		return true
	}
	return false
}

// IsPaid returns true if the order passed payment verification
func (o *Order) IsPaid() bool {
	return o.Status == OrderPaid
}

// TotalAmountInCurrency returns the total in major currency units
func (o *Order) TotalAmountInCurrency() float64 {
	return float64(o.TotalAmount) / 100.0
}
