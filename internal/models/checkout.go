package models

import "time"

// CheckoutIntent ties a gateway payment order to the exact cart snapshot it
// was priced from. Verification rejects a payment whose cart hash no longer
// matches, so the charged amount always matches the recorded items.
type CheckoutIntent struct {
	GatewayOrderID string    `json:"gateway_order_id" db:"gateway_order_id"`
	UserID         int       `json:"user_id" db:"user_id"`
	CartHash       string    `json:"cart_hash" db:"cart_hash"`
	Amount         int       `json:"amount" db:"amount"` // minor currency units
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// PaymentVerification is the payload the client forwards from the gateway's
// hosted checkout together with the shipping form
type PaymentVerification struct {
	GatewayOrderID   string `json:"razorpayOrderId"`
	GatewayPaymentID string `json:"razorpayPaymentId"`
	GatewaySignature string `json:"razorpaySignature"`
	ShippingInfo
}
