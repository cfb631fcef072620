package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"time"
)

// Cart represents a user's shopping cart, one per user
type Cart struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Items []*CartItem `json:"items"`
}

// CartItem represents a line in a cart. UnitPrice is the snapshot taken at
// add time and does not track later catalog price changes.
type CartItem struct {
	ID        int       `json:"id" db:"id"`
	CartID    int       `json:"cart_id" db:"cart_id"`
	EventID   int       `json:"event_id" db:"event_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	UnitPrice int       `json:"unit_price" db:"unit_price"` // minor currency units
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Joined event fields for display; CurrentPrice may disagree with the
	// snapshot, totals always use the snapshot.
	EventTitle   string `json:"event_title" db:"event_title"`
	EventImage   string `json:"event_image" db:"event_image"`
	CurrentPrice int    `json:"current_price" db:"current_price"`
}

// Subtotal returns quantity times the snapshot unit price
func (i *CartItem) Subtotal() int {
	return i.Quantity * i.UnitPrice
}

// Total returns the cart total in minor units from snapshot prices
func (c *Cart) Total() int {
	total := 0
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// IsEmpty returns true if the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ContentHash returns a stable SHA-256 digest of the cart's lines. It binds
// a gateway payment order to the exact cart it was priced from: any change
// to items, quantities or snapshot prices between checkout start and payment
// verification produces a different hash.
func (c *Cart) ContentHash() string {
	lines := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		lines = append(lines, fmt.Sprintf("%d:%d:%d", item.EventID, item.Quantity, item.UnitPrice))
	}
	sort.Strings(lines)

	h := sha256.New()
	for _, line := range lines {
		h.Write([]byte(line))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
