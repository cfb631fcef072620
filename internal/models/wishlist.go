package models

import "time"

// WishlistEntry marks a package as saved by a user, once per user+package
type WishlistEntry struct {
	ID        int       `json:"id" db:"id"`
	EventID   int       `json:"event_id" db:"event_id"`
	UserID    int       `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Event *Event `json:"event,omitempty"`
}
