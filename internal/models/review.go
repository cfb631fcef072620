package models

import (
	"errors"
	"strings"
	"time"
)

// Review represents a user's one-time rating of a package. A user can
// review a package once; there is no edit path.
type Review struct {
	ID        int       `json:"id" db:"id"`
	EventID   int       `json:"event_id" db:"event_id"`
	UserID    int       `json:"user_id" db:"user_id"`
	Stars     int       `json:"stars" db:"stars"`
	Review    string    `json:"review" db:"review"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Joined for display
	UserName string `json:"user_name,omitempty" db:"user_name"`
}

// ReviewCreateRequest represents the data needed to submit a review
type ReviewCreateRequest struct {
	Stars  int    `json:"stars"`
	Review string `json:"review"`
}

// Validate validates review submission data
func (req *ReviewCreateRequest) Validate() error {
	if req.Stars < 1 || req.Stars > 5 {
		return errors.New("stars must be between 1 and 5")
	}

	if strings.TrimSpace(req.Review) == "" {
		return errors.New("review text is required")
	}

	if len(req.Review) > 2000 {
		return errors.New("review must be less than 2000 characters")
	}

	return nil
}
