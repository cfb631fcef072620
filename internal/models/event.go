package models

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Event represents a party package in the catalog
type Event struct {
	ID               int            `json:"id" db:"id"`
	Title            string         `json:"title" db:"title"`
	Description      string         `json:"description" db:"description"`
	ActualPrice      int            `json:"actual_price" db:"actual_price"`         // minor currency units
	DiscountedPrice  int            `json:"discounted_price" db:"discounted_price"` // minor currency units
	Rating           float64        `json:"rating" db:"rating"`
	ReviewsCount     int            `json:"reviews_count" db:"reviews_count"`
	Trending         bool           `json:"trending" db:"trending"`
	CategoryID       int            `json:"category_id" db:"category_id"`
	ImageURL         string         `json:"image_url" db:"image_url"`
	AdditionalImages pq.StringArray `json:"additional_images" db:"additional_images"`
	CreatedAt        time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at" db:"updated_at"`

	// Related data
	Category *Category `json:"category,omitempty"`
}

// EventCreateRequest represents the data needed to create a new package
type EventCreateRequest struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	ActualPrice      int      `json:"actual_price"`
	DiscountedPrice  int      `json:"discounted_price"`
	Trending         bool     `json:"trending"`
	CategoryID       int      `json:"category_id"`
	ImageURL         string   `json:"image_url"`
	AdditionalImages []string `json:"additional_images"`
}

// EventUpdateRequest represents the data that can be updated for a package
type EventUpdateRequest struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	ActualPrice      int      `json:"actual_price"`
	DiscountedPrice  int      `json:"discounted_price"`
	Trending         bool     `json:"trending"`
	CategoryID       int      `json:"category_id"`
	ImageURL         string   `json:"image_url"`
	AdditionalImages []string `json:"additional_images"`
}

// Validate validates package creation data
func (req *EventCreateRequest) Validate() error {
	return validateEventFields(req.Title, req.ImageURL, req.ActualPrice, req.DiscountedPrice, req.CategoryID)
}

// Validate validates package update data
func (req *EventUpdateRequest) Validate() error {
	return validateEventFields(req.Title, req.ImageURL, req.ActualPrice, req.DiscountedPrice, req.CategoryID)
}

func validateEventFields(title, imageURL string, actualPrice, discountedPrice, categoryID int) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("package title is required")
	}

	if len(title) > 255 {
		return errors.New("package title must be less than 255 characters")
	}

	if actualPrice < 0 {
		return errors.New("actual price cannot be negative")
	}

	if discountedPrice < 0 {
		return errors.New("discounted price cannot be negative")
	}

	if discountedPrice > actualPrice {
		return errors.New("discounted price cannot exceed actual price")
	}

	if categoryID <= 0 {
		return errors.New("category is required")
	}

	if imageURL != "" {
		if _, err := url.ParseRequestURI(imageURL); err != nil {
			return errors.New("image URL is invalid")
		}
	}

	return nil
}

// EffectivePrice is the price a buyer pays right now, in minor units
func (e *Event) EffectivePrice() int {
	return e.DiscountedPrice
}

// PriceInCurrency returns the discounted price in major currency units
func (e *Event) PriceInCurrency() float64 {
	return float64(e.DiscountedPrice) / 100.0
}

// DiscountPercent returns the rounded discount percentage, 0 when not discounted
func (e *Event) DiscountPercent() int {
	if e.ActualPrice <= 0 || e.DiscountedPrice >= e.ActualPrice {
		return 0
	}
	return int(float64(e.ActualPrice-e.DiscountedPrice)/float64(e.ActualPrice)*100 + 0.5)
}
