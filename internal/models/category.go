package models

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Category represents a party package category
type Category struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CategoryCreateRequest represents the data needed to create a new category
type CategoryCreateRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// CategoryUpdateRequest represents the data that can be updated for a category
type CategoryUpdateRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// Slug validation regex: lowercase letters, numbers, and hyphens only
var slugRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

// Validate validates category creation data
func (req *CategoryCreateRequest) Validate() error {
	return validateCategoryFields(req.Title, req.Slug, req.Description)
}

// Validate validates category update data
func (req *CategoryUpdateRequest) Validate() error {
	return validateCategoryFields(req.Title, req.Slug, req.Description)
}

func validateCategoryFields(title, slug, description string) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("category title is required")
	}

	if len(title) > 100 {
		return errors.New("category title must be less than 100 characters")
	}

	if err := validateCategorySlug(slug); err != nil {
		return err
	}

	if len(description) > 500 {
		return errors.New("category description must be less than 500 characters")
	}

	return nil
}

func validateCategorySlug(slug string) error {
	if slug == "" {
		return errors.New("category slug is required")
	}

	if len(slug) > 100 {
		return errors.New("category slug must be less than 100 characters")
	}

	if !slugRegex.MatchString(slug) {
		return errors.New("category slug can only contain lowercase letters, numbers, and hyphens")
	}

	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return errors.New("category slug cannot start or end with a hyphen")
	}

	if strings.Contains(slug, "--") {
		return errors.New("category slug cannot contain consecutive hyphens")
	}

	return nil
}

// GenerateSlug generates a URL-friendly slug from the category title
func GenerateSlug(title string) string {
	slug := strings.ToLower(title)

	reg := regexp.MustCompile(`[^a-z0-9]+`)
	slug = reg.ReplaceAllString(slug, "-")

	return strings.Trim(slug, "-")
}
