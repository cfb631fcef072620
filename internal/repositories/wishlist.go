package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"party-package-store/internal/models"
)

// WishlistRepository handles wishlist data operations
type WishlistRepository struct {
	db *sql.DB
}

// NewWishlistRepository creates a new wishlist repository
func NewWishlistRepository(db *sql.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// Create saves a package to the user's wishlist. Saving the same package
// twice hits the (event_id, user_id) unique constraint and surfaces as
// ErrDuplicateEntry.
func (r *WishlistRepository) Create(eventID, userID int) (*models.WishlistEntry, error) {
	query := `
		INSERT INTO wishlists (event_id, user_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, event_id, user_id, created_at`

	entry := &models.WishlistEntry{}
	err := r.db.QueryRow(query, eventID, userID, time.Now()).Scan(
		&entry.ID,
		&entry.EventID,
		&entry.UserID,
		&entry.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("already in wishlist: %w", models.ErrDuplicateEntry)
		}
		return nil, fmt.Errorf("failed to create wishlist entry: %w", err)
	}

	return entry, nil
}

// Delete removes a package from the user's wishlist
func (r *WishlistRepository) Delete(eventID, userID int) error {
	result, err := r.db.Exec("DELETE FROM wishlists WHERE event_id = $1 AND user_id = $2", eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete wishlist entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrEventNotFound
	}

	return nil
}

// ListByUser retrieves the user's wishlist with the referenced packages
func (r *WishlistRepository) ListByUser(userID int) ([]*models.WishlistEntry, error) {
	query := `
		SELECT w.id, w.event_id, w.user_id, w.created_at,
			e.id, e.title, e.description, e.actual_price, e.discounted_price, e.rating,
			e.reviews_count, e.trending, e.category_id, e.image_url, e.additional_images,
			e.created_at, e.updated_at
		FROM wishlists w
		JOIN events e ON w.event_id = e.id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	defer rows.Close()

	var entries []*models.WishlistEntry
	for rows.Next() {
		entry := &models.WishlistEntry{Event: &models.Event{}}
		err := rows.Scan(
			&entry.ID,
			&entry.EventID,
			&entry.UserID,
			&entry.CreatedAt,
			&entry.Event.ID,
			&entry.Event.Title,
			&entry.Event.Description,
			&entry.Event.ActualPrice,
			&entry.Event.DiscountedPrice,
			&entry.Event.Rating,
			&entry.Event.ReviewsCount,
			&entry.Event.Trending,
			&entry.Event.CategoryID,
			&entry.Event.ImageURL,
			&entry.Event.AdditionalImages,
			&entry.Event.CreatedAt,
			&entry.Event.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wishlist entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
