package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"party-package-store/internal/models"
)

// ReviewRepository handles review data operations
type ReviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a review. The unique constraint on (event_id, user_id)
// rejects a second review from the same user; the conflict surfaces as
// ErrDuplicateEntry.
func (r *ReviewRepository) Create(eventID, userID, stars int, review string) (*models.Review, error) {
	query := `
		INSERT INTO reviews (event_id, user_id, stars, review, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, event_id, user_id, stars, review, created_at`

	result := &models.Review{}
	err := r.db.QueryRow(query, eventID, userID, stars, review, time.Now()).Scan(
		&result.ID,
		&result.EventID,
		&result.UserID,
		&result.Stars,
		&result.Review,
		&result.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("already reviewed: %w", models.ErrDuplicateEntry)
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return result, nil
}

// ListByEvent retrieves reviews for a package, newest first
func (r *ReviewRepository) ListByEvent(eventID int) ([]*models.Review, error) {
	query := `
		SELECT r.id, r.event_id, r.user_id, r.stars, r.review, r.created_at, u.full_name
		FROM reviews r
		JOIN users u ON r.user_id = u.id
		WHERE r.event_id = $1
		ORDER BY r.created_at DESC`

	rows, err := r.db.Query(query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		review := &models.Review{}
		err := rows.Scan(
			&review.ID,
			&review.EventID,
			&review.UserID,
			&review.Stars,
			&review.Review,
			&review.CreatedAt,
			&review.UserName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}
