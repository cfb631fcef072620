package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"party-package-store/internal/models"
)

// EventRepository handles party package data operations
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// EventSearchFilters represents filters for package listing
type EventSearchFilters struct {
	CategoryID   int
	CategorySlug string
	Trending     bool
	Limit        int
	Offset       int
}

const eventColumns = `id, title, description, actual_price, discounted_price, rating,
	reviews_count, trending, category_id, image_url, additional_images, created_at, updated_at`

func scanEvent(scanner interface{ Scan(...interface{}) error }) (*models.Event, error) {
	event := &models.Event{}
	err := scanner.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.ActualPrice,
		&event.DiscountedPrice,
		&event.Rating,
		&event.ReviewsCount,
		&event.Trending,
		&event.CategoryID,
		&event.ImageURL,
		&event.AdditionalImages,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// Create creates a new package
func (r *EventRepository) Create(req *models.EventCreateRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO events (title, description, actual_price, discounted_price, trending,
			category_id, image_url, additional_images, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING ` + eventColumns

	event, err := scanEvent(r.db.QueryRow(
		query,
		req.Title,
		req.Description,
		req.ActualPrice,
		req.DiscountedPrice,
		req.Trending,
		req.CategoryID,
		req.ImageURL,
		pq.Array(req.AdditionalImages),
		time.Now(),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create package: %w", err)
	}

	return event, nil
}

// Update updates a package
func (r *EventRepository) Update(id int, req *models.EventUpdateRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE events SET title = $2, description = $3, actual_price = $4, discounted_price = $5,
			trending = $6, category_id = $7, image_url = $8, additional_images = $9, updated_at = $10
		WHERE id = $1
		RETURNING ` + eventColumns

	event, err := scanEvent(r.db.QueryRow(
		query,
		id,
		req.Title,
		req.Description,
		req.ActualPrice,
		req.DiscountedPrice,
		req.Trending,
		req.CategoryID,
		req.ImageURL,
		pq.Array(req.AdditionalImages),
		time.Now(),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to update package: %w", err)
	}

	return event, nil
}

// GetByID retrieves a package by ID
func (r *EventRepository) GetByID(id int) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}

	return event, nil
}

// Search retrieves packages matching the filters
func (r *EventRepository) Search(filters EventSearchFilters) ([]*models.Event, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filters.CategoryID > 0 {
		conditions = append(conditions, fmt.Sprintf("e.category_id = $%d", argIndex))
		args = append(args, filters.CategoryID)
		argIndex++
	}

	if filters.CategorySlug != "" {
		conditions = append(conditions, fmt.Sprintf("e.category_id = (SELECT id FROM categories WHERE slug = $%d)", argIndex))
		args = append(args, filters.CategorySlug)
		argIndex++
	}

	if filters.Trending {
		conditions = append(conditions, "e.trending")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	if filters.Limit <= 0 {
		filters.Limit = 50
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	query := fmt.Sprintf(`
		SELECT e.id, e.title, e.description, e.actual_price, e.discounted_price, e.rating,
			e.reviews_count, e.trending, e.category_id, e.image_url, e.additional_images,
			e.created_at, e.updated_at
		FROM events e
		%s
		ORDER BY e.created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIndex, argIndex+1)

	args = append(args, filters.Limit, filters.Offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search packages: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan package: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// ApplyReviewStats folds a newly submitted star rating into the package's
// denormalized rating and reviews_count in a single statement.
func (r *EventRepository) ApplyReviewStats(eventID, stars int) error {
	query := `
		UPDATE events
		SET rating = ROUND(((rating * reviews_count) + $2) / (reviews_count + 1), 2),
			reviews_count = reviews_count + 1,
			updated_at = $3
		WHERE id = $1`

	result, err := r.db.Exec(query, eventID, stars, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update review stats: %w", err)
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
