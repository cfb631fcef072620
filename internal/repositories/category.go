package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"party-package-store/internal/models"
)

// CategoryRepository handles category data operations
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new category
func (r *CategoryRepository) Create(req *models.CategoryCreateRequest) (*models.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO categories (title, slug, description, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, slug, description, image_url, created_at`

	category := &models.Category{}
	err := r.db.QueryRow(query, req.Title, req.Slug, req.Description, req.ImageURL, time.Now()).Scan(
		&category.ID,
		&category.Title,
		&category.Slug,
		&category.Description,
		&category.ImageURL,
		&category.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("category slug already in use: %w", models.ErrDuplicateEntry)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(id int) (*models.Category, error) {
	query := `SELECT id, title, slug, description, image_url, created_at FROM categories WHERE id = $1`

	category := &models.Category{}
	err := r.db.QueryRow(query, id).Scan(
		&category.ID,
		&category.Title,
		&category.Slug,
		&category.Description,
		&category.ImageURL,
		&category.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

// Update updates a category
func (r *CategoryRepository) Update(id int, req *models.CategoryUpdateRequest) (*models.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE categories SET title = $2, slug = $3, description = $4, image_url = $5
		WHERE id = $1
		RETURNING id, title, slug, description, image_url, created_at`

	category := &models.Category{}
	err := r.db.QueryRow(query, id, req.Title, req.Slug, req.Description, req.ImageURL).Scan(
		&category.ID,
		&category.Title,
		&category.Slug,
		&category.Description,
		&category.ImageURL,
		&category.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrCategoryNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("category slug already in use: %w", models.ErrDuplicateEntry)
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// Delete deletes a category
func (r *CategoryRepository) Delete(id int) error {
	result, err := r.db.Exec("DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return fmt.Errorf("category still has packages: %w", models.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrCategoryNotFound
	}

	return nil
}

// List retrieves all categories ordered by title
func (r *CategoryRepository) List() ([]*models.Category, error) {
	query := `SELECT id, title, slug, description, image_url, created_at FROM categories ORDER BY title`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		err := rows.Scan(
			&category.ID,
			&category.Title,
			&category.Slug,
			&category.Description,
			&category.ImageURL,
			&category.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}
