package services

import (
	"fmt"

	"party-package-store/internal/models"
	"party-package-store/internal/repositories"
)

// CategoryRepository defines the category persistence operations
type CategoryRepository interface {
	Create(req *models.CategoryCreateRequest) (*models.Category, error)
	GetByID(id int) (*models.Category, error)
	Update(id int, req *models.CategoryUpdateRequest) (*models.Category, error)
	Delete(id int) error
	List() ([]*models.Category, error)
}

// CatalogService serves the public package catalog and the admin-side
// category and package management
type CatalogService struct {
	eventRepo    EventRepository
	categoryRepo CategoryRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(eventRepo EventRepository, categoryRepo CategoryRepository) *CatalogService {
	return &CatalogService{
		eventRepo:    eventRepo,
		categoryRepo: categoryRepo,
	}
}

// ListPackages returns packages matching the given filters
func (s *CatalogService) ListPackages(filters repositories.EventSearchFilters) ([]*models.Event, error) {
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 50
	}
	return s.eventRepo.Search(filters)
}

// GetPackage returns a single package by id
func (s *CatalogService) GetPackage(id int) (*models.Event, error) {
	return s.eventRepo.GetByID(id)
}

// CreatePackage creates a package after validating the request and the
// referenced category
func (s *CatalogService) CreatePackage(req *models.EventCreateRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, models.ErrInvalidInput)
	}

	if _, err := s.categoryRepo.GetByID(req.CategoryID); err != nil {
		return nil, err
	}

	return s.eventRepo.Create(req)
}

// UpdatePackage applies a partial update to an existing package
func (s *CatalogService) UpdatePackage(id int, req *models.EventUpdateRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, models.ErrInvalidInput)
	}

	if _, err := s.categoryRepo.GetByID(req.CategoryID); err != nil {
		return nil, err
	}

	return s.eventRepo.Update(id, req)
}

// ListCategories returns all categories
func (s *CatalogService) ListCategories() ([]*models.Category, error) {
	return s.categoryRepo.List()
}

// CreateCategory creates a category, generating a slug when none is given
func (s *CatalogService) CreateCategory(req *models.CategoryCreateRequest) (*models.Category, error) {
	if req.Slug == "" {
		req.Slug = models.GenerateSlug(req.Title)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, models.ErrInvalidInput)
	}

	return s.categoryRepo.Create(req)
}

// UpdateCategory updates an existing category
func (s *CatalogService) UpdateCategory(id int, req *models.CategoryUpdateRequest) (*models.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, models.ErrInvalidInput)
	}

	return s.categoryRepo.Update(id, req)
}

// DeleteCategory removes a category. Deleting a category that still has
// packages fails with a conflict.
func (s *CatalogService) DeleteCategory(id int) error {
	return s.categoryRepo.Delete(id)
}
