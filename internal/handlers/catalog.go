package handlers

import (
	"net/http"

	"party-package-store/internal/repositories"
	"party-package-store/internal/services"
)

// CatalogHandler serves the public package and category catalog
type CatalogHandler struct {
	catalogService *services.CatalogService
	reviewService  *services.ReviewService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *services.CatalogService, reviewService *services.ReviewService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		reviewService:  reviewService,
	}
}

// ListPackages handles GET /api/events with optional category, trending,
// limit and offset query parameters
func (h *CatalogHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	filters := repositories.EventSearchFilters{
		Trending: r.URL.Query().Get("trending") == "true",
		Limit:    queryInt(r, "limit", "50"),
		Offset:   queryInt(r, "offset", "0"),
	}

	// category accepts either a numeric id or a slug
	if category := r.URL.Query().Get("category"); category != "" {
		if id := queryInt(r, "category", "0"); id > 0 {
			filters.CategoryID = id
		} else {
			filters.CategorySlug = category
		}
	}

	events, err := h.catalogService.ListPackages(filters)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

// GetPackage handles GET /api/events/{id}
func (h *CatalogHandler) GetPackage(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	event, err := h.catalogService.GetPackage(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// ListCategories handles GET /api/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories()
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

// ListReviews handles GET /api/events/{id}/reviews
func (h *CatalogHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	reviews, err := h.reviewService.ListReviews(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}
