package handlers

import (
	"net/http"

	"party-package-store/internal/middleware"
	"party-package-store/internal/models"
	"party-package-store/internal/services"
)

// ReviewHandler handles review submission
type ReviewHandler struct {
	reviewService *services.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReview handles POST /api/events/{id}/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	eventID, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.ReviewCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	review, err := h.reviewService.CreateReview(user.ID, eventID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, review)
}
