package services

import (
	"fmt"
	"log"

	"party-package-store/internal/models"
)

// ReviewRepository defines the review persistence operations
type ReviewRepository interface {
	Create(eventID, userID, stars int, review string) (*models.Review, error)
	ListByEvent(eventID int) ([]*models.Review, error)
}

// ReviewService handles package reviews
type ReviewService struct {
	reviewRepo ReviewRepository
	eventRepo  EventRepository
}

// NewReviewService creates a new review service
func NewReviewService(reviewRepo ReviewRepository, eventRepo EventRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		eventRepo:  eventRepo,
	}
}

// CreateReview records a review for a package the user has not reviewed
// yet and folds the stars into the package's rating aggregate
func (s *ReviewService) CreateReview(userID, eventID int, req *models.ReviewCreateRequest) (*models.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, models.ErrInvalidInput)
	}

	if _, err := s.eventRepo.GetByID(eventID); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.Create(eventID, userID, req.Stars, req.Review)
	if err != nil {
		return nil, err
	}

	if err := s.eventRepo.ApplyReviewStats(eventID, req.Stars); err != nil {
		// The review row exists; a stale aggregate is tolerable and will
		// self-correct on the next review.
		log.Printf("Warning: failed to update rating for package %d: %v", eventID, err)
	}

	return review, nil
}

// ListReviews returns reviews for a package, newest first
func (s *ReviewService) ListReviews(eventID int) ([]*models.Review, error) {
	if _, err := s.eventRepo.GetByID(eventID); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByEvent(eventID)
}
