/**
 * @description
 * This file contains the business logic for product reviews: submission with
 * markdown rendering, moderation, and public listing of approved reviews.
 */
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/apperr"
	"github.com/viteezy/commerce-backend/internal/domain"
	"github.com/viteezy/commerce-backend/internal/store"
	"github.com/viteezy/commerce-backend/pkg/markdown"
	"github.com/viteezy/commerce-backend/pkg/rabbitmq"
)

// ReviewRepository defines the database operations the review service needs.
type ReviewRepository interface {
	CreateReview(ctx context.Context, rev *domain.Review) (*domain.Review, error)
	UpdateReviewStatus(ctx context.Context, id uuid.UUID, status string, by uuid.UUID) (*domain.Review, error)
	ListProductReviews(ctx context.Context, productID uuid.UUID, limit, offset int) ([]domain.Review, int, error)
	ListReviewsByStatus(ctx context.Context, status string, limit, offset int) ([]domain.Review, int, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
}

// ReviewService provides review business logic.
type ReviewService struct {
	repo      ReviewRepository
	publisher rabbitmq.Publisher
	logger    *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(repo ReviewRepository, publisher rabbitmq.Publisher, logger *slog.Logger) *ReviewService {
	return &ReviewService{repo: repo, publisher: publisher, logger: logger}
}

// ReviewInput carries a customer's review submission.
type ReviewInput struct {
	ProductID uuid.UUID
	Rating    int
	Title     string
	Body      string
}

// Submit creates a pending review. The markdown body is rendered to sanitized
// HTML at write time so reads never re-render.
func (s *ReviewService) Submit(ctx context.Context, userID uuid.UUID, in ReviewInput) (*domain.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, apperr.Unprocessable("rating must be between 1 and 5")
	}

	if _, err := s.repo.GetProductByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, err
	}

	rev, err := s.repo.CreateReview(ctx, &domain.Review{
		ProductID: in.ProductID,
		UserID:    userID,
		Rating:    in.Rating,
		Title:     in.Title,
		Body:      in.Body,
		BodyHTML:  markdown.Render(in.Body),
		Status:    domain.ReviewPending,
		Audit:     domain.Audit{CreatedBy: &userID},
	})
	if err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, domain.EventsExchange, domain.RoutingKeyReviewSubmitted, domain.ReviewSubmittedEvent{
		ReviewID:  rev.ID,
		ProductID: rev.ProductID,
		Rating:    rev.Rating,
		Timestamp: time.Now(),
	}); err != nil {
		s.logger.Warn("failed to publish review submitted event", "review_id", rev.ID, "error", err)
	}

	return rev, nil
}

// Moderate sets a pending review's status to approved or rejected.
func (s *ReviewService) Moderate(ctx context.Context, id uuid.UUID, status string, by uuid.UUID) (*domain.Review, error) {
	if status != domain.ReviewApproved && status != domain.ReviewRejected {
		return nil, apperr.Unprocessable("status must be approved or rejected")
	}

	rev, err := s.repo.UpdateReviewStatus(ctx, id, status, by)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("review not found")
		}
		return nil, err
	}
	return rev, nil
}

// ListForProduct returns the approved reviews of a product, newest first.
func (s *ReviewService) ListForProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]domain.Review, int, error) {
	return s.repo.ListProductReviews(ctx, productID, limit, offset)
}

// ListByStatus returns reviews in the given moderation state for admins.
func (s *ReviewService) ListByStatus(ctx context.Context, status string, limit, offset int) ([]domain.Review, int, error) {
	if status == "" {
		status = domain.ReviewPending
	}
	return s.repo.ListReviewsByStatus(ctx, status, limit, offset)
}
