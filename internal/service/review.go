package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/furnico/internal/models"
	"github.com/Skotchmaster/furnico/internal/repo"
	"github.com/Skotchmaster/furnico/internal/transport"
)

type ReviewService struct {
	Repo    *repo.GormRepo
	Catalog *CatalogService
}

// AddReview accepts one review per user and product, and only from buyers
// whose order was not cancelled.
func (s *ReviewService) AddReview(ctx context.Context, userID, productID uuid.UUID, req transport.AddReviewRequest) (*transport.ReviewResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: review content is required", ErrValidation)
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	if _, err := s.Repo.GetProduct(ctx, productID, false); err != nil {
		return nil, notFoundOr(err, "product")
	}

	bought, err := s.Repo.HasPurchased(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if !bought {
		return nil, fmt.Errorf("%w: You can only review products you have purchased.", ErrForbidden)
	}

	exists, err := s.Repo.ReviewExists(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: You have already reviewed this product.", ErrConflict)
	}

	rv := &models.Review{ProductID: productID, UserID: userID, Rating: req.Rating, Content: content}
	if err := s.Repo.CreateReview(ctx, rv); err != nil {
		if repo.IsDuplicate(err) {
			return nil, fmt.Errorf("%w: You have already reviewed this product.", ErrConflict)
		}
		return nil, err
	}

	if u, err := s.Repo.GetUserByID(ctx, userID); err == nil {
		rv.User = u
	}
	s.Catalog.InvalidateProduct(ctx, productID)

	out := transport.NewReviewResponse(*rv)
	return &out, nil
}

func (s *ReviewService) List(ctx context.Context, productID uuid.UUID) ([]transport.ReviewResponse, error) {
	if _, err := s.Repo.GetProduct(ctx, productID, false); err != nil {
		return nil, notFoundOr(err, "product")
	}
	items, err := s.Repo.ListReviews(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]transport.ReviewResponse, 0, len(items))
	for _, r := range items {
		out = append(out, transport.NewReviewResponse(r))
	}
	return out, nil
}
