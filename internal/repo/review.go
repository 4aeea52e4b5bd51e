package repo

import (
	"context"

	"github.com/Skotchmaster/furnico/internal/models"
	"github.com/google/uuid"
)

func (r *GormRepo) ReviewExists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Review{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormRepo) CreateReview(ctx context.Context, rv *models.Review) error {
	return r.DB.WithContext(ctx).Create(rv).Error
}

func (r *GormRepo) ListReviews(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	var out []models.Review
	if err := r.DB.WithContext(ctx).
		Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
