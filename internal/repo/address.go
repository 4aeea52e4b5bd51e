package repo

import (
	"context"

	"github.com/Skotchmaster/furnico/internal/models"
	"github.com/google/uuid"
)

func (r *GormRepo) ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	var out []models.Address
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) GetAddress(ctx context.Context, userID, id uuid.UUID) (*models.Address, error) {
	var a models.Address
	if err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormRepo) CreateAddress(ctx context.Context, a *models.Address) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *GormRepo) UpdateAddress(ctx context.Context, a *models.Address) error {
	return notFound(r.DB.WithContext(ctx).Model(&models.Address{}).
		Where("id = ? AND user_id = ?", a.ID, a.UserID).
		Updates(map[string]any{
			"name":   a.Name,
			"street": a.Street,
			"city":   a.City,
			"state":  a.State,
			"zip":    a.Zip,
		}))
}

func (r *GormRepo) DeleteAddress(ctx context.Context, userID, id uuid.UUID) error {
	return notFound(r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Address{}))
}
