package repo

import (
	"context"
	"errors"
	"time"

	"github.com/Skotchmaster/furnico/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *GormRepo) AddRefreshToken(ctx context.Context, t *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

// RotateRefreshToken revokes the token identified by oldJTI and stores next
// in one transaction. The old token must match oldHash and still be live.
func (r *GormRepo) RotateRefreshToken(ctx context.Context, oldJTI, oldHash string, next *models.RefreshToken) (*models.RefreshToken, error) {
	var old models.RefreshToken
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("jti = ?", oldJTI).First(&old).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTokenInvalid
			}
			return err
		}
		if old.TokenHash != oldHash || old.Revoked || old.ExpiresAt.Before(time.Now()) {
			return ErrTokenInvalid
		}

		res := tx.Model(&models.RefreshToken{}).
			Where("jti = ? AND revoked = ?", oldJTI, false).
			Update("revoked", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTokenInvalid
		}
		return tx.Create(next).Error
	})
	if err != nil {
		return nil, err
	}
	return &old, nil
}

func (r *GormRepo) RevokeRefreshByHash(ctx context.Context, hash string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ?", hash).
		Update("revoked", true).Error
}

func (r *GormRepo) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
}
