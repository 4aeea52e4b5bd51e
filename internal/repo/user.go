package repo

import (
	"context"
	"errors"
	"time"

	"github.com/Skotchmaster/furnico/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *GormRepo) CreateUserIfNotExists(ctx context.Context, u *models.User) error {
	tx := r.DB.WithContext(ctx).Where("email = ?", u.Email).FirstOrCreate(u)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrUserAlreadyExist
	}
	return nil
}

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) UserNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []models.User
	if err := r.DB.WithContext(ctx).Select("id", "name").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u.Name
	}
	return out, nil
}

func (r *GormRepo) SetOTP(ctx context.Context, userID uuid.UUID, otpHash string, expiry time.Time) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{"otp_hash": otpHash, "otp_expiry": expiry}).Error
}

// ResetPassword swaps the hash and clears any pending OTP.
func (r *GormRepo) ResetPassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	res := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{"password_hash": passwordHash, "otp_hash": "", "otp_expiry": nil})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpsertUser creates the user or resets role and password of an existing one.
func (r *GormRepo) UpsertUser(ctx context.Context, u *models.User) error {
	var existing models.User
	err := r.DB.WithContext(ctx).Where("email = ?", u.Email).First(&existing).Error
	if err == nil {
		u.ID = existing.ID
		return r.DB.WithContext(ctx).Model(&existing).
			Updates(map[string]any{"name": u.Name, "role": u.Role, "password_hash": u.PasswordHash}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.DB.WithContext(ctx).Create(u).Error
}
