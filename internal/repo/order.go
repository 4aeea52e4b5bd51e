package repo

import (
	"context"

	"github.com/Skotchmaster/furnico/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) PaymentIntentUsed(ctx context.Context, paymentIntentID string) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("payment_intent_id = ?", paymentIntentID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Items").Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder loads an order with its items. A nil userID skips the ownership filter.
func (r *GormRepo) GetOrder(ctx context.Context, userID *uuid.UUID, id uuid.UUID) (*models.Order, error) {
	q := r.DB.WithContext(ctx).Preload("Items").Preload("Items.Product").Where("id = ?", id)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	var order models.Order
	if err := q.First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// SetOrderStatus moves the order to next only while it is still in from.
// It returns false when another writer changed the status first.
func (r *GormRepo) SetOrderStatus(ctx context.Context, id uuid.UUID, from, next models.OrderStatus) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", next)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepo) ListOrderItems(ctx context.Context, offset, limit int) (int64, []models.OrderItem, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.OrderItem{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}
	items := make([]models.OrderItem, 0, limit)
	if err := r.DB.WithContext(ctx).
		Preload("Order").Preload("Product").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

// HasPurchased reports whether the user has a non-cancelled order containing the product.
func (r *GormRepo) HasPurchased(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND order_items.product_id = ? AND orders.status <> ?", userID, productID, models.StatusCancelled).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func notFound(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
