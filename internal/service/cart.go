package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/furnico/internal/events"
	"github.com/Skotchmaster/furnico/internal/models"
	"github.com/Skotchmaster/furnico/internal/repo"
	"github.com/Skotchmaster/furnico/internal/transport"
)

type CartService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*transport.CartResponse, error) {
	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return cartResponse(items), nil
}

func cartResponse(items []models.CartItem) *transport.CartResponse {
	out := &transport.CartResponse{Items: make([]transport.CartItemResponse, 0, len(items)), Total: decimal.Zero}
	for _, it := range items {
		row := transport.CartItemResponse{ID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity}
		if it.Product != nil {
			p := transport.NewProductResponse(it.Product, false)
			row.Product = &p
			out.Total = out.Total.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
		out.Items = append(out.Items, row)
	}
	return out
}

func (s *CartService) AddToCart(ctx context.Context, userID uuid.UUID, req transport.AddToCartRequest) (*models.CartItem, error) {
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	product, err := s.Repo.GetProduct(ctx, req.ProductID, false)
	if err != nil {
		return nil, notFoundOr(err, "product")
	}

	item := &models.CartItem{UserID: userID, ProductID: req.ProductID, Quantity: qty}
	if err := s.Repo.AddToCart(ctx, item); err != nil {
		return nil, err
	}
	item.Product = product

	publish(ctx, s.Events, events.TopicCart, userID.String(), "cart.item_added", map[string]any{
		"user_id": userID, "product_id": req.ProductID, "quantity": item.Quantity,
	})
	return item, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, qty int) (*models.CartItem, error) {
	if qty < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	item, err := s.Repo.UpdateCartQuantity(ctx, userID, itemID, qty)
	if err != nil {
		return nil, notFoundOr(err, "cart item")
	}
	publish(ctx, s.Events, events.TopicCart, userID.String(), "cart.item_updated", map[string]any{
		"user_id": userID, "item_id": itemID, "quantity": qty,
	})
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if err := s.Repo.RemoveCartItem(ctx, userID, itemID); err != nil {
		return notFoundOr(err, "cart item")
	}
	publish(ctx, s.Events, events.TopicCart, userID.String(), "cart.item_removed", map[string]any{
		"user_id": userID, "item_id": itemID,
	})
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.Repo.ClearCart(ctx, userID); err != nil {
		return err
	}
	publish(ctx, s.Events, events.TopicCart, userID.String(), "cart.cleared", map[string]any{"user_id": userID})
	return nil
}
