package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/furnico/internal/events"
	"github.com/Skotchmaster/furnico/internal/models"
	"github.com/Skotchmaster/furnico/internal/repo"
	"github.com/Skotchmaster/furnico/internal/transport"
	"github.com/Skotchmaster/furnico/pkg/util"
)

const deletedUserName = "Deleted User"

type OrderService struct {
	Repo    *repo.GormRepo
	Events  events.Publisher
	Catalog *CatalogService
}

type line struct {
	productID uuid.UUID
	qty       int
}

// CreateOrder places an order for the given lines, or for the whole cart when
// req.Items is empty. Stock is reserved atomically with the order insert.
func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, req transport.CreateOrderRequest) (*models.Order, error) {
	paymentID := strings.TrimSpace(req.PaymentIntentID)
	if paymentID == "" {
		return nil, fmt.Errorf("%w: paymentIntentId is required", ErrValidation)
	}

	fromCart := len(req.Items) == 0
	var lines []line
	if fromCart {
		cart, err := s.Repo.GetCart(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, it := range cart {
			lines = append(lines, line{productID: it.ProductID, qty: it.Quantity})
		}
	} else {
		for _, it := range req.Items {
			if it.Quantity < 1 {
				return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
			}
			lines = append(lines, line{productID: it.ProductID, qty: it.Quantity})
		}
	}
	lines = mergeLines(lines)
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no items to order", ErrValidation)
	}

	var order *models.Order
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		used, err := tx.PaymentIntentUsed(ctx, paymentID)
		if err != nil {
			return err
		}
		if used {
			return fmt.Errorf("%w: payment already used for another order", ErrConflict)
		}

		addr, err := tx.GetAddress(ctx, userID, req.AddressID)
		if err != nil {
			return notFoundOr(err, "address")
		}

		ids := make([]uuid.UUID, 0, len(lines))
		for _, l := range lines {
			ids = append(ids, l.productID)
		}
		products, err := tx.ProductsByIDs(ctx, ids)
		if err != nil {
			return err
		}

		order = &models.Order{
			UserID:          userID,
			Status:          models.StatusPending,
			PaymentIntentID: paymentID,
			Total:           decimal.Zero,
			AddressID:       &addr.ID,
			ShipName:        addr.Name,
			ShipStreet:      addr.Street,
			ShipCity:        addr.City,
			ShipState:       addr.State,
			ShipZip:         addr.Zip,
		}
		for _, l := range lines {
			p, ok := products[l.productID]
			if !ok {
				return fmt.Errorf("%w: product %s not found", ErrNotFound, l.productID)
			}
			if err := tx.DecrementStock(ctx, p.ID, l.qty); err != nil {
				if errors.Is(err, repo.ErrInsufficient) {
					return fmt.Errorf("%w: insufficient stock for %s", ErrValidation, p.Title)
				}
				return err
			}
			order.Items = append(order.Items, models.OrderItem{ProductID: p.ID, Quantity: l.qty, UnitPrice: p.Price})
			order.Total = order.Total.Add(p.Price.Mul(decimal.NewFromInt(int64(l.qty))))
		}

		if err := tx.CreateOrder(ctx, order); err != nil {
			if repo.IsDuplicate(err) {
				return fmt.Errorf("%w: payment already used for another order", ErrConflict)
			}
			return err
		}
		if fromCart {
			return tx.ClearCart(ctx, userID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, l := range lines {
		s.Catalog.InvalidateProduct(ctx, l.productID)
	}
	publish(ctx, s.Events, events.TopicOrders, order.ID.String(), "order.created", map[string]any{
		"order_id": order.ID, "user_id": userID, "total": order.Total.StringFixed(2), "items": len(order.Items),
	})
	return s.Repo.GetOrder(ctx, &userID, order.ID)
}

// mergeLines folds duplicate products together and orders the result by
// product ID so every transaction touches stock rows in the same order.
func mergeLines(in []line) []line {
	idx := map[uuid.UUID]int{}
	out := make([]line, 0, len(in))
	for _, l := range in {
		if i, ok := idx[l.productID]; ok {
			out[i].qty += l.qty
			continue
		}
		idx[l.productID] = len(out)
		out = append(out, l)
	}
	slices.SortFunc(out, func(a, b line) int {
		return bytes.Compare(a.productID[:], b.productID[:])
	})
	return out
}

func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, userID)
}

func (s *OrderService) GetOrder(ctx context.Context, userID, id uuid.UUID) (*models.Order, error) {
	o, err := s.Repo.GetOrder(ctx, &userID, id)
	if err != nil {
		return nil, notFoundOr(err, "order")
	}
	return o, nil
}

// CancelOrder lets the owner cancel while the order is PENDING or PROCESSING.
func (s *OrderService) CancelOrder(ctx context.Context, userID, id uuid.UUID) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, &userID, id)
	if err != nil {
		return nil, notFoundOr(err, "order")
	}
	if !order.Status.Cancellable() {
		return nil, fmt.Errorf("%w: Cannot cancel an order with status: %s", ErrValidation, order.Status)
	}
	if err := s.transition(ctx, order, models.StatusCancelled); err != nil {
		return nil, err
	}
	return order, nil
}

// SetStatus is the admin transition. Cancelled orders are final; moving into
// CANCELLED returns stock.
func (s *OrderService) SetStatus(ctx context.Context, id uuid.UUID, next models.OrderStatus) (*models.Order, error) {
	next = models.OrderStatus(strings.ToUpper(strings.TrimSpace(string(next))))
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrValidation, next)
	}
	order, err := s.Repo.GetOrder(ctx, nil, id)
	if err != nil {
		return nil, notFoundOr(err, "order")
	}
	if order.Status == next {
		return order, nil
	}
	if order.Status == models.StatusCancelled {
		return nil, fmt.Errorf("%w: cancelled orders cannot change status", ErrValidation)
	}
	if err := s.transition(ctx, order, next); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) transition(ctx context.Context, order *models.Order, next models.OrderStatus) error {
	prev := order.Status
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		moved, err := tx.SetOrderStatus(ctx, order.ID, prev, next)
		if err != nil {
			return err
		}
		if !moved {
			return fmt.Errorf("%w: order status changed concurrently, retry", ErrConflict)
		}
		if next != models.StatusCancelled {
			return nil
		}
		restock := make([]line, 0, len(order.Items))
		for _, it := range order.Items {
			restock = append(restock, line{productID: it.ProductID, qty: it.Quantity})
		}
		for _, l := range mergeLines(restock) {
			if err := tx.IncrementStock(ctx, l.productID, l.qty); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	order.Status = next

	if next == models.StatusCancelled {
		for _, it := range order.Items {
			s.Catalog.InvalidateProduct(ctx, it.ProductID)
		}
	}
	eventType := "order.status_changed"
	if next == models.StatusCancelled {
		eventType = "order.cancelled"
	}
	publish(ctx, s.Events, events.TopicOrders, order.ID.String(), eventType, map[string]any{
		"order_id": order.ID, "user_id": order.UserID, "from": prev, "to": next,
	})
	return nil
}

type AdminOrderPage struct {
	Data []transport.AdminOrderItem `json:"data"`
	Meta util.Meta                  `json:"meta"`
}

func (s *OrderService) AdminListItems(ctx context.Context, page, size int) (*AdminOrderPage, error) {
	page = util.ClampPage(page)
	offset, limit := util.Calculate(page, size)
	total, items, err := s.Repo.ListOrderItems(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		if it.Order != nil {
			userIDs = append(userIDs, it.Order.UserID)
		}
	}
	names, err := s.Repo.UserNames(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	out := &AdminOrderPage{
		Data: make([]transport.AdminOrderItem, 0, len(items)),
		Meta: util.NewMeta(page, offset, limit, total),
	}
	for _, it := range items {
		row := transport.AdminOrderItem{
			ID:           it.ID,
			OrderID:      it.OrderID,
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			CreatedAt:    it.CreatedAt,
			CustomerName: deletedUserName,
		}
		if it.Order != nil {
			row.Status = it.Order.Status
			row.CustomerID = it.Order.UserID
			row.OrderTotal = it.Order.Total
			if n, ok := names[it.Order.UserID]; ok {
				row.CustomerName = n
			}
		}
		if it.Product != nil {
			row.ProductTitle = it.Product.Title
		}
		out.Data = append(out.Data, row)
	}
	return out, nil
}
