package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furnico/internal/models"
	"github.com/Skotchmaster/furnico/internal/service"
	"github.com/Skotchmaster/furnico/internal/transport"
	"github.com/Skotchmaster/furnico/pkg/logging"
	middleware "github.com/Skotchmaster/furnico/pkg/middleware/auth"
)

type CartHTTP struct {
	Svc *service.CartService
}

func cartItemResponse(it *models.CartItem) transport.CartItemResponse {
	out := transport.CartItemResponse{ID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity}
	if it.Product != nil {
		p := transport.NewProductResponse(it.Product, false)
		out.Product = &p
	}
	return out
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_get")

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	out, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		return httpError(l, "get_cart_failed", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_add")

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	var req transport.AddToCartRequest
	if err := bind(c, l, &req); err != nil {
		return err
	}
	item, err := h.Svc.AddToCart(ctx, userID, req)
	if err != nil {
		return httpError(l, "add_to_cart_failed", err)
	}

	l.Info("cart_item_added", "product_id", req.ProductID, "quantity", item.Quantity)
	return c.JSON(http.StatusCreated, cartItemResponse(item))
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_update")

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req transport.UpdateCartRequest
	if err := bind(c, l, &req); err != nil {
		return err
	}
	item, err := h.Svc.UpdateQuantity(ctx, userID, id, req.Quantity)
	if err != nil {
		return httpError(l, "update_cart_failed", err)
	}
	return c.JSON(http.StatusOK, cartItemResponse(item))
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_remove")

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.RemoveItem(ctx, userID, id); err != nil {
		return httpError(l, "remove_cart_item_failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_clear")

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.Clear(ctx, userID); err != nil {
		return httpError(l, "clear_cart_failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}
