package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furnico/internal/service"
	"github.com/Skotchmaster/furnico/internal/transport"
	"github.com/Skotchmaster/furnico/pkg/logging"
	middleware "github.com/Skotchmaster/furnico/pkg/middleware/auth"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order_create")

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	var req transport.CreateOrderRequest
	if err := bind(c, l, &req); err != nil {
		return err
	}
	order, err := h.Svc.CreateOrder(ctx, userID, req)
	if err != nil {
		return httpError(l, "create_order_failed", err)
	}

	l.Info("order_created", "order_id", order.ID, "total", order.Total.StringFixed(2))
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order_list")

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	orders, err := h.Svc.ListOrders(ctx, userID)
	if err != nil {
		return httpError(l, "list_orders_failed", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order_get")

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.Svc.GetOrder(ctx, userID, id)
	if err != nil {
		return httpError(l, "get_order_failed", err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) Cancel(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order_cancel")

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.Svc.CancelOrder(ctx, userID, id)
	if err != nil {
		return httpError(l, "cancel_order_failed", err)
	}

	l.Info("order_cancelled", "order_id", id)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) AdminList(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_order_list")

	page, size := pageParams(c)
	out, err := h.Svc.AdminListItems(ctx, page, size)
	if err != nil {
		return httpError(l, "admin_list_orders_failed", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHTTP) AdminSetStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_order_status")

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req transport.UpdateOrderStatusRequest
	if err := bind(c, l, &req); err != nil {
		return err
	}
	order, err := h.Svc.SetStatus(ctx, id, req.Status)
	if err != nil {
		return httpError(l, "set_order_status_failed", err)
	}

	l.Info("order_status_changed", "order_id", id, "status", order.Status)
	return c.JSON(http.StatusOK, order)
}
