package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furnico/internal/service"
	"github.com/Skotchmaster/furnico/internal/transport"
	"github.com/Skotchmaster/furnico/pkg/logging"
)

type PaymentHTTP struct {
	Svc *service.PaymentService
}

func (h *PaymentHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment_create_order")

	var req transport.CreatePaymentOrderRequest
	if err := bind(c, l, &req); err != nil {
		return err
	}
	out, err := h.Svc.CreateOrder(ctx, req.Amount)
	if err != nil {
		return httpError(l, "create_payment_order_failed", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PaymentHTTP) Verify(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment_verify")

	var req transport.VerifyPaymentRequest
	if err := bind(c, l, &req); err != nil {
		return err
	}
	if err := h.Svc.Verify(ctx, req); err != nil {
		return httpError(l, "verify_payment_failed", err)
	}

	l.Info("payment_verified", "gateway_order_id", req.OrderID)
	return c.JSON(http.StatusOK, echo.Map{"verified": true})
}
