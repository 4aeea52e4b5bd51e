package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furnico/internal/service"
	"github.com/Skotchmaster/furnico/internal/transport"
	"github.com/Skotchmaster/furnico/pkg/logging"
	middleware "github.com/Skotchmaster/furnico/pkg/middleware/auth"
)

type AddressHTTP struct {
	Svc *service.AddressService
}

func (h *AddressHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address_list")

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	out, err := h.Svc.List(ctx, userID)
	if err != nil {
		return httpError(l, "list_addresses_failed", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AddressHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address_add")

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	var req transport.AddressRequest
	if err := bind(c, l, &req); err != nil {
		return err
	}
	out, err := h.Svc.Add(ctx, userID, req)
	if err != nil {
		return httpError(l, "add_address_failed", err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AddressHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address_update")

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req transport.AddressRequest
	if err := bind(c, l, &req); err != nil {
		return err
	}
	out, err := h.Svc.Update(ctx, userID, id, req)
	if err != nil {
		return httpError(l, "update_address_failed", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AddressHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address_delete")

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(ctx, userID, id); err != nil {
		return httpError(l, "delete_address_failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}
