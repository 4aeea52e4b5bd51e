package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furnico/internal/service"
	"github.com/Skotchmaster/furnico/internal/transport"
	"github.com/Skotchmaster/furnico/pkg/logging"
	"github.com/Skotchmaster/furnico/pkg/util"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func pageParams(c echo.Context) (int, int) {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	return page, size
}

func (h *CatalogHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products_list")

	page, size := pageParams(c)
	out, err := h.Svc.ListProducts(ctx, c.QueryParam("category"), page, size)
	if err != nil {
		return httpError(l, "list_products_failed", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products_get")

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return httpError(l, "get_product_failed", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products_search")

	page, size := pageParams(c)
	out, err := h.Svc.SearchProducts(ctx, c.QueryParam("q"), page, size)
	if err != nil {
		return httpError(l, "search_failed", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHTTP) Categories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "categories_list")

	out, err := h.Svc.Categories(ctx)
	if err != nil {
		return httpError(l, "categories_failed", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_product_create")

	var req transport.CreateProductRequest
	if err := bind(c, l, &req); err != nil {
		return err
	}
	out, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return httpError(l, "create_product_failed", err)
	}

	l.Info("product_created", "product_id", out.ID)
	return c.JSON(http.StatusCreated, out)
}

func (h *CatalogHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_product_update")

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req transport.UpdateProductRequest
	if err := bind(c, l, &req); err != nil {
		return err
	}
	out, err := h.Svc.UpdateProduct(ctx, id, req)
	if err != nil {
		return httpError(l, "update_product_failed", err)
	}

	l.Info("product_updated", "product_id", id)
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHTTP) UpdateStock(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_product_stock")

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req transport.UpdateStockRequest
	if err := bind(c, l, &req); err != nil {
		return err
	}
	out, err := h.Svc.UpdateStock(ctx, id, *req.Stock)
	if err != nil {
		return httpError(l, "update_stock_failed", err)
	}

	l.Info("stock_updated", "product_id", id, "stock", out.Stock)
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_product_delete")

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return httpError(l, "delete_product_failed", err)
	}

	l.Info("product_deleted", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}
