package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furnico/internal/service"
	"github.com/Skotchmaster/furnico/internal/transport"
	"github.com/Skotchmaster/furnico/pkg/logging"
	middleware "github.com/Skotchmaster/furnico/pkg/middleware/auth"
)

type ReviewHTTP struct {
	Svc *service.ReviewService
}

func (h *ReviewHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review_add")

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	productID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req transport.AddReviewRequest
	if err := bind(c, l, &req); err != nil {
		return err
	}
	out, err := h.Svc.AddReview(ctx, userID, productID, req)
	if err != nil {
		return httpError(l, "add_review_failed", err)
	}

	l.Info("review_added", "product_id", productID, "rating", req.Rating)
	return c.JSON(http.StatusCreated, out)
}

func (h *ReviewHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review_list")

	productID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.Svc.List(ctx, productID)
	if err != nil {
		return httpError(l, "list_reviews_failed", err)
	}
	return c.JSON(http.StatusOK, out)
}
