package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furnico/internal/service"
	"github.com/Skotchmaster/furnico/internal/transport"
	"github.com/Skotchmaster/furnico/pkg/logging"
)

type UploadHTTP struct {
	Svc *service.UploadService
}

func (h *UploadHTTP) Images(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upload_images")

	var req transport.UploadRequest
	if err := bind(c, l, &req); err != nil {
		return err
	}
	out, err := h.Svc.PresignImages(ctx, req.Files)
	if err != nil {
		return httpError(l, "presign_images_failed", err)
	}

	l.Info("images_presigned", "count", len(out))
	return c.JSON(http.StatusOK, echo.Map{"uploads": out})
}

func (h *UploadHTTP) Model(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upload_model")

	var req transport.UploadRequest
	if err := bind(c, l, &req); err != nil {
		return err
	}
	out, err := h.Svc.PresignModel(ctx, req.Files)
	if err != nil {
		return httpError(l, "presign_model_failed", err)
	}

	l.Info("model_presigned", "key", out[0].Key)
	return c.JSON(http.StatusOK, echo.Map{"uploads": out})
}
