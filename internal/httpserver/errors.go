package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furnico/internal/service"
)

var statusBySentinel = []struct {
	err  error
	code int
}{
	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrUnauthorized, http.StatusUnauthorized},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrConflict, http.StatusConflict},
	{service.ErrNotConfigured, http.StatusServiceUnavailable},
}

// httpError turns a service error into an echo.HTTPError. Unknown errors are
// logged and hidden behind a generic 500.
func httpError(l *slog.Logger, event string, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			msg := clientMessage(err, s.err)
			if s.code == http.StatusServiceUnavailable {
				l.Error(event, "status", s.code, "error", err)
			} else {
				l.Warn(event, "status", s.code, "error", err)
			}
			return echo.NewHTTPError(s.code, msg)
		}
	}
	l.Error(event, "status", http.StatusInternalServerError, "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}

func clientMessage(err, sentinel error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
		return rest
	}
	if sentinel == service.ErrNotConfigured {
		return "service unavailable"
	}
	return msg
}

func bind(c echo.Context, l *slog.Logger, req any) error {
	if err := c.Bind(req); err != nil {
		l.Warn("bind_failed", "status", http.StatusBadRequest, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(req); err != nil {
		l.Warn("validation_failed", "status", http.StatusBadRequest, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
