package demo

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furnico/pkg/logging"
	middleware "github.com/Skotchmaster/furnico/pkg/middleware/auth"
)

const Message = "This action is disabled in demo mode."

// Guard must run after RequireAuth so the role is on the context.
func Guard(demoRoles ...string) echo.MiddlewareFunc {
	blocked := make(map[string]struct{}, len(demoRoles))
	for _, r := range demoRoles {
		blocked[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := middleware.Role(c)
			if _, ok := blocked[role]; ok {
				logging.FromContext(c.Request().Context()).Info("demo_guard_blocked", "role", role, "path", c.Path())
				return echo.NewHTTPError(http.StatusForbidden, Message)
			}
			return next(c)
		}
	}
}
