package demo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	middleware "github.com/Skotchmaster/furnico/pkg/middleware/auth"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(role string) *httptest.ResponseRecorder {
	e := echo.New()
	setRole := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.CtxRole, role)
			return next(c)
		}
	}
	e.DELETE("/p", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, setRole, Guard("DEMO_ADMIN", "DEMO_USER"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/p", nil))
	return rec
}

func TestGuardBlocksDemoRoles(t *testing.T) {
	for _, role := range []string{"DEMO_ADMIN", "DEMO_USER"} {
		rec := run(role)
		require.Equal(t, http.StatusForbidden, rec.Code, role)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, Message, body["message"])
	}
}

func TestGuardPassesRealRoles(t *testing.T) {
	assert.Equal(t, http.StatusNoContent, run("ADMIN").Code)
	assert.Equal(t, http.StatusNoContent, run("USER").Code)
}
