package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	jwthelp "github.com/Skotchmaster/furnico/pkg/jwt"
	"github.com/Skotchmaster/furnico/pkg/logging"
	"github.com/Skotchmaster/furnico/pkg/tokens"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// Refresher rotates a refresh token and issues a new pair.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*tokens.Pair, error)
}

type AutoRefreshMiddleware struct {
	JWTSecret  []byte
	Refresher  Refresher
	AdminRoles []string
}

func NewAutoRefreshMiddleware(secret []byte, refresher Refresher, adminRoles ...string) *AutoRefreshMiddleware {
	return &AutoRefreshMiddleware{
		JWTSecret:  secret,
		Refresher:  refresher,
		AdminRoles: adminRoles,
	}
}

type ValidatorFunc func(claims *tokens.AccessClaims) error

func (m *AutoRefreshMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

func (m *AutoRefreshMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(claims *tokens.AccessClaims) error {
		for _, r := range m.AdminRoles {
			if claims.Role == r {
				return nil
			}
		}
		return echo.NewHTTPError(http.StatusForbidden, "admin access required")
	})
}

func (m *AutoRefreshMiddleware) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		access := accessToken(c)
		if access == "" && !hasCookie(c, jwthelp.RefreshCookie) {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		var claims *tokens.AccessClaims
		var err error
		if access != "" {
			claims, err = tokens.AccessClaimsFromToken(access, m.JWTSecret)
		} else {
			err = jwt.ErrTokenExpired
		}

		if err != nil {
			if !errors.Is(err, jwt.ErrTokenExpired) {
				clearAuthCookies(c)
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
			}
			claims, err = m.refresh(c)
			if err != nil {
				return err
			}
		}

		if validator != nil {
			if vErr := validator(claims); vErr != nil {
				return vErr
			}
		}

		setUserContext(c, claims)
		return next(c)
	}
}

func (m *AutoRefreshMiddleware) refresh(c echo.Context) (*tokens.AccessClaims, error) {
	refreshCookie, err := c.Cookie(jwthelp.RefreshCookie)
	if err != nil || refreshCookie.Value == "" || m.Refresher == nil {
		clearAuthCookies(c)
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "refresh token missing")
	}

	ctx := c.Request().Context()
	pair, err := m.Refresher.Refresh(ctx, refreshCookie.Value)
	if err != nil {
		logging.FromContext(ctx).Warn("auto_refresh_failed", "error", err)
		clearAuthCookies(c)
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "session expired")
	}

	c.SetCookie(jwthelp.CreateCookie(jwthelp.AccessCookie, pair.AccessToken, "/", pair.AccessExp))
	c.SetCookie(jwthelp.CreateCookie(jwthelp.RefreshCookie, pair.RefreshToken, "/", pair.RefreshExp))

	claims, err := tokens.AccessClaimsFromToken(pair.AccessToken, m.JWTSecret)
	if err != nil {
		clearAuthCookies(c)
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "new access token invalid")
	}
	return claims, nil
}

func accessToken(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if ck, err := c.Cookie(jwthelp.AccessCookie); err == nil {
		return ck.Value
	}
	return ""
}

func hasCookie(c echo.Context, name string) bool {
	ck, err := c.Cookie(name)
	return err == nil && ck.Value != ""
}

func clearAuthCookies(c echo.Context) {
	c.SetCookie(jwthelp.DeleteCookie(jwthelp.AccessCookie, "/"))
	c.SetCookie(jwthelp.DeleteCookie(jwthelp.RefreshCookie, "/"))
}

func setUserContext(c echo.Context, claims *tokens.AccessClaims) {
	c.Set(CtxUserID, claims.Subject)
	c.Set(CtxRole, claims.Role)
}

// UserID returns the authenticated user's id set by RequireAuth.
func UserID(c echo.Context) (uuid.UUID, error) {
	s, _ := c.Get(CtxUserID).(string)
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return id, nil
}

func Role(c echo.Context) string {
	r, _ := c.Get(CtxRole).(string)
	return r
}
