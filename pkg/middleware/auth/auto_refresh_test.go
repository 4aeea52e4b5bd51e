package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwthelp "github.com/Skotchmaster/furnico/pkg/jwt"
	"github.com/Skotchmaster/furnico/pkg/tokens"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("mw-secret")

type stubRefresher struct {
	role  string
	err   error
	calls int
}

func (s *stubRefresher) Refresh(_ context.Context, _ string) (*tokens.Pair, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	exp := time.Now().Add(time.Minute)
	access, err := tokens.SignAccess(secret, "11111111-1111-1111-1111-111111111111", s.role, exp)
	if err != nil {
		return nil, err
	}
	return &tokens.Pair{AccessToken: access, RefreshToken: "new-refresh", AccessExp: exp, RefreshExp: exp}, nil
}

func serve(t *testing.T, m *AutoRefreshMiddleware, admin bool, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h := func(c echo.Context) error {
		id, err := UserID(c)
		if err != nil {
			return err
		}
		return c.String(http.StatusOK, id.String()+"|"+Role(c))
	}
	if admin {
		e.GET("/x", h, m.RequireAdmin)
	} else {
		e.GET("/x", h, m.RequireAuth)
	}
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func accessCookie(t *testing.T, role string, exp time.Time) *http.Cookie {
	tok, err := tokens.SignAccess(secret, "11111111-1111-1111-1111-111111111111", role, exp)
	require.NoError(t, err)
	return &http.Cookie{Name: jwthelp.AccessCookie, Value: tok}
}

func TestRequireAuth_NoSession(t *testing.T) {
	m := NewAutoRefreshMiddleware(secret, &stubRefresher{}, "ADMIN")
	rec := serve(t, m, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_ValidCookie(t *testing.T) {
	m := NewAutoRefreshMiddleware(secret, &stubRefresher{}, "ADMIN")
	rec := serve(t, m, false, accessCookie(t, "USER", time.Now().Add(time.Minute)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111|USER", rec.Body.String())
}

func TestRequireAuth_BearerHeader(t *testing.T) {
	m := NewAutoRefreshMiddleware(secret, nil, "ADMIN")
	tok, err := tokens.SignAccess(secret, "11111111-1111-1111-1111-111111111111", "USER", time.Now().Add(time.Minute))
	require.NoError(t, err)

	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, m.RequireAuth)
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuth_TamperedToken(t *testing.T) {
	r := &stubRefresher{role: "USER"}
	m := NewAutoRefreshMiddleware(secret, r, "ADMIN")
	rec := serve(t, m, false, &http.Cookie{Name: jwthelp.AccessCookie, Value: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, r.calls)
}

func TestRequireAuth_ExpiredRefreshes(t *testing.T) {
	r := &stubRefresher{role: "USER"}
	m := NewAutoRefreshMiddleware(secret, r, "ADMIN")
	rec := serve(t, m, false,
		accessCookie(t, "USER", time.Now().Add(-time.Minute)),
		&http.Cookie{Name: jwthelp.RefreshCookie, Value: "old-refresh"},
	)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, r.calls)
	assert.Len(t, rec.Result().Cookies(), 2)
}

func TestRequireAuth_RefreshFails(t *testing.T) {
	r := &stubRefresher{err: errors.New("revoked")}
	m := NewAutoRefreshMiddleware(secret, r, "ADMIN")
	rec := serve(t, m, false,
		accessCookie(t, "USER", time.Now().Add(-time.Minute)),
		&http.Cookie{Name: jwthelp.RefreshCookie, Value: "old-refresh"},
	)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	m := NewAutoRefreshMiddleware(secret, nil, "ADMIN", "DEMO_ADMIN")

	rec := serve(t, m, true, accessCookie(t, "USER", time.Now().Add(time.Minute)))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(t, m, true, accessCookie(t, "DEMO_ADMIN", time.Now().Add(time.Minute)))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, m, true)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
