package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furnico/internal/service"
	"github.com/Skotchmaster/furnico/internal/transport"
	jwthelp "github.com/Skotchmaster/furnico/pkg/jwt"
	"github.com/Skotchmaster/furnico/pkg/logging"
	middleware "github.com/Skotchmaster/furnico/pkg/middleware/auth"
	"github.com/Skotchmaster/furnico/pkg/tokens"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func setSession(c echo.Context, pair *tokens.Pair) {
	c.SetCookie(jwthelp.CreateCookie(jwthelp.AccessCookie, pair.AccessToken, "/", pair.AccessExp))
	c.SetCookie(jwthelp.CreateCookie(jwthelp.RefreshCookie, pair.RefreshToken, "/", pair.RefreshExp))
}

func clearSession(c echo.Context) {
	c.SetCookie(jwthelp.DeleteCookie(jwthelp.AccessCookie, "/"))
	c.SetCookie(jwthelp.DeleteCookie(jwthelp.RefreshCookie, "/"))
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req transport.RegisterRequest
	if err := bind(c, l, &req); err != nil {
		return err
	}
	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		return httpError(l, "register_failed", err)
	}

	l.Info("register_successful", "user_id", user.ID)
	return c.JSON(http.StatusCreated, transport.NewUserResponse(user))
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := bind(c, l, &req); err != nil {
		return err
	}
	pair, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(l, "login_failed", err)
	}

	setSession(c, pair)
	l.Info("login_successful", "user_id", pair.UserID)
	return c.JSON(http.StatusOK, echo.Map{
		"userId": pair.UserID,
		"role":   pair.Role,
	})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_refresh")

	ck, err := c.Cookie(jwthelp.RefreshCookie)
	if err != nil || ck.Value == "" {
		l.Warn("refresh_failed", "status", http.StatusUnauthorized, "reason", "no refresh cookie")
		return echo.NewHTTPError(http.StatusUnauthorized, "refresh token missing")
	}
	pair, err := h.Svc.Refresh(ctx, ck.Value)
	if err != nil {
		clearSession(c)
		return httpError(l, "refresh_failed", err)
	}

	setSession(c, pair)
	return c.JSON(http.StatusOK, echo.Map{
		"userId": pair.UserID,
		"role":   pair.Role,
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_logout")

	if ck, err := c.Cookie(jwthelp.RefreshCookie); err == nil {
		if err := h.Svc.Logout(ctx, ck.Value); err != nil {
			clearSession(c)
			return httpError(l, "logout_failed", err)
		}
	}
	clearSession(c)
	l.Info("logout_successful")
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_me")

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	user, err := h.Svc.Me(ctx, userID)
	if err != nil {
		return httpError(l, "me_failed", err)
	}
	return c.JSON(http.StatusOK, transport.NewUserResponse(user))
}

const otpSentMessage = "If the email is registered, a one-time code has been sent."

func (h *AuthHTTP) SendOTP(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account_send_otp")

	var req transport.SendOTPRequest
	if err := bind(c, l, &req); err != nil {
		return err
	}
	if err := h.Svc.SendOTP(ctx, req.Email); err != nil {
		return httpError(l, "send_otp_failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": otpSentMessage})
}

func (h *AuthHTTP) ResetPassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account_reset_password")

	var req transport.ResetPasswordRequest
	if err := bind(c, l, &req); err != nil {
		return err
	}
	if err := h.Svc.ResetPassword(ctx, req); err != nil {
		return httpError(l, "reset_password_failed", err)
	}

	clearSession(c)
	l.Info("password_reset")
	return c.JSON(http.StatusOK, echo.Map{"message": "Password has been reset."})
}

func (h *AuthHTTP) UpdatePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account_update_password")

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	var req transport.UpdatePasswordRequest
	if err := bind(c, l, &req); err != nil {
		return err
	}
	if err := h.Svc.UpdatePassword(ctx, userID, req); err != nil {
		return httpError(l, "update_password_failed", err)
	}

	l.Info("password_updated", "user_id", userID)
	return c.JSON(http.StatusOK, echo.Map{"message": "Password updated."})
}
