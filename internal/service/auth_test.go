package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/furnico/internal/models"
	"github.com/Skotchmaster/furnico/internal/transport"
	"github.com/Skotchmaster/furnico/pkg/tokens"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u, err := env.Auth.Register(ctx, transport.RegisterRequest{Name: "Asha", Email: "Asha@Example.com", Password: "longpassword"})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", u.Email)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.Contains(t, env.Events.Types(), "user.registered")

	_, err = env.Auth.Register(ctx, transport.RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "longpassword"})
	require.ErrorIs(t, err, ErrConflict)

	_, err = env.Auth.Login(ctx, "asha@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrUnauthorized)

	pair, err := env.Auth.Login(ctx, "ASHA@example.com", "longpassword")
	require.NoError(t, err)

	claims, err := tokens.AccessClaimsFromToken(pair.AccessToken, []byte("access"))
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.Subject)
	assert.Equal(t, "USER", claims.Role)
}

func TestRefreshRotatesAndRejectsReuse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.Auth.Register(ctx, transport.RegisterRequest{Name: "Ravi", Email: "ravi@example.com", Password: "longpassword"})
	require.NoError(t, err)
	pair, err := env.Auth.Login(ctx, "ravi@example.com", "longpassword")
	require.NoError(t, err)

	next, err := env.Auth.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	_, err = env.Auth.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, env.Auth.Logout(ctx, next.RefreshToken))
	_, err = env.Auth.Refresh(ctx, next.RefreshToken)
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = env.Auth.Refresh(ctx, "not-a-token")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestPasswordResetWithOTP(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.Auth.Register(ctx, transport.RegisterRequest{Name: "Meera", Email: "meera@example.com", Password: "oldpassword"})
	require.NoError(t, err)
	pair, err := env.Auth.Login(ctx, "meera@example.com", "oldpassword")
	require.NoError(t, err)

	require.NoError(t, env.Auth.SendOTP(ctx, "nobody@example.com"))
	require.NoError(t, env.Auth.SendOTP(ctx, "meera@example.com"))

	last, ok := env.Events.Last()
	require.True(t, ok)
	require.Equal(t, "user.otp_requested", last.Type)
	code := last.Data.(map[string]any)["otp"].(string)
	require.Len(t, code, 6)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	err = env.Auth.ResetPassword(ctx, transport.ResetPasswordRequest{Email: "meera@example.com", OTP: wrong, NewPassword: "newpassword"})
	require.ErrorIs(t, err, ErrValidation)

	require.NoError(t, env.Auth.ResetPassword(ctx, transport.ResetPasswordRequest{Email: "meera@example.com", OTP: code, NewPassword: "newpassword"}))

	_, err = env.Auth.Login(ctx, "meera@example.com", "oldpassword")
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = env.Auth.Login(ctx, "meera@example.com", "newpassword")
	require.NoError(t, err)

	// the code is single use and sessions issued before the reset are gone
	err = env.Auth.ResetPassword(ctx, transport.ResetPasswordRequest{Email: "meera@example.com", OTP: code, NewPassword: "another-one"})
	require.ErrorIs(t, err, ErrValidation)
	_, err = env.Auth.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestPasswordResetExpiredOTP(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.Auth.OTPTTL = time.Nanosecond

	_, err := env.Auth.Register(ctx, transport.RegisterRequest{Name: "Kiran", Email: "kiran@example.com", Password: "oldpassword"})
	require.NoError(t, err)
	require.NoError(t, env.Auth.SendOTP(ctx, "kiran@example.com"))
	last, _ := env.Events.Last()
	code := last.Data.(map[string]any)["otp"].(string)

	time.Sleep(time.Millisecond)
	err = env.Auth.ResetPassword(ctx, transport.ResetPasswordRequest{Email: "kiran@example.com", OTP: code, NewPassword: "newpassword"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdatePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u, err := env.Auth.Register(ctx, transport.RegisterRequest{Name: "Dev", Email: "dev@example.com", Password: "oldpassword"})
	require.NoError(t, err)

	err = env.Auth.UpdatePassword(ctx, u.ID, transport.UpdatePasswordRequest{OldPassword: "nope-nope", NewPassword: "newpassword"})
	require.ErrorIs(t, err, ErrValidation)

	require.NoError(t, env.Auth.UpdatePassword(ctx, u.ID, transport.UpdatePasswordRequest{OldPassword: "oldpassword", NewPassword: "newpassword"}))
	_, err = env.Auth.Login(ctx, "dev@example.com", "newpassword")
	require.NoError(t, err)
}

func TestSeedUserIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.Auth.SeedUser(ctx, "Demo Admin", "demo-admin@furnico.demo", "demo1234", models.RoleDemoAdmin)
	require.NoError(t, err)
	b, err := env.Auth.SeedUser(ctx, "Demo Admin", "demo-admin@furnico.demo", "demo1234", models.RoleDemoAdmin)
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)

	pair, err := env.Auth.Login(ctx, "demo-admin@furnico.demo", "demo1234")
	require.NoError(t, err)
	assert.Equal(t, "DEMO_ADMIN", pair.Role)
}
