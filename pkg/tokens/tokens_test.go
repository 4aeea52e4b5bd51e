package tokens

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestAccessRoundTrip(t *testing.T) {
	tok, err := SignAccess(secret, "user-1", "ADMIN", time.Now().Add(time.Minute))
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestAccessExpired(t *testing.T) {
	tok, err := SignAccess(secret, "user-1", "USER", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(tok, secret)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestWrongSecret(t *testing.T) {
	tok, err := SignRefresh(secret, "user-1", "jti-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = RefreshClaimsFromToken(tok, []byte("other"))
	require.Error(t, err)

	claims, err := RefreshClaimsFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "jti-1", claims.ID)
}

func TestRejectsNoneAlg(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, AccessClaims{Role: "ADMIN"})
	s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(s, secret)
	require.Error(t, err)
}
