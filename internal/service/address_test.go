package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/furnico/internal/transport"
)

func TestAddressCRUD(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.user(t, "resident")
	other := env.user(t, "neighbour")

	req := transport.AddressRequest{Name: "Home", Street: "2 Oak Rd", City: "Delhi", State: "DL", Zip: "110001"}
	a, err := env.Address.Add(ctx, uid, req)
	require.NoError(t, err)

	req.City = "Noida"
	_, err = env.Address.Update(ctx, other, a.ID, req)
	require.ErrorIs(t, err, ErrNotFound)

	updated, err := env.Address.Update(ctx, uid, a.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Noida", updated.City)

	list, err := env.Address.List(ctx, uid)
	require.NoError(t, err)
	require.Len(t, list, 1)

	others, err := env.Address.List(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, others)

	require.ErrorIs(t, env.Address.Delete(ctx, other, a.ID), ErrNotFound)
	require.NoError(t, env.Address.Delete(ctx, uid, a.ID))
	require.ErrorIs(t, env.Address.Delete(ctx, uid, a.ID), ErrNotFound)
}
