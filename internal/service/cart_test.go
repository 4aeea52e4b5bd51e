package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/furnico/internal/transport"
)

func TestCartLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.user(t, "shopper")
	p := env.product(t, "Vase", "12.25", 10)

	item, err := env.Cart.AddToCart(ctx, uid, transport.AddToCartRequest{ProductID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	item, err = env.Cart.AddToCart(ctx, uid, transport.AddToCartRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)

	cart, err := env.Cart.GetCart(ctx, uid)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "36.75", cart.Total.StringFixed(2))

	_, err = env.Cart.UpdateQuantity(ctx, uid, item.ID, 0)
	require.ErrorIs(t, err, ErrValidation)

	updated, err := env.Cart.UpdateQuantity(ctx, uid, item.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)

	require.NoError(t, env.Cart.Clear(ctx, uid))
	cart, err = env.Cart.GetCart(ctx, uid)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Total.IsZero())

	assert.Equal(t, []string{"cart.item_added", "cart.item_added", "cart.item_updated", "cart.cleared"}, env.Events.Types())
}

func TestCartOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "owner")
	other := env.user(t, "other")
	p := env.product(t, "Mirror", "45", 2)

	item, err := env.Cart.AddToCart(ctx, owner, transport.AddToCartRequest{ProductID: p.ID})
	require.NoError(t, err)

	_, err = env.Cart.UpdateQuantity(ctx, other, item.ID, 2)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, env.Cart.RemoveItem(ctx, other, item.ID), ErrNotFound)

	require.NoError(t, env.Cart.RemoveItem(ctx, owner, item.ID))
	require.ErrorIs(t, env.Cart.RemoveItem(ctx, owner, item.ID), ErrNotFound)

	_, err = env.Cart.AddToCart(ctx, owner, transport.AddToCartRequest{ProductID: uuid.New()})
	require.ErrorIs(t, err, ErrNotFound)
}
