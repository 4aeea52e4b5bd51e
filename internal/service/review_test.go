package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/furnico/internal/transport"
)

func TestAddReviewRequiresPurchase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.user(t, "reader")
	p := env.product(t, "Armchair", "250", 3)
	req := transport.AddReviewRequest{Rating: 4, Content: "Comfortable"}

	_, err := env.Reviews.AddReview(ctx, uid, p.ID, req)
	require.ErrorIs(t, err, ErrForbidden)
	assert.Contains(t, err.Error(), "You can only review products you have purchased.")

	placeOrder(t, env, uid, p, 1, "pay_r1")

	rv, err := env.Reviews.AddReview(ctx, uid, p.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "reader", rv.UserName)
	assert.Equal(t, 4, rv.Rating)

	_, err = env.Reviews.AddReview(ctx, uid, p.ID, req)
	require.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "You have already reviewed this product.")

	list, err := env.Reviews.List(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Comfortable", list[0].Content)

	got, err := env.Catalog.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ReviewCount)
	assert.InDelta(t, 4.0, got.Rating, 0.001)
}

func TestAddReviewCancelledPurchaseDoesNotCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.user(t, "reader")
	p := env.product(t, "Sofa", "900", 1)

	o := placeOrder(t, env, uid, p, 1, "pay_r2")
	_, err := env.Orders.CancelOrder(ctx, uid, o.ID)
	require.NoError(t, err)

	_, err = env.Reviews.AddReview(ctx, uid, p.ID, transport.AddReviewRequest{Rating: 5, Content: "Great"})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestAddReviewValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.user(t, "reader")
	p := env.product(t, "Rug", "30", 1)

	_, err := env.Reviews.AddReview(ctx, uid, p.ID, transport.AddReviewRequest{Rating: 6, Content: "x"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = env.Reviews.AddReview(ctx, uid, p.ID, transport.AddReviewRequest{Rating: 3, Content: "   "})
	require.ErrorIs(t, err, ErrValidation)

	_, err = env.Reviews.AddReview(ctx, uid, uuid.New(), transport.AddReviewRequest{Rating: 3, Content: "ok"})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = env.Reviews.List(ctx, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}
