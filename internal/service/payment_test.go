package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/furnico/internal/payment"
	"github.com/Skotchmaster/furnico/internal/transport"
)

type fakeGateway struct {
	amount   int64
	currency string
	receipt  string
}

func (g *fakeGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (*payment.Order, error) {
	g.amount, g.currency, g.receipt = amount, currency, receipt
	return &payment.Order{ID: "order_abc", Amount: amount, Currency: currency, Receipt: receipt, Status: "created"}, nil
}

func TestToMinorUnits(t *testing.T) {
	assert.EqualValues(t, 49999, ToMinorUnits(decimal.RequireFromString("499.99")))
	assert.EqualValues(t, 1, ToMinorUnits(decimal.RequireFromString("0.005")))
	assert.EqualValues(t, 100, ToMinorUnits(decimal.NewFromInt(1)))
}

func TestPaymentCreateOrder(t *testing.T) {
	ctx := context.Background()

	_, err := (&PaymentService{}).CreateOrder(ctx, decimal.NewFromInt(10))
	require.ErrorIs(t, err, ErrNotConfigured)

	gw := &fakeGateway{}
	svc := &PaymentService{
		Gateway: gw,
		KeyID:   "rzp_test_key",
		Now:     func() time.Time { return time.UnixMilli(1700000000000) },
	}

	_, err = svc.CreateOrder(ctx, decimal.Zero)
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateOrder(ctx, decimal.RequireFromString("0.001"))
	require.ErrorIs(t, err, ErrValidation)

	out, err := svc.CreateOrder(ctx, decimal.RequireFromString("1299.50"))
	require.NoError(t, err)
	assert.Equal(t, "order_abc", out.ID)
	assert.EqualValues(t, 129950, gw.amount)
	assert.Equal(t, "INR", gw.currency)
	assert.Equal(t, "receipt_1700000000000", out.Receipt)
	assert.Equal(t, "rzp_test_key", out.KeyID)
}

func TestPaymentVerify(t *testing.T) {
	ctx := context.Background()
	svc := &PaymentService{KeySecret: "secret"}
	good := payment.Sign("secret", "order_1", "pay_1")

	require.NoError(t, svc.Verify(ctx, transport.VerifyPaymentRequest{OrderID: "order_1", PaymentID: "pay_1", Signature: good}))

	err := svc.Verify(ctx, transport.VerifyPaymentRequest{OrderID: "order_1", PaymentID: "pay_2", Signature: good})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "Invalid payment signature")

	err = (&PaymentService{}).Verify(ctx, transport.VerifyPaymentRequest{OrderID: "o", PaymentID: "p", Signature: good})
	require.ErrorIs(t, err, ErrNotConfigured)
}
