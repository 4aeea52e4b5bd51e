package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/furnico/internal/payment"
	"github.com/Skotchmaster/furnico/internal/transport"
	"github.com/Skotchmaster/furnico/pkg/logging"
)

var hundred = decimal.NewFromInt(100)

type PaymentService struct {
	Gateway   payment.Gateway
	KeyID     string
	KeySecret string
	Currency  string
	Now       func() time.Time
}

func (s *PaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ToMinorUnits converts a major-unit amount (rupees) to the gateway's minor
// units (paise), rounding half away from zero.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

func (s *PaymentService) CreateOrder(ctx context.Context, amount decimal.Decimal) (*transport.PaymentOrderResponse, error) {
	if s.Gateway == nil {
		return nil, fmt.Errorf("%w: payment gateway", ErrNotConfigured)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}
	minor := ToMinorUnits(amount)
	if minor < 1 {
		return nil, fmt.Errorf("%w: amount is below the smallest currency unit", ErrValidation)
	}

	currency := s.Currency
	if currency == "" {
		currency = "INR"
	}
	receipt := fmt.Sprintf("receipt_%d", s.now().UnixMilli())

	o, err := s.Gateway.CreateOrder(ctx, minor, currency, receipt)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("payment_order_created", "gateway_order_id", o.ID, "amount", o.Amount)
	return &transport.PaymentOrderResponse{
		ID:       o.ID,
		Amount:   o.Amount,
		Currency: o.Currency,
		Receipt:  o.Receipt,
		KeyID:    s.KeyID,
	}, nil
}

func (s *PaymentService) Verify(ctx context.Context, req transport.VerifyPaymentRequest) error {
	if s.KeySecret == "" {
		return fmt.Errorf("%w: payment secret", ErrNotConfigured)
	}
	if err := payment.Verify(s.KeySecret, req.OrderID, req.PaymentID, req.Signature); err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			logging.FromContext(ctx).Warn("payment_signature_mismatch", "gateway_order_id", req.OrderID)
			return fmt.Errorf("%w: Invalid payment signature", ErrValidation)
		}
		return err
	}
	return nil
}
