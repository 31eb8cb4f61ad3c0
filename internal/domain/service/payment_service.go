package service

import (
	"context"
	"time"

	"gamebazaar/pkg/logger"
)

type PaymentRequest struct {
	OrderID string
	Amount  float64
	Method  string
}

type PaymentReceipt struct {
	OrderID string
	Method  string
	PaidAt  time.Time
}

// PaymentService settles a purchase. Real settlement is out of scope; the
// simulated gateway only waits before approving.
type PaymentService interface {
	Charge(ctx context.Context, req PaymentRequest) (*PaymentReceipt, error)
}

type SimulatedPaymentService struct {
	delay time.Duration
}

func NewSimulatedPaymentService(delay time.Duration) *SimulatedPaymentService {
	return &SimulatedPaymentService{delay: delay}
}

func (s *SimulatedPaymentService) Charge(ctx context.Context, req PaymentRequest) (*PaymentReceipt, error) {
	logger.Debug("Simulating payment: orderID=%s, amount=%.2f, method=%s", req.OrderID, req.Amount, req.Method)

	if err := Sleep(ctx, s.delay); err != nil {
		return nil, err
	}

	return &PaymentReceipt{
		OrderID: req.OrderID,
		Method:  req.Method,
		PaidAt:  time.Now(),
	}, nil
}

// Sleep waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
