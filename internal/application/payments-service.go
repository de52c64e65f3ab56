package application

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/quickcommerce/order-payment-service/internal/domain"
	"github.com/quickcommerce/order-payment-service/internal/logger"
	"github.com/quickcommerce/order-payment-service/internal/outbox"
	"github.com/quickcommerce/order-payment-service/internal/repository"
)

// PaymentsService is the payment lifecycle manager. It mirrors the order
// manager over its own state graph; the orderId it stores is a plain
// foreign value and is never checked against the order store.
type PaymentsService struct {
	repo    repository.PaymentRepo
	emitter EventEmitter
}

func NewPaymentsService(r repository.PaymentRepo, e EventEmitter) *PaymentsService {
	return &PaymentsService{repo: r, emitter: e}
}

func (s *PaymentsService) InitiatePayment(ctx context.Context, orderID int64, amount decimal.Decimal, method domain.PaymentMethod) (*domain.Payment, error) {
	p, err := domain.NewPayment(orderID, amount, method)
	if err != nil {
		return nil, err
	}

	var rec *outbox.Record
	err = conflictRetry(ctx, func(ctx context.Context) error {
		var err error
		rec, err = s.repo.CreatePayment(ctx, p)
		return err
	})
	if err != nil {
		logger.Warn("payment initiate failed", "orderId", orderID, "err", err)
		return nil, err
	}

	logger.Info("payment initiated", "id", p.ID, "transactionId", p.TransactionID, "orderId", p.OrderID)
	s.emitter.Emit(ctx, rec)
	return p, nil
}

func (s *PaymentsService) GetPayment(ctx context.Context, id int64) (*domain.Payment, error) {
	return s.repo.GetPaymentByID(ctx, id)
}

func (s *PaymentsService) GetPaymentByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	return s.repo.GetPaymentByTransactionID(ctx, transactionID)
}

func (s *PaymentsService) ListOrderPayments(ctx context.Context, orderID int64) ([]domain.Payment, error) {
	return s.repo.ListPaymentsByOrder(ctx, orderID)
}

func (s *PaymentsService) ProcessPayment(ctx context.Context, id int64) (*domain.Payment, error) {
	return s.update(ctx, id, "payment processing", func(p *domain.Payment) error {
		return p.Process()
	})
}

func (s *PaymentsService) CompletePayment(ctx context.Context, id int64) (*domain.Payment, error) {
	return s.update(ctx, id, "payment completed", func(p *domain.Payment) error {
		return p.Complete()
	})
}

func (s *PaymentsService) FailPayment(ctx context.Context, id int64, errorMessage string) (*domain.Payment, error) {
	return s.update(ctx, id, "payment failed", func(p *domain.Payment) error {
		return p.Fail(errorMessage)
	})
}

func (s *PaymentsService) RefundPayment(ctx context.Context, id int64) (*domain.Payment, error) {
	return s.update(ctx, id, "payment refunded", func(p *domain.Payment) error {
		return p.Refund()
	})
}

func (s *PaymentsService) CancelPayment(ctx context.Context, id int64) (*domain.Payment, error) {
	return s.update(ctx, id, "payment cancelled", func(p *domain.Payment) error {
		return p.Cancel()
	})
}

func (s *PaymentsService) update(ctx context.Context, id int64, logMsg string, apply func(*domain.Payment) error) (*domain.Payment, error) {
	var (
		p   *domain.Payment
		rec *outbox.Record
	)
	err := conflictRetry(ctx, func(ctx context.Context) error {
		var err error
		p, rec, err = s.repo.UpdatePayment(ctx, id, apply)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info(logMsg, "id", p.ID, "status", p.Status)
	s.emitter.Emit(ctx, rec)
	return p, nil
}
