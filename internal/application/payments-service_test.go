package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickcommerce/order-payment-service/internal/domain"
	"github.com/quickcommerce/order-payment-service/internal/outbox"
)

type mockPaymentRepo struct {
	createPaymentFn             func(ctx context.Context, p *domain.Payment) (*outbox.Record, error)
	getPaymentByIDFn            func(ctx context.Context, id int64) (*domain.Payment, error)
	getPaymentByTransactionIDFn func(ctx context.Context, transactionID string) (*domain.Payment, error)
	listPaymentsByOrderFn       func(ctx context.Context, orderID int64) ([]domain.Payment, error)
	updatePaymentFn             func(ctx context.Context, id int64, apply func(*domain.Payment) error) (*domain.Payment, *outbox.Record, error)
}

func (m *mockPaymentRepo) CreatePayment(ctx context.Context, p *domain.Payment) (*outbox.Record, error) {
	return m.createPaymentFn(ctx, p)
}
func (m *mockPaymentRepo) GetPaymentByID(ctx context.Context, id int64) (*domain.Payment, error) {
	return m.getPaymentByIDFn(ctx, id)
}
func (m *mockPaymentRepo) GetPaymentByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	return m.getPaymentByTransactionIDFn(ctx, transactionID)
}
func (m *mockPaymentRepo) ListPaymentsByOrder(ctx context.Context, orderID int64) ([]domain.Payment, error) {
	return m.listPaymentsByOrderFn(ctx, orderID)
}
func (m *mockPaymentRepo) UpdatePayment(ctx context.Context, id int64, apply func(*domain.Payment) error) (*domain.Payment, *outbox.Record, error) {
	return m.updatePaymentFn(ctx, id, apply)
}

func storedPaymentRepo(stored *domain.Payment) *mockPaymentRepo {
	return &mockPaymentRepo{
		updatePaymentFn: func(ctx context.Context, id int64, apply func(*domain.Payment) error) (*domain.Payment, *outbox.Record, error) {
			if stored == nil || stored.ID != id {
				return nil, nil, domain.ErrNotFound
			}
			row := *stored
			if err := apply(&row); err != nil {
				return nil, nil, err
			}
			*stored = row
			return stored, &outbox.Record{ID: 1, Topic: "payment-events"}, nil
		},
	}
}

func TestInitiatePaymentForcesInitiatedAndEmits(t *testing.T) {
	repo := &mockPaymentRepo{
		createPaymentFn: func(ctx context.Context, p *domain.Payment) (*outbox.Record, error) {
			p.ID = 3
			return &outbox.Record{ID: 1, Topic: "payment-events", Key: "3"}, nil
		},
	}
	em := &fakeEmitter{}
	svc := NewPaymentsService(repo, em)

	p, err := svc.InitiatePayment(context.Background(), 42, decimal.NewFromFloat(50.00), domain.MethodCreditCard)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentInitiated, p.Status)
	assert.Regexp(t, `^TXN-[A-Z0-9]{8}$`, p.TransactionID)
	assert.Len(t, em.emitted, 1)
}

func TestInitiatePaymentValidation(t *testing.T) {
	em := &fakeEmitter{}
	svc := NewPaymentsService(&mockPaymentRepo{}, em)

	_, err := svc.InitiatePayment(context.Background(), 0, decimal.NewFromInt(10), domain.MethodCreditCard)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, em.emitted)
}

func TestPaymentLifecycleScenario(t *testing.T) {
	stored, err := domain.NewPayment(42, decimal.NewFromFloat(50.00), domain.MethodCreditCard)
	require.NoError(t, err)
	stored.ID = 1

	em := &fakeEmitter{}
	svc := NewPaymentsService(storedPaymentRepo(stored), em)
	ctx := context.Background()

	p, err := svc.ProcessPayment(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentProcessing, p.Status)
	assert.NotEmpty(t, p.ReferenceNumber)

	p, err = svc.FailPayment(ctx, 1, "card declined")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFailed, p.Status)
	assert.Equal(t, "card declined", p.ErrorMessage)

	_, err = svc.CompletePayment(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, domain.PaymentFailed, stored.Status)

	// Process, Fail emitted; the rejected Complete did not.
	assert.Len(t, em.emitted, 2)
}

func TestRefundAfterComplete(t *testing.T) {
	stored, err := domain.NewPayment(7, decimal.NewFromInt(20), domain.MethodPaypal)
	require.NoError(t, err)
	stored.ID = 2

	svc := NewPaymentsService(storedPaymentRepo(stored), &fakeEmitter{})
	ctx := context.Background()

	_, err = svc.ProcessPayment(ctx, 2)
	require.NoError(t, err)
	_, err = svc.CompletePayment(ctx, 2)
	require.NoError(t, err)

	p, err := svc.RefundPayment(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRefunded, p.Status)
}

func TestPaymentTransitionNotFound(t *testing.T) {
	em := &fakeEmitter{}
	svc := NewPaymentsService(storedPaymentRepo(nil), em)

	_, err := svc.ProcessPayment(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, em.emitted)
}
