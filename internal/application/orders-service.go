package application

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/quickcommerce/order-payment-service/internal/domain"
	"github.com/quickcommerce/order-payment-service/internal/logger"
	"github.com/quickcommerce/order-payment-service/internal/outbox"
	"github.com/quickcommerce/order-payment-service/internal/repository"
)

// EventEmitter is the post-commit publish hook. Implementations must never
// fail the caller: by the time Emit runs the state change is committed.
type EventEmitter interface {
	Emit(ctx context.Context, rec *outbox.Record)
}

// OrdersService is the order lifecycle manager: it validates input and
// transitions, persists through the repository, and announces every change.
type OrdersService struct {
	repo    repository.OrderRepo
	emitter EventEmitter
}

func NewOrdersService(r repository.OrderRepo, e EventEmitter) *OrdersService {
	return &OrdersService{repo: r, emitter: e}
}

func (s *OrdersService) CreateOrder(ctx context.Context, customerID string, totalAmount decimal.Decimal, shippingAddress, billingAddress string) (*domain.Order, error) {
	o, err := domain.NewOrder(customerID, totalAmount, shippingAddress, billingAddress)
	if err != nil {
		return nil, err
	}

	var rec *outbox.Record
	err = conflictRetry(ctx, func(ctx context.Context) error {
		var err error
		rec, err = s.repo.CreateOrder(ctx, o)
		return err
	})
	if err != nil {
		logger.Warn("order create failed", "customerId", customerID, "err", err)
		return nil, err
	}

	logger.Info("order created", "id", o.ID, "orderNumber", o.OrderNumber, "customerId", o.CustomerID)
	s.emitter.Emit(ctx, rec)
	return o, nil
}

func (s *OrdersService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

func (s *OrdersService) GetOrderByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return s.repo.GetOrderByNumber(ctx, orderNumber)
}

func (s *OrdersService) ListCustomerOrders(ctx context.Context, customerID string) ([]domain.Order, error) {
	return s.repo.ListOrdersByCustomer(ctx, customerID)
}

func (s *OrdersService) ListOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	return s.repo.ListOrdersByStatus(ctx, status)
}

// UpdateOrderStatus moves the order along its state graph and emits
// Order<STATUS>. Graph violations fail before anything is written.
func (s *OrdersService) UpdateOrderStatus(ctx context.Context, id int64, next domain.OrderStatus) (*domain.Order, error) {
	var (
		o   *domain.Order
		rec *outbox.Record
	)
	err := conflictRetry(ctx, func(ctx context.Context) error {
		var err error
		o, rec, err = s.repo.UpdateOrder(ctx, id, func(o *domain.Order) error {
			return o.Transition(next)
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("order status updated", "id", o.ID, "status", o.Status)
	s.emitter.Emit(ctx, rec)
	return o, nil
}

func (s *OrdersService) CancelOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.UpdateOrderStatus(ctx, id, domain.OrderCancelled)
}
