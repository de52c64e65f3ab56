package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickcommerce/order-payment-service/internal/domain"
	"github.com/quickcommerce/order-payment-service/internal/outbox"
)

type OrderRepo interface {
	CreateOrder(ctx context.Context, o *domain.Order) (*outbox.Record, error)
	GetOrderByID(ctx context.Context, id int64) (*domain.Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	ListOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	UpdateOrder(ctx context.Context, id int64, apply func(*domain.Order) error) (*domain.Order, *outbox.Record, error)
}

type OrderRepository struct {
	pool  *pgxpool.Pool
	box   *outbox.Store
	topic string
}

func NewOrderRepository(pool *pgxpool.Pool, box *outbox.Store, topic string) *OrderRepository {
	return &OrderRepository{pool: pool, box: box, topic: topic}
}

const orderColumns = `id, order_number, customer_id, total_amount, status,
	shipping_address, billing_address, created_at, updated_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.TotalAmount, &o.Status,
		&o.ShippingAddress, &o.BillingAddress, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &o, nil
}

// CreateOrder inserts the row and its OrderCreated outbox record in one
// transaction. The returned record is pending until the caller publishes it.
func (r *OrderRepository) CreateOrder(ctx context.Context, o *domain.Order) (*outbox.Record, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if tx != nil {
			tx.Rollback(ctx)
		}
	}()

	err = tx.QueryRow(ctx,
		`INSERT INTO orders
			(order_number, customer_id, total_amount, status, shipping_address, billing_address, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		o.OrderNumber, o.CustomerID, o.TotalAmount, o.Status,
		o.ShippingAddress, o.BillingAddress, o.CreatedAt, o.UpdatedAt,
	).Scan(&o.ID)
	if err != nil {
		return nil, mapError(err)
	}

	evt := domain.NewOrderEvent(domain.EventOrderCreated, o)
	rec, err := r.box.InsertTx(ctx, tx, r.topic, strconv.FormatInt(o.ID, 10), evt)
	if err != nil {
		return nil, mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, mapError(err)
	}
	tx = nil
	return rec, nil
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	return scanOrder(r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
}

func (r *OrderRepository) GetOrderByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return scanOrder(r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, orderNumber))
}

func (r *OrderRepository) ListOrdersByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	return r.listOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY id`, customerID)
}

func (r *OrderRepository) ListOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	return r.listOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE status = $1 ORDER BY id`, status)
}

func (r *OrderRepository) listOrders(ctx context.Context, query string, arg any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.TotalAmount, &o.Status,
			&o.ShippingAddress, &o.BillingAddress, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, mapError(err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// UpdateOrder locks the row, lets apply mutate it (transition validation
// happens there, against the committed state), and persists the change with
// its outbox record. Nothing is written when apply rejects the change.
func (r *OrderRepository) UpdateOrder(ctx context.Context, id int64, apply func(*domain.Order) error) (*domain.Order, *outbox.Record, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if tx != nil {
			tx.Rollback(ctx)
		}
	}()

	o, err := scanOrder(tx.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, nil, err
	}

	if err = apply(o); err != nil {
		return nil, nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`,
		o.ID, o.Status, o.UpdatedAt)
	if err != nil {
		return nil, nil, mapError(err)
	}

	evt := domain.NewOrderEvent(domain.OrderEventType(o.Status), o)
	rec, err := r.box.InsertTx(ctx, tx, r.topic, strconv.FormatInt(o.ID, 10), evt)
	if err != nil {
		return nil, nil, mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, nil, mapError(err)
	}
	tx = nil
	return o, rec, nil
}
