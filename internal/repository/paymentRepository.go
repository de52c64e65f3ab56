package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickcommerce/order-payment-service/internal/domain"
	"github.com/quickcommerce/order-payment-service/internal/outbox"
)

type PaymentRepo interface {
	CreatePayment(ctx context.Context, p *domain.Payment) (*outbox.Record, error)
	GetPaymentByID(ctx context.Context, id int64) (*domain.Payment, error)
	GetPaymentByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error)
	ListPaymentsByOrder(ctx context.Context, orderID int64) ([]domain.Payment, error)
	UpdatePayment(ctx context.Context, id int64, apply func(*domain.Payment) error) (*domain.Payment, *outbox.Record, error)
}

type PaymentRepository struct {
	pool  *pgxpool.Pool
	box   *outbox.Store
	topic string
}

func NewPaymentRepository(pool *pgxpool.Pool, box *outbox.Store, topic string) *PaymentRepository {
	return &PaymentRepository{pool: pool, box: box, topic: topic}
}

const paymentColumns = `id, transaction_id, order_id, amount, payment_method, status,
	reference_number, error_message, created_at, updated_at`

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(&p.ID, &p.TransactionID, &p.OrderID, &p.Amount, &p.PaymentMethod, &p.Status,
		&p.ReferenceNumber, &p.ErrorMessage, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *PaymentRepository) CreatePayment(ctx context.Context, p *domain.Payment) (*outbox.Record, error) {
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
		`INSERT INTO payments
			(transaction_id, order_id, amount, payment_method, status, reference_number, error_message, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		p.TransactionID, p.OrderID, p.Amount, p.PaymentMethod, p.Status,
		p.ReferenceNumber, p.ErrorMessage, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return nil, mapError(err)
	}

	evt := domain.NewPaymentEvent(domain.EventPaymentInitiated, p)
	rec, err := r.box.InsertTx(ctx, tx, r.topic, strconv.FormatInt(p.ID, 10), evt)
	if err != nil {
		return nil, mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, mapError(err)
	}
	tx = nil
	return rec, nil
}

func (r *PaymentRepository) GetPaymentByID(ctx context.Context, id int64) (*domain.Payment, error) {
	return scanPayment(r.pool.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
}

func (r *PaymentRepository) GetPaymentByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	return scanPayment(r.pool.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE transaction_id = $1`, transactionID))
}

func (r *PaymentRepository) ListPaymentsByOrder(ctx context.Context, orderID int64) ([]domain.Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var out []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.TransactionID, &p.OrderID, &p.Amount, &p.PaymentMethod, &p.Status,
			&p.ReferenceNumber, &p.ErrorMessage, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, mapError(err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PaymentRepository) UpdatePayment(ctx context.Context, id int64, apply func(*domain.Payment) error) (*domain.Payment, *outbox.Record, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if tx != nil {
			tx.Rollback(ctx)
		}
	}()

	p, err := scanPayment(tx.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, nil, err
	}

	if err = apply(p); err != nil {
		return nil, nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE payments SET status = $2, reference_number = $3, error_message = $4, updated_at = $5 WHERE id = $1`,
		p.ID, p.Status, p.ReferenceNumber, p.ErrorMessage, p.UpdatedAt)
	if err != nil {
		return nil, nil, mapError(err)
	}

	evt := domain.NewPaymentEvent(domain.PaymentEventType(p.Status), p)
	rec, err := r.box.InsertTx(ctx, tx, r.topic, strconv.FormatInt(p.ID, 10), evt)
	if err != nil {
		return nil, nil, mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, nil, mapError(err)
	}
	tx = nil
	return p, rec, nil
}
