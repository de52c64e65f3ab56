package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/quickcommerce/order-payment-service/internal/domain"
)

// mapError translates pgx failures into the domain taxonomy: row misses
// become NotFound, serialization/deadlock/unique SQLSTATEs become Conflict.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "23505":
			return domain.ErrConflict
		}
	}
	return err
}
