package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder("C1", decimal.NewFromFloat(100.00), "1 Main St", "1 Main St")
	require.NoError(t, err)
	return o
}

func TestNewOrderForcesPending(t *testing.T) {
	o := validOrder(t)
	assert.Equal(t, OrderPending, o.Status)
	assert.Regexp(t, `^ORD-[A-Z0-9]{8}$`, o.OrderNumber)
	assert.Equal(t, o.CreatedAt, o.UpdatedAt)
	assert.False(t, o.CreatedAt.IsZero())
}

func TestNewOrderValidation(t *testing.T) {
	_, err := NewOrder("", decimal.NewFromInt(10), "a", "b")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewOrder("C1", decimal.NewFromInt(-1), "a", "b")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewOrder("C1", decimal.NewFromInt(10), "  ", "b")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewOrder("C1", decimal.NewFromInt(10), "a", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOrderTransitionHappyPath(t *testing.T) {
	o := validOrder(t)
	created := o.CreatedAt

	require.NoError(t, o.Transition(OrderConfirmed))
	require.NoError(t, o.Transition(OrderShipped))
	require.NoError(t, o.Transition(OrderDelivered))

	assert.Equal(t, OrderDelivered, o.Status)
	assert.Equal(t, created, o.CreatedAt)
	assert.False(t, o.UpdatedAt.Before(created))
}

func TestOrderTransitionSkipRejected(t *testing.T) {
	o := validOrder(t)
	err := o.Transition(OrderDelivered)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, OrderPending, o.Status)
}

func TestOrderTransitionReverseRejected(t *testing.T) {
	o := validOrder(t)
	require.NoError(t, o.Transition(OrderConfirmed))

	err := o.Transition(OrderPending)
	assert.Error(t, err)
	assert.Equal(t, OrderConfirmed, o.Status)
}

func TestOrderTerminalStates(t *testing.T) {
	o := validOrder(t)
	require.NoError(t, o.Transition(OrderCancelled))

	err := o.Transition(OrderConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, OrderCancelled, o.Status)
}

func TestParseOrderStatus(t *testing.T) {
	st, err := ParseOrderStatus("confirmed")
	assert.NoError(t, err)
	assert.Equal(t, OrderConfirmed, st)

	_, err = ParseOrderStatus("BOGUS")
	assert.ErrorIs(t, err, ErrValidation)
}
