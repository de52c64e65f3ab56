package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quickcommerce/order-payment-service/internal/lifecycle"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// OrderGraph is the permitted status adjacency for orders. DELIVERED and
// CANCELLED are terminal.
var OrderGraph = lifecycle.Graph[OrderStatus]{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderShipped, OrderCancelled},
	OrderShipped:   {OrderDelivered},
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !OrderGraph.Known(st) {
		return "", fmt.Errorf("%w: unknown order status %q", ErrValidation, s)
	}
	return st, nil
}

type Order struct {
	ID              int64           `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	CustomerID      string          `json:"customerId"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          OrderStatus     `json:"status"`
	ShippingAddress string          `json:"shippingAddress"`
	BillingAddress  string          `json:"billingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// NewOrder builds a creatable order. Status is always forced to PENDING,
// whatever the caller sent over the wire.
func NewOrder(customerID string, total decimal.Decimal, shipping, billing string) (*Order, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, fmt.Errorf("%w: customerId is required", ErrValidation)
	}
	if total.IsNegative() {
		return nil, fmt.Errorf("%w: totalAmount must not be negative", ErrValidation)
	}
	if strings.TrimSpace(shipping) == "" {
		return nil, fmt.Errorf("%w: shippingAddress is required", ErrValidation)
	}
	if strings.TrimSpace(billing) == "" {
		return nil, fmt.Errorf("%w: billingAddress is required", ErrValidation)
	}

	now := time.Now().UTC()
	return &Order{
		OrderNumber:     NewOrderNumber(),
		CustomerID:      customerID,
		TotalAmount:     total,
		Status:          OrderPending,
		ShippingAddress: shipping,
		BillingAddress:  billing,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Transition moves the order to next if the graph allows it and refreshes
// UpdatedAt. The stored row is untouched when an error comes back.
func (o *Order) Transition(next OrderStatus) error {
	if !OrderGraph.Known(next) {
		return fmt.Errorf("%w: unknown order status %q", ErrValidation, next)
	}
	if !OrderGraph.CanTransition(o.Status, next) {
		return fmt.Errorf("%w: order %s -> %s", ErrInvalidTransition, o.Status, next)
	}
	o.Status = next
	o.UpdatedAt = time.Now().UTC()
	return nil
}
