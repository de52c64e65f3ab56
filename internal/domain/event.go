package domain

import (
	"github.com/shopspring/decimal"
)

// Event type names follow the original contract: creation events have fixed
// names, order transitions derive theirs from the target status.
const (
	EventOrderCreated     = "OrderCreated"
	EventPaymentInitiated = "PaymentInitiated"
)

// OrderEventType returns the event name for a transition into status, e.g.
// OrderCONFIRMED.
func OrderEventType(status OrderStatus) string {
	return "Order" + string(status)
}

var paymentEventTypes = map[PaymentStatus]string{
	PaymentInitiated:  EventPaymentInitiated,
	PaymentProcessing: "PaymentProcessing",
	PaymentCompleted:  "PaymentCompleted",
	PaymentFailed:     "PaymentFailed",
	PaymentRefunded:   "PaymentRefunded",
	PaymentCancelled:  "PaymentCancelled",
}

func PaymentEventType(status PaymentStatus) string {
	return paymentEventTypes[status]
}

type OrderEvent struct {
	EventType   string          `json:"eventType"`
	OrderID     int64           `json:"orderId"`
	OrderNumber string          `json:"orderNumber"`
	CustomerID  string          `json:"customerId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      OrderStatus     `json:"status"`
}

func NewOrderEvent(eventType string, o *Order) OrderEvent {
	return OrderEvent{
		EventType:   eventType,
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
	}
}

type PaymentEvent struct {
	EventType     string          `json:"eventType"`
	PaymentID     int64           `json:"paymentId"`
	TransactionID string          `json:"transactionId"`
	OrderID       int64           `json:"orderId"`
	Amount        decimal.Decimal `json:"amount"`
	Status        PaymentStatus   `json:"status"`
}

func NewPaymentEvent(eventType string, p *Payment) PaymentEvent {
	return PaymentEvent{
		EventType:     eventType,
		PaymentID:     p.ID,
		TransactionID: p.TransactionID,
		OrderID:       p.OrderID,
		Amount:        p.Amount,
		Status:        p.Status,
	}
}
