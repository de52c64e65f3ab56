package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTypeNames(t *testing.T) {
	assert.Equal(t, "OrderCONFIRMED", OrderEventType(OrderConfirmed))
	assert.Equal(t, "OrderCANCELLED", OrderEventType(OrderCancelled))
	assert.Equal(t, "PaymentProcessing", PaymentEventType(PaymentProcessing))
	assert.Equal(t, "PaymentRefunded", PaymentEventType(PaymentRefunded))
	assert.Equal(t, "PaymentCancelled", PaymentEventType(PaymentCancelled))
}

func TestOrderEventPayload(t *testing.T) {
	o, err := NewOrder("C1", decimal.NewFromFloat(100.00), "a", "b")
	require.NoError(t, err)
	o.ID = 7

	data, err := json.Marshal(NewOrderEvent(EventOrderCreated, o))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "OrderCreated", got["eventType"])
	assert.Equal(t, float64(7), got["orderId"])
	assert.Equal(t, o.OrderNumber, got["orderNumber"])
	assert.Equal(t, "C1", got["customerId"])
	assert.Equal(t, "PENDING", got["status"])
	assert.Contains(t, got, "totalAmount")
}

func TestPaymentEventPayload(t *testing.T) {
	p, err := NewPayment(42, decimal.NewFromFloat(50.00), MethodCreditCard)
	require.NoError(t, err)
	p.ID = 3

	data, err := json.Marshal(NewPaymentEvent(EventPaymentInitiated, p))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "PaymentInitiated", got["eventType"])
	assert.Equal(t, float64(3), got["paymentId"])
	assert.Equal(t, p.TransactionID, got["transactionId"])
	assert.Equal(t, float64(42), got["orderId"])
	assert.Equal(t, "INITIATED", got["status"])
}
