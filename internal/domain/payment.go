package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quickcommerce/order-payment-service/internal/lifecycle"
)

type PaymentStatus string

const (
	PaymentInitiated  PaymentStatus = "INITIATED"
	PaymentProcessing PaymentStatus = "PROCESSING"
	PaymentCompleted  PaymentStatus = "COMPLETED"
	PaymentFailed     PaymentStatus = "FAILED"
	PaymentRefunded   PaymentStatus = "REFUNDED"
	PaymentCancelled  PaymentStatus = "CANCELLED"
)

// PaymentGraph is the permitted status adjacency for payments. FAILED,
// REFUNDED and CANCELLED are terminal.
var PaymentGraph = lifecycle.Graph[PaymentStatus]{
	PaymentInitiated:  {PaymentProcessing, PaymentCancelled},
	PaymentProcessing: {PaymentCompleted, PaymentFailed, PaymentCancelled},
	PaymentCompleted:  {PaymentRefunded},
}

type PaymentMethod string

const (
	MethodCreditCard   PaymentMethod = "CREDIT_CARD"
	MethodDebitCard    PaymentMethod = "DEBIT_CARD"
	MethodPaypal       PaymentMethod = "PAYPAL"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodOther        PaymentMethod = "OTHER"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	switch m {
	case MethodCreditCard, MethodDebitCard, MethodPaypal, MethodBankTransfer, MethodOther:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown payment method %q", ErrValidation, s)
}

type Payment struct {
	ID              int64           `json:"id"`
	TransactionID   string          `json:"transactionId"`
	OrderID         int64           `json:"orderId"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	Status          PaymentStatus   `json:"status"`
	ReferenceNumber string          `json:"referenceNumber,omitempty"`
	ErrorMessage    string          `json:"errorMessage,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// NewPayment builds a creatable payment with status forced to INITIATED.
// OrderID is kept as a plain foreign value, never checked against the order
// store.
func NewPayment(orderID int64, amount decimal.Decimal, method PaymentMethod) (*Payment, error) {
	if orderID <= 0 {
		return nil, fmt.Errorf("%w: orderId is required", ErrValidation)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrValidation)
	}
	if _, err := ParsePaymentMethod(string(method)); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Payment{
		TransactionID: NewTransactionID(),
		OrderID:       orderID,
		Amount:        amount,
		PaymentMethod: method,
		Status:        PaymentInitiated,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (p *Payment) transition(next PaymentStatus) error {
	if !PaymentGraph.CanTransition(p.Status, next) {
		return fmt.Errorf("%w: payment %s -> %s", ErrInvalidTransition, p.Status, next)
	}
	p.Status = next
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// Process moves the payment into PROCESSING and assigns the processor
// reference.
func (p *Payment) Process() error {
	if err := p.transition(PaymentProcessing); err != nil {
		return err
	}
	p.ReferenceNumber = NewReferenceNumber()
	return nil
}

func (p *Payment) Complete() error {
	return p.transition(PaymentCompleted)
}

// Fail records the processor error alongside the FAILED status.
func (p *Payment) Fail(errorMessage string) error {
	if err := p.transition(PaymentFailed); err != nil {
		return err
	}
	p.ErrorMessage = errorMessage
	return nil
}

func (p *Payment) Refund() error {
	return p.transition(PaymentRefunded)
}

func (p *Payment) Cancel() error {
	return p.transition(PaymentCancelled)
}
