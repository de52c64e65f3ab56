package domain

import (
	"strings"

	"github.com/google/uuid"
)

func randomKey(n int) string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(s[:n])
}

// NewOrderNumber returns a human-facing order key, ORD- plus 8 hex chars.
func NewOrderNumber() string {
	return "ORD-" + randomKey(8)
}

// NewTransactionID returns a payment business key, TXN- plus 8 hex chars.
func NewTransactionID() string {
	return "TXN-" + randomKey(8)
}

// NewReferenceNumber returns a processor reference, REF- plus 12 hex chars.
func NewReferenceNumber() string {
	return "REF-" + randomKey(12)
}
