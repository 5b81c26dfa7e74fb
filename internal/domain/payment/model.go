package payment

import (
	"errors"
	"time"

	"github.com/netbill/netbill/internal/types"
	"github.com/shopspring/decimal"
)

// Payment represents a recorded payment or refund. Refunds are separate
// negative-amount rows referencing the original payment; history is never
// deleted.
type Payment struct {
	ID             string              `db:"id" json:"id"`
	InvoiceID      *string             `db:"invoice_id" json:"invoice_id,omitempty"`
	CustomerID     string              `db:"customer_id" json:"customer_id"`
	PaymentNumber  string              `db:"payment_number" json:"payment_number"`
	Amount         decimal.Decimal     `db:"amount" json:"amount"`
	Currency       string              `db:"currency" json:"currency"`
	PaymentMethod  types.PaymentMethod `db:"payment_method" json:"payment_method"`
	PaymentStatus  types.PaymentStatus `db:"payment_status" json:"payment_status"`
	Reference      string              `db:"reference" json:"reference"`
	ReceivedAt     time.Time           `db:"received_at" json:"received_at"`
	IdempotencyKey string              `db:"idempotency_key" json:"idempotency_key"`
	types.BaseModel
}

// IsRefund reports whether this row records a refund
func (p *Payment) IsRefund() bool {
	return p.Amount.IsNegative()
}

// Validate checks the payment's fields
func (p *Payment) Validate() error {
	if p.Amount.IsZero() {
		return errors.New("payment amount must not be zero")
	}
	if err := p.PaymentMethod.Validate(); err != nil {
		return err
	}
	if err := p.PaymentStatus.Validate(); err != nil {
		return err
	}
	return nil
}
