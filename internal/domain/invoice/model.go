package invoice

import (
	"time"

	"github.com/netbill/netbill/internal/types"
	"github.com/shopspring/decimal"
)

// Invoice represents the invoice domain model. Amounts are copied from the
// plan at generation time and never recomputed afterwards.
type Invoice struct {
	ID             string              `db:"id" json:"id"`
	CustomerID     string              `db:"customer_id" json:"customer_id"`
	SubscriptionID string              `db:"subscription_id" json:"subscription_id"`
	InvoiceNumber  string              `db:"invoice_number" json:"invoice_number"`
	InvoiceStatus  types.InvoiceStatus `db:"invoice_status" json:"invoice_status"`
	Currency       string              `db:"currency" json:"currency"`
	PeriodStart    time.Time           `db:"period_start" json:"period_start"`
	PeriodEnd      time.Time           `db:"period_end" json:"period_end"`
	Subtotal       decimal.Decimal     `db:"subtotal" json:"subtotal"`
	TaxAmount      decimal.Decimal     `db:"tax_amount" json:"tax_amount"`
	Total          decimal.Decimal     `db:"total" json:"total"`
	DueDate        time.Time           `db:"due_date" json:"due_date"`
	PaidAt         *time.Time          `db:"paid_at" json:"paid_at,omitempty"`
	PDFURL         *string             `db:"pdf_url" json:"pdf_url,omitempty"`
	Metadata       types.Metadata      `db:"metadata" json:"metadata,omitempty"`
	LineItems      []*LineItem         `db:"-" json:"line_items,omitempty"`
	types.BaseModel
}

// Validate checks internal consistency of the invoice amounts
func (i *Invoice) Validate() error {
	if i.Subtotal.IsNegative() {
		return NewValidationError("subtotal", "must be non negative")
	}
	if i.TaxAmount.IsNegative() {
		return NewValidationError("tax_amount", "must be non negative")
	}
	if !i.Subtotal.Add(i.TaxAmount).Equal(i.Total) {
		return NewValidationError("total", "must equal subtotal + tax_amount")
	}
	if i.PeriodEnd.Before(i.PeriodStart) {
		return NewValidationError("period_end", "must be after period_start")
	}
	for _, item := range i.LineItems {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IsPaid reports whether the invoice has been settled
func (i *Invoice) IsPaid() bool {
	return i.InvoiceStatus == types.InvoiceStatusPaid
}
