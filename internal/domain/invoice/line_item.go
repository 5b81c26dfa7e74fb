package invoice

import (
	"github.com/netbill/netbill/internal/types"
	"github.com/shopspring/decimal"
)

// LineItem represents one line of an invoice. Line items are created
// atomically with their invoice and never updated afterwards.
type LineItem struct {
	ID          string                `db:"id" json:"id"`
	InvoiceID   string                `db:"invoice_id" json:"invoice_id"`
	ItemType    types.InvoiceItemType `db:"item_type" json:"item_type"`
	Description string                `db:"description" json:"description"`
	Quantity    decimal.Decimal       `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal       `db:"unit_price" json:"unit_price"`
	Amount      decimal.Decimal       `db:"amount" json:"amount"`
	types.BaseModel
}

// Validate checks the line item's fields
func (li *LineItem) Validate() error {
	if err := li.ItemType.Validate(); err != nil {
		return NewValidationError("item_type", err.Error())
	}
	if li.Quantity.IsNegative() || li.Quantity.IsZero() {
		return NewValidationError("quantity", "must be positive")
	}
	if !li.Quantity.Mul(li.UnitPrice).Round(2).Equal(li.Amount) {
		return NewValidationError("amount", "must equal quantity * unit_price")
	}
	return nil
}
