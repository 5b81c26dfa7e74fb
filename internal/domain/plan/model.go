package plan

import (
	"github.com/netbill/netbill/internal/types"
	"github.com/shopspring/decimal"
)

// Plan represents a service plan offered by the ISP. Price and tax rate are
// copied onto invoices at billing time, so later plan edits never alter
// already generated invoices.
type Plan struct {
	ID            string          `db:"id" json:"id"`
	Name          string          `db:"name" json:"name"`
	Description   string          `db:"description" json:"description"`
	Price         decimal.Decimal `db:"price" json:"price"`
	Currency      string          `db:"currency" json:"currency"`
	TaxRate       decimal.Decimal `db:"tax_rate" json:"tax_rate"`
	DurationDays  int             `db:"duration_days" json:"duration_days"`
	FairUsePolicy types.Document  `db:"fair_use_policy" json:"fair_use_policy"`
	IsActive      bool            `db:"is_active" json:"is_active"`
	types.BaseModel
}

// Validate checks the plan's billing-relevant fields
func (p *Plan) Validate() error {
	if p.Name == "" {
		return NewValidationError("name", "must not be empty")
	}
	if p.Price.IsNegative() {
		return NewValidationError("price", "must be non negative")
	}
	if p.TaxRate.IsNegative() || p.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return NewValidationError("tax_rate", "must be between 0 and 100")
	}
	if p.DurationDays <= 0 {
		return NewValidationError("duration_days", "must be positive")
	}
	return nil
}
