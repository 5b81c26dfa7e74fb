package billingrun

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/netbill/netbill/internal/types"
	"github.com/shopspring/decimal"
)

// BillingRun is the persisted log of one billing execution. It replaces
// deriving "last run" from invoice timestamps: every non-dry run writes a row
// with per-subscription outcomes.
type BillingRun struct {
	ID          string                 `db:"id" json:"id"`
	BillingDate time.Time              `db:"billing_date" json:"billing_date"`
	DryRun      bool                   `db:"dry_run" json:"dry_run"`
	RunStatus   types.BillingRunStatus `db:"run_status" json:"run_status"`
	Processed   int                    `db:"processed" json:"processed"`
	Successful  int                    `db:"successful" json:"successful"`
	Failed      int                    `db:"failed" json:"failed"`
	TotalAmount decimal.Decimal        `db:"total_amount" json:"total_amount"`
	StartedAt   time.Time              `db:"started_at" json:"started_at"`
	CompletedAt *time.Time             `db:"completed_at" json:"completed_at,omitempty"`
	Items       RunItems               `db:"items" json:"items"`
	types.BaseModel
}

// RunItem records the outcome of one subscription within a run
type RunItem struct {
	SubscriptionID string                   `json:"subscription_id"`
	Outcome        types.BillingItemOutcome `json:"outcome"`
	InvoiceID      string                   `json:"invoice_id,omitempty"`
	Amount         decimal.Decimal          `json:"amount"`
	Error          string                   `json:"error,omitempty"`
}

// RunItems is a JSONB array of per-subscription outcomes
type RunItems []RunItem

// Scan implements the sql.Scanner interface for RunItems
func (r *RunItems) Scan(value interface{}) error {
	if value == nil {
		*r = RunItems{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to unmarshal JSONB value: %v", value)
	}

	result := RunItems{}
	err := json.Unmarshal(bytes, &result)
	*r = result
	return err
}

// Value implements the driver.Valuer interface for RunItems
func (r RunItems) Value() (driver.Value, error) {
	if r == nil {
		return json.Marshal(RunItems{})
	}
	return json.Marshal(r)
}
