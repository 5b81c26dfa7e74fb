package invoice

import (
	"time"
)

// Sequence represents a tenant's invoice number sequence for a specific
// month. The counter is advanced with an atomic upsert-increment so
// concurrent billing runs can never hand out the same value.
type Sequence struct {
	ID        string    `db:"id"`
	TenantID  string    `db:"tenant_id"`
	YearMonth string    `db:"year_month"`
	LastValue int64     `db:"last_value"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
