package tenant

import (
	"time"

	"github.com/netbill/netbill/internal/types"
)

// Tenant represents one ISP operator account. All other rows in the system
// are scoped by the tenant id.
type Tenant struct {
	ID        string         `db:"id" json:"id"`
	Name      string         `db:"name" json:"name"`
	Slug      string         `db:"slug" json:"slug"`
	Branding  types.Document `db:"branding" json:"branding"`
	Status    types.Status   `db:"status" json:"status"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}
