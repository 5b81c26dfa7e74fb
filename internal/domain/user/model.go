package user

import (
	"github.com/netbill/netbill/internal/types"
)

// User represents a staff member of a tenant
type User struct {
	ID    string         `db:"id" json:"id"`
	Email string         `db:"email" json:"email"`
	Name  string         `db:"name" json:"name"`
	Role  types.UserRole `db:"role" json:"role"`
	types.BaseModel
}
