package types

import (
	"fmt"

	"github.com/samber/lo"
)

// UserRole represents the role of a staff user within a tenant
type UserRole string

const (
	UserRoleOwner UserRole = "OWNER"
	UserRoleAdmin UserRole = "ADMIN"
	UserRoleStaff UserRole = "STAFF"

	// UserRoleCustomer marks portal sessions authenticated on behalf of a
	// customer rather than a staff user
	UserRoleCustomer UserRole = "CUSTOMER"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) Validate() error {
	allowed := []UserRole{
		UserRoleOwner,
		UserRoleAdmin,
		UserRoleStaff,
		UserRoleCustomer,
	}
	if !lo.Contains(allowed, r) {
		return fmt.Errorf("invalid user role: %s", r)
	}
	return nil
}

// CanRunBilling reports whether the role may trigger billing runs
func (r UserRole) CanRunBilling() bool {
	return r == UserRoleOwner || r == UserRoleAdmin
}
