package tenant

import "context"

// Repository defines the interface for tenant persistence operations
type Repository interface {
	// Create creates a new tenant
	Create(ctx context.Context, tenant *Tenant) error

	// GetByID retrieves a tenant by ID
	GetByID(ctx context.Context, id string) (*Tenant, error)

	// GetBySlug retrieves a tenant by its unique slug
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)

	// Update updates a tenant's mutable fields (name, branding)
	Update(ctx context.Context, tenant *Tenant) error

	// List returns all tenants
	List(ctx context.Context) ([]*Tenant, error)
}
