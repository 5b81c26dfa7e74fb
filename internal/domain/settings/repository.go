package settings

import "context"

// Repository defines the interface for settings persistence operations
type Repository interface {
	// Create creates a new setting row
	Create(ctx context.Context, setting *Setting) error

	// GetByKey retrieves the tenant's setting for the given key
	GetByKey(ctx context.Context, key string) (*Setting, error)

	// Update replaces the value of an existing setting
	Update(ctx context.Context, setting *Setting) error

	// List returns all settings of the tenant
	List(ctx context.Context) ([]*Setting, error)
}
