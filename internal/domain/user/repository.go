package user

import "context"

// Repository defines the interface for user persistence operations
type Repository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID within the tenant scope
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail retrieves a user by email within the tenant scope
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update updates a user's name and role
	Update(ctx context.Context, user *User) error

	// List returns all users of the tenant
	List(ctx context.Context) ([]*User, error)
}
