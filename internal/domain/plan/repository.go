package plan

import (
	"context"

	"github.com/netbill/netbill/internal/types"
)

// Repository defines the interface for plan persistence operations
type Repository interface {
	// Create creates a new plan
	Create(ctx context.Context, plan *Plan) error

	// Get retrieves a plan by ID
	Get(ctx context.Context, id string) (*Plan, error)

	// Update updates an existing plan
	Update(ctx context.Context, plan *Plan) error

	// Delete soft deletes a plan
	Delete(ctx context.Context, id string) error

	// List retrieves plans based on filter criteria
	List(ctx context.Context, filter *types.PlanFilter) ([]*Plan, error)

	// Count returns the total count of plans matching the filter
	Count(ctx context.Context, filter *types.PlanFilter) (int, error)
}
