package production

import "context"

// PlanRepository defines the persistence interface for computed plans
type PlanRepository interface {
	// Save persists a plan
	Save(ctx context.Context, plan *Plan) error

	// FindByID retrieves a plan by ID
	FindByID(ctx context.Context, id string) (*Plan, error)

	// List retrieves the most recent plans, newest first (limit <= 0 means all)
	List(ctx context.Context, limit int) ([]*Plan, error)
}
