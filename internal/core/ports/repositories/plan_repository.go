package repositories

import (
	"context"

	"github.com/pranavkm07/finance_plan_app/internal/core/domain"
)

// PlanRepository defines persistence for the plan aggregate. Implementations
// store and load the plan as one document.
type PlanRepository interface {
	// Load retrieves the stored plan. Returns apperrors.ErrNotFound when no
	// plan has been persisted yet.
	Load(ctx context.Context) (*domain.Plan, error)

	// Save persists the plan and returns the stored version. When the input
	// carries the sentinel identifier, the returned plan holds the newly
	// assigned one.
	Save(ctx context.Context, plan domain.Plan) (*domain.Plan, error)
}
