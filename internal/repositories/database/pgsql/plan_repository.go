// Package pgsql implements plan persistence on PostgreSQL. The plan
// aggregate is stored as one jsonb document per plan id.
package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pranavkm07/finance_plan_app/internal/apperrors"
	"github.com/pranavkm07/finance_plan_app/internal/core/domain"
	portsrepo "github.com/pranavkm07/finance_plan_app/internal/core/ports/repositories"
)

// PgxPlanRepository persists the plan document through a pgx pool.
type PgxPlanRepository struct {
	pool *pgxpool.Pool
}

// NewPgxPlanRepository creates a new repository for plan data.
func NewPgxPlanRepository(pool *pgxpool.Pool) *PgxPlanRepository {
	return &PgxPlanRepository{pool: pool}
}

var _ portsrepo.PlanRepository = (*PgxPlanRepository)(nil)

// Load returns the most recently updated stored plan.
func (r *PgxPlanRepository) Load(ctx context.Context) (*domain.Plan, error) {
	query := `SELECT document FROM plans ORDER BY updated_at DESC LIMIT 1`

	var document []byte
	err := r.pool.QueryRow(ctx, query).Scan(&document)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}

	var plan domain.Plan
	if err := json.Unmarshal(document, &plan); err != nil {
		return nil, fmt.Errorf("failed to decode stored plan: %w", err)
	}
	return &plan, nil
}

// Save upserts the plan document, assigning a fresh identifier when the
// input still carries the sentinel.
func (r *PgxPlanRepository) Save(ctx context.Context, plan domain.Plan) (*domain.Plan, error) {
	if plan.PlanID == domain.DefaultPlanID {
		plan.PlanID = uuid.NewString()
	}

	document, err := json.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan: %w", err)
	}

	query := `
		INSERT INTO plans (plan_id, document, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (plan_id) DO UPDATE SET
			document = EXCLUDED.document,
			updated_at = EXCLUDED.updated_at
	`
	now := time.Now().UTC()
	if _, err := r.pool.Exec(ctx, query, plan.PlanID, document, now); err != nil {
		return nil, fmt.Errorf("failed to save plan %s: %w", plan.PlanID, err)
	}

	return &plan, nil
}
