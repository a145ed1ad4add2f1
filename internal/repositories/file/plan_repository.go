// Package file persists the plan aggregate as a single JSON document on
// disk. It backs the local/offline storage mode.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/pranavkm07/finance_plan_app/internal/apperrors"
	"github.com/pranavkm07/finance_plan_app/internal/core/domain"
	portsrepo "github.com/pranavkm07/finance_plan_app/internal/core/ports/repositories"
)

// PlanRepository stores the plan at a fixed path. Writes go through a temp
// file followed by a rename, so a crash mid-save cannot truncate the
// previous document.
type PlanRepository struct {
	path string
}

// NewPlanRepository creates a repository writing to the given path.
func NewPlanRepository(path string) (*PlanRepository, error) {
	if path == "" {
		return nil, fmt.Errorf("plan file path is required: %w", apperrors.ErrValidation)
	}
	return &PlanRepository{path: path}, nil
}

var _ portsrepo.PlanRepository = (*PlanRepository)(nil)

// Load reads and decodes the stored plan.
func (r *PlanRepository) Load(ctx context.Context) (*domain.Plan, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("plan file %q: %w", r.path, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading plan file %q: %w", r.path, err)
	}

	var plan domain.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("decoding plan file %q: %w", r.path, err)
	}
	return &plan, nil
}

// Save writes the plan, assigning a fresh identifier when the input still
// carries the sentinel.
func (r *PlanRepository) Save(ctx context.Context, plan domain.Plan) (*domain.Plan, error) {
	if plan.PlanID == domain.DefaultPlanID {
		plan.PlanID = uuid.NewString()
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return nil, fmt.Errorf("creating plan directory: %w", err)
	}

	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding plan: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".plan-*.json")
	if err != nil {
		return nil, fmt.Errorf("creating temp plan file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return nil, fmt.Errorf("writing temp plan file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("closing temp plan file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("replacing plan file %q: %w", r.path, err)
	}

	return &plan, nil
}
