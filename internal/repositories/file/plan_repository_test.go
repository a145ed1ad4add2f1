package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranavkm07/finance_plan_app/internal/apperrors"
	"github.com/pranavkm07/finance_plan_app/internal/core/domain"
	"github.com/pranavkm07/finance_plan_app/internal/repositories/file"
)

func newTestRepo(t *testing.T) *file.PlanRepository {
	t.Helper()
	repo, err := file.NewPlanRepository(filepath.Join(t.TempDir(), "plan.json"))
	require.NoError(t, err)
	return repo
}

func TestNewPlanRepository_EmptyPath(t *testing.T) {
	_, err := file.NewPlanRepository("")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestPlanRepository_Load_MissingFile(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPlanRepository_Save_AssignsIDToSentinel(t *testing.T) {
	repo := newTestRepo(t)

	saved, err := repo.Save(context.Background(), domain.NewPlan())

	require.NoError(t, err)
	assert.NotEqual(t, domain.DefaultPlanID, saved.PlanID)
	_, parseErr := uuid.Parse(saved.PlanID)
	assert.NoError(t, parseErr)
}

func TestPlanRepository_Save_KeepsExistingID(t *testing.T) {
	repo := newTestRepo(t)
	plan := domain.NewPlan()
	plan.PlanID = "plan-existing"

	saved, err := repo.Save(context.Background(), plan)

	require.NoError(t, err)
	assert.Equal(t, "plan-existing", saved.PlanID)
}

func TestPlanRepository_SaveThenLoad_RoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	plan := domain.NewPlan()
	plan.CurrentBalance = decimal.RequireFromString("1234.56")
	plan.Income = append(plan.Income, domain.Income{
		IncomeID:  "income-1",
		Source:    "salary",
		Amount:    decimal.NewFromInt(4200),
		Frequency: domain.FrequencyMonthly,
	})
	plan.Goals = append(plan.Goals, domain.Goal{
		GoalID:       "goal-1",
		Name:         "vacation",
		TargetAmount: decimal.NewFromInt(3000),
	})

	saved, err := repo.Save(ctx, plan)
	require.NoError(t, err)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, saved.PlanID, loaded.PlanID)
	assert.True(t, loaded.CurrentBalance.Equal(plan.CurrentBalance))
	require.Len(t, loaded.Income, 1)
	assert.Equal(t, "salary", loaded.Income[0].Source)
	require.Len(t, loaded.Goals, 1)
	assert.Equal(t, "vacation", loaded.Goals[0].Name)
}

func TestPlanRepository_Save_OverwritesAtomically(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := domain.NewPlan()
	first.PlanID = "plan-v1"
	_, err := repo.Save(ctx, first)
	require.NoError(t, err)

	second := domain.NewPlan()
	second.PlanID = "plan-v2"
	_, err = repo.Save(ctx, second)
	require.NoError(t, err)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "plan-v2", loaded.PlanID)
}

func TestPlanRepository_Save_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "plan.json")
	repo, err := file.NewPlanRepository(path)
	require.NoError(t, err)

	_, err = repo.Save(context.Background(), domain.NewPlan())

	require.NoError(t, err)
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}
