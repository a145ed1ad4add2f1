package planstate_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranavkm07/finance_plan_app/internal/core/domain"
	"github.com/pranavkm07/finance_plan_app/internal/planstate"
)

func testIncome(id string, amount int64) domain.Income {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return domain.Income{
		IncomeID:         id,
		Source:           "job",
		Amount:           decimal.NewFromInt(amount),
		Frequency:        domain.FrequencyMonthly,
		EntityTimestamps: domain.EntityTimestamps{CreatedAt: now, UpdatedAt: now},
	}
}

func testExpense(id string, amount int64) domain.Expense {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return domain.Expense{
		ExpenseID:        id,
		Category:         "rent",
		Amount:           decimal.NewFromInt(amount),
		Frequency:        domain.FrequencyMonthly,
		EntityTimestamps: domain.EntityTimestamps{CreatedAt: now, UpdatedAt: now},
	}
}

func TestReduce_AddIncome(t *testing.T) {
	st := planstate.NewState()

	next := planstate.Reduce(st, planstate.IncomeAdded{Income: testIncome("income-1", 3000)})

	require.Len(t, next.Plan.Income, 1)
	assert.Equal(t, "income-1", next.Plan.Income[0].IncomeID)
	assert.True(t, next.HasUnsavedChanges)
	assert.True(t, next.Plan.Summary.TotalMonthlyIncome.Equal(decimal.NewFromInt(3000)))

	// The input state must not be touched.
	assert.Empty(t, st.Plan.Income)
	assert.False(t, st.HasUnsavedChanges)
}

func TestReduce_UpdateIncome_UnknownIDIsIgnored(t *testing.T) {
	st := planstate.Reduce(planstate.NewState(), planstate.IncomeAdded{Income: testIncome("income-1", 3000)})

	next := planstate.Reduce(st, planstate.IncomeUpdated{Income: testIncome("income-missing", 99)})

	require.Len(t, next.Plan.Income, 1)
	assert.True(t, next.Plan.Income[0].Amount.Equal(decimal.NewFromInt(3000)))
}

func TestReduce_DeleteIncome(t *testing.T) {
	st := planstate.Reduce(planstate.NewState(), planstate.IncomeAdded{Income: testIncome("income-1", 3000)})
	st = planstate.Reduce(st, planstate.IncomeAdded{Income: testIncome("income-2", 500)})

	next := planstate.Reduce(st, planstate.IncomeDeleted{IncomeID: "income-1"})

	require.Len(t, next.Plan.Income, 1)
	assert.Equal(t, "income-2", next.Plan.Income[0].IncomeID)
	assert.True(t, next.Plan.Summary.TotalMonthlyIncome.Equal(decimal.NewFromInt(500)))
}

func TestReduce_DeleteIncome_AbsentIDIsNoOp(t *testing.T) {
	st := planstate.Reduce(planstate.NewState(), planstate.IncomeAdded{Income: testIncome("income-1", 3000)})

	next := planstate.Reduce(st, planstate.IncomeDeleted{IncomeID: "income-nope"})

	assert.Len(t, next.Plan.Income, 1)
}

func TestReduce_LoadingFlagsAreIndependent(t *testing.T) {
	st := planstate.NewState()

	st = planstate.Reduce(st, planstate.LoadingSet{Scope: planstate.ScopeIncome, On: true})
	st = planstate.Reduce(st, planstate.LoadingSet{Scope: planstate.ScopeSaving, On: true})

	assert.True(t, st.Loading.IsLoadingIncome)
	assert.True(t, st.Loading.IsSaving)
	assert.False(t, st.Loading.IsLoading)
	assert.False(t, st.HasUnsavedChanges)

	st = planstate.Reduce(st, planstate.LoadingSet{Scope: planstate.ScopeIncome, On: false})
	assert.False(t, st.Loading.IsLoadingIncome)
	assert.True(t, st.Loading.IsSaving)
}

func TestReduce_ClearError_SingleCategory(t *testing.T) {
	st := planstate.NewState()
	st = planstate.Reduce(st, planstate.ErrorSet{Category: planstate.ErrorCategoryGoal, Message: "goal broke"})
	st = planstate.Reduce(st, planstate.ErrorSet{Category: planstate.ErrorCategoryIncome, Message: "income broke"})

	st = planstate.Reduce(st, planstate.ErrorCleared{Category: planstate.ErrorCategoryGoal})

	_, hasGoal := st.Errors[planstate.ErrorCategoryGoal]
	assert.False(t, hasGoal)
	assert.Equal(t, "income broke", st.Errors[planstate.ErrorCategoryIncome])
}

func TestReduce_ClearError_AllCategories(t *testing.T) {
	st := planstate.NewState()
	for _, cat := range planstate.ErrorCategories {
		st = planstate.Reduce(st, planstate.ErrorSet{Category: cat, Message: "broke"})
	}
	require.Len(t, st.Errors, len(planstate.ErrorCategories))

	st = planstate.Reduce(st, planstate.ErrorCleared{})

	assert.Empty(t, st.Errors)
}

func TestReduce_BalanceUpdated(t *testing.T) {
	st := planstate.NewState()

	next := planstate.Reduce(st, planstate.BalanceUpdated{Balance: decimal.NewFromInt(1234)})

	assert.True(t, next.Plan.CurrentBalance.Equal(decimal.NewFromInt(1234)))
	assert.True(t, next.HasUnsavedChanges)
}

func TestReduce_ForecastRegenerated(t *testing.T) {
	st := planstate.NewState()
	st = planstate.Reduce(st, planstate.IncomeAdded{Income: testIncome("income-1", 3000)})
	st = planstate.Reduce(st, planstate.ExpenseAdded{Expense: testExpense("expense-1", 1000)})
	st = planstate.Reduce(st, planstate.BalanceUpdated{Balance: decimal.NewFromInt(500)})

	anchor := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	next := planstate.Reduce(st, planstate.ForecastRegenerated{Now: anchor})

	require.Len(t, next.Plan.Forecast, 12)
	first := next.Plan.Forecast[0]
	assert.Equal(t, "2026-04", first.Month)
	assert.True(t, first.Net.Equal(decimal.NewFromInt(2000)), "net should be income minus expenses")
	assert.True(t, first.Balance.Equal(decimal.NewFromInt(2500)))

	last := next.Plan.Forecast[11]
	assert.Equal(t, "2027-03", last.Month)
	assert.True(t, last.Balance.Equal(decimal.NewFromInt(24500)))
	assert.True(t, next.Plan.Summary.ProjectedEndBalance.Equal(decimal.NewFromInt(24500)))
}

func TestReduce_ForecastConfigUpdated(t *testing.T) {
	st := planstate.Reduce(planstate.NewState(), planstate.IncomeAdded{Income: testIncome("income-1", 100)})

	anchor := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := domain.ForecastConfig{HorizonMonths: 3, AnnualGrowthRate: decimal.Zero}
	next := planstate.Reduce(st, planstate.ForecastConfigUpdated{Config: cfg, Now: anchor})

	assert.Equal(t, 3, next.Plan.ForecastConfig.HorizonMonths)
	assert.Len(t, next.Plan.Forecast, 3)
}

func TestReduce_WeeklyAndYearlyFrequenciesNormalize(t *testing.T) {
	st := planstate.NewState()
	weekly := testIncome("income-1", 120)
	weekly.Frequency = domain.FrequencyWeekly
	yearly := testExpense("expense-1", 1200)
	yearly.Frequency = domain.FrequencyYearly

	st = planstate.Reduce(st, planstate.IncomeAdded{Income: weekly})
	st = planstate.Reduce(st, planstate.ExpenseAdded{Expense: yearly})

	assert.True(t, st.Plan.Summary.TotalMonthlyIncome.Equal(decimal.NewFromInt(520)), "120/week is 520/month")
	assert.True(t, st.Plan.Summary.TotalMonthlyExpenses.Equal(decimal.NewFromInt(100)), "1200/year is 100/month")
}

func TestReduce_OneOffAmountsExcludedFromRecurringTotals(t *testing.T) {
	once := testIncome("income-1", 9999)
	once.Frequency = domain.FrequencyOnce

	st := planstate.Reduce(planstate.NewState(), planstate.IncomeAdded{Income: once})

	assert.True(t, st.Plan.Summary.TotalMonthlyIncome.IsZero())
}

func TestReduce_GoalProgressCappedAtOne(t *testing.T) {
	goal := domain.Goal{
		GoalID:       "goal-1",
		Name:         "vacation",
		TargetAmount: decimal.NewFromInt(1000),
		SavedAmount:  decimal.NewFromInt(2500),
	}

	st := planstate.Reduce(planstate.NewState(), planstate.GoalAdded{Goal: goal})

	require.Len(t, st.Plan.Summary.GoalProgress, 1)
	assert.True(t, st.Plan.Summary.GoalProgress[0].Fraction.Equal(decimal.NewFromInt(1)))
}

func TestReduce_LoadSucceeded_ReplacesWholesale(t *testing.T) {
	st := planstate.Reduce(planstate.NewState(), planstate.IncomeAdded{Income: testIncome("income-local", 1)})
	st = planstate.Reduce(st, planstate.LoadingSet{Scope: planstate.ScopeGlobal, On: true})

	stored := domain.NewPlan()
	stored.PlanID = "plan-abc"
	stored.Income = []domain.Income{testIncome("income-stored", 777)}

	next := planstate.Reduce(st, planstate.LoadSucceeded{Plan: stored})

	assert.Equal(t, "plan-abc", next.Plan.PlanID)
	require.Len(t, next.Plan.Income, 1)
	assert.Equal(t, "income-stored", next.Plan.Income[0].IncomeID)
	assert.False(t, next.Loading.IsLoading)
	assert.False(t, next.HasUnsavedChanges)
}

func TestReduce_SaveLifecycle(t *testing.T) {
	st := planstate.Reduce(planstate.NewState(), planstate.IncomeAdded{Income: testIncome("income-1", 1)})
	require.True(t, st.HasUnsavedChanges)

	st = planstate.Reduce(st, planstate.LoadingSet{Scope: planstate.ScopeSaving, On: true})
	st = planstate.Reduce(st, planstate.SaveSucceeded{})

	assert.False(t, st.Loading.IsSaving)
	assert.False(t, st.HasUnsavedChanges)
}

func TestReduce_SaveFailed(t *testing.T) {
	st := planstate.Reduce(planstate.NewState(), planstate.LoadingSet{Scope: planstate.ScopeSaving, On: true})

	next := planstate.Reduce(st, planstate.SaveFailed{Message: "disk full"})

	assert.Equal(t, "disk full", next.Errors[planstate.ErrorCategoryGeneral])
	assert.False(t, next.Loading.IsSaving)
}

func TestReduce_LoadFailed(t *testing.T) {
	st := planstate.Reduce(planstate.NewState(), planstate.LoadingSet{Scope: planstate.ScopeGlobal, On: true})

	next := planstate.Reduce(st, planstate.LoadFailed{Message: "boom"})

	assert.Equal(t, "boom", next.Errors[planstate.ErrorCategoryGeneral])
	assert.False(t, next.Loading.IsLoading)
}

func TestReduce_StateReset(t *testing.T) {
	st := planstate.Reduce(planstate.NewState(), planstate.IncomeAdded{Income: testIncome("income-1", 1)})
	st = planstate.Reduce(st, planstate.ErrorSet{Category: planstate.ErrorCategoryGeneral, Message: "broke"})

	next := planstate.Reduce(st, planstate.StateReset{})

	assert.True(t, next.Plan.IsPristine())
	assert.Empty(t, next.Errors)
	assert.False(t, next.HasUnsavedChanges)
}

func TestReduce_PlanReplaced_DoesNotMarkDirty(t *testing.T) {
	st := planstate.NewState()

	stored := domain.NewPlan()
	stored.PlanID = "plan-xyz"
	next := planstate.Reduce(st, planstate.PlanReplaced{Plan: stored})

	assert.Equal(t, "plan-xyz", next.Plan.PlanID)
	assert.False(t, next.HasUnsavedChanges)
}
