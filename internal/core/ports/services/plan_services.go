package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pranavkm07/finance_plan_app/internal/core/domain"
	"github.com/pranavkm07/finance_plan_app/internal/planstate"
)

// PlanReaderSvc exposes the read-only projections of the plan state.
type PlanReaderSvc interface {
	State() planstate.State
	Plan() domain.Plan
	Loading() planstate.LoadingFlags
	Errors() map[planstate.ErrorCategory]string
	Summary() domain.PlanSummary
}

// PlanWriterSvc exposes every state-mutating operation of the plan store.
type PlanWriterSvc interface {
	AddIncome(ctx context.Context, in planstate.IncomeInput) (domain.Income, error)
	UpdateIncome(ctx context.Context, incomeID string, upd planstate.IncomeUpdate) (domain.Income, error)
	DeleteIncome(ctx context.Context, incomeID string) error

	AddExpense(ctx context.Context, in planstate.ExpenseInput) (domain.Expense, error)
	UpdateExpense(ctx context.Context, expenseID string, upd planstate.ExpenseUpdate) (domain.Expense, error)
	DeleteExpense(ctx context.Context, expenseID string) error

	AddGoal(ctx context.Context, in planstate.GoalInput) (domain.Goal, error)
	UpdateGoal(ctx context.Context, goalID string, upd planstate.GoalUpdate) (domain.Goal, error)
	DeleteGoal(ctx context.Context, goalID string) error

	RegenerateForecast(ctx context.Context) error
	UpdateCurrentBalance(ctx context.Context, balance decimal.Decimal) error
	UpdateForecastConfig(ctx context.Context, patch planstate.ForecastConfigPatch) (domain.ForecastConfig, error)

	SavePlan(ctx context.Context) error
	LoadPlan(ctx context.Context) error
	ResetAll()
	ClearError(category planstate.ErrorCategory)
}

// PlanSvcFacade is the full consumer-facing contract of the plan store.
type PlanSvcFacade interface {
	PlanReaderSvc
	PlanWriterSvc
}
