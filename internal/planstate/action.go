package planstate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pranavkm07/finance_plan_app/internal/core/domain"
)

// Action is the sealed set of state transitions understood by Reduce.
// Every mutation of the plan travels through exactly one of these variants.
type Action interface {
	isAction()
}

// LoadingSet toggles one loading flag.
type LoadingSet struct {
	Scope LoadScope
	On    bool
}

// ErrorSet records a message under one error category.
type ErrorSet struct {
	Category ErrorCategory
	Message  string
}

// ErrorCleared clears one error category, or every category when Category is
// empty.
type ErrorCleared struct {
	Category ErrorCategory
}

// IncomeAdded appends a fully-formed income entry.
type IncomeAdded struct {
	Income domain.Income
}

// IncomeUpdated replaces the income entry with the same id. Unknown ids are
// ignored; existence is checked before dispatch.
type IncomeUpdated struct {
	Income domain.Income
}

// IncomeDeleted removes the income entry with the given id, if present.
type IncomeDeleted struct {
	IncomeID string
}

// ExpenseAdded appends a fully-formed expense entry.
type ExpenseAdded struct {
	Expense domain.Expense
}

// ExpenseUpdated replaces the expense entry with the same id.
type ExpenseUpdated struct {
	Expense domain.Expense
}

// ExpenseDeleted removes the expense entry with the given id, if present.
type ExpenseDeleted struct {
	ExpenseID string
}

// GoalAdded appends a fully-formed goal.
type GoalAdded struct {
	Goal domain.Goal
}

// GoalUpdated replaces the goal with the same id.
type GoalUpdated struct {
	Goal domain.Goal
}

// GoalDeleted removes the goal with the given id, if present.
type GoalDeleted struct {
	GoalID string
}

// BalanceUpdated replaces the current balance.
type BalanceUpdated struct {
	Balance decimal.Decimal
}

// ForecastConfigUpdated replaces the forecast configuration and reprojects
// from Now.
type ForecastConfigUpdated struct {
	Config domain.ForecastConfig
	Now    time.Time
}

// ForecastRegenerated recomputes the projection from Now under the current
// configuration.
type ForecastRegenerated struct {
	Now time.Time
}

// PlanReplaced swaps the whole plan wholesale, keeping flags and errors.
type PlanReplaced struct {
	Plan domain.Plan
}

// LoadSucceeded installs a plan hydrated from storage and clears the global
// loading flag and the unsaved-changes flag.
type LoadSucceeded struct {
	Plan domain.Plan
}

// LoadFailed records a background load failure and clears the global loading
// flag.
type LoadFailed struct {
	Message string
}

// SaveSucceeded marks the current plan as persisted.
type SaveSucceeded struct{}

// SaveFailed records a background save failure and clears the saving flag.
type SaveFailed struct {
	Message string
}

// StateReset returns everything to the initial pristine state.
type StateReset struct{}

func (LoadingSet) isAction()            {}
func (ErrorSet) isAction()              {}
func (ErrorCleared) isAction()          {}
func (IncomeAdded) isAction()           {}
func (IncomeUpdated) isAction()         {}
func (IncomeDeleted) isAction()         {}
func (ExpenseAdded) isAction()          {}
func (ExpenseUpdated) isAction()        {}
func (ExpenseDeleted) isAction()        {}
func (GoalAdded) isAction()             {}
func (GoalUpdated) isAction()           {}
func (GoalDeleted) isAction()           {}
func (BalanceUpdated) isAction()        {}
func (ForecastConfigUpdated) isAction() {}
func (ForecastRegenerated) isAction()   {}
func (PlanReplaced) isAction()          {}
func (LoadSucceeded) isAction()         {}
func (LoadFailed) isAction()            {}
func (SaveSucceeded) isAction()         {}
func (SaveFailed) isAction()            {}
func (StateReset) isAction()            {}
