// Package planstate holds the financial plan state container: a tagged-union
// action catalog, a pure reducer, and a Store that serializes every state
// transition and drives persistence (load at startup, debounced auto-save).
package planstate

import (
	"github.com/pranavkm07/finance_plan_app/internal/core/domain"
)

// ErrorCategory names one slot of the per-domain error map.
type ErrorCategory string

const (
	ErrorCategoryIncome   ErrorCategory = "income"
	ErrorCategoryExpense  ErrorCategory = "expense"
	ErrorCategoryGoal     ErrorCategory = "goal"
	ErrorCategoryForecast ErrorCategory = "forecast"
	ErrorCategoryGeneral  ErrorCategory = "general"
)

// ErrorCategories lists every category, in display order.
var ErrorCategories = []ErrorCategory{
	ErrorCategoryIncome,
	ErrorCategoryExpense,
	ErrorCategoryGoal,
	ErrorCategoryForecast,
	ErrorCategoryGeneral,
}

// LoadScope names one of the independent loading flags.
type LoadScope string

const (
	ScopeGlobal   LoadScope = "global"
	ScopeSaving   LoadScope = "saving"
	ScopeIncome   LoadScope = "income"
	ScopeExpenses LoadScope = "expenses"
	ScopeGoals    LoadScope = "goals"
	ScopeForecast LoadScope = "forecast"
)

// LoadingFlags are the independent, non-exclusive busy indicators. Any
// subset may be set at once.
type LoadingFlags struct {
	IsLoading         bool `json:"isLoading"`
	IsSaving          bool `json:"isSaving"`
	IsLoadingIncome   bool `json:"isLoadingIncome"`
	IsLoadingExpenses bool `json:"isLoadingExpenses"`
	IsLoadingGoals    bool `json:"isLoadingGoals"`
	IsLoadingForecast bool `json:"isLoadingForecast"`
}

// State is the single value the reducer transitions over. It is immutable by
// convention: Reduce returns a fresh copy and nothing mutates a State that
// has already been handed out.
type State struct {
	Plan              domain.Plan
	Loading           LoadingFlags
	Errors            map[ErrorCategory]string
	HasUnsavedChanges bool
}

// NewState returns the initial state: a pristine plan, no flags, no errors.
func NewState() State {
	return State{
		Plan:   domain.NewPlan(),
		Errors: map[ErrorCategory]string{},
	}
}

// clone deep-copies the state so the reducer can modify the copy freely.
func (s State) clone() State {
	out := s
	out.Plan = s.Plan.Clone()
	out.Errors = make(map[ErrorCategory]string, len(s.Errors))
	for k, v := range s.Errors {
		out.Errors[k] = v
	}
	return out
}
