package planstate

// Reduce is the single state transition function. It is total and pure: it
// never fails, it never touches anything outside its arguments, and it
// always returns a fresh State value. Unknown actions return the state
// unchanged.
//
// Every plan-mutating variant marks the state as having unsaved changes and
// recomputes the derived summary; the flag is only cleared again by
// SaveSucceeded, LoadSucceeded, or StateReset.
func Reduce(s State, a Action) State {
	next := s.clone()
	mutated := false

	switch act := a.(type) {
	case LoadingSet:
		switch act.Scope {
		case ScopeGlobal:
			next.Loading.IsLoading = act.On
		case ScopeSaving:
			next.Loading.IsSaving = act.On
		case ScopeIncome:
			next.Loading.IsLoadingIncome = act.On
		case ScopeExpenses:
			next.Loading.IsLoadingExpenses = act.On
		case ScopeGoals:
			next.Loading.IsLoadingGoals = act.On
		case ScopeForecast:
			next.Loading.IsLoadingForecast = act.On
		}
		return next

	case ErrorSet:
		if act.Category != "" {
			next.Errors[act.Category] = act.Message
		}
		return next

	case ErrorCleared:
		if act.Category == "" {
			next.Errors = map[ErrorCategory]string{}
		} else {
			delete(next.Errors, act.Category)
		}
		return next

	case IncomeAdded:
		next.Plan.Income = append(next.Plan.Income, act.Income)
		mutated = true

	case IncomeUpdated:
		for i := range next.Plan.Income {
			if next.Plan.Income[i].IncomeID == act.Income.IncomeID {
				next.Plan.Income[i] = act.Income
				mutated = true
				break
			}
		}

	case IncomeDeleted:
		for i := range next.Plan.Income {
			if next.Plan.Income[i].IncomeID == act.IncomeID {
				next.Plan.Income = append(next.Plan.Income[:i], next.Plan.Income[i+1:]...)
				mutated = true
				break
			}
		}

	case ExpenseAdded:
		next.Plan.Expenses = append(next.Plan.Expenses, act.Expense)
		mutated = true

	case ExpenseUpdated:
		for i := range next.Plan.Expenses {
			if next.Plan.Expenses[i].ExpenseID == act.Expense.ExpenseID {
				next.Plan.Expenses[i] = act.Expense
				mutated = true
				break
			}
		}

	case ExpenseDeleted:
		for i := range next.Plan.Expenses {
			if next.Plan.Expenses[i].ExpenseID == act.ExpenseID {
				next.Plan.Expenses = append(next.Plan.Expenses[:i], next.Plan.Expenses[i+1:]...)
				mutated = true
				break
			}
		}

	case GoalAdded:
		next.Plan.Goals = append(next.Plan.Goals, act.Goal)
		mutated = true

	case GoalUpdated:
		for i := range next.Plan.Goals {
			if next.Plan.Goals[i].GoalID == act.Goal.GoalID {
				next.Plan.Goals[i] = act.Goal
				mutated = true
				break
			}
		}

	case GoalDeleted:
		for i := range next.Plan.Goals {
			if next.Plan.Goals[i].GoalID == act.GoalID {
				next.Plan.Goals = append(next.Plan.Goals[:i], next.Plan.Goals[i+1:]...)
				mutated = true
				break
			}
		}

	case BalanceUpdated:
		next.Plan.CurrentBalance = act.Balance
		mutated = true

	case ForecastConfigUpdated:
		next.Plan.ForecastConfig = act.Config
		next.Plan.Forecast = computeForecast(next.Plan, act.Now)
		mutated = true

	case ForecastRegenerated:
		next.Plan.Forecast = computeForecast(next.Plan, act.Now)
		mutated = true

	case PlanReplaced:
		// Wholesale replacement on the save path; nothing new to persist.
		next.Plan = act.Plan.Clone()
		next.Plan.Summary = computeSummary(next.Plan)
		return next

	case LoadSucceeded:
		next.Plan = act.Plan.Clone()
		next.Plan.Summary = computeSummary(next.Plan)
		next.Loading.IsLoading = false
		next.HasUnsavedChanges = false
		return next

	case LoadFailed:
		next.Errors[ErrorCategoryGeneral] = act.Message
		next.Loading.IsLoading = false
		return next

	case SaveSucceeded:
		next.Loading.IsSaving = false
		next.HasUnsavedChanges = false
		return next

	case SaveFailed:
		next.Errors[ErrorCategoryGeneral] = act.Message
		next.Loading.IsSaving = false
		return next

	case StateReset:
		return NewState()

	default:
		return next
	}

	if mutated {
		next.HasUnsavedChanges = true
		next.Plan.Summary = computeSummary(next.Plan)
	}
	return next
}
