package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pranavkm07/finance_plan_app/internal/core/domain"
	"github.com/pranavkm07/finance_plan_app/internal/planstate"
)

// CreateIncomeRequest carries the fields for a new income entry.
type CreateIncomeRequest struct {
	Source    string          `json:"source" binding:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Frequency string          `json:"frequency" binding:"omitempty,oneof=MONTHLY WEEKLY YEARLY ONCE"`
	Notes     string          `json:"notes"`
}

// ToInput converts the request into the store's input type.
func (r CreateIncomeRequest) ToInput() planstate.IncomeInput {
	return planstate.IncomeInput{
		Source:    r.Source,
		Amount:    r.Amount,
		Frequency: domain.Frequency(r.Frequency),
		Notes:     r.Notes,
	}
}

// UpdateIncomeRequest carries a partial income update; absent fields are
// left untouched.
type UpdateIncomeRequest struct {
	Source    *string          `json:"source"`
	Amount    *decimal.Decimal `json:"amount"`
	Frequency *string          `json:"frequency" binding:"omitempty,oneof=MONTHLY WEEKLY YEARLY ONCE"`
	Notes     *string          `json:"notes"`
}

// ToUpdate converts the request into the store's partial update type.
func (r UpdateIncomeRequest) ToUpdate() planstate.IncomeUpdate {
	return planstate.IncomeUpdate{
		Source:    r.Source,
		Amount:    r.Amount,
		Frequency: toFrequencyPtr(r.Frequency),
		Notes:     r.Notes,
	}
}

// CreateExpenseRequest carries the fields for a new expense entry.
type CreateExpenseRequest struct {
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Frequency   string          `json:"frequency" binding:"omitempty,oneof=MONTHLY WEEKLY YEARLY ONCE"`
}

// ToInput converts the request into the store's input type.
func (r CreateExpenseRequest) ToInput() planstate.ExpenseInput {
	return planstate.ExpenseInput{
		Category:    r.Category,
		Description: r.Description,
		Amount:      r.Amount,
		Frequency:   domain.Frequency(r.Frequency),
	}
}

// UpdateExpenseRequest carries a partial expense update.
type UpdateExpenseRequest struct {
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Frequency   *string          `json:"frequency" binding:"omitempty,oneof=MONTHLY WEEKLY YEARLY ONCE"`
}

// ToUpdate converts the request into the store's partial update type.
func (r UpdateExpenseRequest) ToUpdate() planstate.ExpenseUpdate {
	return planstate.ExpenseUpdate{
		Category:    r.Category,
		Description: r.Description,
		Amount:      r.Amount,
		Frequency:   toFrequencyPtr(r.Frequency),
	}
}

// CreateGoalRequest carries the fields for a new savings goal.
type CreateGoalRequest struct {
	Name         string          `json:"name" binding:"required"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	SavedAmount  decimal.Decimal `json:"savedAmount"`
	TargetDate   *time.Time      `json:"targetDate"`
}

// ToInput converts the request into the store's input type.
func (r CreateGoalRequest) ToInput() planstate.GoalInput {
	return planstate.GoalInput{
		Name:         r.Name,
		TargetAmount: r.TargetAmount,
		SavedAmount:  r.SavedAmount,
		TargetDate:   r.TargetDate,
	}
}

// UpdateGoalRequest carries a partial goal update.
type UpdateGoalRequest struct {
	Name         *string          `json:"name"`
	TargetAmount *decimal.Decimal `json:"targetAmount"`
	SavedAmount  *decimal.Decimal `json:"savedAmount"`
	TargetDate   *time.Time       `json:"targetDate"`
}

// ToUpdate converts the request into the store's partial update type.
func (r UpdateGoalRequest) ToUpdate() planstate.GoalUpdate {
	return planstate.GoalUpdate{
		Name:         r.Name,
		TargetAmount: r.TargetAmount,
		SavedAmount:  r.SavedAmount,
		TargetDate:   r.TargetDate,
	}
}

// UpdateBalanceRequest replaces the plan's current balance.
type UpdateBalanceRequest struct {
	Balance decimal.Decimal `json:"balance"`
}

// UpdateForecastConfigRequest carries a partial forecast configuration.
type UpdateForecastConfigRequest struct {
	HorizonMonths    *int             `json:"horizonMonths" binding:"omitempty,min=1,max=120"`
	AnnualGrowthRate *decimal.Decimal `json:"annualGrowthRate"`
}

// ToPatch converts the request into the store's patch type.
func (r UpdateForecastConfigRequest) ToPatch() planstate.ForecastConfigPatch {
	return planstate.ForecastConfigPatch{
		HorizonMonths:    r.HorizonMonths,
		AnnualGrowthRate: r.AnnualGrowthRate,
	}
}

// StatusResponse exposes the loading flags and error map of the store.
type StatusResponse struct {
	Loading           planstate.LoadingFlags `json:"loading"`
	Errors            map[string]string      `json:"errors"`
	HasUnsavedChanges bool                   `json:"hasUnsavedChanges"`
}

// ToStatusResponse projects the store state onto the status DTO.
func ToStatusResponse(st planstate.State) StatusResponse {
	errs := make(map[string]string, len(st.Errors))
	for k, v := range st.Errors {
		errs[string(k)] = v
	}
	return StatusResponse{
		Loading:           st.Loading,
		Errors:            errs,
		HasUnsavedChanges: st.HasUnsavedChanges,
	}
}

func toFrequencyPtr(s *string) *domain.Frequency {
	if s == nil {
		return nil
	}
	f := domain.Frequency(*s)
	return &f
}
