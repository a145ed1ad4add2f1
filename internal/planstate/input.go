package planstate

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pranavkm07/finance_plan_app/internal/apperrors"
	"github.com/pranavkm07/finance_plan_app/internal/core/domain"
)

// IncomeInput carries the caller-supplied fields for a new income entry.
type IncomeInput struct {
	Source    string
	Amount    decimal.Decimal
	Frequency domain.Frequency
	Notes     string
}

func (in IncomeInput) validate() error {
	if in.Source == "" {
		return fmt.Errorf("income source is required: %w", apperrors.ErrValidation)
	}
	if in.Amount.IsNegative() {
		return fmt.Errorf("income amount must not be negative: %w", apperrors.ErrValidation)
	}
	if in.Frequency != "" && !in.Frequency.Valid() {
		return fmt.Errorf("unknown frequency %q: %w", in.Frequency, apperrors.ErrValidation)
	}
	return nil
}

// IncomeUpdate carries a partial update; nil fields are left untouched.
type IncomeUpdate struct {
	Source    *string
	Amount    *decimal.Decimal
	Frequency *domain.Frequency
	Notes     *string
}

func (u IncomeUpdate) validate() error {
	if u.Source != nil && *u.Source == "" {
		return fmt.Errorf("income source must not be empty: %w", apperrors.ErrValidation)
	}
	if u.Amount != nil && u.Amount.IsNegative() {
		return fmt.Errorf("income amount must not be negative: %w", apperrors.ErrValidation)
	}
	if u.Frequency != nil && !u.Frequency.Valid() {
		return fmt.Errorf("unknown frequency %q: %w", *u.Frequency, apperrors.ErrValidation)
	}
	return nil
}

func (u IncomeUpdate) apply(inc domain.Income) domain.Income {
	if u.Source != nil {
		inc.Source = *u.Source
	}
	if u.Amount != nil {
		inc.Amount = *u.Amount
	}
	if u.Frequency != nil {
		inc.Frequency = *u.Frequency
	}
	if u.Notes != nil {
		inc.Notes = *u.Notes
	}
	return inc
}

// ExpenseInput carries the caller-supplied fields for a new expense entry.
type ExpenseInput struct {
	Category    string
	Description string
	Amount      decimal.Decimal
	Frequency   domain.Frequency
}

func (in ExpenseInput) validate() error {
	if in.Category == "" {
		return fmt.Errorf("expense category is required: %w", apperrors.ErrValidation)
	}
	if in.Amount.IsNegative() {
		return fmt.Errorf("expense amount must not be negative: %w", apperrors.ErrValidation)
	}
	if in.Frequency != "" && !in.Frequency.Valid() {
		return fmt.Errorf("unknown frequency %q: %w", in.Frequency, apperrors.ErrValidation)
	}
	return nil
}

// ExpenseUpdate carries a partial update; nil fields are left untouched.
type ExpenseUpdate struct {
	Category    *string
	Description *string
	Amount      *decimal.Decimal
	Frequency   *domain.Frequency
}

func (u ExpenseUpdate) validate() error {
	if u.Category != nil && *u.Category == "" {
		return fmt.Errorf("expense category must not be empty: %w", apperrors.ErrValidation)
	}
	if u.Amount != nil && u.Amount.IsNegative() {
		return fmt.Errorf("expense amount must not be negative: %w", apperrors.ErrValidation)
	}
	if u.Frequency != nil && !u.Frequency.Valid() {
		return fmt.Errorf("unknown frequency %q: %w", *u.Frequency, apperrors.ErrValidation)
	}
	return nil
}

func (u ExpenseUpdate) apply(ex domain.Expense) domain.Expense {
	if u.Category != nil {
		ex.Category = *u.Category
	}
	if u.Description != nil {
		ex.Description = *u.Description
	}
	if u.Amount != nil {
		ex.Amount = *u.Amount
	}
	if u.Frequency != nil {
		ex.Frequency = *u.Frequency
	}
	return ex
}

// GoalInput carries the caller-supplied fields for a new savings goal.
type GoalInput struct {
	Name         string
	TargetAmount decimal.Decimal
	SavedAmount  decimal.Decimal
	TargetDate   *time.Time
}

func (in GoalInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("goal name is required: %w", apperrors.ErrValidation)
	}
	if !in.TargetAmount.IsPositive() {
		return fmt.Errorf("goal target must be positive: %w", apperrors.ErrValidation)
	}
	if in.SavedAmount.IsNegative() {
		return fmt.Errorf("goal saved amount must not be negative: %w", apperrors.ErrValidation)
	}
	return nil
}

// GoalUpdate carries a partial update; nil fields are left untouched.
type GoalUpdate struct {
	Name         *string
	TargetAmount *decimal.Decimal
	SavedAmount  *decimal.Decimal
	TargetDate   *time.Time
}

func (u GoalUpdate) validate() error {
	if u.Name != nil && *u.Name == "" {
		return fmt.Errorf("goal name must not be empty: %w", apperrors.ErrValidation)
	}
	if u.TargetAmount != nil && !u.TargetAmount.IsPositive() {
		return fmt.Errorf("goal target must be positive: %w", apperrors.ErrValidation)
	}
	if u.SavedAmount != nil && u.SavedAmount.IsNegative() {
		return fmt.Errorf("goal saved amount must not be negative: %w", apperrors.ErrValidation)
	}
	return nil
}

func (u GoalUpdate) apply(g domain.Goal) domain.Goal {
	if u.Name != nil {
		g.Name = *u.Name
	}
	if u.TargetAmount != nil {
		g.TargetAmount = *u.TargetAmount
	}
	if u.SavedAmount != nil {
		g.SavedAmount = *u.SavedAmount
	}
	if u.TargetDate != nil {
		g.TargetDate = u.TargetDate
	}
	return g
}

// ForecastConfigPatch merges onto the current forecast configuration; nil
// fields are left untouched.
type ForecastConfigPatch struct {
	HorizonMonths    *int
	AnnualGrowthRate *decimal.Decimal
}

func (p ForecastConfigPatch) validate() error {
	if p.HorizonMonths != nil && (*p.HorizonMonths < 1 || *p.HorizonMonths > 120) {
		return fmt.Errorf("forecast horizon must be between 1 and 120 months: %w", apperrors.ErrValidation)
	}
	return nil
}

func (p ForecastConfigPatch) apply(cfg domain.ForecastConfig) domain.ForecastConfig {
	if p.HorizonMonths != nil {
		cfg.HorizonMonths = *p.HorizonMonths
	}
	if p.AnnualGrowthRate != nil {
		cfg.AnnualGrowthRate = *p.AnnualGrowthRate
	}
	return cfg
}
