package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency describes how often a recurring amount applies.
type Frequency string

const (
	FrequencyMonthly Frequency = "MONTHLY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyYearly  Frequency = "YEARLY"
	FrequencyOnce    Frequency = "ONCE"
)

// weeksPerYear and monthsPerYear normalize non-monthly frequencies onto a
// monthly grid for summary and forecast math.
var (
	weeksPerYear  = decimal.NewFromInt(52)
	monthsPerYear = decimal.NewFromInt(12)
)

// MonthlyAmount converts an amount at this frequency to its monthly
// equivalent. One-off amounts contribute nothing to the recurring total.
func (f Frequency) MonthlyAmount(amount decimal.Decimal) decimal.Decimal {
	switch f {
	case FrequencyWeekly:
		return amount.Mul(weeksPerYear).Div(monthsPerYear)
	case FrequencyYearly:
		return amount.Div(monthsPerYear)
	case FrequencyOnce:
		return decimal.Zero
	default:
		return amount
	}
}

// Valid reports whether f is one of the known frequency values.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyMonthly, FrequencyWeekly, FrequencyYearly, FrequencyOnce:
		return true
	}
	return false
}

// EntityTimestamps holds the audit stamps shared by every plan entity.
// CreatedAt equals UpdatedAt at creation; UpdatedAt is restamped on each
// update. Serialized as RFC 3339.
type EntityTimestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Income is a recurring or one-off money inflow.
type Income struct {
	IncomeID  string          `json:"incomeID"`
	Source    string          `json:"source"`
	Amount    decimal.Decimal `json:"amount"`
	Frequency Frequency       `json:"frequency"`
	Notes     string          `json:"notes,omitempty"`
	EntityTimestamps
}

// Expense is a recurring or one-off money outflow.
type Expense struct {
	ExpenseID   string          `json:"expenseID"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Frequency   Frequency       `json:"frequency"`
	EntityTimestamps
}

// Goal is a savings target the user is working toward.
type Goal struct {
	GoalID       string          `json:"goalID"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	SavedAmount  decimal.Decimal `json:"savedAmount"`
	TargetDate   *time.Time      `json:"targetDate,omitempty"`
	EntityTimestamps
}
