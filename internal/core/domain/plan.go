package domain

import (
	"github.com/shopspring/decimal"
)

// DefaultPlanID is the placeholder identifier carried by a plan that has
// never been persisted. Storage assigns a real identifier on first save.
const DefaultPlanID = "default-plan"

// Plan is the aggregate root holding a user's full financial picture.
// It is treated as an immutable value: state transitions replace the whole
// plan rather than mutating it in place.
type Plan struct {
	PlanID         string          `json:"planID"`
	Income         []Income        `json:"income"`
	Expenses       []Expense       `json:"expenses"`
	Goals          []Goal          `json:"goals"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	ForecastConfig ForecastConfig  `json:"forecastConfig"`
	Forecast       []ForecastPoint `json:"forecast"`
	Summary        PlanSummary     `json:"summary"`
}

// NewPlan returns a fresh, unpersisted plan with the sentinel identifier.
func NewPlan() Plan {
	return Plan{
		PlanID:         DefaultPlanID,
		Income:         []Income{},
		Expenses:       []Expense{},
		Goals:          []Goal{},
		CurrentBalance: decimal.Zero,
		ForecastConfig: DefaultForecastConfig(),
		Forecast:       []ForecastPoint{},
	}
}

// IsPristine reports whether the plan still carries the sentinel identifier
// and holds no entities at all.
func (p Plan) IsPristine() bool {
	return p.PlanID == DefaultPlanID &&
		len(p.Income) == 0 &&
		len(p.Expenses) == 0 &&
		len(p.Goals) == 0
}

// Clone returns a deep copy of the plan so a caller can hand it out without
// sharing the underlying slices.
func (p Plan) Clone() Plan {
	out := p
	out.Income = append([]Income(nil), p.Income...)
	out.Expenses = append([]Expense(nil), p.Expenses...)
	out.Goals = append([]Goal(nil), p.Goals...)
	out.Forecast = append([]ForecastPoint(nil), p.Forecast...)
	out.Summary.GoalProgress = append([]GoalProgress(nil), p.Summary.GoalProgress...)
	return out
}

// ForecastConfig controls how the balance projection is computed.
// AnnualGrowthRate is a percentage applied monthly to the running balance.
type ForecastConfig struct {
	HorizonMonths    int             `json:"horizonMonths"`
	AnnualGrowthRate decimal.Decimal `json:"annualGrowthRate"`
}

// DefaultForecastConfig returns the projection settings used by a fresh plan.
func DefaultForecastConfig() ForecastConfig {
	return ForecastConfig{
		HorizonMonths:    12,
		AnnualGrowthRate: decimal.Zero,
	}
}

// ForecastPoint is one projected month of the plan's balance trajectory.
type ForecastPoint struct {
	Month    string          `json:"month"` // YYYY-MM
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
	Balance  decimal.Decimal `json:"balance"`
}

// PlanSummary holds derived totals recomputed alongside the forecast.
type PlanSummary struct {
	TotalMonthlyIncome   decimal.Decimal `json:"totalMonthlyIncome"`
	TotalMonthlyExpenses decimal.Decimal `json:"totalMonthlyExpenses"`
	MonthlyNet           decimal.Decimal `json:"monthlyNet"`
	SavingsRate          decimal.Decimal `json:"savingsRate"` // fraction of income kept, 0 when income is zero
	ProjectedEndBalance  decimal.Decimal `json:"projectedEndBalance"`
	GoalProgress         []GoalProgress  `json:"goalProgress"`
}

// GoalProgress is the summary view of a single goal.
type GoalProgress struct {
	GoalID   string          `json:"goalID"`
	Name     string          `json:"name"`
	Target   decimal.Decimal `json:"target"`
	Saved    decimal.Decimal `json:"saved"`
	Fraction decimal.Decimal `json:"fraction"` // saved/target, capped at 1
}
