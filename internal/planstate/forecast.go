package planstate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pranavkm07/finance_plan_app/internal/core/domain"
)

const forecastMonthLayout = "2006-01"

var (
	monthsPerYear = decimal.NewFromInt(12)
	hundred       = decimal.NewFromInt(100)
	one           = decimal.NewFromInt(1)
)

// computeForecast projects the plan balance month by month from the first
// day of the month containing `from`, over the configured horizon. Recurring
// income and expenses are normalized to monthly amounts; the configured
// annual growth rate is applied to the running balance each month.
func computeForecast(plan domain.Plan, from time.Time) []domain.ForecastPoint {
	horizon := plan.ForecastConfig.HorizonMonths
	if horizon <= 0 {
		horizon = domain.DefaultForecastConfig().HorizonMonths
	}

	income := monthlyIncome(plan)
	expenses := monthlyExpenses(plan)
	net := income.Sub(expenses)

	// Percent per year, applied monthly.
	monthlyRate := plan.ForecastConfig.AnnualGrowthRate.Div(hundred).Div(monthsPerYear)
	factor := one.Add(monthlyRate)

	month := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	balance := plan.CurrentBalance

	points := make([]domain.ForecastPoint, 0, horizon)
	for i := 0; i < horizon; i++ {
		month = month.AddDate(0, 1, 0)
		balance = balance.Mul(factor).Add(net).Round(2)
		points = append(points, domain.ForecastPoint{
			Month:    month.Format(forecastMonthLayout),
			Income:   income,
			Expenses: expenses,
			Net:      net,
			Balance:  balance,
		})
	}
	return points
}

// computeSummary derives the recurring totals and goal progress for the
// plan. The projected end balance comes from the last forecast point when a
// forecast exists, otherwise from a flat net-per-month extrapolation.
func computeSummary(plan domain.Plan) domain.PlanSummary {
	income := monthlyIncome(plan)
	expenses := monthlyExpenses(plan)
	net := income.Sub(expenses)

	savingsRate := decimal.Zero
	if income.IsPositive() {
		savingsRate = net.Div(income).Round(4)
	}

	horizon := plan.ForecastConfig.HorizonMonths
	if horizon <= 0 {
		horizon = domain.DefaultForecastConfig().HorizonMonths
	}
	projected := plan.CurrentBalance.Add(net.Mul(decimal.NewFromInt(int64(horizon))))
	if n := len(plan.Forecast); n > 0 {
		projected = plan.Forecast[n-1].Balance
	}

	progress := make([]domain.GoalProgress, 0, len(plan.Goals))
	for _, g := range plan.Goals {
		fraction := decimal.Zero
		if g.TargetAmount.IsPositive() {
			fraction = g.SavedAmount.Div(g.TargetAmount).Round(4)
			if fraction.GreaterThan(one) {
				fraction = one
			}
		}
		progress = append(progress, domain.GoalProgress{
			GoalID:   g.GoalID,
			Name:     g.Name,
			Target:   g.TargetAmount,
			Saved:    g.SavedAmount,
			Fraction: fraction,
		})
	}

	return domain.PlanSummary{
		TotalMonthlyIncome:   income,
		TotalMonthlyExpenses: expenses,
		MonthlyNet:           net,
		SavingsRate:          savingsRate,
		ProjectedEndBalance:  projected.Round(2),
		GoalProgress:         progress,
	}
}

func monthlyIncome(plan domain.Plan) decimal.Decimal {
	total := decimal.Zero
	for _, in := range plan.Income {
		total = total.Add(in.Frequency.MonthlyAmount(in.Amount))
	}
	return total.Round(2)
}

func monthlyExpenses(plan domain.Plan) decimal.Decimal {
	total := decimal.Zero
	for _, ex := range plan.Expenses {
		total = total.Add(ex.Frequency.MonthlyAmount(ex.Amount))
	}
	return total.Round(2)
}
