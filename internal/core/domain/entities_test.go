package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pranavkm07/finance_plan_app/internal/core/domain"
)

func TestFrequency_MonthlyAmount(t *testing.T) {
	amount := decimal.NewFromInt(120)

	tests := []struct {
		name      string
		frequency domain.Frequency
		want      string
	}{
		{"monthly passes through", domain.FrequencyMonthly, "120"},
		{"weekly scales by 52/12", domain.FrequencyWeekly, "520"},
		{"yearly divides by 12", domain.FrequencyYearly, "10"},
		{"one-off contributes nothing", domain.FrequencyOnce, "0"},
		{"unknown falls back to monthly", domain.Frequency("DAILY"), "120"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.frequency.MonthlyAmount(amount)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestFrequency_Valid(t *testing.T) {
	assert.True(t, domain.FrequencyMonthly.Valid())
	assert.True(t, domain.FrequencyOnce.Valid())
	assert.False(t, domain.Frequency("DAILY").Valid())
	assert.False(t, domain.Frequency("").Valid())
}

func TestPlan_IsPristine(t *testing.T) {
	plan := domain.NewPlan()
	assert.True(t, plan.IsPristine())

	withEntity := domain.NewPlan()
	withEntity.Goals = append(withEntity.Goals, domain.Goal{GoalID: "goal-1"})
	assert.False(t, withEntity.IsPristine())

	persisted := domain.NewPlan()
	persisted.PlanID = "plan-abc"
	assert.False(t, persisted.IsPristine())
}

func TestPlan_Clone_DoesNotShareSlices(t *testing.T) {
	plan := domain.NewPlan()
	plan.Income = append(plan.Income, domain.Income{IncomeID: "income-1", Source: "salary"})

	clone := plan.Clone()
	clone.Income[0].Source = "tampered"

	assert.Equal(t, "salary", plan.Income[0].Source)
}
