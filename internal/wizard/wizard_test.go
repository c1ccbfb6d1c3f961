package wizard

import (
	"testing"

	"github.com/spboyer/vitta/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"50000", 50000, false},
		{"₹10,00,000", 1000000, false},
		{"1,000,000", 1000000, false},
		{" 12.5 ", 12.5, false},
		{"₹ 5 000", 5000, false},
		{"", 0, true},
		{"₹", 0, true},
		{"पचास", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
		{"1e400", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewGoalAnswers(t *testing.T) {
	a := NewGoalAnswers(DefaultGoal)
	assert.Equal(t, "50000", a.MonthlyIncome)
	assert.Equal(t, "1000000", a.TargetAmount)
	assert.Equal(t, "5", a.Years)
	assert.Equal(t, "12", a.AnnualReturn)
	assert.Equal(t, models.RiskMedium, a.RiskProfile)

	empty := NewGoalAnswers(Defaults{AnnualReturnPercent: 10.5})
	assert.Empty(t, empty.MonthlyIncome)
	assert.Equal(t, "10.5", empty.AnnualReturn)
	assert.Equal(t, models.RiskMedium, empty.RiskProfile)
}

func TestGoalAnswers_Goal(t *testing.T) {
	a := &GoalAnswers{
		MonthlyIncome: "₹75,000",
		TargetAmount:  "25,00,000",
		Years:         " 10 ",
		RiskProfile:   models.RiskHigh,
		AnnualReturn:  "13.5%",
		Notes:         "  घर के लिए  ",
	}

	goal, err := a.Goal()
	require.NoError(t, err)
	assert.Equal(t, models.GoalInput{
		MonthlyIncome:       75000,
		TargetAmount:        2500000,
		Years:               10,
		RiskProfile:         models.RiskHigh,
		AnnualReturnPercent: 13.5,
		Notes:               "घर के लिए",
	}, goal)
}

func TestGoalAnswers_GoalRejects(t *testing.T) {
	valid := func() *GoalAnswers {
		return NewGoalAnswers(DefaultGoal)
	}

	tests := []struct {
		name   string
		mutate func(a *GoalAnswers)
	}{
		{"income not a number", func(a *GoalAnswers) { a.MonthlyIncome = "abc" }},
		{"zero income", func(a *GoalAnswers) { a.MonthlyIncome = "0" }},
		{"missing target", func(a *GoalAnswers) { a.TargetAmount = "" }},
		{"fractional years", func(a *GoalAnswers) { a.Years = "2.5" }},
		{"too many years", func(a *GoalAnswers) { a.Years = "31" }},
		{"return too low", func(a *GoalAnswers) { a.AnnualReturn = "4" }},
		{"unknown risk", func(a *GoalAnswers) { a.RiskProfile = "reckless" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid()
			tt.mutate(a)
			_, err := a.Goal()
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}
}

func TestValidators(t *testing.T) {
	assert.NoError(t, validatePositive("1,000"))
	assert.EqualError(t, validatePositive("0"), "must be greater than zero")
	assert.Error(t, validatePositive("x"))

	assert.NoError(t, validateYears("30"))
	assert.EqualError(t, validateYears("0"), "years must be between 1 and 30")
	assert.EqualError(t, validateYears("five"), "enter a whole number of years")

	assert.NoError(t, validateAnnualReturn("15%"))
	assert.EqualError(t, validateAnnualReturn("15.5"), "annual return must be between 5% and 15%")
}

func TestNewGoalForm(t *testing.T) {
	form := newGoalForm(NewGoalAnswers(DefaultGoal))
	require.NotNil(t, form)
}
