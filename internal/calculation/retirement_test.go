package calculation

import (
	"errors"
	"testing"

	"github.com/rpgo/nestegg/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func retirement(initial, expenses, rate, inflation, age string, years int) domain.RetirementInput {
	return domain.RetirementInput{
		InitialSavings:     d(initial),
		AnnualExpenses:     d(expenses),
		AnnualInterestRate: d(rate),
		InflationRate:      d(inflation),
		RetirementAge:      d(age),
		Years:              years,
	}
}

func TestSimulateRetirement_Depletes(t *testing.T) {
	res, err := SimulateRetirement(retirement("100000", "30000", "5", "2", "65", 10))
	require.NoError(t, err)

	assert.Equal(t, 4, res.SustainableYears)
	assert.True(t, res.DepletionAge.Equal(d("69")))
	assert.False(t, res.CanSustain)

	require.Len(t, res.Schedule, 4, "simulation stops at depletion")
	assert.True(t, res.Schedule[0].Expenses.Equal(d("30000")))
	assert.True(t, res.Schedule[0].EndBalance.Equal(d("73500")))
	assert.True(t, res.Schedule[1].EndBalance.Equal(d("45045")))
	assert.True(t, res.Schedule[2].EndBalance.Equal(d("14524.65")))
	assert.True(t, res.Schedule[3].Expenses.Equal(d("31836.24")))
	assert.True(t, res.Schedule[3].EndBalance.Equal(d("-18177.17")), "got %s", res.Schedule[3].EndBalance)
	assert.True(t, res.Schedule[3].Age.Equal(d("69")))
	assert.Equal(t, 4, res.Schedule[3].Period)
}

func TestSimulateRetirement_Sustains(t *testing.T) {
	res, err := SimulateRetirement(retirement("1000000", "30000", "5", "2", "60", 30))
	require.NoError(t, err)

	assert.Equal(t, 30, res.SustainableYears)
	assert.True(t, res.DepletionAge.Equal(d("90")))
	assert.True(t, res.CanSustain)
	assert.Len(t, res.Schedule, 30)
	assert.True(t, res.Schedule[29].EndBalance.IsPositive())
}

func TestSimulateRetirement_ExactDepletionCountsAsDepleted(t *testing.T) {
	res, err := SimulateRetirement(retirement("1000", "1000", "0", "0", "70", 5))
	require.NoError(t, err)

	assert.Equal(t, 1, res.SustainableYears)
	assert.False(t, res.CanSustain)
	assert.True(t, res.DepletionAge.Equal(d("71")))
}

func TestSimulateRetirement_ZeroYears(t *testing.T) {
	res, err := SimulateRetirement(retirement("5000", "100000", "5", "2", "65", 0))
	require.NoError(t, err)
	assert.Equal(t, 0, res.SustainableYears)
	assert.True(t, res.CanSustain, "reflects the untouched initial balance")
	assert.True(t, res.DepletionAge.Equal(d("65")))
	assert.Empty(t, res.Schedule)

	res, err = SimulateRetirement(retirement("0", "0", "0", "0", "65", 0))
	require.NoError(t, err)
	assert.False(t, res.CanSustain)
}

func TestSimulateRetirement_HugeHorizonDepletingEarly(t *testing.T) {
	res, err := SimulateRetirement(retirement("1000", "1000", "0", "0", "65", 4_000_000_000_000))
	require.NoError(t, err)
	assert.Equal(t, 1, res.SustainableYears)
	assert.False(t, res.CanSustain)
	assert.True(t, res.DepletionAge.Equal(d("66")))
	require.Len(t, res.Schedule, 1)
	assert.LessOrEqual(t, cap(res.Schedule), scheduleHint)
}

func TestSimulateRetirement_Bounds(t *testing.T) {
	inputs := []domain.RetirementInput{
		retirement("0", "0", "0", "0", "0", 3),
		retirement("250000", "40000", "3", "3", "62", 40),
		retirement("250000", "0", "0", "0", "62", 40),
		retirement("1", "1000000", "100", "50", "18", 1),
		retirement("800000", "45000", "6", "3.5", "67.5", 25),
	}
	for _, in := range inputs {
		res, err := SimulateRetirement(in)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.SustainableYears, 0)
		assert.LessOrEqual(t, res.SustainableYears, in.Years)
		assert.True(t, res.DepletionAge.Equal(in.RetirementAge.Add(decimal.NewFromInt(int64(res.SustainableYears)))))
		assert.Len(t, res.Schedule, res.SustainableYears)
	}
}

func TestSimulateRetirement_InvalidArguments(t *testing.T) {
	tests := []struct {
		name  string
		input domain.RetirementInput
		field string
	}{
		{"negative savings", retirement("-1", "0", "0", "0", "65", 1), "initialSavings"},
		{"negative expenses", retirement("1", "-1", "0", "0", "65", 1), "annualExpenses"},
		{"negative rate", retirement("1", "1", "-1", "0", "65", 1), "annualInterestRate"},
		{"negative inflation", retirement("1", "1", "0", "-1", "65", 1), "inflationRate"},
		{"negative age", retirement("1", "1", "0", "0", "-65", 1), "retirementAge"},
		{"negative years", retirement("1", "1", "0", "0", "65", -1), "years"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SimulateRetirement(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
