package calculation

import (
	"github.com/rpgo/nestegg/internal/domain"
	moneyutil "github.com/rpgo/nestegg/pkg/decimal"
	"github.com/shopspring/decimal"
)

// balanceScale bounds the digits carried between periods; exact decimal
// multiplication would otherwise grow the scale every year.
const balanceScale = 12

// scheduleHint caps the up-front schedule allocation. The horizon is caller
// supplied and the loop usually stops long before it.
const scheduleHint = 128

// SimulateRetirement runs a year-by-year drawdown. Each period withdraws the
// inflation-adjusted expenses first, then the remaining balance earns a full
// period of return. The simulation stops at the first period that leaves the
// balance at or below zero.
//
// With zero years nothing is simulated: SustainableYears stays 0 and CanSustain
// reflects the untouched initial balance.
func SimulateRetirement(in domain.RetirementInput) (domain.RetirementResult, error) {
	if err := requireNonNegative(
		namedAmount{domain.FieldInitialSavings, in.InitialSavings},
		namedAmount{domain.FieldAnnualExpenses, in.AnnualExpenses},
		namedAmount{domain.FieldAnnualInterestRate, in.AnnualInterestRate},
		namedAmount{domain.FieldInflationRate, in.InflationRate},
		namedAmount{domain.FieldRetirementAge, in.RetirementAge},
		namedAmount{domain.FieldYears, decimal.NewFromInt(int64(in.Years))},
	); err != nil {
		return domain.RetirementResult{}, err
	}

	growth := one.Add(moneyutil.FromPercent(in.AnnualInterestRate))
	inflation := one.Add(moneyutil.FromPercent(in.InflationRate))

	assets := in.InitialSavings
	inflationFactor := one
	sustainableYears := 0
	schedule := make([]domain.RetirementYear, 0, min(in.Years, scheduleHint))

	for t := 0; t < in.Years; t++ {
		if t > 0 {
			inflationFactor = inflationFactor.Mul(inflation).Round(balanceScale)
		}
		expenses := in.AnnualExpenses.Mul(inflationFactor)
		assets = assets.Sub(expenses).Mul(growth).Round(balanceScale)

		period := t + 1
		schedule = append(schedule, domain.RetirementYear{
			Period:     period,
			Age:        in.RetirementAge.Add(decimal.NewFromInt(int64(period))),
			Expenses:   expenses.Round(2),
			EndBalance: assets.Round(2),
		})

		if !assets.IsPositive() {
			sustainableYears = period
			break
		}
		if t == in.Years-1 {
			sustainableYears = in.Years
		}
	}

	return domain.RetirementResult{
		SustainableYears: sustainableYears,
		DepletionAge:     in.RetirementAge.Add(decimal.NewFromInt(int64(sustainableYears))),
		CanSustain:       assets.IsPositive(),
		Schedule:         schedule,
	}, nil
}
