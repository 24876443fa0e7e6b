package calculation

import (
	"fmt"

	"github.com/rpgo/nestegg/internal/domain"
	moneyutil "github.com/rpgo/nestegg/pkg/decimal"
	"github.com/shopspring/decimal"
)

var (
	one          = decimal.NewFromInt(1)
	monthsInYear = decimal.NewFromInt(12)
)

// ComputeFutureValue projects an initial balance plus periodic contributions
// forward under compound interest. Monthly contributions use the effective
// monthly rate (1+r)^(1/12)-1, not r/12. The result is rounded to cents.
func ComputeFutureValue(in domain.ProjectionInput) (domain.ProjectionResult, error) {
	if err := requireNonNegative(
		namedAmount{domain.FieldInitialSavings, in.InitialSavings},
		namedAmount{domain.FieldContribution, in.Contribution},
		namedAmount{domain.FieldAnnualInterestRate, in.AnnualInterestRate},
		namedAmount{domain.FieldYears, in.Years},
	); err != nil {
		return domain.ProjectionResult{}, err
	}
	if !in.ContributionFrequency.Valid() {
		return domain.ProjectionResult{}, fmt.Errorf("%w: contribution frequency must be monthly or yearly, got %q",
			domain.ErrInvalidArgument, in.ContributionFrequency)
	}

	periodsPerYear := decimal.NewFromInt(in.ContributionFrequency.PeriodsPerYear())
	rate := moneyutil.FromPercent(in.AnnualInterestRate)

	// Zero rate: simple sum, the annuity term would divide by zero.
	if rate.IsZero() {
		fv := in.InitialSavings.Add(in.Contribution.Mul(periodsPerYear).Mul(in.Years))
		return domain.ProjectionResult{FutureValue: fv.Round(2)}, nil
	}

	periodRate := rate
	exponent := in.Years
	if in.ContributionFrequency == domain.Monthly {
		monthlyGrowth, ok := moneyutil.PowFloat(one.Add(rate), one.Div(monthsInYear))
		if !ok {
			return domain.ProjectionResult{}, errOverflow("monthly rate", in)
		}
		periodRate = monthlyGrowth.Sub(one)
		exponent = in.Years.Mul(monthsInYear)
	}

	compoundFactor, ok := moneyutil.PowFloat(one.Add(periodRate), exponent)
	if !ok {
		return domain.ProjectionResult{}, errOverflow("compound factor", in)
	}

	contributionTerm := in.Contribution.Mul(compoundFactor.Sub(one)).Div(periodRate)
	fv := in.InitialSavings.Mul(compoundFactor).Add(contributionTerm)

	return domain.ProjectionResult{FutureValue: fv.Round(2)}, nil
}

type namedAmount struct {
	name  string
	value decimal.Decimal
}

// requireNonNegative fails on the first negative amount, in argument order.
func requireNonNegative(amounts ...namedAmount) error {
	for _, a := range amounts {
		if a.value.IsNegative() {
			return fmt.Errorf("%w: %s must be non-negative, got %s", domain.ErrInvalidArgument, a.name, a.value)
		}
	}
	return nil
}

func errOverflow(what string, in domain.ProjectionInput) error {
	return fmt.Errorf("%w: %s overflows for rate %s%% over %s years",
		domain.ErrInvalidArgument, what, in.AnnualInterestRate, in.Years)
}
