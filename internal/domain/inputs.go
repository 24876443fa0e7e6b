package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Frequency is how often a contribution is made.
type Frequency string

const (
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

// Valid reports whether f is one of the supported frequencies.
func (f Frequency) Valid() bool {
	return f == Monthly || f == Yearly
}

// PeriodsPerYear returns 12 for monthly and 1 for yearly contributions.
// Invalid frequencies return 0.
func (f Frequency) PeriodsPerYear() int64 {
	switch f {
	case Monthly:
		return 12
	case Yearly:
		return 1
	default:
		return 0
	}
}

// ProjectionInput holds the parameters of a future value projection.
// Rates are in percentage units (5 means 5%).
type ProjectionInput struct {
	InitialSavings        decimal.Decimal `yaml:"initial_savings" json:"initialSavings"`
	Contribution          decimal.Decimal `yaml:"contribution" json:"contribution"`
	ContributionFrequency Frequency       `yaml:"contribution_frequency" json:"contributionFrequency"`
	AnnualInterestRate    decimal.Decimal `yaml:"annual_interest_rate" json:"annualInterestRate"`
	Years                 decimal.Decimal `yaml:"years" json:"years"`
}

// RetirementInput holds the parameters of a retirement depletion simulation.
type RetirementInput struct {
	InitialSavings     decimal.Decimal `yaml:"initial_savings" json:"initialSavings"`
	AnnualExpenses     decimal.Decimal `yaml:"annual_expenses" json:"annualExpenses"`
	AnnualInterestRate decimal.Decimal `yaml:"annual_interest_rate" json:"annualInterestRate"`
	InflationRate      decimal.Decimal `yaml:"inflation_rate" json:"inflationRate"`
	RetirementAge      decimal.Decimal `yaml:"retirement_age" json:"retirementAge"`
	Years              int             `yaml:"years" json:"years"`
}

// Inputs is the flat record a user edits and the input store persists.
// One record feeds both the projection and the retirement simulation.
type Inputs struct {
	InitialSavings        decimal.Decimal `yaml:"initial_savings" json:"initialSavings"`
	Contribution          decimal.Decimal `yaml:"contribution" json:"contribution"`
	ContributionFrequency Frequency       `yaml:"contribution_frequency" json:"contributionFrequency"`
	AnnualInterestRate    decimal.Decimal `yaml:"annual_interest_rate" json:"annualInterestRate"`
	Years                 decimal.Decimal `yaml:"years" json:"years"`
	AnnualExpenses        decimal.Decimal `yaml:"annual_expenses" json:"annualExpenses"`
	InflationRate         decimal.Decimal `yaml:"inflation_rate" json:"inflationRate"`
	RetirementAge         decimal.Decimal `yaml:"retirement_age" json:"retirementAge"`
}

// DefaultInputs is the record returned for an empty or reset store:
// every number zero and monthly contributions.
func DefaultInputs() Inputs {
	return Inputs{
		InitialSavings:        decimal.Zero,
		Contribution:          decimal.Zero,
		ContributionFrequency: Monthly,
		AnnualInterestRate:    decimal.Zero,
		Years:                 decimal.Zero,
		AnnualExpenses:        decimal.Zero,
		InflationRate:         decimal.Zero,
		RetirementAge:         decimal.Zero,
	}
}

// Equal compares two records numerically.
func (in Inputs) Equal(other Inputs) bool {
	return in.InitialSavings.Equal(other.InitialSavings) &&
		in.Contribution.Equal(other.Contribution) &&
		in.ContributionFrequency == other.ContributionFrequency &&
		in.AnnualInterestRate.Equal(other.AnnualInterestRate) &&
		in.Years.Equal(other.Years) &&
		in.AnnualExpenses.Equal(other.AnnualExpenses) &&
		in.InflationRate.Equal(other.InflationRate) &&
		in.RetirementAge.Equal(other.RetirementAge)
}

// ProjectionInput extracts the future value parameters.
func (in Inputs) ProjectionInput() ProjectionInput {
	return ProjectionInput{
		InitialSavings:        in.InitialSavings,
		Contribution:          in.Contribution,
		ContributionFrequency: in.ContributionFrequency,
		AnnualInterestRate:    in.AnnualInterestRate,
		Years:                 in.Years,
	}
}

var maxYears = decimal.NewFromInt(math.MaxInt)

// CheckHorizon reports why Years cannot drive the retirement simulation,
// which counts whole periods. The message is phrased for a form.
func (in Inputs) CheckHorizon() error {
	if !in.Years.Equal(in.Years.Truncate(0)) {
		return fmt.Errorf("Years must be a whole number for the retirement simulation, got %s", in.Years)
	}
	if in.Years.GreaterThan(maxYears) {
		return fmt.Errorf("Years is too large for the retirement simulation, got %s", in.Years)
	}
	return nil
}

// RetirementInput extracts the simulation parameters. A horizon rejected by
// CheckHorizon is an invalid argument.
func (in Inputs) RetirementInput() (RetirementInput, error) {
	if err := in.CheckHorizon(); err != nil {
		return RetirementInput{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return RetirementInput{
		InitialSavings:     in.InitialSavings,
		AnnualExpenses:     in.AnnualExpenses,
		AnnualInterestRate: in.AnnualInterestRate,
		InflationRate:      in.InflationRate,
		RetirementAge:      in.RetirementAge,
		Years:              int(in.Years.IntPart()),
	}, nil
}
