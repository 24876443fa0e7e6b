package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/rpgo/nestegg/internal/domain"
	"github.com/rpgo/nestegg/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// decimalValue lets a flag parse straight into a decimal.
type decimalValue struct{ d *decimal.Decimal }

func (v decimalValue) String() string {
	if v.d == nil {
		return "0"
	}
	return v.d.String()
}

func (v decimalValue) Set(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	*v.d = d
	return nil
}

func (v decimalValue) Type() string { return "decimal" }

// Input flag names shared by project, retire and inputs save.
const (
	flagInitialSavings = "initial-savings"
	flagContribution   = "contribution"
	flagFrequency      = "frequency"
	flagRate           = "rate"
	flagYears          = "years"
	flagExpenses       = "expenses"
	flagInflation      = "inflation"
	flagRetirementAge  = "retirement-age"
	flagBirthDate      = "birth-date"
)

// inputFlags binds command line flags to an input record. Only flags the user
// actually set override the base record in apply.
type inputFlags struct {
	values    domain.Inputs
	frequency string
	birthDate string
	names     []string
}

func newInputFlags(cmd *cobra.Command, names ...string) *inputFlags {
	f := &inputFlags{values: domain.DefaultInputs(), names: names}
	fs := cmd.Flags()
	for _, name := range names {
		switch name {
		case flagInitialSavings:
			fs.Var(decimalValue{&f.values.InitialSavings}, name, "Savings at the start ($)")
		case flagContribution:
			fs.Var(decimalValue{&f.values.Contribution}, name, "Contribution per period ($)")
		case flagFrequency:
			fs.StringVar(&f.frequency, name, string(domain.Monthly), "Contribution frequency: monthly or yearly")
		case flagRate:
			fs.Var(decimalValue{&f.values.AnnualInterestRate}, name, "Annual interest rate (%)")
		case flagYears:
			fs.Var(decimalValue{&f.values.Years}, name, "Years of growth, or of retirement to simulate")
		case flagExpenses:
			fs.Var(decimalValue{&f.values.AnnualExpenses}, name, "Annual expenses in retirement ($)")
		case flagInflation:
			fs.Var(decimalValue{&f.values.InflationRate}, name, "Annual inflation rate (%)")
		case flagRetirementAge:
			fs.Var(decimalValue{&f.values.RetirementAge}, name, "Age at retirement")
		case flagBirthDate:
			fs.StringVar(&f.birthDate, name, "", "Birth date (YYYY-MM-DD); derives years from the retirement age")
		}
	}
	return f
}

// apply copies every changed flag onto base.
func (f *inputFlags) apply(cmd *cobra.Command, base domain.Inputs) (domain.Inputs, error) {
	fs := cmd.Flags()
	out := base
	for _, name := range f.names {
		if !fs.Changed(name) {
			continue
		}
		switch name {
		case flagInitialSavings:
			out.InitialSavings = f.values.InitialSavings
		case flagContribution:
			out.Contribution = f.values.Contribution
		case flagFrequency:
			freq := domain.Frequency(strings.ToLower(strings.TrimSpace(f.frequency)))
			if !freq.Valid() {
				return domain.Inputs{}, fmt.Errorf("%w: Contribution frequency must be either 'monthly' or 'yearly'", domain.ErrInvalidArgument)
			}
			out.ContributionFrequency = freq
		case flagRate:
			out.AnnualInterestRate = f.values.AnnualInterestRate
		case flagYears:
			out.Years = f.values.Years
		case flagExpenses:
			out.AnnualExpenses = f.values.AnnualExpenses
		case flagInflation:
			out.InflationRate = f.values.InflationRate
		case flagRetirementAge:
			out.RetirementAge = f.values.RetirementAge
		}
	}

	if fs.Changed(flagBirthDate) && !fs.Changed(flagYears) {
		birth, err := dateutil.ParseDate(f.birthDate)
		if err != nil {
			return domain.Inputs{}, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
		}
		out.Years = decimal.NewFromInt(int64(dateutil.YearsUntilAge(birth, nowFunc(), int(out.RetirementAge.IntPart()))))
	}
	return out, nil
}

// nowFunc is the clock used for birth date arithmetic.
var nowFunc = func() time.Time { return time.Now().UTC() }
