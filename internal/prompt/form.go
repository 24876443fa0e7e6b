// Package prompt collects a calculator form interactively with huh.
package prompt

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/rpgo/nestegg/internal/domain"
	"github.com/rpgo/nestegg/internal/validation"
)

// ErrAborted is returned when the user quits the form.
var ErrAborted = errors.New("prompt aborted")

// Options controls how the form is rendered.
type Options struct {
	// Accessible renders plain line prompts instead of the full-screen form.
	Accessible bool
	Input      io.Reader
	Output     io.Writer
}

// Answers holds the form values as typed. Every field is bound directly to
// a huh input, so the form edits this struct in place.
type Answers struct {
	CurrentAge            string
	RetirementAge         string
	InitialSavings        string
	Contribution          string
	ContributionFrequency string
	AnnualInterestRate    string
	Years                 string
	AnnualExpenses        string
	InflationRate         string
	StocksPercentage      string
	BondsPercentage       string
}

// AnswersFrom pre-fills answers from a form.
func AnswersFrom(in domain.ValidationInput) *Answers {
	freq := string(in.ContributionFrequency)
	if freq == "" {
		freq = string(domain.Monthly)
	}
	return &Answers{
		CurrentAge:            string(in.CurrentAge),
		RetirementAge:         string(in.RetirementAge),
		InitialSavings:        string(in.InitialSavings),
		Contribution:          string(in.Contribution),
		ContributionFrequency: freq,
		AnnualInterestRate:    string(in.AnnualInterestRate),
		Years:                 string(in.Years),
		AnnualExpenses:        string(in.AnnualExpenses),
		InflationRate:         string(in.InflationRate),
		StocksPercentage:      string(in.StocksPercentage),
		BondsPercentage:       string(in.BondsPercentage),
	}
}

// Form converts the answers back into raw form values.
func (a *Answers) Form() domain.ValidationInput {
	return domain.ValidationInput{
		CurrentAge:            domain.RawValue(a.CurrentAge),
		RetirementAge:         domain.RawValue(a.RetirementAge),
		InitialSavings:        domain.RawValue(a.InitialSavings),
		Contribution:          domain.RawValue(a.Contribution),
		AnnualInterestRate:    domain.RawValue(a.AnnualInterestRate),
		Years:                 domain.RawValue(a.Years),
		AnnualExpenses:        domain.RawValue(a.AnnualExpenses),
		InflationRate:         domain.RawValue(a.InflationRate),
		StocksPercentage:      domain.RawValue(a.StocksPercentage),
		BondsPercentage:       domain.RawValue(a.BondsPercentage),
		ContributionFrequency: domain.RawValue(a.ContributionFrequency),
	}
}

// FieldValidator applies the single-field rule to text typed into a huh input.
func FieldValidator(name string) func(string) error {
	return func(s string) error {
		return validation.CheckField(name, domain.RawValue(s))
	}
}

func numberInput(title, name string, value *string) *huh.Input {
	return huh.NewInput().
		Key(name).
		Title(title).
		Value(value).
		Validate(FieldValidator(name))
}

// NewForm builds the three-page form bound to a.
func NewForm(a *Answers, opts Options) *huh.Form {
	frequency := huh.NewSelect[string]().
		Key(domain.FieldContributionFrequency).
		Title("Contribution frequency").
		Options(
			huh.NewOption("Monthly", string(domain.Monthly)),
			huh.NewOption("Yearly", string(domain.Yearly)),
		).
		Value(&a.ContributionFrequency).
		Validate(func(s string) error {
			return validation.CheckFrequency(domain.RawValue(s))
		})

	form := huh.NewForm(
		huh.NewGroup(
			numberInput("Current age", domain.FieldCurrentAge, &a.CurrentAge),
			numberInput("Retirement age", domain.FieldRetirementAge, &a.RetirementAge),
			numberInput("Initial savings ($)", domain.FieldInitialSavings, &a.InitialSavings),
		).Title("About you"),
		huh.NewGroup(
			numberInput("Contribution ($)", domain.FieldContribution, &a.Contribution),
			frequency,
			numberInput("Annual interest rate (%)", domain.FieldAnnualInterestRate, &a.AnnualInterestRate),
			numberInput("Years until retirement", domain.FieldYears, &a.Years),
		).Title("Saving"),
		huh.NewGroup(
			numberInput("Annual expenses in retirement ($)", domain.FieldAnnualExpenses, &a.AnnualExpenses),
			numberInput("Inflation rate (%)", domain.FieldInflationRate, &a.InflationRate),
			numberInput("Stocks allocation (%)", domain.FieldStocksPercentage, &a.StocksPercentage),
			numberInput("Bonds allocation (%)", domain.FieldBondsPercentage, &a.BondsPercentage),
		).Title("Retirement"),
	).WithAccessible(opts.Accessible)

	if opts.Input != nil {
		form = form.WithInput(opts.Input)
	}
	if opts.Output != nil {
		form = form.WithOutput(opts.Output)
	}
	return form
}

// Run shows the form pre-filled with initial and returns what the user
// entered together with the full validation result. Per-field rules are
// enforced while typing; the cross-field rules are reported afterwards.
func Run(ctx context.Context, initial domain.ValidationInput, opts Options) (domain.ValidationInput, domain.ValidationResult, error) {
	a := AnswersFrom(initial)
	if err := NewForm(a, opts).RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return domain.ValidationInput{}, domain.ValidationResult{}, ErrAborted
		}
		return domain.ValidationInput{}, domain.ValidationResult{}, err
	}

	form := a.Form()
	return form, validation.Validate(form), nil
}
