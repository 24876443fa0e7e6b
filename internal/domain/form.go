package domain

import (
	"bytes"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Field names as reported in validation messages.
const (
	FieldCurrentAge            = "currentAge"
	FieldRetirementAge         = "retirementAge"
	FieldInitialSavings        = "initialSavings"
	FieldContribution          = "contribution"
	FieldAnnualInterestRate    = "annualInterestRate"
	FieldYears                 = "years"
	FieldAnnualExpenses        = "annualExpenses"
	FieldInflationRate         = "inflationRate"
	FieldStocksPercentage      = "stocksPercentage"
	FieldBondsPercentage       = "bondsPercentage"
	FieldContributionFrequency = "contributionFrequency"
)

// RawValue is a form value exactly as submitted. JSON numbers, JSON strings
// and YAML scalars all decode into it; null and missing decode to "".
type RawValue string

func (v *RawValue) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*v = ""
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = RawValue(s)
	default:
		*v = RawValue(trimmed)
	}
	return nil
}

func (v *RawValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	if node.ShortTag() == "!!null" {
		*v = ""
		return nil
	}
	*v = RawValue(node.Value)
	return nil
}

// IsEmpty reports whether nothing (or only whitespace) was entered.
// A blank field is a missing value, not zero: "  " fails the emptiness
// check instead of coercing to 0.
func (v RawValue) IsEmpty() bool {
	return strings.TrimSpace(string(v)) == ""
}

// Number parses the value as a decimal. ok is false for empty or non-numeric input.
func (v RawValue) Number() (decimal.Decimal, bool) {
	if v.IsEmpty() {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.TrimSpace(string(v)))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Raw formats a decimal as a form value.
func Raw(d decimal.Decimal) RawValue {
	return RawValue(d.String())
}

// NamedValue pairs a field name with its submitted value.
type NamedValue struct {
	Name  string
	Value RawValue
}

// ValidationInput is the full set of form fields checked before any
// calculation runs. Stocks and bonds percentages are checked but not used
// by either calculator.
type ValidationInput struct {
	CurrentAge            RawValue `yaml:"current_age" json:"currentAge"`
	RetirementAge         RawValue `yaml:"retirement_age" json:"retirementAge"`
	InitialSavings        RawValue `yaml:"initial_savings" json:"initialSavings"`
	Contribution          RawValue `yaml:"contribution" json:"contribution"`
	AnnualInterestRate    RawValue `yaml:"annual_interest_rate" json:"annualInterestRate"`
	Years                 RawValue `yaml:"years" json:"years"`
	AnnualExpenses        RawValue `yaml:"annual_expenses" json:"annualExpenses"`
	InflationRate         RawValue `yaml:"inflation_rate" json:"inflationRate"`
	StocksPercentage      RawValue `yaml:"stocks_percentage" json:"stocksPercentage"`
	BondsPercentage       RawValue `yaml:"bonds_percentage" json:"bondsPercentage"`
	ContributionFrequency RawValue `yaml:"contribution_frequency" json:"contributionFrequency"`
}

// RequiredFields lists the numeric fields in their fixed reporting order.
func (v ValidationInput) RequiredFields() []NamedValue {
	return []NamedValue{
		{FieldCurrentAge, v.CurrentAge},
		{FieldRetirementAge, v.RetirementAge},
		{FieldInitialSavings, v.InitialSavings},
		{FieldContribution, v.Contribution},
		{FieldAnnualInterestRate, v.AnnualInterestRate},
		{FieldYears, v.Years},
		{FieldAnnualExpenses, v.AnnualExpenses},
		{FieldInflationRate, v.InflationRate},
		{FieldStocksPercentage, v.StocksPercentage},
		{FieldBondsPercentage, v.BondsPercentage},
	}
}

// Inputs converts a form into the typed record. Empty numeric fields become
// zero; anything non-numeric is an invalid argument.
func (v ValidationInput) Inputs() (Inputs, error) {
	parse := func(name string, raw RawValue) (decimal.Decimal, error) {
		if raw.IsEmpty() {
			return decimal.Zero, nil
		}
		d, ok := raw.Number()
		if !ok {
			return decimal.Zero, fmt.Errorf("%w: %s is not a number: %q", ErrInvalidArgument, name, string(raw))
		}
		return d, nil
	}

	var (
		in  Inputs
		err error
	)
	fields := []struct {
		name string
		raw  RawValue
		dst  *decimal.Decimal
	}{
		{FieldInitialSavings, v.InitialSavings, &in.InitialSavings},
		{FieldContribution, v.Contribution, &in.Contribution},
		{FieldAnnualInterestRate, v.AnnualInterestRate, &in.AnnualInterestRate},
		{FieldYears, v.Years, &in.Years},
		{FieldAnnualExpenses, v.AnnualExpenses, &in.AnnualExpenses},
		{FieldInflationRate, v.InflationRate, &in.InflationRate},
		{FieldRetirementAge, v.RetirementAge, &in.RetirementAge},
	}
	for _, f := range fields {
		if *f.dst, err = parse(f.name, f.raw); err != nil {
			return Inputs{}, err
		}
	}

	in.ContributionFrequency = Frequency(v.ContributionFrequency)
	if v.ContributionFrequency == "" {
		in.ContributionFrequency = Monthly
	}
	return in, nil
}

// FormFromInputs renders a stored record back into form values, adding the
// fields that only the validator uses.
func FormFromInputs(in Inputs, currentAge, stocksPercentage, bondsPercentage decimal.Decimal) ValidationInput {
	return ValidationInput{
		CurrentAge:            Raw(currentAge),
		RetirementAge:         Raw(in.RetirementAge),
		InitialSavings:        Raw(in.InitialSavings),
		Contribution:          Raw(in.Contribution),
		AnnualInterestRate:    Raw(in.AnnualInterestRate),
		Years:                 Raw(in.Years),
		AnnualExpenses:        Raw(in.AnnualExpenses),
		InflationRate:         Raw(in.InflationRate),
		StocksPercentage:      Raw(stocksPercentage),
		BondsPercentage:       Raw(bondsPercentage),
		ContributionFrequency: RawValue(in.ContributionFrequency),
	}
}
