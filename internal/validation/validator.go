// Package validation checks a calculator form before any calculation runs.
// Violations accumulate into a result; nothing here returns an error.
package validation

import (
	"errors"
	"fmt"

	"github.com/rpgo/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	msgFrequency  = "Contribution frequency must be either 'monthly' or 'yearly'"
	msgAgeOrder   = "Retirement age must be greater than current age"
	msgAllocation = "Sum of stocks and bonds allocation must equal 100%"
)

var (
	allocationTotal     = decimal.NewFromInt(100)
	allocationTolerance = decimal.NewFromFloat(0.01)
)

// Validate applies every rule to the form and reports all violations in order:
// per-field checks in declaration order, then frequency, age order and allocation.
func Validate(in domain.ValidationInput) domain.ValidationResult {
	errs := []string{}

	for _, f := range in.RequiredFields() {
		if err := CheckField(f.Name, f.Value); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if err := CheckFrequency(in.ContributionFrequency); err != nil {
		errs = append(errs, err.Error())
	}

	// Cross-field rules compare coerced numbers; a non-numeric side makes the
	// comparison false, matching how the per-field rule already reported it.
	retirementAge, okR := coerce(in.RetirementAge)
	currentAge, okC := coerce(in.CurrentAge)
	if okR && okC && retirementAge.LessThanOrEqual(currentAge) {
		errs = append(errs, msgAgeOrder)
	}

	stocks, okS := coerce(in.StocksPercentage)
	bonds, okB := coerce(in.BondsPercentage)
	if okS && okB && stocks.Add(bonds).Sub(allocationTotal).Abs().GreaterThan(allocationTolerance) {
		errs = append(errs, msgAllocation)
	}

	return domain.ValidationResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}

// CheckField applies the single-field rule: present, numeric and non-negative.
// Only one message is produced per field; emptiness takes precedence.
func CheckField(name string, value domain.RawValue) error {
	if value.IsEmpty() {
		return fmt.Errorf("Field %s cannot be empty", name)
	}
	d, ok := value.Number()
	if !ok || d.IsNegative() {
		return fmt.Errorf("Field %s must be a non-negative number", name)
	}
	return nil
}

// CheckFrequency requires exactly "monthly" or "yearly".
func CheckFrequency(value domain.RawValue) error {
	if !domain.Frequency(value).Valid() {
		return errors.New(msgFrequency)
	}
	return nil
}

// coerce converts a value for cross-field comparison. Blank input counts as
// zero; ok is false when the value is not a number at all.
func coerce(v domain.RawValue) (decimal.Decimal, bool) {
	if v.IsEmpty() {
		return decimal.Zero, true
	}
	return v.Number()
}
