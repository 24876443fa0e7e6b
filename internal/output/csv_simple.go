package output

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/rpgo/nestegg/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string      { return "csv" }
func (c CSVSummarizer) Extension() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Valid", "InitialSavings", "Contribution", "Frequency", "InterestRate", "Years", "FutureValue", "AnnualExpenses", "InflationRate", "RetirementAge", "SustainableYears", "DepletionAge", "CanSustain", "Errors"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range sortedScenarios(results) {
		row := []string{sc.Name, boolToString(sc.Validation.IsValid)}
		if sc.Inputs != nil {
			in := sc.Inputs
			row = append(row,
				in.InitialSavings.StringFixed(2),
				in.Contribution.StringFixed(2),
				string(in.ContributionFrequency),
				in.AnnualInterestRate.String(),
				in.Years.String(),
			)
		} else {
			row = append(row, "", "", "", "", "")
		}
		if sc.Projection != nil {
			row = append(row, sc.Projection.FutureValue.StringFixed(2))
		} else {
			row = append(row, "")
		}
		if sc.Inputs != nil {
			row = append(row, sc.Inputs.AnnualExpenses.StringFixed(2), sc.Inputs.InflationRate.String(), sc.Inputs.RetirementAge.String())
		} else {
			row = append(row, "", "", "")
		}
		if sc.Retirement != nil {
			row = append(row,
				intToString(sc.Retirement.SustainableYears),
				sc.Retirement.DepletionAge.String(),
				boolToString(sc.Retirement.CanSustain),
			)
		} else {
			row = append(row, "", "", "")
		}
		row = append(row, strings.Join(sc.Validation.Errors, "; "))
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
