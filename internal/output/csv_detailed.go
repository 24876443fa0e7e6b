package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/nestegg/internal/domain"
)

// CSVDetailedExporter writes the retirement drawdown schedule, one row per
// scenario and simulated year. Scenarios that were not computed are skipped.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string      { return "detailed-csv" }
func (c CSVDetailedExporter) Extension() string { return "csv" }

func (c CSVDetailedExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Year", "Age", "Expenses", "EndBalance", "Depleted"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range sortedScenarios(results) {
		if sc.Retirement == nil {
			continue
		}
		for _, yr := range sc.Retirement.Schedule {
			row := []string{
				sc.Name,
				intToString(yr.Period),
				yr.Age.String(),
				yr.Expenses.StringFixed(2),
				yr.EndBalance.StringFixed(2),
				boolToString(!yr.EndBalance.IsPositive()),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
