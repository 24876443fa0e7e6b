package output

import (
	"sort"

	"github.com/rpgo/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName     string
	FutureValue      decimal.Decimal
	SustainableYears int
	// Shortfall is set when no computed scenario lasts its full horizon; the
	// recommendation is then the one that lasts longest.
	Shortfall bool
}

// AnalyzeScenarios picks the sustainable scenario with the largest projected
// future value. When none is sustainable it falls back to the scenario that
// lasts the most years. Scenarios that failed validation are ignored.
func AnalyzeScenarios(results *domain.ScenarioComparison) Recommendation {
	if results == nil {
		return Recommendation{}
	}

	var computed []domain.ScenarioSummary
	for _, sc := range results.Scenarios {
		if sc.Computed() {
			computed = append(computed, sc)
		}
	}
	if len(computed) == 0 {
		return Recommendation{}
	}

	var sustainable []domain.ScenarioSummary
	for _, sc := range computed {
		if sc.Retirement.CanSustain {
			sustainable = append(sustainable, sc)
		}
	}

	if len(sustainable) > 0 {
		sort.SliceStable(sustainable, func(i, j int) bool {
			return sustainable[i].Projection.FutureValue.GreaterThan(sustainable[j].Projection.FutureValue)
		})
		return recommend(sustainable[0], false)
	}

	sort.SliceStable(computed, func(i, j int) bool {
		return computed[i].Retirement.SustainableYears > computed[j].Retirement.SustainableYears
	})
	return recommend(computed[0], true)
}

func recommend(sc domain.ScenarioSummary, shortfall bool) Recommendation {
	return Recommendation{
		ScenarioName:     sc.Name,
		FutureValue:      sc.Projection.FutureValue,
		SustainableYears: sc.Retirement.SustainableYears,
		Shortfall:        shortfall,
	}
}
