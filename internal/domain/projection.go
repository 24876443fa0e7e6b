package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectionResult is the outcome of a future value projection
type ProjectionResult struct {
	FutureValue decimal.Decimal `json:"futureValue"` // rounded to cents
}

// RetirementYear is a single simulated period of a retirement drawdown
type RetirementYear struct {
	Period     int             `json:"period"` // 1-based
	Age        decimal.Decimal `json:"age"`    // retirement age + period
	Expenses   decimal.Decimal `json:"expenses"`
	EndBalance decimal.Decimal `json:"endBalance"`
}

// RetirementResult is the outcome of a retirement depletion simulation
type RetirementResult struct {
	SustainableYears int              `json:"sustainableYears"`
	DepletionAge     decimal.Decimal  `json:"depletionAge"`
	CanSustain       bool             `json:"canSustain"`
	Schedule         []RetirementYear `json:"schedule,omitempty"`
}

// ValidationResult collects every rule violation found in a form.
// IsValid is true exactly when Errors is empty.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// Scenario is a named form loaded from a scenario file
type Scenario struct {
	Name string          `yaml:"name" json:"name"`
	Form ValidationInput `yaml:",inline" json:"form"`
}

// Configuration is the top level of a scenario file
type Configuration struct {
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// ScenarioSummary holds everything computed for one scenario. Projection and
// Retirement are nil when the form failed validation.
type ScenarioSummary struct {
	Name       string            `json:"name"`
	Inputs     *Inputs           `json:"inputs,omitempty"`
	Validation ValidationResult  `json:"validation"`
	Projection *ProjectionResult `json:"projection,omitempty"`
	Retirement *RetirementResult `json:"retirement,omitempty"`
}

// Computed reports whether both calculators ran for this scenario.
func (s ScenarioSummary) Computed() bool {
	return s.Projection != nil && s.Retirement != nil
}

// ScenarioComparison collects the summaries of every scenario in a file
type ScenarioComparison struct {
	GeneratedAt time.Time         `json:"generatedAt"`
	Scenarios   []ScenarioSummary `json:"scenarios"`
}
