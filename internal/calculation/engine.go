package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/nestegg/internal/domain"
	"github.com/rpgo/nestegg/internal/validation"
)

// CalculationEngine runs named scenarios through validation and both calculators
type CalculationEngine struct {
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Project runs the future value projection and logs the outcome.
func (ce *CalculationEngine) Project(in domain.ProjectionInput) (domain.ProjectionResult, error) {
	res, err := ComputeFutureValue(in)
	if err != nil {
		ce.Logger.Debugf("future value rejected: %v", err)
		return res, err
	}
	ce.Logger.Debugf("future value: %s (initial=%s contribution=%s/%s rate=%s%% years=%s)",
		res.FutureValue.StringFixed(2), in.InitialSavings, in.Contribution, in.ContributionFrequency,
		in.AnnualInterestRate, in.Years)
	return res, nil
}

// Retire runs the drawdown simulation and logs the zero-horizon case, where
// CanSustain only reflects the initial balance.
func (ce *CalculationEngine) Retire(in domain.RetirementInput) (domain.RetirementResult, error) {
	if in.Years == 0 {
		ce.Logger.Warnf("retirement horizon is 0 years; nothing simulated, canSustain reflects the initial balance %s",
			in.InitialSavings.StringFixed(2))
	}
	res, err := SimulateRetirement(in)
	if err != nil {
		ce.Logger.Debugf("retirement simulation rejected: %v", err)
		return res, err
	}
	ce.Logger.Debugf("retirement: sustainable=%d depletionAge=%s canSustain=%t",
		res.SustainableYears, res.DepletionAge, res.CanSustain)
	return res, nil
}

// RunScenario validates a scenario's form and, when it is valid, runs both
// calculators on it. An invalid form is not an error: the summary carries
// only the validation result.
func (ce *CalculationEngine) RunScenario(ctx context.Context, scenario domain.Scenario) (*domain.ScenarioSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary := &domain.ScenarioSummary{
		Name:       scenario.Name,
		Validation: validation.Validate(scenario.Form),
	}
	if !summary.Validation.IsValid {
		ce.Logger.Infof("scenario %q failed validation with %d error(s)", scenario.Name, len(summary.Validation.Errors))
		return summary, nil
	}

	inputs, err := scenario.Form.Inputs()
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}
	// The form accepts any non-negative years; the simulation needs whole periods.
	if err := inputs.CheckHorizon(); err != nil {
		summary.Validation.IsValid = false
		summary.Validation.Errors = append(summary.Validation.Errors, err.Error())
		ce.Logger.Infof("scenario %q cannot be simulated: %v", scenario.Name, err)
		return summary, nil
	}
	summary.Inputs = &inputs

	projection, err := ce.Project(inputs.ProjectionInput())
	if err != nil {
		return nil, fmt.Errorf("scenario %q: future value: %w", scenario.Name, err)
	}
	summary.Projection = &projection

	retirementInput, err := inputs.RetirementInput()
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}
	retirement, err := ce.Retire(retirementInput)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: retirement: %w", scenario.Name, err)
	}
	summary.Retirement = &retirement

	return summary, nil
}

// RunScenarios runs all scenarios and returns a comparison
func (ce *CalculationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ScenarioComparison, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: configuration is nil", domain.ErrInvalidArgument)
	}

	scenarios := make([]domain.ScenarioSummary, 0, len(config.Scenarios))
	for _, scenario := range config.Scenarios {
		summary, err := ce.RunScenario(ctx, scenario)
		if err != nil {
			return nil, fmt.Errorf("RunScenario failed: %w", err)
		}
		scenarios = append(scenarios, *summary)
	}

	return &domain.ScenarioComparison{
		GeneratedAt: nowFunc().UTC(),
		Scenarios:   scenarios,
	}, nil
}
