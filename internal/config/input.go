package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rpgo/nestegg/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario file. JSON documents are accepted as well,
// since YAML is a superset of JSON.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a scenario document.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration checks the file structure only. Form values are
// left to the validator so that every scenario gets a full error report.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]int, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		name := strings.TrimSpace(scenario.Name)
		if name == "" {
			return fmt.Errorf("scenario %d validation failed: scenario name is required", i)
		}
		if prev, dup := seen[name]; dup {
			return fmt.Errorf("scenario %d validation failed: name %q already used by scenario %d", i, name, prev)
		}
		seen[name] = i
	}

	return nil
}

// CreateExampleConfiguration creates an example scenario file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	base := domain.ValidationInput{
		CurrentAge:            "40",
		RetirementAge:         "65",
		InitialSavings:        "250000",
		Contribution:          "750",
		AnnualInterestRate:    "6",
		Years:                 "25",
		AnnualExpenses:        "40000",
		InflationRate:         "2.5",
		StocksPercentage:      "70",
		BondsPercentage:       "30",
		ContributionFrequency: domain.RawValue(domain.Monthly),
	}

	aggressive := base
	aggressive.Contribution = "1500"
	aggressive.AnnualInterestRate = "7"
	aggressive.AnnualExpenses = "30000"
	aggressive.StocksPercentage = "90"
	aggressive.BondsPercentage = "10"

	yearly := base
	yearly.CurrentAge = "32"
	yearly.RetirementAge = "62"
	yearly.InitialSavings = "600000"
	yearly.Contribution = "9000"
	yearly.ContributionFrequency = domain.RawValue(domain.Yearly)
	yearly.AnnualInterestRate = "5"
	yearly.Years = "30"
	yearly.AnnualExpenses = "25000"
	yearly.StocksPercentage = "50"
	yearly.BondsPercentage = "50"

	return &domain.Configuration{
		Scenarios: []domain.Scenario{
			{Name: "Baseline", Form: base},
			{Name: "Aggressive Saver", Form: aggressive},
			{Name: "Yearly Lump Contributions", Form: yearly},
		},
	}
}
