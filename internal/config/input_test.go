package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rpgo/nestegg/internal/domain"
	"github.com/rpgo/nestegg/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	testConfig := "scenarios:\n" +
		"  - name: \"Standard Retirement\"\n" +
		"    current_age: 45\n" +
		"    retirement_age: 65\n" +
		"    initial_savings: 100000\n" +
		"    contribution: 500\n" +
		"    contribution_frequency: monthly\n" +
		"    annual_interest_rate: 5\n" +
		"    years: 20\n" +
		"    annual_expenses: 40000\n" +
		"    inflation_rate: 2\n" +
		"    stocks_percentage: 60\n" +
		"    bonds_percentage: 40\n" +
		"  - name: \"Incomplete\"\n" +
		"    current_age: \"45\"\n" +
		"    initial_savings: ~\n"

	parser := NewInputParser()
	config, err := parser.LoadFromFile(writeTemp(t, testConfig))

	require.NoError(t, err)
	require.Len(t, config.Scenarios, 2)

	first := config.Scenarios[0]
	assert.Equal(t, "Standard Retirement", first.Name)
	assert.Equal(t, domain.RawValue("100000"), first.Form.InitialSavings)
	assert.Equal(t, domain.RawValue("monthly"), first.Form.ContributionFrequency)
	assert.True(t, validation.Validate(first.Form).IsValid)

	second := config.Scenarios[1]
	assert.Equal(t, domain.RawValue("45"), second.Form.CurrentAge)
	assert.True(t, second.Form.InitialSavings.IsEmpty())
	assert.False(t, validation.Validate(second.Form).IsValid, "form errors are reported later, not at load time")
}

func TestLoadFromFile_JSON(t *testing.T) {
	doc := `{"scenarios": [{"name": "json", "current_age": 30, "retirement_age": "60"}]}`
	config, err := NewInputParser().LoadFromFile(writeTemp(t, doc))
	require.NoError(t, err)
	assert.Equal(t, domain.RawValue("60"), config.Scenarios[0].Form.RetirementAge)
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	testConfig := `
scenarios:
	- name: "tabs are not allowed"
`

	parser := NewInputParser()
	config, err := parser.LoadFromFile(writeTemp(t, testConfig))

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadFromFile_NonScalarField(t *testing.T) {
	testConfig := "scenarios:\n  - name: x\n    years: [1, 2]\n"

	_, err := NewInputParser().LoadFromFile(writeTemp(t, testConfig))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a scalar")
}

func TestValidateConfiguration(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name    string
		config  *domain.Configuration
		wantErr string
	}{
		{"example", parser.CreateExampleConfiguration(), ""},
		{"no scenarios", &domain.Configuration{}, "no scenarios provided"},
		{"blank name", &domain.Configuration{Scenarios: []domain.Scenario{{Name: "  "}}}, "scenario name is required"},
		{
			"duplicate name",
			&domain.Configuration{Scenarios: []domain.Scenario{{Name: "A"}, {Name: "B"}, {Name: "A"}}},
			`name "A" already used by scenario 0`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parser.ValidateConfiguration(tt.config)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreateExampleConfiguration(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()

	require.Len(t, config.Scenarios, 3)
	for _, sc := range config.Scenarios {
		result := validation.Validate(sc.Form)
		assert.True(t, result.IsValid, "%s: %v", sc.Name, result.Errors)
	}

	// The example survives a YAML round trip through the parser.
	data, err := yaml.Marshal(config)
	require.NoError(t, err)
	reloaded, err := parser.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, config, reloaded)
}
