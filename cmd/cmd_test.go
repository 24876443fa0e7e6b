package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points settings and stored inputs at fresh temp directories.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("NESTEGG_STORE_DSN", "")
	return dir
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	require.NoError(t, closeLogs())
	return out.String(), err
}

func TestProject(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "project", "--initial-savings", "10000", "--contribution", "500", "--rate", "5", "--years", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "Future value: $229,43")
	assert.Contains(t, out, "$500.00 monthly at 5.00% for 20 years")

	out, err = execute(t, "", "project", "--initial-savings", "100000", "--contribution", "10000", "--frequency", "yearly", "--rate", "0", "--years", "3", "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"futureValue":"130000"}`, out)
}

func TestProject_InvalidArguments(t *testing.T) {
	isolate(t)

	_, err := execute(t, "", "project", "--frequency", "weekly")
	assert.ErrorContains(t, err, "monthly' or 'yearly")

	_, err = execute(t, "", "project", "--initial-savings", "-5")
	assert.ErrorContains(t, err, "initialSavings")

	_, err = execute(t, "", "project", "--rate", "five")
	assert.ErrorContains(t, err, "not a number")
}

func TestRetire(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "retire",
		"--initial-savings", "100000", "--expenses", "30000", "--rate", "5", "--inflation", "2",
		"--retirement-age", "65", "--years", "10", "--schedule")
	require.NoError(t, err)
	assert.Contains(t, out, "Savings run out after 4 years, at age 69")
	assert.Contains(t, out, "-$18,177.17")

	out, err = execute(t, "", "retire",
		"--initial-savings", "1000000", "--expenses", "30000", "--rate", "5", "--inflation", "2",
		"--retirement-age", "60", "--years", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "Savings last the full 30 years (to age 90)")

	_, err = execute(t, "", "retire", "--years", "2.5")
	assert.ErrorContains(t, err, "whole number")
}

func TestInputs_SaveLoadReset(t *testing.T) {
	dir := isolate(t)

	out, err := execute(t, "", "inputs", "load")
	require.NoError(t, err)
	assert.Contains(t, out, "Initial savings:  $0.00")
	assert.Contains(t, out, "$0.00 monthly")

	_, err = execute(t, "", "inputs", "save", "--initial-savings", "250000", "--contribution", "750", "--rate", "6")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "data", "nestegg", "inputs.json"))
	require.NoError(t, err, "file store lives under XDG_DATA_HOME")

	// Unset flags keep the stored values.
	_, err = execute(t, "", "inputs", "save", "--years", "25")
	require.NoError(t, err)

	out, err = execute(t, "", "inputs", "load", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"initialSavings": "250000"`)
	assert.Contains(t, out, `"annualInterestRate": "6"`)
	assert.Contains(t, out, `"years": "25"`)

	out, err = execute(t, "", "project", "--stored")
	require.NoError(t, err)
	assert.Contains(t, out, "$250,000.00 initial")

	out, err = execute(t, "", "inputs", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Initial savings:  $0.00")

	out, err = execute(t, "", "inputs", "load", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"initialSavings": "0"`)
}

func TestInputs_BirthDateDerivesYears(t *testing.T) {
	isolate(t)
	prev := nowFunc
	nowFunc = func() time.Time { return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { nowFunc = prev })

	out, err := execute(t, "", "inputs", "save", "--retirement-age", "65", "--birth-date", "1985-06-15", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"years": "25"`)

	_, err = execute(t, "", "inputs", "save", "--birth-date", "someday")
	assert.Error(t, err)
}

func TestInputs_SQLiteDriver(t *testing.T) {
	dir := isolate(t)
	db := filepath.Join(dir, "inputs.db")

	_, err := execute(t, "", "--store-driver", "sqlite", "--store-path", db, "inputs", "save", "--expenses", "40000")
	require.NoError(t, err)

	out, err := execute(t, "", "--store-driver", "sqlite", "--store-path", db, "inputs", "load")
	require.NoError(t, err)
	assert.Contains(t, out, "Annual expenses:  $40,000.00")
}

func TestExampleValidateRun(t *testing.T) {
	dir := isolate(t)
	file := filepath.Join(dir, "scenarios", "example.yaml")

	out, err := execute(t, "", "example", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 3 scenarios")

	_, err = execute(t, "", "example", file)
	assert.ErrorContains(t, err, "already exists")

	out, err = execute(t, "", "validate", file)
	require.NoError(t, err)
	assert.Contains(t, out, "ok    Baseline")

	out, err = execute(t, "", "run", file, "--format", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Scenario,Valid"))

	reports := filepath.Join(dir, "reports")
	require.NoError(t, os.MkdirAll(reports, 0o755))
	out, err = execute(t, "", "run", file, "--format", "all", "--output-dir", reports)
	require.NoError(t, err)
	entries, err := os.ReadDir(reports)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
	assert.Equal(t, 5, strings.Count(out, "Wrote "))
}

func TestValidate_ReportsFailures(t *testing.T) {
	isolate(t)
	yaml := `scenarios:
  - name: Broken
    current_age: 65
    retirement_age: 60
    initial_savings: ""
    contribution: 100
    annual_interest_rate: 5
    years: 10
    annual_expenses: 1000
    inflation_rate: 2
    stocks_percentage: 50
    bonds_percentage: 50
    contribution_frequency: monthly
`
	out, err := execute(t, yaml, "validate", "-")
	assert.ErrorContains(t, err, "1 of 1 scenarios failed validation")
	assert.Contains(t, out, "FAIL  Broken")
	assert.Contains(t, out, "- Field initialSavings cannot be empty")
	assert.Contains(t, out, "- Retirement age must be greater than current age")
}

func TestValidateAndRun_FractionalYears(t *testing.T) {
	isolate(t)
	yaml := `scenarios:
  - name: Whole
    current_age: 45
    retirement_age: 65
    initial_savings: 10000
    contribution: 500
    annual_interest_rate: 5
    years: 20
    annual_expenses: 30000
    inflation_rate: 2
    stocks_percentage: 60
    bonds_percentage: 40
    contribution_frequency: monthly
  - name: Half
    current_age: 45
    retirement_age: 65
    initial_savings: 10000
    contribution: 500
    annual_interest_rate: 5
    years: 2.5
    annual_expenses: 30000
    inflation_rate: 2
    stocks_percentage: 60
    bonds_percentage: 40
    contribution_frequency: monthly
`
	out, err := execute(t, yaml, "validate", "-")
	assert.ErrorContains(t, err, "1 of 2 scenarios failed validation")
	assert.Contains(t, out, "ok    Whole")
	assert.Contains(t, out, "FAIL  Half")
	assert.Contains(t, out, "whole number")

	out, err = execute(t, yaml, "run", "-", "--format", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, out, "Whole,true")
	assert.Contains(t, out, "Half,false")
}

func TestRun_UnknownFormat(t *testing.T) {
	dir := isolate(t)
	file := filepath.Join(dir, "example.yaml")
	_, err := execute(t, "", "example", file)
	require.NoError(t, err)

	_, err = execute(t, "", "run", file, "--format", "pdf")
	assert.ErrorContains(t, err, "unsupported report format")
}

func TestConfig(t *testing.T) {
	dir := isolate(t)

	out, err := execute(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "using defaults")
	assert.Contains(t, out, "Driver: file")
	assert.Contains(t, out, "Key:    retirementInputs")

	path := filepath.Join(dir, "custom.toml")
	out, err = execute(t, "", "--config", path, "--store-driver", "memory", "config", "--init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	out, err = execute(t, "", "--config", path, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "Status: loaded")
	assert.Contains(t, out, "Driver: memory")
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "postgres://app:xxxxx@db:5432/nestegg", maskDSN("postgres://app:secret@db:5432/nestegg"))
	assert.Equal(t, "host=db user=app", maskDSN("host=db user=app"))
}
