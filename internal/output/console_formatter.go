package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rpgo/nestegg/internal/domain"
)

var (
	colorBorder = lipgloss.Color("#575653")
	colorText   = lipgloss.Color("#FFFCF0")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGreen  = lipgloss.Color("#879A39")
	colorRed    = lipgloss.Color("#D14D41")
	colorMuted  = lipgloss.Color("#6F6E69")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	labelStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	okStyle     = lipgloss.NewStyle().Foreground(colorGreen)
	badStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// ConsoleFormatter renders a styled terminal summary of every scenario.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var b strings.Builder
	b.WriteString(titleStyle.Render("RETIREMENT SCENARIO SUMMARY"))
	b.WriteString("\n")
	if !results.GeneratedAt.IsZero() {
		b.WriteString(labelStyle.Render("Generated " + results.GeneratedAt.UTC().Format("2006-01-02 15:04:05 MST")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, sc := range sortedScenarios(results) {
		b.WriteString(headerStyle.Render(sc.Name))
		b.WriteString("\n")

		if !sc.Validation.IsValid {
			b.WriteString(badStyle.Render("  Invalid inputs:"))
			b.WriteString("\n")
			for _, e := range sc.Validation.Errors {
				fmt.Fprintf(&b, "    - %s\n", e)
			}
			b.WriteString("\n")
			continue
		}
		if !sc.Computed() {
			b.WriteString(labelStyle.Render("  Not computed"))
			b.WriteString("\n\n")
			continue
		}

		in := sc.Inputs
		writeRow(&b, "Future value", fmt.Sprintf("%s after %s years (%s %s at %s)",
			FormatCurrency(sc.Projection.FutureValue),
			in.Years.String(),
			FormatCurrency(in.Contribution),
			in.ContributionFrequency,
			FormatPercentage(in.AnnualInterestRate)))
		writeRow(&b, "Retirement", fmt.Sprintf("%s a year from age %s, %s inflation",
			FormatCurrency(in.AnnualExpenses),
			in.RetirementAge.String(),
			FormatPercentage(in.InflationRate)))

		status := okStyle.Render("sustainable")
		if !sc.Retirement.CanSustain {
			status = badStyle.Render("depleted")
		}
		writeRow(&b, "Outcome", fmt.Sprintf("%s, %d years, age %s",
			status, sc.Retirement.SustainableYears, sc.Retirement.DepletionAge.String()))
		b.WriteString("\n")
	}

	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		line := fmt.Sprintf("Recommended: %s (%s projected", rec.ScenarioName, FormatCurrency(rec.FutureValue))
		if rec.Shortfall {
			line += fmt.Sprintf(", lasts %d years; no scenario is fully sustainable)", rec.SustainableYears)
		} else {
			line += ")"
		}
		b.WriteString(headerStyle.Render(line))
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}

func writeRow(b *strings.Builder, label, value string) {
	b.WriteString("  ")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-13s", label)))
	b.WriteString(value)
	b.WriteString("\n")
}
