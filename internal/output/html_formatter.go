package output

import (
	"bytes"
	_ "embed"
	"html/template"

	json "github.com/goccy/go-json"
	"github.com/rpgo/nestegg/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with a balance chart per scenario.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"pct":   FormatPercentage,
	"yesno": yesNo,
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

type chartSeries struct {
	Name     string   `json:"name"`
	Ages     []string `json:"ages"`
	Balances []string `json:"balances"`
}

func (h HTMLFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	scenarios := sortedScenarios(results)

	var series []chartSeries
	for _, sc := range scenarios {
		if sc.Retirement == nil || len(sc.Retirement.Schedule) == 0 {
			continue
		}
		s := chartSeries{Name: sc.Name}
		for _, yr := range sc.Retirement.Schedule {
			s.Ages = append(s.Ages, yr.Age.String())
			s.Balances = append(s.Balances, yr.EndBalance.StringFixed(2))
		}
		series = append(series, s)
	}

	data := struct {
		GeneratedAt    string
		Scenarios      []domain.ScenarioSummary
		Recommendation Recommendation
		Series         []chartSeries
	}{
		GeneratedAt:    results.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"),
		Scenarios:      scenarios,
		Recommendation: AnalyzeScenarios(results),
		Series:         series,
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
