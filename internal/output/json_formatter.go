package output

import (
	json "github.com/goccy/go-json"
	"github.com/rpgo/nestegg/internal/domain"
)

// JSONFormatter serializes the scenario comparison as pretty-printed JSON.
// Decimals are written as quoted strings so no precision is lost.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string      { return "json" }
func (j JSONFormatter) Extension() string { return "json" }

func (j JSONFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	return json.MarshalIndent(results, "", "  ")
}
