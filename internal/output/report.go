package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rpgo/nestegg/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport formats results with the named formatter and writes them to w.
func GenerateReport(w io.Writer, results *domain.ScenarioComparison, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	data, err := f.Format(results)
	if err != nil {
		return fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// GenerateReportFile writes the named format to a timestamped file in dir.
// The format "all" writes every registered formatter.
func GenerateReportFile(dir string, results *domain.ScenarioComparison, format string) ([]string, error) {
	var formatters []Formatter
	if NormalizeFormatName(format) == "all" {
		formatters = builtInFormatters
	} else if f := GetFormatterByName(format); f != nil {
		formatters = []Formatter{f}
	} else {
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}

	var written []string
	for _, f := range formatters {
		name, err := WriteFormatted(f, results, dir)
		if err != nil {
			return written, err
		}
		written = append(written, name)
	}
	return written, nil
}

// SaveConfiguration writes a scenario file as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return os.WriteFile(filename, b, 0o644)
}
