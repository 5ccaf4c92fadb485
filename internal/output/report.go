package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rpgo/savings-projector/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport renders results in the named format and writes them to w.
func GenerateReport(w io.Writer, results *domain.ScenarioComparison, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	data, err := f.Format(results)
	if err != nil {
		return fmt.Errorf("format %s: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// SaveReport writes results to a timestamped file in dir. The "all" format writes
// the verbose console report, the summary CSV and the timeline CSV.
func SaveReport(results *domain.ScenarioComparison, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, name := range []string{"console", "csv", "timeline-csv"} {
			file, err := WriteFormatted(GetFormatterByName(name), results, dir, ExtensionFor(name))
			if err != nil {
				return files, err
			}
			files = append(files, file)
		}
		return files, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	file, err := WriteFormatted(f, results, dir, ExtensionFor(format))
	if err != nil {
		return nil, err
	}
	return []string{file}, nil
}

// SaveConfiguration writes a plan configuration as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}

// WriteConfiguration writes a plan configuration as YAML to w.
func WriteConfiguration(w io.Writer, config *domain.Configuration) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
