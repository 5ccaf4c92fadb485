package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/rpgo/savings-projector/internal/domain"
)

// FormatSensitivity renders a sensitivity sweep as a console table, CSV or JSON.
func FormatSensitivity(a domain.SensitivityAnalysis, format string) ([]byte, error) {
	switch n := NormalizeFormatName(format); {
	case n == "json":
		return json.MarshalIndent(a, "", "  ")
	case strings.Contains(n, "csv"):
		return sensitivityCSV(a)
	case strings.HasPrefix(n, "console"):
		return sensitivityTable(a), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func sensitivityTable(a domain.SensitivityAnalysis) []byte {
	var buf bytes.Buffer
	title := fmt.Sprintf("SENSITIVITY: %s (%s)", a.Parameter.Description, a.ScenarioName)
	fmt.Fprintln(&buf, title)
	fmt.Fprintln(&buf, strings.Repeat("=", len(title)))
	fmt.Fprintf(&buf, "Base: real income %s, outcome %s\n\n", FormatCurrency(a.Base.RealMonthlyIncome), a.Base.Outcome.Label())

	fmt.Fprintf(&buf, "%14s %18s %16s %10s  %s\n", strings.ToUpper(a.Parameter.Unit), "REAL PRINCIPAL", "REAL INCOME", "MULTIPLE", "OUTCOME")
	for _, p := range a.Points {
		fmt.Fprintf(&buf, "%14s %18s %16s %10s  %s\n",
			decimalString(p.Value, 2), FormatCurrency(p.RealEndingPrincipal), FormatCurrency(p.RealMonthlyIncome),
			decimalString(p.RealMultiplier, 2)+"x", p.Outcome.Label())
	}
	fmt.Fprintln(&buf)
	if a.MinimumOnTrack != nil {
		fmt.Fprintf(&buf, "On track from %s %s\n", decimalString(*a.MinimumOnTrack, 2), a.Parameter.Unit)
	} else {
		fmt.Fprintln(&buf, "No swept value reaches the target")
	}
	return buf.Bytes()
}

func sensitivityCSV(a domain.SensitivityAnalysis) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Scenario", "Parameter", "Value", "RealEndingPrincipal", "RealMonthlyIncome", "RealMultiplier", "Outcome"}); err != nil {
		return nil, err
	}
	for _, p := range a.Points {
		row := []string{
			a.ScenarioName,
			a.Parameter.Name,
			decimalString(p.Value, 4),
			fixed2(p.RealEndingPrincipal),
			fixed2(p.RealMonthlyIncome),
			decimalString(p.RealMultiplier, 4),
			p.Outcome.String(),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
