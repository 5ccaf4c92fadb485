package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/savings-projector/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "SAVINGS PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, sc := range results.Scenarios {
		r := sc.Result
		fmt.Fprintf(&buf, "%s: Nominal=%s Real=%s Contributed=%s\n",
			sc.Name,
			FormatCurrency(r.NominalEndingPrincipal),
			FormatCurrency(r.RealEndingPrincipal),
			FormatCurrency(r.TotalContributed),
		)
		fmt.Fprintf(&buf, "  RealIncome=%s Target=%s Outcome=%s\n",
			FormatCurrency(r.RealMonthlyIncome), FormatCurrency(sc.Params.TargetMonthlyIncome), r.Outcome.Label())
	}
	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (%s / month real)\n", rec.ScenarioName, FormatCurrency(rec.RealMonthlyIncome))
	}
	return buf.Bytes(), nil
}
