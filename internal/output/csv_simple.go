package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/rpgo/savings-projector/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "HorizonMonths", "NominalEndingPrincipal", "RealEndingPrincipal", "TotalContributed", "NominalGains", "NominalMonthlyIncome", "RealMonthlyIncome", "InflationLoss", "RealMultiplier", "RequiredPrincipal", "TargetMonthlyIncome", "Outcome"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioSummary(nil), results.Scenarios...)
	sort.SliceStable(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		r := sc.Result
		row := []string{
			sc.Name,
			intToString(r.HorizonMonths),
			fixed2(r.NominalEndingPrincipal),
			fixed2(r.RealEndingPrincipal),
			fixed2(r.TotalContributed),
			fixed2(r.NominalGains),
			fixed2(r.NominalMonthlyIncome),
			fixed2(r.RealMonthlyIncome),
			fixed2(r.InflationLoss),
			decimalString(r.RealMultiplier, 4),
			fixed2(r.RequiredPrincipalForTarget),
			fixed2(sc.Params.TargetMonthlyIncome),
			r.Outcome.String(),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
